package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/logger"
	"hostel-backend/internal/model"
	"hostel-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, limiter *mw.IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestLogger(logger.Named("http")))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authenticated := mw.Authenticate(h.tokens)
	student := mw.RequireRole(model.RoleStudent)
	warden := mw.RequireRole(model.RoleWarden)

	api := r.Group("/api")
	api.Use(mw.RateLimiter(limiter))
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authenticated, h.Profile)
		authGroup.GET("/profile", authenticated, h.Profile)

		complaints := api.Group("/complaints", authenticated)
		complaints.POST("", student, h.CreateComplaint)
		complaints.GET("/my", student, h.MyComplaints)
		complaints.GET("/all", warden, h.AllComplaints)
		complaints.PUT("/:id/status", warden, h.UpdateComplaintStatus)

		leave := api.Group("/leave", authenticated)
		leave.POST("", student, h.ApplyLeave)
		leave.GET("/my", student, h.MyLeaves)
		leave.GET("/all", warden, h.AllLeaves)
		leave.PUT("/:id/status", warden, h.UpdateLeaveStatus)

		notifications := api.Group("/notifications", authenticated)
		notifications.GET("", h.MyNotifications)
		notifications.PUT("/:id/read", h.MarkNotificationRead)
		notifications.POST("/broadcast", warden, h.Broadcast)

		wardenGroup := api.Group("/warden", authenticated, warden)
		wardenGroup.GET("/summary", h.WardenSummary)
		wardenGroup.GET("/recent", h.WardenRecent)

		api.GET("/iot/fake-headcount", h.FakeHeadcount)
		api.GET("/mess/predict", h.FoodPrediction)
	}

	return r
}
