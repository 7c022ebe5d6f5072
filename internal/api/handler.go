package api

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"hostel-backend/config"
	"hostel-backend/internal/apperr"
	"hostel-backend/internal/auth"
	"hostel-backend/internal/mw"
	"hostel-backend/internal/notification"
	"hostel-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	notifier *notification.Dispatcher
	tokens   *auth.TokenService
	sensors  config.SensorsConfig

	now   func() time.Time
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, notifier *notification.Dispatcher, tokens *auth.TokenService, sensors config.SensorsConfig) *Handler {
	return &Handler{
		store:    s,
		notifier: notifier,
		tokens:   tokens,
		sensors:  sensors,
		now:      time.Now,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// principal returns the authenticated caller. Routes that call it are always
// behind mw.Authenticate.
func principal(c *gin.Context) (*auth.Principal, bool) {
	p, ok := mw.CurrentUser(c)
	if !ok {
		apperr.Respond(c, apperr.Unauthorized("Not authenticated"))
	}
	return p, ok
}

// bind decodes the JSON body into req, answering 400 on failure.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apperr.Respond(c, apperr.BadRequest(err.Error()))
		return false
	}
	return true
}
