package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/apperr"
)

// MyNotifications lists the caller's notifications, newest first.
func (h *Handler) MyNotifications(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	list, err := h.store.ListNotificationsByUser(c.Request.Context(), p.UserID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// MarkNotificationRead flags a notification as read. Repeating it is harmless.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	n, err := h.store.MarkNotificationRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Marked as read",
		"notification": n,
	})
}

type broadcastRequest struct {
	Title   *string `json:"title" binding:"required"`
	Message *string `json:"message" binding:"required"`
}

// Broadcast sends the same notification to every student. The response does
// not depend on how many individual sends succeeded.
func (h *Handler) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if !bind(c, &req) {
		return
	}

	if _, err := h.notifier.Broadcast(c.Request.Context(), *req.Title, *req.Message); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Broadcast sent successfully"})
}
