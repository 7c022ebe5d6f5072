package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/apperr"
	"hostel-backend/internal/model"
	"hostel-backend/internal/notification"
)

type applyLeaveRequest struct {
	FromDate           string  `json:"fromDate" binding:"required"`
	ToDate             string  `json:"toDate" binding:"required"`
	Reason             *string `json:"reason" binding:"required"`
	DestinationAddress *string `json:"destinationAddress" binding:"required"`
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(field, value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.BadRequest(fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field))
}

// ApplyLeave records a Pending leave request for the calling student.
// fromDate may be after toDate.
func (h *Handler) ApplyLeave(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req applyLeaveRequest
	if !bind(c, &req) {
		return
	}

	from, err := parseDate("fromDate", req.FromDate)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	to, err := parseDate("toDate", req.ToDate)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	leave := &model.LeaveRequest{
		UserID:             p.UserID,
		FromDate:           from,
		ToDate:             to,
		Reason:             *req.Reason,
		DestinationAddress: *req.DestinationAddress,
	}
	if err := h.store.CreateLeave(c.Request.Context(), leave); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Leave request submitted successfully",
		"leave":   leave,
	})
}

// MyLeaves lists the caller's leave requests, newest first.
func (h *Handler) MyLeaves(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	leaves, err := h.store.ListLeavesByOwner(c.Request.Context(), p.UserID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, leaves)
}

// AllLeaves lists every leave request with its owner's name and email.
func (h *Handler) AllLeaves(c *gin.Context) {
	leaves, err := h.store.ListLeaves(c.Request.Context(), 0)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, leaves)
}

type leaveStatusRequest struct {
	Status        model.LeaveStatus `json:"status" binding:"required,oneof=Pending Approved Rejected"`
	WardenComment *string           `json:"wardenComment"`
}

// UpdateLeaveStatus overwrites status and comment, then notifies the owner.
// A failed notification does not fail the update.
func (h *Handler) UpdateLeaveStatus(c *gin.Context) {
	var req leaveStatusRequest
	if !bind(c, &req) {
		return
	}
	comment := ""
	if req.WardenComment != nil {
		comment = *req.WardenComment
	}

	leave, err := h.store.SetLeaveStatus(c.Request.Context(), c.Param("id"), req.Status, comment)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	_ = h.notifier.Notify(c.Request.Context(), leave.UserID,
		notification.LeaveStatusTitle, notification.LeaveStatusMessage(leave.Status))

	c.JSON(http.StatusOK, gin.H{
		"message": "Leave status updated successfully",
		"leave":   leave,
	})
}
