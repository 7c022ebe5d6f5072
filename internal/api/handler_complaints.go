package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/apperr"
	"hostel-backend/internal/model"
)

// Blank strings are accepted; only missing fields are rejected.
type createComplaintRequest struct {
	Category    *string `json:"category" binding:"required"`
	Description *string `json:"description" binding:"required"`
	RoomNumber  *string `json:"roomNumber" binding:"required"`
}

// CreateComplaint files a Pending complaint for the calling student.
func (h *Handler) CreateComplaint(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createComplaintRequest
	if !bind(c, &req) {
		return
	}

	complaint := &model.Complaint{
		UserID:      p.UserID,
		Category:    *req.Category,
		Description: *req.Description,
		RoomNumber:  *req.RoomNumber,
	}
	if err := h.store.CreateComplaint(c.Request.Context(), complaint); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Complaint submitted successfully",
		"complaint": complaint,
	})
}

// MyComplaints lists the caller's complaints, newest first.
func (h *Handler) MyComplaints(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	complaints, err := h.store.ListComplaintsByOwner(c.Request.Context(), p.UserID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// AllComplaints lists every complaint with its owner's name and email.
func (h *Handler) AllComplaints(c *gin.Context) {
	complaints, err := h.store.ListComplaints(c.Request.Context(), 0)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

type complaintStatusRequest struct {
	Status model.ComplaintStatus `json:"status" binding:"required,oneof=Pending In-Progress Resolved"`
}

// UpdateComplaintStatus overwrites the status of a complaint. It does not
// notify the owner.
func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	var req complaintStatusRequest
	if !bind(c, &req) {
		return
	}

	complaint, err := h.store.SetComplaintStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Status updated successfully",
		"complaint": complaint,
	})
}
