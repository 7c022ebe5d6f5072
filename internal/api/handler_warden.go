package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/apperr"
	"hostel-backend/internal/model"
)

const recentLimit = 5

// WardenSummary counts complaints and leave requests by status.
func (h *Handler) WardenSummary(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		s   model.DashboardSummary
		err error
	)

	complaintCounts := []struct {
		status model.ComplaintStatus
		dst    *int64
	}{
		{"", &s.Complaints.Total},
		{model.ComplaintPending, &s.Complaints.Pending},
		{model.ComplaintInProgress, &s.Complaints.InProgress},
		{model.ComplaintResolved, &s.Complaints.Resolved},
	}
	for _, q := range complaintCounts {
		if *q.dst, err = h.store.CountComplaints(ctx, q.status); err != nil {
			apperr.Respond(c, err)
			return
		}
	}

	leaveCounts := []struct {
		status model.LeaveStatus
		dst    *int64
	}{
		{"", &s.Leaves.Total},
		{model.LeavePending, &s.Leaves.Pending},
		{model.LeaveApproved, &s.Leaves.Approved},
		{model.LeaveRejected, &s.Leaves.Rejected},
	}
	for _, q := range leaveCounts {
		if *q.dst, err = h.store.CountLeaves(ctx, q.status); err != nil {
			apperr.Respond(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, s)
}

// WardenRecent returns the five newest complaints and leave requests.
func (h *Handler) WardenRecent(c *gin.Context) {
	complaints, err := h.store.ListComplaints(c.Request.Context(), recentLimit)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	leaves, err := h.store.ListLeaves(c.Request.Context(), recentLimit)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, model.RecentActivity{
		RecentComplaints: complaints,
		RecentLeaves:     leaves,
	})
}
