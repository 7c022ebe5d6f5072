package internal

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hostel-backend/config"
	"hostel-backend/internal/api"
	"hostel-backend/internal/auth"
	"hostel-backend/internal/client"
	"hostel-backend/internal/db"
	"hostel-backend/internal/model"
	"hostel-backend/internal/mw"
	"hostel-backend/internal/notification"
	"hostel-backend/internal/state"
	"hostel-backend/internal/store"
)

type harness struct {
	db     *gorm.DB
	store  store.Store
	server *httptest.Server
}

// newHarness runs the whole server stack against an in-memory SQLite database.
func newHarness(t *testing.T, name string) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "Failed to connect to the in-memory database")
	require.NoError(t, testDB.AutoMigrate(db.Models()...))

	s := store.NewGormStore(testDB)
	tokens, err := auth.NewTokenService("integration-secret", time.Hour, "hostel-backend")
	require.NoError(t, err)

	cfg := config.SensorsConfig{DeviceID: "fake-device-1", Holidays: config.DefaultHolidays}
	h := api.NewHandler(s, notification.NewDispatcher(s, nil), tokens, cfg)
	server := httptest.NewServer(api.NewRouter(h, mw.NewIPRateLimiter(rate.Inf, 1, time.Minute)))

	sqlDB, _ := testDB.DB()
	t.Cleanup(func() {
		server.Close()
		sqlDB.Close()
	})
	return &harness{db: testDB, store: s, server: server}
}

// session registers a user through the API and signs them in through a client state store.
func (h *harness) session(t *testing.T, name string, role model.Role) *state.Store {
	t.Helper()
	ctx := context.Background()

	st := state.NewStore(client.New(h.server.URL+"/api", h.server.Client()), state.App{})
	require.NoError(t, st.Register(ctx, client.RegisterInput{
		Name:     name,
		Email:    name + "@hostel.test",
		Password: "secret123",
		Role:     role,
	}))
	require.NoError(t, st.Login(ctx, name+"@hostel.test", "secret123"))
	return st
}

// TestComplaintReview files a complaint as one student and moves it to
// In-Progress as the warden.
func TestComplaintReview(t *testing.T) {
	h := newHarness(t, "complaint-review")
	ctx := context.Background()
	studentA := h.session(t, "student-a", model.RoleStudent)
	warden := h.session(t, "warden", model.RoleWarden)

	var complaintID string
	t.Run("Student files a complaint", func(t *testing.T) {
		require.NoError(t, studentA.CreateComplaint(ctx, client.ComplaintInput{
			Category:    "Water",
			Description: "Leaking tap",
			RoomNumber:  "B-204",
		}))
		require.NoError(t, studentA.FetchMyComplaints(ctx))

		mine := studentA.State().Complaint.Complaints
		require.Len(t, mine, 1)
		assert.Equal(t, model.ComplaintPending, mine[0].Status)
		assert.Equal(t, "B-204", mine[0].RoomNumber)
		complaintID = mine[0].ID
	})

	t.Run("Warden marks it In-Progress", func(t *testing.T) {
		require.NoError(t, warden.FetchAllComplaints(ctx))
		require.NoError(t, warden.UpdateComplaintStatus(ctx, complaintID, model.ComplaintInProgress))
		require.NoError(t, warden.FetchAllComplaints(ctx))

		all := warden.State().Complaint.Complaints
		require.Len(t, all, 1)
		assert.Equal(t, model.ComplaintInProgress, all[0].Status)
		require.NotNil(t, all[0].User)
		assert.Equal(t, "student-a@hostel.test", all[0].User.Email)
	})

	t.Run("Student sees the new status without a notification", func(t *testing.T) {
		require.NoError(t, studentA.FetchMyComplaints(ctx))
		assert.Equal(t, model.ComplaintInProgress, studentA.State().Complaint.Complaints[0].Status)

		require.NoError(t, studentA.FetchNotifications(ctx))
		assert.Empty(t, studentA.State().Notification.Notifications)
		assert.Equal(t, 0, studentA.State().Notification.UnreadCount)
	})

	t.Run("Dashboard counts the complaint", func(t *testing.T) {
		require.NoError(t, warden.FetchWardenSummary(ctx))
		summary := warden.State().Warden.Summary
		require.NotNil(t, summary)
		assert.Equal(t, model.ComplaintCounts{Total: 1, InProgress: 1}, summary.Complaints)
	})
}

// TestLeaveRejection rejects a leave request and checks the owner is told.
func TestLeaveRejection(t *testing.T) {
	h := newHarness(t, "leave-rejection")
	ctx := context.Background()
	studentB := h.session(t, "student-b", model.RoleStudent)
	warden := h.session(t, "warden", model.RoleWarden)

	require.NoError(t, studentB.ApplyLeave(ctx, client.LeaveInput{
		FromDate:           "2025-03-01",
		ToDate:             "2025-03-05",
		Reason:             "family event",
		DestinationAddress: "Home",
	}))
	leave := studentB.State().Leave.Leaves[0]
	assert.Equal(t, model.LeavePending, leave.Status)
	assert.Equal(t, "", leave.WardenComment)

	require.NoError(t, warden.FetchAllLeaves(ctx))
	require.NoError(t, warden.UpdateLeaveStatus(ctx, leave.ID, model.LeaveRejected, "Insufficient notice"))
	reviewed := warden.State().Leave.Leaves[0]
	assert.Equal(t, model.LeaveRejected, reviewed.Status)
	assert.Equal(t, "Insufficient notice", reviewed.WardenComment)

	require.NoError(t, studentB.FetchNotifications(ctx))
	notes := studentB.State().Notification.Notifications
	require.Len(t, notes, 1)
	assert.Equal(t, "Leave Status Updated", notes[0].Title)
	assert.Equal(t, "Your leave request has been Rejected.", notes[0].Message)
	assert.Equal(t, 1, studentB.State().Notification.UnreadCount)

	require.NoError(t, studentB.MarkNotificationRead(ctx, notes[0].ID))
	require.NoError(t, studentB.MarkNotificationRead(ctx, notes[0].ID))
	assert.Equal(t, 0, studentB.State().Notification.UnreadCount)
}

// TestBroadcastToAllStudents fans a broadcast out to fifty students.
func TestBroadcastToAllStudents(t *testing.T) {
	h := newHarness(t, "broadcast")
	ctx := context.Background()
	warden := h.session(t, "warden", model.RoleWarden)

	for i := 0; i < 50; i++ {
		require.NoError(t, h.store.CreateUser(ctx, &model.User{
			Name:     fmt.Sprintf("student-%02d", i),
			Email:    fmt.Sprintf("student-%02d@hostel.test", i),
			Password: "unused",
			Role:     model.RoleStudent,
		}))
	}

	require.NoError(t, warden.SendBroadcast(ctx, "Power Outage", "No power 2-4pm tomorrow"))
	assert.True(t, warden.State().Notification.BroadcastSuccess)

	var notes []model.Notification
	require.NoError(t, h.db.Find(&notes).Error)
	require.Len(t, notes, 50)

	recipients := map[string]bool{}
	for _, n := range notes {
		recipients[n.UserID] = true
		assert.Equal(t, "Power Outage", n.Title)
		assert.Equal(t, "No power 2-4pm tomorrow", n.Message)
		assert.False(t, n.Read)
	}
	assert.Len(t, recipients, 50, "one notification per student")
}
