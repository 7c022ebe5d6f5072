package notification

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hostel-backend/internal/db"
	"hostel-backend/internal/model"
	"hostel-backend/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(db.Models()...))

	sqlDB, _ := gormDB.DB()
	t.Cleanup(func() { sqlDB.Close() })
	return store.NewGormStore(gormDB)
}

func addUser(t *testing.T, s store.Store, email string, role model.Role) *model.User {
	u := &model.User{Name: email, Email: email, Password: "x", Role: role}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

// flakyStore fails notification writes for selected recipients.
type flakyStore struct {
	store.Store
	failFor map[string]bool
}

func (f *flakyStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	if f.failFor[n.UserID] {
		return errors.New("write failed")
	}
	return f.Store.CreateNotification(ctx, n)
}

// brokenListStore cannot enumerate users.
type brokenListStore struct {
	store.Store
}

func (brokenListStore) ListUserIDsByRole(context.Context, model.Role) ([]string, error) {
	return nil, errors.New("connection refused")
}

type recordedMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []recordedMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, recordedMail{to, subject, body})
	return nil
}

func TestLeaveStatusMessage(t *testing.T) {
	assert.Equal(t, "Your leave request has been Rejected.", LeaveStatusMessage(model.LeaveRejected))
	assert.Equal(t, "Your leave request has been Approved.", LeaveStatusMessage(model.LeaveApproved))
}

func TestNotify_CreatesUnreadNotification(t *testing.T) {
	s := newTestStore(t)
	u := addUser(t, s, "b@hostel.test", model.RoleStudent)
	d := NewDispatcher(s, nil)

	require.NoError(t, d.Notify(context.Background(), u.ID, LeaveStatusTitle, "Your leave request has been Approved."))

	list, err := s.ListNotificationsByUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, LeaveStatusTitle, list[0].Title)
	assert.False(t, list[0].Read)
}

func TestNotify_ReturnsStoreFailure(t *testing.T) {
	base := newTestStore(t)
	u := addUser(t, base, "b@hostel.test", model.RoleStudent)
	d := NewDispatcher(&flakyStore{Store: base, failFor: map[string]bool{u.ID: true}}, nil)

	err := d.Notify(context.Background(), u.ID, "t", "m")
	assert.Error(t, err)
}

func TestNotify_RelaysMail(t *testing.T) {
	s := newTestStore(t)
	u := addUser(t, s, "b@hostel.test", model.RoleStudent)
	mailer := &fakeMailer{}
	d := NewDispatcher(s, mailer)

	require.NoError(t, d.Notify(context.Background(), u.ID, "Water", "Tank cleaning today"))
	assert.Equal(t, []recordedMail{{"b@hostel.test", "Water", "Tank cleaning today"}}, mailer.sent)
}

func TestNotify_MailFailureIsNotAnError(t *testing.T) {
	s := newTestStore(t)
	u := addUser(t, s, "b@hostel.test", model.RoleStudent)
	d := NewDispatcher(s, &fakeMailer{err: errors.New("relay down")})

	assert.NoError(t, d.Notify(context.Background(), u.ID, "t", "m"))

	list, err := s.ListNotificationsByUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBroadcast_OnePerStudent(t *testing.T) {
	s := newTestStore(t)
	students := make([]*model.User, 0, 50)
	for i := 0; i < 50; i++ {
		students = append(students, addUser(t, s, fmt.Sprintf("s%02d@hostel.test", i), model.RoleStudent))
	}
	warden := addUser(t, s, "w@hostel.test", model.RoleWarden)
	d := NewDispatcher(s, nil)

	res, err := d.Broadcast(context.Background(), "Power Outage", "No power 2-4pm tomorrow")
	require.NoError(t, err)
	assert.Equal(t, BroadcastResult{Recipients: 50, Delivered: 50}, res)

	var total int64
	require.NoError(t, s.DB().Model(&model.Notification{}).Count(&total).Error)
	assert.Equal(t, int64(50), total)

	for _, u := range students {
		list, err := s.ListNotificationsByUser(context.Background(), u.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Power Outage", list[0].Title)
		assert.Equal(t, "No power 2-4pm tomorrow", list[0].Message)
		assert.False(t, list[0].Read)
	}

	list, err := s.ListNotificationsByUser(context.Background(), warden.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBroadcast_ContinuesPastFailures(t *testing.T) {
	base := newTestStore(t)
	a := addUser(t, base, "a@hostel.test", model.RoleStudent)
	b := addUser(t, base, "b@hostel.test", model.RoleStudent)
	c := addUser(t, base, "c@hostel.test", model.RoleStudent)
	d := NewDispatcher(&flakyStore{Store: base, failFor: map[string]bool{b.ID: true}}, nil)

	res, err := d.Broadcast(context.Background(), "t", "m")
	require.NoError(t, err)
	assert.Equal(t, BroadcastResult{Recipients: 3, Delivered: 2}, res)

	for _, u := range []*model.User{a, c} {
		list, err := base.ListNotificationsByUser(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
}

func TestBroadcast_IgnoresCallerCancellation(t *testing.T) {
	s := newTestStore(t)
	addUser(t, s, "a@hostel.test", model.RoleStudent)
	addUser(t, s, "b@hostel.test", model.RoleStudent)
	d := NewDispatcher(s, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := d.Broadcast(ctx, "t", "m")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Delivered)
}

func TestBroadcast_ListFailure(t *testing.T) {
	d := NewDispatcher(brokenListStore{Store: newTestStore(t)}, nil)

	_, err := d.Broadcast(context.Background(), "t", "m")
	assert.ErrorContains(t, err, "connection refused")
}

func TestBroadcast_NoStudents(t *testing.T) {
	s := newTestStore(t)
	addUser(t, s, "w@hostel.test", model.RoleWarden)
	d := NewDispatcher(s, nil)

	res, err := d.Broadcast(context.Background(), "t", "m")
	require.NoError(t, err)
	assert.Equal(t, BroadcastResult{}, res)
}
