package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hostel-backend/internal/apperr"
	"hostel-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, id string) (*model.User, error)
	ListUserIDsByRole(ctx context.Context, role model.Role) ([]string, error)

	CreateComplaint(ctx context.Context, c *model.Complaint) error
	ListComplaintsByOwner(ctx context.Context, userID string) ([]model.Complaint, error)
	ListComplaints(ctx context.Context, limit int) ([]model.Complaint, error)
	SetComplaintStatus(ctx context.Context, id string, status model.ComplaintStatus) (*model.Complaint, error)
	CountComplaints(ctx context.Context, status model.ComplaintStatus) (int64, error)

	CreateLeave(ctx context.Context, l *model.LeaveRequest) error
	ListLeavesByOwner(ctx context.Context, userID string) ([]model.LeaveRequest, error)
	ListLeaves(ctx context.Context, limit int) ([]model.LeaveRequest, error)
	SetLeaveStatus(ctx context.Context, id string, status model.LeaveStatus, comment string) (*model.LeaveRequest, error)
	CountLeaves(ctx context.Context, status model.LeaveStatus) (int64, error)

	CreateNotification(ctx context.Context, n *model.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error)

	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ownerColumns is the projection of User attached to complaint and leave listings.
func ownerColumns(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "name", "email")
}

// notFound translates gorm's sentinel so handlers can map it to a 404.
func notFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(message)
	}
	return err
}

// --- Users ---

func (s *gormStore) CreateUser(ctx context.Context, u *model.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *gormStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err, "User not found")
	}
	return &u, nil
}

func (s *gormStore) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err, "User not found")
	}
	return &u, nil
}

func (s *gormStore) ListUserIDsByRole(ctx context.Context, role model.Role) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", role).
		Order("created_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s users: %w", role, err)
	}
	return ids, nil
}

// --- Complaints ---

func (s *gormStore) CreateComplaint(ctx context.Context, c *model.Complaint) error {
	c.Status = model.ComplaintPending
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

func (s *gormStore) ListComplaintsByOwner(ctx context.Context, userID string) ([]model.Complaint, error) {
	complaints := []model.Complaint{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("failed to list complaints for user %s: %w", userID, err)
	}
	return complaints, nil
}

// ListComplaints returns complaints from every owner, newest first, with the
// owner's name and email attached. limit <= 0 means no limit.
func (s *gormStore) ListComplaints(ctx context.Context, limit int) ([]model.Complaint, error) {
	complaints := []model.Complaint{}
	q := s.db.WithContext(ctx).Preload("User", ownerColumns).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

// SetComplaintStatus overwrites the status unconditionally. Any status may
// follow any other.
func (s *gormStore) SetComplaintStatus(ctx context.Context, id string, status model.ComplaintStatus) (*model.Complaint, error) {
	var c model.Complaint
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err, "Complaint not found")
	}

	c.Status = status
	if err := s.db.WithContext(ctx).Model(&c).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update complaint %s: %w", id, err)
	}
	return &c, nil
}

// CountComplaints counts complaints with the given status, or all of them when
// status is empty.
func (s *gormStore) CountComplaints(ctx context.Context, status model.ComplaintStatus) (int64, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(&model.Complaint{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count complaints: %w", err)
	}
	return n, nil
}

// --- Leave requests ---

func (s *gormStore) CreateLeave(ctx context.Context, l *model.LeaveRequest) error {
	l.Status = model.LeavePending
	l.WardenComment = ""
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}
	return nil
}

func (s *gormStore) ListLeavesByOwner(ctx context.Context, userID string) ([]model.LeaveRequest, error) {
	leaves := []model.LeaveRequest{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&leaves).Error; err != nil {
		return nil, fmt.Errorf("failed to list leave requests for user %s: %w", userID, err)
	}
	return leaves, nil
}

// ListLeaves mirrors ListComplaints for leave requests.
func (s *gormStore) ListLeaves(ctx context.Context, limit int) ([]model.LeaveRequest, error) {
	leaves := []model.LeaveRequest{}
	q := s.db.WithContext(ctx).Preload("User", ownerColumns).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&leaves).Error; err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leaves, nil
}

// SetLeaveStatus overwrites status and warden comment unconditionally.
func (s *gormStore) SetLeaveStatus(ctx context.Context, id string, status model.LeaveStatus, comment string) (*model.LeaveRequest, error) {
	var l model.LeaveRequest
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, notFound(err, "Leave request not found")
	}

	l.Status = status
	l.WardenComment = comment
	if err := s.db.WithContext(ctx).Model(&l).Updates(map[string]any{
		"status":         status,
		"warden_comment": comment,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update leave request %s: %w", id, err)
	}
	return &l, nil
}

func (s *gormStore) CountLeaves(ctx context.Context, status model.LeaveStatus) (int64, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(&model.LeaveRequest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count leave requests: %w", err)
	}
	return n, nil
}

// --- Notifications ---

func (s *gormStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	n.Read = false
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (s *gormStore) ListNotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	notifications := []model.Notification{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %s: %w", userID, err)
	}
	return notifications, nil
}

// MarkNotificationRead sets read = true. Marking an already-read notification
// again succeeds without changing it.
func (s *gormStore) MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error) {
	var n model.Notification
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		return nil, notFound(err, "Notification not found")
	}
	if n.Read {
		return &n, nil
	}

	n.Read = true
	if err := s.db.WithContext(ctx).Model(&n).Update("read", true).Error; err != nil {
		return nil, fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}
	return &n, nil
}
