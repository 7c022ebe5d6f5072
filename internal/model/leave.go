package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveStatus is the review state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

// LeaveStatuses lists every valid leave status.
var LeaveStatuses = []LeaveStatus{LeavePending, LeaveApproved, LeaveRejected}

// Valid reports whether s is one of LeaveStatuses.
func (s LeaveStatus) Valid() bool {
	for _, v := range LeaveStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// LeaveRequest is a student's request to be away from the hostel.
// FromDate and ToDate are calendar dates; no ordering between them is enforced.
type LeaveRequest struct {
	ID                 string      `gorm:"primaryKey;size:36" json:"id"`
	UserID             string      `gorm:"size:36;not null;index" json:"userId"`
	FromDate           time.Time   `gorm:"not null" json:"fromDate"`
	ToDate             time.Time   `gorm:"not null" json:"toDate"`
	Reason             string      `gorm:"not null" json:"reason"`
	DestinationAddress string      `gorm:"not null" json:"destinationAddress"`
	Status             LeaveStatus `gorm:"size:16;not null;index" json:"status"`
	WardenComment      string      `gorm:"not null" json:"wardenComment"`
	CreatedAt          time.Time   `gorm:"not null;index" json:"createdAt"`
	UpdatedAt          time.Time   `gorm:"not null" json:"updatedAt"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate assigns a generated identifier.
func (l *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
