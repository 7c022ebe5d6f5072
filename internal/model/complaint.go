package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplaintStatus is the review state of a complaint.
type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "Pending"
	ComplaintInProgress ComplaintStatus = "In-Progress"
	ComplaintResolved   ComplaintStatus = "Resolved"
)

// ComplaintStatuses lists every valid complaint status.
var ComplaintStatuses = []ComplaintStatus{ComplaintPending, ComplaintInProgress, ComplaintResolved}

// Valid reports whether s is one of ComplaintStatuses.
func (s ComplaintStatus) Valid() bool {
	for _, v := range ComplaintStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Complaint is a maintenance issue filed by a student.
type Complaint struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	UserID      string          `gorm:"size:36;not null;index" json:"userId"`
	Category    string          `gorm:"size:64;not null" json:"category"`
	Description string          `gorm:"not null" json:"description"`
	RoomNumber  string          `gorm:"size:32;not null" json:"roomNumber"`
	Status      ComplaintStatus `gorm:"size:16;not null;index" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updatedAt"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate assigns a generated identifier.
func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
