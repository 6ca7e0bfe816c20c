package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationApplicationReceived = "application_received"
	NotificationApplicationStatus   = "application_status"
	NotificationAccountApproval     = "account_approval"
)

type Notification struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"` // recipient identity
	ActorID       uuid.UUID  `gorm:"type:uuid;not null" json:"actorId"`
	ApplicationID *uuid.UUID `gorm:"type:uuid" json:"applicationId,omitempty"`
	JobID         *uuid.UUID `gorm:"type:uuid" json:"jobId,omitempty"`
	Type          string     `gorm:"size:50;not null" json:"type"`
	Message       string     `gorm:"type:text" json:"message"`
	IsRead        bool       `gorm:"not null" json:"isRead"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
