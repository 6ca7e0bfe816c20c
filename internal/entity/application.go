package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusAccepted    ApplicationStatus = "accepted"
)

// allowedTransitions is the directed status graph. Statuses without an entry are terminal.
var allowedTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:     {StatusShortlisted, StatusRejected, StatusAccepted},
	StatusShortlisted: {StatusAccepted, StatusRejected},
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShortlisted, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

func (s ApplicationStatus) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Re-setting the current status is always allowed.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, candidate := range allowedTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

type Application struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	JobID       uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_student" json:"jobId"`
	StudentID   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_student;index" json:"studentId"`
	CoverLetter string            `gorm:"type:text;not null" json:"coverLetter"`
	Status      ApplicationStatus `gorm:"size:20;not null;index" json:"status"`
	AppliedAt   time.Time         `gorm:"not null;index" json:"appliedAt"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updatedAt"`

	Job     *Job            `gorm:"foreignKey:JobID" json:"job"`
	Student *StudentProfile `gorm:"foreignKey:StudentID" json:"student"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	now := time.Now()
	if a.AppliedAt.IsZero() {
		a.AppliedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	return nil
}
