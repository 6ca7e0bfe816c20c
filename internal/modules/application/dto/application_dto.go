package dto

import (
	"time"

	"anoa.com/placementportal/internal/entity"
	jobDto "anoa.com/placementportal/internal/modules/job/dto"
	"github.com/google/uuid"
)

type ApplyInput struct {
	JobID       string `json:"jobId" binding:"required,uuid"`
	CoverLetter string `json:"coverLetter" binding:"required"`
}

type UpdateStatusInput struct {
	Status entity.ApplicationStatus `json:"status" binding:"required"`
}

// ApplicationResponse renders an application with whatever related records
// still exist; a deleted job or student profile renders as null.
type ApplicationResponse struct {
	ID          uuid.UUID                 `json:"id"`
	JobID       uuid.UUID                 `json:"jobId"`
	StudentID   uuid.UUID                 `json:"studentId"`
	CoverLetter string                    `json:"coverLetter"`
	Status      entity.ApplicationStatus  `json:"status"`
	AppliedAt   time.Time                 `json:"appliedAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
	Job         *jobDto.JobResponse       `json:"job"`
	Student     *entity.StudentProfile    `json:"student"`
	Eligibility *entity.EligibilityReport `json:"eligibilityCheck,omitempty"`
}

func NewApplicationResponse(application *entity.Application) ApplicationResponse {
	res := ApplicationResponse{
		ID:          application.ID,
		JobID:       application.JobID,
		StudentID:   application.StudentID,
		CoverLetter: application.CoverLetter,
		Status:      application.Status,
		AppliedAt:   application.AppliedAt,
		UpdatedAt:   application.UpdatedAt,
		Student:     application.Student,
	}
	if application.Job != nil {
		job := jobDto.NewJobResponse(application.Job, false)
		res.Job = &job
	}
	return res
}

func NewApplicationResponses(applications []*entity.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		out = append(out, NewApplicationResponse(application))
	}
	return out
}

type ApplicationMessageResponse struct {
	Message     string               `json:"message"`
	Application *ApplicationResponse `json:"application"`
}
