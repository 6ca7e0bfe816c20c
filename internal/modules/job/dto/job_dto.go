package dto

import (
	"time"

	"anoa.com/placementportal/internal/entity"
	"github.com/google/uuid"
)

type SalaryInput struct {
	Min      float64 `json:"min" binding:"gte=0"`
	Max      float64 `json:"max" binding:"gte=0"`
	Currency string  `json:"currency"`
}

type EligibilityInput struct {
	MinCGPA         float64  `json:"minCGPA" binding:"gte=0,lte=10"`
	GraduationYears []int    `json:"graduationYears"`
	Departments     []string `json:"departments"`
}

type CreateJobInput struct {
	Title        string           `json:"title" binding:"required"`
	Description  string           `json:"description" binding:"required"`
	Requirements []string         `json:"requirements"`
	Location     string           `json:"location" binding:"required"`
	JobType      entity.JobType   `json:"jobType" binding:"required,oneof=Full-time Part-time Internship"`
	Salary       SalaryInput      `json:"salary"`
	Skills       []string         `json:"skills"`
	Eligibility  EligibilityInput `json:"eligibility"`
	// Deadline accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
	Deadline string `json:"deadline" binding:"required"`
}

// UpdateJobInput is a partial update: nil fields are left unchanged.
type UpdateJobInput struct {
	Title        *string           `json:"title" binding:"omitnil,min=1"`
	Description  *string           `json:"description" binding:"omitnil,min=1"`
	Requirements *[]string         `json:"requirements"`
	Location     *string           `json:"location" binding:"omitnil,min=1"`
	JobType      *entity.JobType   `json:"jobType" binding:"omitnil,oneof=Full-time Part-time Internship"`
	Salary       *SalaryInput      `json:"salary"`
	Skills       *[]string         `json:"skills"`
	Eligibility  *EligibilityInput `json:"eligibility"`
	Deadline     *string           `json:"deadline" binding:"omitnil,min=1"`
	IsActive     *bool             `json:"isActive"`
}

type JobQuery struct {
	Search     string `form:"search"`
	JobType    string `form:"jobType" binding:"omitempty,oneof=Full-time Part-time Internship"`
	Department string `form:"department"`
}

// CompanySummary is the company as shown next to a job. Website and
// description are only filled on the detail view.
type CompanySummary struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	CompanyName string    `json:"companyName"`
	Location    string    `json:"location"`
	Industry    string    `json:"industry"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty"`
}

type JobResponse struct {
	ID           uuid.UUID                 `json:"id"`
	CompanyID    uuid.UUID                 `json:"companyId"`
	Company      *CompanySummary           `json:"company"`
	Title        string                    `json:"title"`
	Description  string                    `json:"description"`
	Requirements []string                  `json:"requirements"`
	Location     string                    `json:"location"`
	JobType      entity.JobType            `json:"jobType"`
	Salary       entity.Salary             `json:"salary"`
	Skills       []string                  `json:"skills"`
	Eligibility  entity.Eligibility        `json:"eligibility"`
	Deadline     time.Time                 `json:"deadline"`
	IsActive     bool                      `json:"isActive"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
	Eligible     *entity.EligibilityReport `json:"eligibilityCheck,omitempty"`
}

// NewJobResponse renders job; detail adds the company's website and description.
// A company whose profile no longer exists renders as null.
func NewJobResponse(job *entity.Job, detail bool) JobResponse {
	res := JobResponse{
		ID:           job.ID,
		CompanyID:    job.CompanyID,
		Title:        job.Title,
		Description:  job.Description,
		Requirements: orEmpty(job.Requirements),
		Location:     job.Location,
		JobType:      job.JobType,
		Salary:       job.Salary,
		Skills:       orEmpty(job.Skills),
		Eligibility:  job.Eligibility,
		Deadline:     job.Deadline,
		IsActive:     job.IsActive,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}

	if job.Company != nil {
		res.Company = &CompanySummary{
			ID:          job.Company.ID,
			UserID:      job.Company.UserID,
			CompanyName: job.Company.CompanyName,
			Location:    job.Company.Location,
			Industry:    job.Company.Industry,
		}
		if detail {
			res.Company.Website = job.Company.Website
			res.Company.Description = job.Company.Description
		}
	}

	return res
}

func NewJobResponses(jobs []*entity.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, NewJobResponse(job, false))
	}
	return out
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

type JobMessageResponse struct {
	Message string       `json:"message"`
	Job     *JobResponse `json:"job"`
}
