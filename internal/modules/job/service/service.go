package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"anoa.com/placementportal/internal/access"
	"anoa.com/placementportal/internal/entity"
	"anoa.com/placementportal/internal/modules/job/dto"
	jobRepo "anoa.com/placementportal/internal/modules/job/repository"
	search "anoa.com/placementportal/internal/modules/search/service"
	"anoa.com/placementportal/pkg/apperror"
	"anoa.com/placementportal/pkg/database"
	"github.com/google/uuid"
)

var readPolicy = access.Allow(entity.RoleStudent, entity.RoleCompany, entity.RoleAdmin)

type JobService interface {
	CreateJob(ctx context.Context, actor access.Actor, input dto.CreateJobInput) (*dto.JobResponse, error)
	// ListJobs returns the active catalog, newest first.
	ListJobs(ctx context.Context, actor access.Actor, query dto.JobQuery) ([]dto.JobResponse, error)
	// ListCompanyJobs returns every posting of the calling company, inactive included.
	ListCompanyJobs(ctx context.Context, actor access.Actor) ([]dto.JobResponse, error)
	GetJob(ctx context.Context, actor access.Actor, id uuid.UUID) (*dto.JobResponse, error)
	UpdateJob(ctx context.Context, actor access.Actor, id uuid.UUID, input dto.UpdateJobInput) (*dto.JobResponse, error)
	DeleteJob(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

type jobService struct {
	repo  jobRepo.JobRepository
	gate  *access.Gate
	meili search.MeiliSearchService
}

// NewJobService builds the catalog service. meili may be nil.
func NewJobService(repo jobRepo.JobRepository, gate *access.Gate, meili search.MeiliSearchService) JobService {
	return &jobService{
		repo:  repo,
		gate:  gate,
		meili: meili,
	}
}

func parseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Time{}, apperror.Validation("deadline must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
}

func (s *jobService) CreateJob(ctx context.Context, actor access.Actor, input dto.CreateJobInput) (*dto.JobResponse, error) {
	company, err := s.gate.Company(ctx, actor)
	if err != nil {
		return nil, err
	}

	if !input.JobType.Valid() {
		return nil, apperror.Validation("jobType must be one of [Full-time Part-time Internship]")
	}

	deadline, err := parseDeadline(input.Deadline)
	if err != nil {
		return nil, err
	}

	job := &entity.Job{
		CompanyID:    company.ID,
		Title:        input.Title,
		Description:  input.Description,
		Requirements: orEmpty(input.Requirements),
		Location:     input.Location,
		JobType:      input.JobType,
		Salary: entity.Salary{
			Min:      input.Salary.Min,
			Max:      input.Salary.Max,
			Currency: input.Salary.Currency,
		},
		Skills:      orEmpty(input.Skills),
		Eligibility: toEligibility(input.Eligibility),
		Deadline:    deadline,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	job.Company = company

	s.index(job)

	res := dto.NewJobResponse(job, true)
	return &res, nil
}

func toEligibility(in dto.EligibilityInput) entity.Eligibility {
	return entity.Eligibility{
		MinCGPA:         in.MinCGPA,
		GraduationYears: orEmpty(in.GraduationYears),
		Departments:     orEmpty(in.Departments),
	}
}

func (s *jobService) ListJobs(ctx context.Context, actor access.Actor, query dto.JobQuery) ([]dto.JobResponse, error) {
	if err := readPolicy.Check(actor); err != nil {
		return nil, err
	}

	jobs, err := s.repo.FindActive(ctx, jobRepo.JobFilter{
		Search:  query.Search,
		JobType: entity.JobType(query.JobType),
	})
	if err != nil {
		return nil, err
	}

	if department := strings.TrimSpace(query.Department); department != "" {
		filtered := jobs[:0]
		for _, job := range jobs {
			if job.AcceptsDepartment(department) {
				filtered = append(filtered, job)
			}
		}
		jobs = filtered
	}

	return dto.NewJobResponses(jobs), nil
}

func (s *jobService) ListCompanyJobs(ctx context.Context, actor access.Actor) ([]dto.JobResponse, error) {
	company, err := s.gate.Company(ctx, actor)
	if err != nil {
		return nil, err
	}

	jobs, err := s.repo.FindByCompany(ctx, company.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewJobResponses(jobs), nil
}

// findJob loads a job, reporting a missing row as ErrNotFound.
func (s *jobService) findJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("job not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return job, nil
}

func (s *jobService) GetJob(ctx context.Context, actor access.Actor, id uuid.UUID) (*dto.JobResponse, error) {
	if err := readPolicy.Check(actor); err != nil {
		return nil, err
	}

	job, err := s.findJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if !job.IsActive && !s.gate.IsJobOwner(ctx, actor, job) {
		return nil, fmt.Errorf("job not found: %w", apperror.ErrNotFound)
	}

	res := dto.NewJobResponse(job, true)

	if actor.Role == entity.RoleStudent {
		student, err := s.gate.Student(ctx, actor)
		if err != nil && apperror.KindOf(err) != apperror.KindProfileRequired {
			return nil, err
		}
		report := job.CheckEligibility(student)
		res.Eligible = &report
	}

	return &res, nil
}

// ownedJob resolves a job the calling company may modify. Jobs of other
// companies are reported exactly like missing ones.
func (s *jobService) ownedJob(ctx context.Context, actor access.Actor, id uuid.UUID) (*entity.Job, error) {
	company, err := s.gate.Company(ctx, actor)
	if err != nil {
		return nil, err
	}

	job, err := s.findJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if job.CompanyID != company.ID {
		return nil, fmt.Errorf("job not found: %w", apperror.ErrNotFound)
	}

	return job, nil
}

func (s *jobService) UpdateJob(ctx context.Context, actor access.Actor, id uuid.UUID, input dto.UpdateJobInput) (*dto.JobResponse, error) {
	job, err := s.ownedJob(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Requirements != nil {
		job.Requirements = orEmpty(*input.Requirements)
	}
	if input.Location != nil {
		job.Location = *input.Location
	}
	if input.JobType != nil {
		if !input.JobType.Valid() {
			return nil, apperror.Validation("jobType must be one of [Full-time Part-time Internship]")
		}
		job.JobType = *input.JobType
	}
	if input.Salary != nil {
		job.Salary = entity.Salary{Min: input.Salary.Min, Max: input.Salary.Max, Currency: input.Salary.Currency}
		if job.Salary.Currency == "" {
			job.Salary.Currency = entity.DefaultCurrency
		}
	}
	if input.Skills != nil {
		job.Skills = orEmpty(*input.Skills)
	}
	if input.Eligibility != nil {
		job.Eligibility = toEligibility(*input.Eligibility)
	}
	if input.Deadline != nil {
		deadline, err := parseDeadline(*input.Deadline)
		if err != nil {
			return nil, err
		}
		job.Deadline = deadline
	}
	if input.IsActive != nil {
		job.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	s.index(job)

	res := dto.NewJobResponse(job, true)
	return &res, nil
}

func (s *jobService) DeleteJob(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	job, err := s.ownedJob(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, job.ID); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("job not found: %w", apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}

	if s.meili != nil {
		if err := s.meili.DeleteJob(job.ID); err != nil {
			log.Printf("Failed to remove job %s from search index: %v", job.ID, err)
		}
	}

	return nil
}

func (s *jobService) index(job *entity.Job) {
	if s.meili == nil {
		return
	}
	if err := s.meili.IndexJob(job); err != nil {
		log.Printf("Failed to index job %s: %v", job.ID, err)
	}
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
