package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"anoa.com/placementportal/internal/access"
	"anoa.com/placementportal/internal/entity"
	"anoa.com/placementportal/internal/modules/application/dto"
	appRepo "anoa.com/placementportal/internal/modules/application/repository"
	jobRepo "anoa.com/placementportal/internal/modules/job/repository"
	notifService "anoa.com/placementportal/internal/modules/notification/service"
	"anoa.com/placementportal/pkg/apperror"
	"anoa.com/placementportal/pkg/database"
	"github.com/google/uuid"
)

var (
	jobReviewPolicy = access.Allow(entity.RoleCompany, entity.RoleAdmin)
	adminPolicy     = access.Allow(entity.RoleAdmin)
)

type ApplicationService interface {
	// Apply submits the calling student's application to an active job.
	Apply(ctx context.Context, actor access.Actor, input dto.ApplyInput) (*dto.ApplicationResponse, error)
	ListByStudent(ctx context.Context, actor access.Actor) ([]dto.ApplicationResponse, error)
	ListByJob(ctx context.Context, actor access.Actor, jobID uuid.UUID) ([]dto.ApplicationResponse, error)
	ListAll(ctx context.Context, actor access.Actor) ([]dto.ApplicationResponse, error)
	// SetStatus moves an application along the status graph. Admins may set any status.
	SetStatus(ctx context.Context, actor access.Actor, id uuid.UUID, status entity.ApplicationStatus) (*dto.ApplicationResponse, error)
}

type applicationService struct {
	repo          appRepo.ApplicationRepository
	jobRepo       jobRepo.JobRepository
	gate          *access.Gate
	notifications notifService.NotificationService
	now           func() time.Time
}

// NewApplicationService builds the workflow engine. notifications may be nil.
func NewApplicationService(
	repo appRepo.ApplicationRepository,
	jobRepo jobRepo.JobRepository,
	gate *access.Gate,
	notifications notifService.NotificationService,
) ApplicationService {
	return &applicationService{
		repo:          repo,
		jobRepo:       jobRepo,
		gate:          gate,
		notifications: notifications,
		now:           time.Now,
	}
}

func (s *applicationService) Apply(ctx context.Context, actor access.Actor, input dto.ApplyInput) (*dto.ApplicationResponse, error) {
	student, err := s.gate.Student(ctx, actor)
	if err != nil {
		return nil, err
	}

	jobID, err := uuid.Parse(input.JobID)
	if err != nil {
		return nil, apperror.Validation("jobId must be a valid id")
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("job not found or inactive: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	if !job.IsActive {
		return nil, fmt.Errorf("job not found or inactive: %w", apperror.ErrNotFound)
	}

	now := s.now()
	application := &entity.Application{
		JobID:       job.ID,
		StudentID:   student.ID,
		CoverLetter: input.CoverLetter,
		Status:      entity.StatusPending,
		AppliedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, application); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, apperror.New(http.StatusConflict, "Already applied to this job", apperror.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	application.Job = job
	application.Student = student

	if job.Company != nil {
		s.notify(ctx, &entity.Notification{
			UserID:        job.Company.UserID,
			ActorID:       actor.UserID,
			ApplicationID: &application.ID,
			JobID:         &job.ID,
			Type:          entity.NotificationApplicationReceived,
			Message:       fmt.Sprintf("%s applied for %s", student.FullName, job.Title),
		})
	}

	res := dto.NewApplicationResponse(application)
	report := job.CheckEligibility(student)
	res.Eligibility = &report
	return &res, nil
}

func (s *applicationService) ListByStudent(ctx context.Context, actor access.Actor) ([]dto.ApplicationResponse, error) {
	student, err := s.gate.Student(ctx, actor)
	if err != nil {
		return nil, err
	}

	applications, err := s.repo.FindByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewApplicationResponses(applications), nil
}

func (s *applicationService) ListByJob(ctx context.Context, actor access.Actor, jobID uuid.UUID) ([]dto.ApplicationResponse, error) {
	if err := jobReviewPolicy.Check(actor); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("job not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if err := s.gate.OwnsJob(ctx, actor, job); err != nil {
		return nil, err
	}

	applications, err := s.repo.FindByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewApplicationResponses(applications), nil
}

func (s *applicationService) ListAll(ctx context.Context, actor access.Actor) ([]dto.ApplicationResponse, error) {
	if err := adminPolicy.Check(actor); err != nil {
		return nil, err
	}

	applications, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewApplicationResponses(applications), nil
}

func (s *applicationService) SetStatus(ctx context.Context, actor access.Actor, id uuid.UUID, status entity.ApplicationStatus) (*dto.ApplicationResponse, error) {
	if err := jobReviewPolicy.Check(actor); err != nil {
		return nil, err
	}

	if !status.Valid() {
		return nil, apperror.Validation("status must be one of [pending shortlisted rejected accepted]")
	}

	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("application not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if !actor.IsAdmin() {
		// an application whose job is gone has no owner left to review it
		if application.Job == nil {
			return nil, fmt.Errorf("application not found: %w", apperror.ErrNotFound)
		}
		if err := s.gate.OwnsJob(ctx, actor, application.Job); err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				return nil, fmt.Errorf("application not found: %w", apperror.ErrNotFound)
			}
			return nil, err
		}
		if !application.Status.CanTransitionTo(status) {
			return nil, apperror.New(
				http.StatusConflict,
				fmt.Sprintf("cannot change application status from %s to %s", application.Status, status),
				apperror.ErrInvalidTransition,
			)
		}
	}

	previous := application.Status
	var expected *entity.ApplicationStatus
	if !actor.IsAdmin() {
		expected = &previous
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, application.ID, expected, status, now); err != nil {
		if errors.Is(err, appRepo.ErrStatusChanged) {
			return nil, apperror.New(
				http.StatusConflict,
				fmt.Sprintf("application status changed from %s while updating, retry", previous),
				apperror.ErrInvalidTransition,
			)
		}
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("application not found: %w", apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	application.Status = status
	application.UpdatedAt = now

	if previous != status && application.Student != nil {
		title := "a job"
		if application.Job != nil {
			title = application.Job.Title
		}
		s.notify(ctx, &entity.Notification{
			UserID:        application.Student.UserID,
			ActorID:       actor.UserID,
			ApplicationID: &application.ID,
			JobID:         &application.JobID,
			Type:          entity.NotificationApplicationStatus,
			Message:       fmt.Sprintf("Your application for %s is now %s", title, status),
		})
	}

	res := dto.NewApplicationResponse(application)
	return &res, nil
}

func (s *applicationService) notify(ctx context.Context, notification *entity.Notification) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.CreateNotification(ctx, notification); err != nil {
		log.Printf("Failed to create %s notification for user %s: %v", notification.Type, notification.UserID, err)
	}
}
