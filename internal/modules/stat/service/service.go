package service

import (
	"context"
	"fmt"

	"anoa.com/placementportal/internal/access"
	"anoa.com/placementportal/internal/entity"
	appRepo "anoa.com/placementportal/internal/modules/application/repository"
	companyRepo "anoa.com/placementportal/internal/modules/company/repository"
	jobRepo "anoa.com/placementportal/internal/modules/job/repository"
	"anoa.com/placementportal/internal/modules/stat/dto"
	studentRepo "anoa.com/placementportal/internal/modules/student/repository"
	userRepo "anoa.com/placementportal/internal/modules/user/repository"
)

var statsPolicy = access.Allow(entity.RoleAdmin)

type StatService interface {
	GetStatistics(ctx context.Context, actor access.Actor) (*dto.Statistics, error)
}

type statService struct {
	userRepo        userRepo.UserRepository
	studentRepo     studentRepo.StudentRepository
	companyRepo     companyRepo.CompanyRepository
	jobRepo         jobRepo.JobRepository
	applicationRepo appRepo.ApplicationRepository
}

func NewStatService(
	userRepo userRepo.UserRepository,
	studentRepo studentRepo.StudentRepository,
	companyRepo companyRepo.CompanyRepository,
	jobRepo jobRepo.JobRepository,
	applicationRepo appRepo.ApplicationRepository,
) StatService {
	return &statService{
		userRepo:        userRepo,
		studentRepo:     studentRepo,
		companyRepo:     companyRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
	}
}

func (s *statService) GetStatistics(ctx context.Context, actor access.Actor) (*dto.Statistics, error) {
	if err := statsPolicy.Check(actor); err != nil {
		return nil, err
	}

	var stats dto.Statistics
	byStatus := func(status entity.ApplicationStatus) func(context.Context) (int64, error) {
		return func(ctx context.Context) (int64, error) {
			return s.applicationRepo.CountByStatus(ctx, status)
		}
	}

	counts := []struct {
		name  string
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{"students", &stats.TotalStudents, s.studentRepo.Count},
		{"companies", &stats.TotalCompanies, s.companyRepo.Count},
		{"jobs", &stats.TotalJobs, s.jobRepo.Count},
		{"active jobs", &stats.ActiveJobs, s.jobRepo.CountActive},
		{"applications", &stats.TotalApplications, s.applicationRepo.Count},
		{"pending applications", &stats.PendingApplications, byStatus(entity.StatusPending)},
		{"shortlisted applications", &stats.ShortlistedApplications, byStatus(entity.StatusShortlisted)},
		{"accepted applications", &stats.AcceptedApplications, byStatus(entity.StatusAccepted)},
		{"rejected applications", &stats.RejectedApplications, byStatus(entity.StatusRejected)},
		{"pending companies", &stats.PendingCompanies, s.userRepo.CountPendingCompanies},
	}

	for _, c := range counts {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
		*c.dst = n
	}

	return &stats, nil
}
