package repository

import (
	"context"
	"errors"
	"time"

	"anoa.com/placementportal/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrStatusChanged = errors.New("application status changed")

type ApplicationRepository interface {
	// Create inserts a pending application. A second application for the same
	// (job, student) pair fails on the unique index.
	Create(ctx context.Context, application *entity.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Application, error)
	FindByJob(ctx context.Context, jobID uuid.UUID) ([]*entity.Application, error)
	FindAll(ctx context.Context) ([]*entity.Application, error)
	// UpdateStatus writes the new status. With a non-nil from the write only
	// lands while the stored status still equals *from, otherwise
	// ErrStatusChanged is returned.
	UpdateStatus(ctx context.Context, id uuid.UUID, from *entity.ApplicationStatus, to entity.ApplicationStatus, updatedAt time.Time) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.ApplicationStatus) (int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *entity.Application) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(application).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error) {
	var application entity.Application
	if err := r.db.WithContext(ctx).
		Preload("Job.Company").
		Preload("Student").
		Where("id = ?", id).
		First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Application, error) {
	var applications []*entity.Application
	if err := r.db.WithContext(ctx).
		Preload("Job.Company").
		Where("student_id = ?", studentID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *applicationRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]*entity.Application, error) {
	var applications []*entity.Application
	if err := r.db.WithContext(ctx).
		Preload("Student.User").
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *applicationRepository) FindAll(ctx context.Context) ([]*entity.Application, error) {
	var applications []*entity.Application
	if err := r.db.WithContext(ctx).
		Preload("Job.Company").
		Preload("Student").
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from *entity.ApplicationStatus, to entity.ApplicationStatus, updatedAt time.Time) error {
	query := r.db.WithContext(ctx).
		Model(&entity.Application{}).
		Where("id = ?", id)
	if from != nil {
		query = query.Where("status = ?", *from)
	}

	result := query.Updates(map[string]any{
		"status":     to,
		"updated_at": updatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if from != nil {
			return ErrStatusChanged
		}
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *applicationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Application{}).Count(&count).Error
	return count, err
}

func (r *applicationRepository) CountByStatus(ctx context.Context, status entity.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Application{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
