package repository

import (
	"context"

	"anoa.com/placementportal/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.StudentProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.StudentProfile, error)
	FindAll(ctx context.Context) ([]*entity.StudentProfile, error)
	Update(ctx context.Context, profile *entity.StudentProfile) error
	Count(ctx context.Context) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.StudentProfile, error) {
	var profile entity.StudentProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.StudentProfile, error) {
	var profile entity.StudentProfile
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *studentRepository) FindAll(ctx context.Context) ([]*entity.StudentProfile, error) {
	var profiles []*entity.StudentProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("full_name ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *studentRepository) Update(ctx context.Context, profile *entity.StudentProfile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error
}

func (r *studentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.StudentProfile{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
