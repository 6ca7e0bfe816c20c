package repository

import (
	"context"

	"anoa.com/placementportal/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompanyRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.CompanyProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CompanyProfile, error)
	FindAll(ctx context.Context) ([]*entity.CompanyProfile, error)
	Update(ctx context.Context, profile *entity.CompanyProfile) error
	Count(ctx context.Context) (int64, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.CompanyProfile, error) {
	var profile entity.CompanyProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CompanyProfile, error) {
	var profile entity.CompanyProfile
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *companyRepository) FindAll(ctx context.Context) ([]*entity.CompanyProfile, error) {
	var profiles []*entity.CompanyProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("company_name ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *companyRepository) Update(ctx context.Context, profile *entity.CompanyProfile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error
}

func (r *companyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.CompanyProfile{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
