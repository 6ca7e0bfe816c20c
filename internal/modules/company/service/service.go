package service

import (
	"context"
	"fmt"

	"anoa.com/placementportal/internal/access"
	"anoa.com/placementportal/internal/entity"
	"anoa.com/placementportal/internal/modules/company/dto"
	companyRepo "anoa.com/placementportal/internal/modules/company/repository"
	userDto "anoa.com/placementportal/internal/modules/user/dto"
	userRepo "anoa.com/placementportal/internal/modules/user/repository"
	"anoa.com/placementportal/pkg/apperror"
	"anoa.com/placementportal/pkg/database"
)

var listPolicy = access.Allow(entity.RoleAdmin, entity.RoleStudent)

type CompanyService interface {
	GetProfile(ctx context.Context, actor access.Actor) (*dto.CompanyProfileResponse, error)
	UpdateProfile(ctx context.Context, actor access.Actor, input dto.UpdateCompanyProfileInput) (*entity.CompanyProfile, error)
	ListAll(ctx context.Context, actor access.Actor) ([]*entity.CompanyProfile, error)
}

type companyService struct {
	repo     companyRepo.CompanyRepository
	userRepo userRepo.UserRepository
	gate     *access.Gate
}

func NewCompanyService(repo companyRepo.CompanyRepository, userRepo userRepo.UserRepository, gate *access.Gate) CompanyService {
	return &companyService{
		repo:     repo,
		userRepo: userRepo,
		gate:     gate,
	}
}

func (s *companyService) GetProfile(ctx context.Context, actor access.Actor) (*dto.CompanyProfileResponse, error) {
	profile, err := s.gate.Company(ctx, actor)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	return &dto.CompanyProfileResponse{
		User:    userDto.NewUserResponse(user),
		Profile: profile,
	}, nil
}

func (s *companyService) UpdateProfile(ctx context.Context, actor access.Actor, input dto.UpdateCompanyProfileInput) (*entity.CompanyProfile, error) {
	profile, err := s.gate.Company(ctx, actor)
	if err != nil {
		return nil, err
	}

	set(&profile.CompanyName, input.CompanyName)
	set(&profile.Industry, input.Industry)
	set(&profile.Website, input.Website)
	set(&profile.Description, input.Description)
	set(&profile.Location, input.Location)
	set(&profile.ContactPerson, input.ContactPerson)
	set(&profile.ContactEmail, input.ContactEmail)
	set(&profile.ContactPhone, input.ContactPhone)

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update company profile: %w", err)
	}

	return profile, nil
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func (s *companyService) ListAll(ctx context.Context, actor access.Actor) ([]*entity.CompanyProfile, error) {
	if err := listPolicy.Check(actor); err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx)
}
