package service

import (
	"context"
	"fmt"
	"log"

	"anoa.com/placementportal/internal/access"
	"anoa.com/placementportal/internal/entity"
	"anoa.com/placementportal/internal/modules/admin/dto"
	notifService "anoa.com/placementportal/internal/modules/notification/service"
	studentRepo "anoa.com/placementportal/internal/modules/student/repository"
	userRepo "anoa.com/placementportal/internal/modules/user/repository"
	"anoa.com/placementportal/pkg/apperror"
	"anoa.com/placementportal/pkg/database"
	"anoa.com/placementportal/pkg/storage"
	"github.com/google/uuid"
)

var adminPolicy = access.Allow(entity.RoleAdmin)

type AdminService interface {
	ApproveCompany(ctx context.Context, actor access.Actor, userID uuid.UUID) (*dto.AdminUserResponse, error)
	// RejectCompany returns a company to the unapproved state. The account is kept.
	RejectCompany(ctx context.Context, actor access.Actor, userID uuid.UUID) (*dto.AdminUserResponse, error)
	GetAllUsers(ctx context.Context, actor access.Actor) ([]dto.AdminUserResponse, error)
	// DeleteUser removes an identity with its profile and notifications. Jobs and
	// applications referencing the profile are kept.
	DeleteUser(ctx context.Context, actor access.Actor, userID uuid.UUID) error
}

type adminService struct {
	userRepo      userRepo.UserRepository
	studentRepo   studentRepo.StudentRepository
	storage       storage.FileStorage
	notifications notifService.NotificationService
}

// NewAdminService builds the administration service. fileStorage and
// notifications may be nil.
func NewAdminService(
	userRepo userRepo.UserRepository,
	studentRepo studentRepo.StudentRepository,
	fileStorage storage.FileStorage,
	notifications notifService.NotificationService,
) AdminService {
	return &adminService{
		userRepo:      userRepo,
		studentRepo:   studentRepo,
		storage:       fileStorage,
		notifications: notifications,
	}
}

func (s *adminService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *adminService) setApproval(ctx context.Context, actor access.Actor, userID uuid.UUID, approved bool) (*dto.AdminUserResponse, error) {
	if err := adminPolicy.Check(actor); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.Role.RequiresApproval() {
		return nil, apperror.Validation(fmt.Sprintf("%s accounts do not require approval", user.Role))
	}

	if err := s.userRepo.SetApproved(ctx, user.ID, approved); err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update approval: %w", err)
	}

	changed := user.Approved != approved
	user.Approved = approved

	if changed && s.notifications != nil {
		message := "Your company account has been approved"
		if !approved {
			message = "Your company account approval has been revoked"
		}
		if err := s.notifications.CreateNotification(ctx, &entity.Notification{
			UserID:  user.ID,
			ActorID: actor.UserID,
			Type:    entity.NotificationAccountApproval,
			Message: message,
		}); err != nil {
			log.Printf("Failed to notify user %s about approval change: %v", user.ID, err)
		}
	}

	res := dto.NewAdminUserResponse(user)
	return &res, nil
}

func (s *adminService) ApproveCompany(ctx context.Context, actor access.Actor, userID uuid.UUID) (*dto.AdminUserResponse, error) {
	return s.setApproval(ctx, actor, userID, true)
}

func (s *adminService) RejectCompany(ctx context.Context, actor access.Actor, userID uuid.UUID) (*dto.AdminUserResponse, error) {
	return s.setApproval(ctx, actor, userID, false)
}

func (s *adminService) GetAllUsers(ctx context.Context, actor access.Actor) ([]dto.AdminUserResponse, error) {
	if err := adminPolicy.Check(actor); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		res = append(res, dto.NewAdminUserResponse(user))
	}
	return res, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actor access.Actor, userID uuid.UUID) error {
	if err := adminPolicy.Check(actor); err != nil {
		return err
	}

	if actor.UserID == userID {
		return apperror.Validation("administrators cannot delete their own account")
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	var resume string
	if user.Role == entity.RoleStudent {
		if profile, err := s.studentRepo.FindByUserID(ctx, user.ID); err == nil && profile.Resume != nil {
			resume = *profile.Resume
		}
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if resume != "" && s.storage != nil {
		if err := s.storage.Delete(ctx, resume); err != nil {
			log.Printf("Failed to delete resume of removed user %s: %v", user.ID, err)
		}
	}

	return nil
}
