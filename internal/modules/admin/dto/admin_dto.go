package dto

import (
	"time"

	"anoa.com/placementportal/internal/entity"
	userDto "anoa.com/placementportal/internal/modules/user/dto"
)

// AdminUserResponse is an identity as listed to administrators.
type AdminUserResponse struct {
	userDto.UserResponse
	CreatedAt time.Time `json:"createdAt"`
}

func NewAdminUserResponse(user *entity.User) AdminUserResponse {
	return AdminUserResponse{
		UserResponse: userDto.NewUserResponse(user),
		CreatedAt:    user.CreatedAt,
	}
}

type ApprovalResponse struct {
	Message string            `json:"message"`
	User    AdminUserResponse `json:"user"`
}
