package dto

import (
	"encoding/json"

	"anoa.com/placementportal/internal/entity"
)

type RegisterInput struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     entity.Role `json:"role" binding:"required,oneof=student company admin"`
	// ProfileData is decoded according to Role; admins have no profile.
	ProfileData json.RawMessage `json:"profileData"`
}

type StudentProfileInput struct {
	FullName       string             `json:"fullName" binding:"required"`
	Phone          string             `json:"phone" binding:"required"`
	RollNumber     string             `json:"rollNumber" binding:"required"`
	Department     string             `json:"department" binding:"required"`
	GraduationYear int                `json:"graduationYear" binding:"required,gte=1900,lte=2100"`
	CGPA           *float64           `json:"cgpa" binding:"required,gte=0,lte=10"`
	Skills         []string           `json:"skills"`
	Projects       []entity.Project   `json:"projects"`
	Education      []entity.Education `json:"education"`
}

type CompanyProfileInput struct {
	CompanyName   string `json:"companyName" binding:"required"`
	Industry      string `json:"industry" binding:"required"`
	Website       string `json:"website" binding:"omitempty,url"`
	Description   string `json:"description" binding:"required"`
	Location      string `json:"location" binding:"required"`
	ContactPerson string `json:"contactPerson" binding:"required"`
	ContactEmail  string `json:"contactEmail" binding:"required,email"`
	ContactPhone  string `json:"contactPhone" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of an identity.
type UserResponse struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Role       entity.Role `json:"role"`
	IsApproved bool        `json:"isApproved"`
}

func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:         user.ID.String(),
		Email:      user.Email,
		Role:       user.Role,
		IsApproved: user.Approved,
	}
}

type RegisterResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    UserResponse `json:"user"`
}

type AuthResponse struct {
	Message     string       `json:"message"`
	Token       string       `json:"token"`
	TokenType   string       `json:"tokenType"`
	ExpiresIn   int64        `json:"expiresIn"`
	User        UserResponse `json:"user"`
	SearchToken string       `json:"searchToken,omitempty"`
}
