package dto

import (
	"anoa.com/placementportal/internal/entity"
	userDto "anoa.com/placementportal/internal/modules/user/dto"
)

// UpdateCompanyProfileInput is a partial update: nil fields are left unchanged.
type UpdateCompanyProfileInput struct {
	CompanyName   *string `json:"companyName" binding:"omitnil,min=1"`
	Industry      *string `json:"industry" binding:"omitnil,min=1"`
	Website       *string `json:"website" binding:"omitnil,omitempty,url"`
	Description   *string `json:"description" binding:"omitnil,min=1"`
	Location      *string `json:"location" binding:"omitnil,min=1"`
	ContactPerson *string `json:"contactPerson" binding:"omitnil,min=1"`
	ContactEmail  *string `json:"contactEmail" binding:"omitnil,email"`
	ContactPhone  *string `json:"contactPhone" binding:"omitnil,min=1"`
}

type CompanyProfileResponse struct {
	User    userDto.UserResponse   `json:"user"`
	Profile *entity.CompanyProfile `json:"profile"`
}

type UpdateCompanyProfileResponse struct {
	Message string                 `json:"message"`
	Profile *entity.CompanyProfile `json:"profile"`
}
