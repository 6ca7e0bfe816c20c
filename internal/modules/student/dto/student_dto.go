package dto

import (
	"io"

	"anoa.com/placementportal/internal/entity"
	userDto "anoa.com/placementportal/internal/modules/user/dto"
)

// UpdateStudentProfileInput is a partial update: nil fields are left unchanged.
type UpdateStudentProfileInput struct {
	FullName       *string             `json:"fullName" binding:"omitnil,min=1"`
	Phone          *string             `json:"phone" binding:"omitnil,min=1"`
	RollNumber     *string             `json:"rollNumber" binding:"omitnil,min=1"`
	Department     *string             `json:"department" binding:"omitnil,min=1"`
	GraduationYear *int                `json:"graduationYear" binding:"omitnil,gte=1900,lte=2100"`
	CGPA           *float64            `json:"cgpa" binding:"omitnil,gte=0,lte=10"`
	Skills         *[]string           `json:"skills"`
	Projects       *[]entity.Project   `json:"projects"`
	Education      *[]entity.Education `json:"education"`
}

type ResumeFile struct {
	Reader   io.Reader
	FileName string
	Size     int64
}

type StudentProfileResponse struct {
	User    userDto.UserResponse   `json:"user"`
	Profile *entity.StudentProfile `json:"profile"`
}

type UpdateStudentProfileResponse struct {
	Message string                 `json:"message"`
	Profile *entity.StudentProfile `json:"profile"`
}
