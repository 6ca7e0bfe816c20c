package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"anoa.com/placementportal/internal/access"
	"anoa.com/placementportal/internal/entity"
	"anoa.com/placementportal/internal/modules/student/dto"
	studentRepo "anoa.com/placementportal/internal/modules/student/repository"
	userDto "anoa.com/placementportal/internal/modules/user/dto"
	userRepo "anoa.com/placementportal/internal/modules/user/repository"
	"anoa.com/placementportal/pkg/apperror"
	"anoa.com/placementportal/pkg/database"
	"anoa.com/placementportal/pkg/storage"
)

const (
	resumeFolder  = "resumes"
	MaxResumeSize = 5 << 20
)

var resumeExtensions = map[string]bool{".pdf": true, ".doc": true, ".docx": true}

var listPolicy = access.Allow(entity.RoleAdmin, entity.RoleCompany)

type StudentService interface {
	GetProfile(ctx context.Context, actor access.Actor) (*dto.StudentProfileResponse, error)
	UpdateProfile(ctx context.Context, actor access.Actor, input dto.UpdateStudentProfileInput) (*entity.StudentProfile, error)
	UploadResume(ctx context.Context, actor access.Actor, file dto.ResumeFile) (*entity.StudentProfile, error)
	ListAll(ctx context.Context, actor access.Actor) ([]*entity.StudentProfile, error)
}

type studentService struct {
	repo     studentRepo.StudentRepository
	userRepo userRepo.UserRepository
	gate     *access.Gate
	storage  storage.FileStorage
}

// NewStudentService builds the student profile service. fileStorage may be nil,
// in which case resume uploads are rejected.
func NewStudentService(repo studentRepo.StudentRepository, userRepo userRepo.UserRepository, gate *access.Gate, fileStorage storage.FileStorage) StudentService {
	return &studentService{
		repo:     repo,
		userRepo: userRepo,
		gate:     gate,
		storage:  fileStorage,
	}
}

func (s *studentService) GetProfile(ctx context.Context, actor access.Actor) (*dto.StudentProfileResponse, error) {
	profile, err := s.gate.Student(ctx, actor)
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

	return &dto.StudentProfileResponse{
		User:    userDto.NewUserResponse(user),
		Profile: profile,
	}, nil
}

func (s *studentService) UpdateProfile(ctx context.Context, actor access.Actor, input dto.UpdateStudentProfileInput) (*entity.StudentProfile, error) {
	profile, err := s.gate.Student(ctx, actor)
	if err != nil {
		return nil, err
	}

	applyUpdate(profile, input)

	if err := s.repo.Update(ctx, profile); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, apperror.New(http.StatusConflict, "Roll number already registered", apperror.ErrConflict)
		}
		return nil, fmt.Errorf("failed to update student profile: %w", err)
	}

	return profile, nil
}

func applyUpdate(profile *entity.StudentProfile, input dto.UpdateStudentProfileInput) {
	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.RollNumber != nil {
		profile.RollNumber = *input.RollNumber
	}
	if input.Department != nil {
		profile.Department = *input.Department
	}
	if input.GraduationYear != nil {
		profile.GraduationYear = *input.GraduationYear
	}
	if input.CGPA != nil {
		profile.CGPA = *input.CGPA
	}
	if input.Skills != nil {
		profile.Skills = *input.Skills
	}
	if input.Projects != nil {
		profile.Projects = *input.Projects
	}
	if input.Education != nil {
		profile.Education = *input.Education
	}
}

func (s *studentService) UploadResume(ctx context.Context, actor access.Actor, file dto.ResumeFile) (*entity.StudentProfile, error) {
	profile, err := s.gate.Student(ctx, actor)
	if err != nil {
		return nil, err
	}

	if s.storage == nil {
		return nil, fmt.Errorf("resume uploads are not available: %w", apperror.ErrBadRequest)
	}

	ext := strings.ToLower(filepath.Ext(file.FileName))
	if !resumeExtensions[ext] {
		return nil, apperror.Validation("resume must be a .pdf, .doc or .docx file")
	}
	if file.Size > MaxResumeSize {
		return nil, apperror.Validation("resume must be at most 5MB")
	}

	url, err := s.storage.Upload(ctx, file.Reader, resumeFolder, file.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to upload resume: %w", err)
	}

	previous := profile.Resume
	profile.Resume = &url

	if err := s.repo.Update(ctx, profile); err != nil {
		if delErr := s.storage.Delete(ctx, url); delErr != nil {
			log.Printf("Failed to remove orphaned resume %s: %v", url, delErr)
		}
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}

	if previous != nil && *previous != "" {
		if err := s.storage.Delete(ctx, *previous); err != nil {
			log.Printf("Failed to delete previous resume %s: %v", *previous, err)
		}
	}

	return profile, nil
}

func (s *studentService) ListAll(ctx context.Context, actor access.Actor) ([]*entity.StudentProfile, error) {
	if err := listPolicy.Check(actor); err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx)
}
