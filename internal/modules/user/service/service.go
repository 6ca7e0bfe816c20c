package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"anoa.com/placementportal/internal/access"
	"anoa.com/placementportal/internal/entity"
	search "anoa.com/placementportal/internal/modules/search/service"
	"anoa.com/placementportal/internal/modules/user/dto"
	"anoa.com/placementportal/internal/modules/user/repository"
	"anoa.com/placementportal/pkg/apperror"
	"anoa.com/placementportal/pkg/database"
	"anoa.com/placementportal/pkg/ratelimiter"
	"anoa.com/placementportal/pkg/token"
	"anoa.com/placementportal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	actionLogin    = "login"
	actionRegister = "register"
)

var (
	errInvalidCredentials = apperror.New(http.StatusUnauthorized, "Invalid credentials", apperror.ErrInvalidCredentials)
	errPendingApproval    = apperror.New(http.StatusForbidden, "Account pending approval", apperror.ErrPendingApproval)
)

type AuthService interface {
	// Register creates an identity and its role profile. clientKey identifies the
	// caller for rate limiting.
	Register(ctx context.Context, input dto.RegisterInput, clientKey string) (*dto.RegisterResponse, error)
	// Login verifies credentials. Attempts are limited per client and email pair.
	Login(ctx context.Context, input dto.LoginInput, clientKey string) (*dto.AuthResponse, error)
}

type Options struct {
	AllowAdminRegistration bool
}

type authService struct {
	repo      repository.UserRepository
	companies access.CompanyFinder
	tokens    *token.Manager
	limiter   *ratelimiter.Limiter
	meili     search.MeiliSearchService
	opts      Options
}

// NewAuthService wires the identity store to token issuance. limiter and meili may be nil.
func NewAuthService(
	repo repository.UserRepository,
	companies access.CompanyFinder,
	tokens *token.Manager,
	limiter *ratelimiter.Limiter,
	meili search.MeiliSearchService,
	opts Options,
) AuthService {
	return &authService{
		repo:      repo,
		companies: companies,
		tokens:    tokens,
		limiter:   limiter,
		meili:     meili,
		opts:      opts,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput, clientKey string) (*dto.RegisterResponse, error) {
	if err := s.limiter.Allow(ctx, actionRegister, clientKey); err != nil {
		return nil, err
	}

	if !input.Role.Valid() {
		return nil, apperror.Validation("role must be one of [student company admin]")
	}
	if input.Role == entity.RoleAdmin && !s.opts.AllowAdminRegistration {
		return nil, fmt.Errorf("admin registration is disabled: %w", apperror.ErrForbidden)
	}

	profile, err := decodeProfile(input.Role, input.ProfileData)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:        entity.NormalizeEmail(input.Email),
		PasswordHash: string(hashed),
		Role:         input.Role,
		Approved:     !input.Role.RequiresApproval(),
	}

	if err := s.repo.Create(ctx, user, profile); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, apperror.New(http.StatusConflict, "User already exists", apperror.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	res := &dto.RegisterResponse{
		Message: "User registered successfully",
		User:    dto.NewUserResponse(user),
	}

	if !user.Approved {
		res.Message = "Registration successful, account pending admin approval"
		return res, nil
	}

	res.Token, _, err = s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return res, nil
}

// decodeProfile turns the role-specific profileData payload into the profile to
// store alongside the identity. Admins carry no profile.
func decodeProfile(role entity.Role, raw json.RawMessage) (entity.Owned, error) {
	if role == entity.RoleAdmin {
		return nil, nil
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, apperror.Validation(fmt.Sprintf("profileData is required for %s accounts", role))
	}

	switch role {
	case entity.RoleStudent:
		var in dto.StudentProfileInput
		if err := decodeAndValidate(raw, &in); err != nil {
			return nil, err
		}
		return &entity.StudentProfile{
			FullName:       in.FullName,
			Phone:          in.Phone,
			RollNumber:     in.RollNumber,
			Department:     in.Department,
			GraduationYear: in.GraduationYear,
			CGPA:           *in.CGPA,
			Skills:         nonNil(in.Skills),
			Projects:       in.Projects,
			Education:      in.Education,
		}, nil
	case entity.RoleCompany:
		var in dto.CompanyProfileInput
		if err := decodeAndValidate(raw, &in); err != nil {
			return nil, err
		}
		return &entity.CompanyProfile{
			CompanyName:   in.CompanyName,
			Industry:      in.Industry,
			Website:       in.Website,
			Description:   in.Description,
			Location:      in.Location,
			ContactPerson: in.ContactPerson,
			ContactEmail:  in.ContactEmail,
			ContactPhone:  in.ContactPhone,
		}, nil
	}

	return nil, apperror.Validation("unsupported role")
}

func decodeAndValidate(raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return apperror.Validation("profileData is malformed")
	}
	if err := validator.Struct(out); err != nil {
		return apperror.Validation(validator.FormatValidationError(err))
	}
	return nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput, clientKey string) (*dto.AuthResponse, error) {
	email := entity.NormalizeEmail(input.Email)
	subject := clientKey + ":" + email

	if err := s.limiter.Allow(ctx, actionLogin, subject); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if !user.Approved {
		return nil, errPendingApproval
	}

	if err := s.limiter.Reset(ctx, actionLogin, subject); err != nil {
		log.Printf("Failed to reset login rate limit for %s: %v", subject, err)
	}

	return s.buildAuthResponse(ctx, user)
}

func (s *authService) buildAuthResponse(ctx context.Context, user *entity.User) (*dto.AuthResponse, error) {
	accessToken, _, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.AuthResponse{
		Message:     "Login successful",
		Token:       accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(token.TTL.Seconds()),
		User:        dto.NewUserResponse(user),
		SearchToken: s.searchToken(ctx, user),
	}, nil
}

// searchToken is best effort: login never fails because search is unavailable.
func (s *authService) searchToken(ctx context.Context, user *entity.User) string {
	if s.meili == nil {
		return ""
	}

	var companyID *uuid.UUID
	if user.Role == entity.RoleCompany && s.companies != nil {
		if company, err := s.companies.FindByUserID(ctx, user.ID); err == nil {
			companyID = &company.ID
		}
	}

	st, err := s.meili.GenerateSearchToken(user.Role, companyID)
	if err != nil {
		log.Printf("Failed to generate search token for user %s (role %s): %v", user.Email, user.Role, err)
		return ""
	}
	return st
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
