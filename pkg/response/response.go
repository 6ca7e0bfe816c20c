package response

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"anoa.com/placementportal/internal/access"
	"anoa.com/placementportal/internal/entity"
	"anoa.com/placementportal/pkg/apperror"
	"anoa.com/placementportal/pkg/ratelimiter"
	"anoa.com/placementportal/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the auth middleware.
const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr := c.GetString(UserIDKey)
	if userIDStr == "" {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// GetActor returns the authenticated caller with its role.
func GetActor(c *gin.Context) (access.Actor, error) {
	userID, err := GetUserID(c)
	if err != nil {
		return access.Actor{}, err
	}

	role := entity.Role(c.GetString(RoleKey))
	if !role.Valid() {
		return access.Actor{}, apperror.ErrUnauthorized
	}

	return access.Actor{UserID: userID, Role: role}, nil
}

// ParamUUID parses a path parameter as an id.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Validation(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)
	kind := apperror.KindOf(err)

	var rateLimitErr *ratelimiter.RateLimitError
	if errors.As(err, &rateLimitErr) {
		c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
	}

	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error] %s %s: %v", c.Request.Method, c.FullPath(), err)
		message = "internal server error"
	}

	c.AbortWithStatusJSON(code, gin.H{"error": message, "code": kind})
}

// BindError reports a request that failed gin binding.
func BindError(c *gin.Context, err error) {
	ResponseError(c, apperror.Validation(validator.FormatValidationError(err)))
}
