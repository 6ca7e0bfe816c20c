package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/placementportal/internal/entity"
	"anoa.com/placementportal/pkg/apperror"
	"anoa.com/placementportal/pkg/ratelimiter"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestGetActor(t *testing.T) {
	c, _ := newContext()
	_, err := GetActor(c)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	id := uuid.New()
	c.Set(UserIDKey, id.String())
	c.Set(RoleKey, "superuser")
	_, err = GetActor(c)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	c.Set(RoleKey, string(entity.RoleCompany))
	actor, err := GetActor(c)
	require.NoError(t, err)
	assert.Equal(t, id, actor.UserID)
	assert.Equal(t, entity.RoleCompany, actor.Role)
}

func TestParamUUID(t *testing.T) {
	c, _ := newContext()
	id := uuid.New()
	c.Params = gin.Params{{Key: "id", Value: id.String()}, {Key: "bad", Value: "nope"}}

	got, err := ParamUUID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParamUUID(c, "bad")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestResponseError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", apperror.ErrNotFound, http.StatusNotFound, "NotFound", "resource not found"},
		{"validation", apperror.Validation("cgpa must be at most 10"), http.StatusBadRequest, "ValidationError", "cgpa must be at most 10"},
		{"transition", apperror.New(http.StatusConflict, "cannot change", apperror.ErrInvalidTransition), http.StatusConflict, "InvalidTransition", "cannot change"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "ServerFault", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext()
			ResponseError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, `{"error":"`+tt.message+`","code":"`+tt.code+`"}`, w.Body.String())
		})
	}
}

func TestResponseErrorSetsRetryAfter(t *testing.T) {
	c, w := newContext()
	ResponseError(c, &ratelimiter.RateLimitError{Message: "too many attempts", RetryAfter: 42 * time.Second})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "42", w.Header().Get("Retry-After"))
}
