package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/placementportal/internal/entity"
	"anoa.com/placementportal/pkg/response"
	"anoa.com/placementportal/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUsers map[uuid.UUID]*entity.User

func (f fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newRouter(users fakeUsers, tokens *token.Manager, roles ...entity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(users, tokens)
	r := gin.New()
	r.GET("/protected", m.RequireAuth(), m.RequireRoles(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString(response.RoleKey)})
	})
	return r
}

func bearer(t *testing.T, tokens *token.Manager, user *entity.User) string {
	t.Helper()
	tok, _, err := tokens.Generate(user.ID, string(user.Role))
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAuthMiddleware(t *testing.T) {
	tokens := token.NewManager("test-secret")
	student := &entity.User{ID: uuid.New(), Role: entity.RoleStudent, Approved: true}
	pending := &entity.User{ID: uuid.New(), Role: entity.RoleCompany, Approved: false}
	deleted := &entity.User{ID: uuid.New(), Role: entity.RoleStudent, Approved: true}
	users := fakeUsers{student.ID: student, pending.ID: pending}

	tests := []struct {
		name   string
		roles  []entity.Role
		header string
		query  string
		status int
		code   string
	}{
		{name: "missing token", status: http.StatusUnauthorized, code: "Unauthorized"},
		{name: "garbage token", header: "Bearer nope", status: http.StatusUnauthorized, code: "Unauthorized"},
		{name: "valid token", header: bearer(t, tokens, student), status: http.StatusOK},
		{name: "query token", query: "?token=" + bearer(t, tokens, student)[len("Bearer "):], status: http.StatusOK},
		{name: "pending approval", header: bearer(t, tokens, pending), status: http.StatusForbidden, code: "PendingApproval"},
		{name: "deleted account", header: bearer(t, tokens, deleted), status: http.StatusUnauthorized, code: "Unauthorized"},
		{name: "wrong role", roles: []entity.Role{entity.RoleAdmin}, header: bearer(t, tokens, student), status: http.StatusForbidden, code: "Forbidden"},
		{name: "allowed role", roles: []entity.Role{entity.RoleStudent, entity.RoleAdmin}, header: bearer(t, tokens, student), status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(users, tokens, tt.roles...)
			req := httptest.NewRequest(http.MethodGet, "/protected"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.code != "" {
				assert.Contains(t, w.Body.String(), `"code":"`+tt.code+`"`)
			} else {
				assert.Contains(t, w.Body.String(), `"role":"student"`)
			}
		})
	}
}
