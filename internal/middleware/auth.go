package middleware

import (
	"context"
	"fmt"
	"strings"

	"anoa.com/placementportal/internal/access"
	"anoa.com/placementportal/internal/entity"
	"anoa.com/placementportal/pkg/apperror"
	"anoa.com/placementportal/pkg/database"
	"anoa.com/placementportal/pkg/response"
	"anoa.com/placementportal/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserFinder reloads the identity behind a token.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type AuthMiddleware struct {
	users  UserFinder
	tokens *token.Manager
}

func NewAuthMiddleware(users UserFinder, tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		users:  users,
		tokens: tokens,
	}
}

// RequireAuth verifies the bearer token and stores its subject and role in the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Fallback to query parameter "token" (useful for WebSockets)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			response.ResponseError(c, fmt.Errorf("authorization required: %w", apperror.ErrUnauthorized))
			return
		}

		claims, err := m.tokens.Parse(tokenString)
		if err != nil {
			response.ResponseError(c, fmt.Errorf("invalid or expired token: %w", apperror.ErrUnauthorized))
			return
		}

		c.Set(response.UserIDKey, claims.Subject)
		c.Set(response.RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRoles reloads the caller's identity and admits it only when it still
// exists, is approved and holds one of roles. With no roles any approved
// identity passes. The role stored in the context is the one from the store.
func (m *AuthMiddleware) RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	policy := access.Allow(roles...)

	return func(c *gin.Context) {
		userID, err := response.GetUserID(c)
		if err != nil {
			response.ResponseError(c, err)
			return
		}

		user, err := m.users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if database.IsNotFound(err) {
				response.ResponseError(c, fmt.Errorf("account no longer exists: %w", apperror.ErrUnauthorized))
				return
			}
			response.ResponseError(c, err)
			return
		}

		if !user.Approved {
			response.ResponseError(c, fmt.Errorf("account is awaiting admin approval: %w", apperror.ErrPendingApproval))
			return
		}

		if len(roles) > 0 {
			if err := policy.Check(access.Actor{UserID: user.ID, Role: user.Role}); err != nil {
				response.ResponseError(c, err)
				return
			}
		}

		c.Set(response.RoleKey, string(user.Role))
		c.Next()
	}
}
