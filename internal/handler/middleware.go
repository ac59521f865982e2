package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/service"
	"github.com/skillswap/skillswap/internal/utils"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID    = "user_id"
	ContextEmail     = "email"
	ContextFirstName = "first_name"
)

// AuthMiddleware validates the access token and adds user info to context.
// The token is read from the session cookie, falling back to a Bearer header
// for non-browser clients.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortError(c, fmt.Errorf("access credential missing: %w", utils.ErrTokenInvalid))
			return
		}

		claims, err := authService.ValidateAccess(token)
		if err != nil {
			abortError(c, err)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextFirstName, claims.FirstName)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(accessTokenCookie); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}
