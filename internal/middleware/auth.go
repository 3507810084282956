package middleware

import (
	"net/http"
	"strings"

	"github.com/stpnv0/DocBooker/internal/auth"
	"github.com/wb-go/wbf/ginext"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextEmailKey = "auth_email"
	ContextRoleKey  = "auth_role"
	ContextNameKey  = "auth_name"
)

// Auth validates the bearer token and exposes the verified caller identity
// through the request context.
func Auth(tokens *auth.TokenManager) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				ginext.H{"error": "access token required"},
			)
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				ginext.H{"error": "invalid or expired token"},
			)
			return
		}

		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextRoleKey, claims.Role)
		c.Set(ContextNameKey, claims.Name)

		c.Next()
	}
}

func RequireAdmin() ginext.HandlerFunc {
	return func(c *ginext.Context) {
		if c.GetString(ContextRoleKey) != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				ginext.H{"error": "admin access required"},
			)
			return
		}

		c.Next()
	}
}
