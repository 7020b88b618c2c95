package middleware

import (
	"strings"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/mtl/myhackx-api/internal/services"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserAdminKey = "user_admin"
)

func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := jwtService.ValidateAccessToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserAdminKey, claims.Admin)

		c.Next()
	}
}

// RequireAdmin gates admin-only routes. It must run after Auth.
func RequireAdmin() drift.HandlerFunc {
	return func(c *drift.Context) {
		if !IsAdmin(c) {
			c.Forbidden("admin access required")
			return
		}
		c.Next()
	}
}

func GetUserID(c *drift.Context) string {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(string); ok {
			return uid
		}
	}
	return ""
}

func GetUserEmail(c *drift.Context) string {
	if email, ok := c.Get(UserEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

func IsAdmin(c *drift.Context) bool {
	if admin, ok := c.Get(UserAdminKey); ok {
		if a, ok := admin.(bool); ok {
			return a
		}
	}
	return false
}
