package middleware

import (
	"strings"

	"github.com/dimitrije/frame-nest/internal/models"
	"github.com/dimitrije/frame-nest/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

const PrincipalKey = "principal"

// Auth resolves the bearer token to the caller principal.
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

		c.Set(PrincipalKey, claims.Principal())

		c.Next()
	}
}

func GetPrincipal(c *drift.Context) models.Principal {
	if p, ok := c.Get(PrincipalKey); ok {
		if principal, ok := p.(models.Principal); ok {
			return principal
		}
	}
	return ""
}
