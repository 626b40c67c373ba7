package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"jobboard/internal/auth"
	"jobboard/internal/model"
)

// ClaimsLocalKey is the Fiber locals key holding the verified *auth.Claims.
const ClaimsLocalKey = "claims"

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token with 401.
func RequireAuth(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "no token, authorization denied")
		}
		claims, err := tokens.Verify(raw)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				return fiber.NewError(fiber.StatusUnauthorized, "token expired")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "token is not valid")
		}
		c.Locals(ClaimsLocalKey, claims)
		return c.Next()
	}
}

// OptionalAuth stores claims when a valid token is present and otherwise
// continues anonymously.
func OptionalAuth(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := bearerToken(c); raw != "" {
			if claims, err := tokens.Verify(raw); err == nil {
				c.Locals(ClaimsLocalKey, claims)
			}
		}
		return c.Next()
	}
}

// RequireRole allows only the given roles. It must run after RequireAuth.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFrom(c)
		if claims == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "no token, authorization denied")
		}
		for _, r := range roles {
			if claims.Role == r {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "access denied for role "+string(claims.Role))
	}
}

// ClaimsFrom returns the claims stored by RequireAuth or OptionalAuth, or nil.
func ClaimsFrom(c *fiber.Ctx) *auth.Claims {
	cl, _ := c.Locals(ClaimsLocalKey).(*auth.Claims)
	return cl
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
