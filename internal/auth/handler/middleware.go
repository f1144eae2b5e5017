package handler

import (
	"strings"

	"github.com/Bnslarry/fullstack-training/internal/auth/service"
	"github.com/Bnslarry/fullstack-training/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

// ClaimsLocalKey is where RequireAuth stores the verified claims for
// downstream handlers.
const ClaimsLocalKey = "auth_claims"

func RequireAuth(tokens service.TokenGenerator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(constant.AuthorizationHeader)
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != constant.BearerScheme || parts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or malformed token"})
		}

		claims, err := tokens.VerifyAccessToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(ClaimsLocalKey, claims)

		return c.Next()
	}
}

// SubjectID extracts the authenticated user id set by RequireAuth.
func SubjectID(c *fiber.Ctx) string {
	claims, ok := c.Locals(ClaimsLocalKey).(*service.JWTCustomClaims)
	if !ok {
		return ""
	}

	return claims.UserID
}
