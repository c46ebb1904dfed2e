package middleware

import (
	"strings"

	"go-sweetshop/internal/repository"
	"go-sweetshop/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// Principal is the resolved identity attached to an authenticated request.
type Principal struct {
	UserID          uint
	IsAdministrator bool
}

const principalKey = "principal"

// All authentication failures surface the same message so callers cannot
// tell a bad signature from an unknown subject.
const credentialsMessage = "Could not validate credentials"

// RequireAuth resolves the bearer token into a Principal and stores it in
// the request context. Missing, malformed, expired tokens and tokens whose
// subject no longer exists all fail with 401.
func RequireAuth(userRepo repository.UserRepository, tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": credentialsMessage})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": credentialsMessage})
		}

		userID, err := tokens.Validate(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": credentialsMessage})
		}

		// The subject must still exist in the credential store
		user, err := userRepo.FindByID(userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": credentialsMessage})
		}

		c.Locals(principalKey, Principal{
			UserID:          user.ID,
			IsAdministrator: user.IsAdministrator,
		})
		return c.Next()
	}
}

// RequireAdmin rejects authenticated non-administrators with 403. Must run
// after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFrom(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": credentialsMessage})
		}
		if !principal.IsAdministrator {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Administrator privileges required"})
		}
		return c.Next()
	}
}

// PrincipalFrom returns the principal set by RequireAuth.
func PrincipalFrom(c *fiber.Ctx) (Principal, bool) {
	principal, ok := c.Locals(principalKey).(Principal)
	return principal, ok
}
