package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"github.com/campuscoders/clubsite-api/internal/port"
	"github.com/campuscoders/clubsite-api/internal/token"
	"github.com/gofiber/fiber/v3"
)

const userLocalKey = "user"

// Authenticate gates every protected route. It extracts the bearer token,
// verifies it, then re-checks the embedded identity against the live user
// record: a user deleted or deactivated after the token was issued is
// rejected even though the token still verifies cryptographically. Every
// rejection is terminal; the downstream handler is never invoked.
func Authenticate(tokens *token.Service, users port.UserStore) fiber.Handler {
	return func(c fiber.Ctx) error {
		var tok string
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				tok = parts[1]
			}
		}

		if tok == "" {
			return unauthenticated(c, "no token provided")
		}

		userID, _, err := tokens.Verify(tok)
		if err != nil {
			// sub-reason goes in the message, never the status code
			return unauthenticated(c, err.Error())
		}

		user, err := users.FindByID(c.Context(), userID)
		if errors.Is(err, port.ErrUserNotFound) {
			return unauthenticated(c, "user no longer exists")
		}
		if err != nil {
			// store outage, not a caller problem
			slog.Error("auth user lookup failed", "user_id", userID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "internal server error",
			})
		}
		if !user.Active {
			return unauthenticated(c, "account inactive")
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// RequireAdmin composes on top of Authenticate: the route only proceeds for
// admin users. The rejected user's actual role goes in the message for
// debuggability.
func RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthenticated(c, "no token provided")
		}
		if !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "admin access required, current role is '" + user.Role + "'",
			})
		}
		return c.Next()
	}
}

// CurrentUser extracts the authenticated user from Fiber locals. The record
// never carries the password hash.
func CurrentUser(c fiber.Ctx) *domain.User {
	u, ok := c.Locals(userLocalKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

func unauthenticated(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}
