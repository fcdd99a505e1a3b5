package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mckayn10/ai-chat-app/pkg/auth"
	"github.com/mckayn10/ai-chat-app/pkg/users"
)

const localUser = "user"

// AuthRequired rejects requests without a valid bearer token and stashes
// the account in locals for handlers.
func AuthRequired(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			// Browsers cannot set headers on websocket upgrades; allow the
			// token as a query parameter there.
			if token := c.Query("token"); token != "" {
				header = "Bearer " + token
			}
		}
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization header"})
		}
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization header format"})
		}
		u, err := svc.VerifyToken(c.Context(), parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}
		c.Locals(localUser, u)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) users.User {
	u, _ := c.Locals(localUser).(users.User)
	return u
}
