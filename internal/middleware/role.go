package middleware

import (
	"github.com/gofiber/fiber/v2"

	"pawmarket/internal/domain"
)

func RequireRole(role domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if user.Role != string(role) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func RequireBusiness() fiber.Handler {
	return RequireRole(domain.RoleBusiness)
}

func RequireRegular() fiber.Handler {
	return RequireRole(domain.RoleRegular)
}
