package middleware

import (
	"mcan/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that only lets through users whose role
// is in the allowed set. Runs after JWTMiddleware.
func RequireRole(allowed ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: role not found", nil)
		}

		for _, r := range allowed {
			if models.Role(role) == r {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}
