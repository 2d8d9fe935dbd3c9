package middleware

import (
	"campus/database"
	"campus/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole loads the authenticated user and checks the role claim
// against the database record, not just the token.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found", nil)
		}

		if user.IsBlocked {
			return JsonResponse(c, fiber.StatusForbidden, false, "Account is blocked", nil)
		}

		for _, role := range roles {
			if user.Role == role {
				c.Locals("user", user)
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource", nil)
	}
}

// RequireStaff allows lecturers and admins.
func RequireStaff() fiber.Handler {
	return RequireRole(models.RoleLecturer, models.RoleAdmin, models.RoleSuperAdmin)
}

// RequireAdmin allows admins only.
func RequireAdmin() fiber.Handler {
	return RequireRole(models.RoleAdmin, models.RoleSuperAdmin)
}
