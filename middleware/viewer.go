package middleware

import (
	"amc/database"
	"amc/models"
	"amc/scope"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LoadViewer rebuilds the trusted viewer identity from the database on
// every request. The role and any center binding always come from the
// stored user row, never from the token or a client-supplied filter, so
// a center-bound admin cannot widen its scope by tampering with query
// state.
func LoadViewer(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while loading user!", nil)
	}

	c.Locals("viewer", scope.Viewer{
		UserID:       user.ID,
		Role:         user.Role,
		HomeCenterID: user.CenterID,
	})
	c.Locals("user", user)

	return c.Next()
}

// RequireAdmin gates a route to admin users. Must run after LoadViewer.
func RequireAdmin(c *fiber.Ctx) error {
	viewer, ok := c.Locals("viewer").(scope.Viewer)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if viewer.Role != models.RoleAdmin {
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	return c.Next()
}
