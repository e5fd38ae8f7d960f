package employee

import (
	"naturtim-backend/internal/auth"
	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/permissions: uprawnienia zalogowanego użytkownika (z tokenu).
func MyPermissionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		perms, ok := c.Locals(auth.CtxPermissionsKey).([]string)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Nie można odczytać uprawnień")
		}
		return c.JSON(fiber.Map{"permissions": perms})
	}
}

// GET /api/permissions/all: słownik wszystkich uprawnień w systemie.
func AllPermissionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var perms []models.Permission
		if err := database.DB.Order("id asc").Find(&perms).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd pobierania uprawnień")
		}
		return c.JSON(perms)
	}
}
