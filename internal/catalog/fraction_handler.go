package catalog

import (
	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/frakcje/fractions
func ListFractionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var fractions []models.Fraction
		if err := database.DB.Order("name asc").Find(&fractions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Wystąpił błąd podczas pobierania frakcji")
		}
		return c.JSON(fractions)
	}
}
