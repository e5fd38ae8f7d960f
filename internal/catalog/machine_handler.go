package catalog

import (
	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/machines: lista liofilizatorów (kolory dla wykresu).
func ListMachinesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var machines []models.Machine
		if err := database.DB.Find(&machines).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Wystąpił problem podczas pobierania danych")
		}
		return c.JSON(machines)
	}
}
