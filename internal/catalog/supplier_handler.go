package catalog

import (
	"errors"
	"strings"

	"naturtim-backend/internal/audit"
	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateSupplierRequest struct {
	Name string `json:"name"`
}

// GET /api/dostawcy
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Order("name asc").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się pobrać listy dostawców")
		}
		return c.JSON(suppliers)
	}
}

// POST /api/dostawcy
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane żądania")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Podaj nazwę dostawcy")
		}

		supplier := models.Supplier{Name: body.Name}
		if err := database.DB.Create(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się dodać dostawcy")
		}

		audit.LogEvent(c, "Dodano dostawcę: "+supplier.Name, fiber.Map{
			"action":   "DODANIE_DOSTAWCY",
			"dostawca": supplier.Name,
		})

		return c.Status(fiber.StatusCreated).JSON(supplier)
	}
}

// DELETE /api/dostawcy
func DeleteSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DeleteRequest
		if err := c.BodyParser(&body); err != nil || body.ID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Podaj ID dostawcy do usunięcia")
		}

		var supplier models.Supplier
		if err := database.DB.First(&supplier, body.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Nie znaleziono dostawcy o podanym ID")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się usunąć dostawcy")
		}

		var refCount int64
		database.DB.Model(&models.ProductionBatch{}).Where("supplier_id = ?", body.ID).Count(&refCount)
		if refCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nie można usunąć dostawcy powiązanego z partiami produkcyjnymi")
		}

		if err := database.DB.Delete(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się usunąć dostawcy")
		}

		audit.LogEvent(c, "Usunięto dostawcę: "+supplier.Name, fiber.Map{
			"action":   "USUNIECIE_DOSTAWCY",
			"dostawca": supplier.Name,
		})

		return c.JSON(fiber.Map{"message": "Dostawca został usunięty"})
	}
}
