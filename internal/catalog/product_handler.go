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

type CreateProductRequest struct {
	Name string `json:"name"`
}

type DeleteRequest struct {
	ID uint `json:"id"`
}

// GET /api/produkty
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się pobrać listy produktów")
		}
		return c.JSON(products)
	}
}

// POST /api/produkty
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane żądania")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Podaj nazwę produktu")
		}

		product := models.Product{Name: body.Name}
		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się dodać produktu")
		}

		audit.LogEvent(c, "Dodano produkt: "+product.Name, fiber.Map{
			"action":  "DODANIE_PRODUKTU",
			"produkt": product.Name,
		})

		return c.Status(fiber.StatusCreated).JSON(product)
	}
}

// DELETE /api/produkty: odmawia, gdy produkt jest powiązany z partiami.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DeleteRequest
		if err := c.BodyParser(&body); err != nil || body.ID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Podaj ID produktu do usunięcia")
		}

		var product models.Product
		if err := database.DB.First(&product, body.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Nie znaleziono produktu o podanym ID")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się usunąć produktu")
		}

		var refCount int64
		database.DB.Model(&models.ProductionBatch{}).Where("product_id = ?", body.ID).Count(&refCount)
		if refCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nie można usunąć produktu powiązanego z partiami produkcyjnymi")
		}

		if err := database.DB.Delete(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się usunąć produktu")
		}

		audit.LogEvent(c, "Usunięto produkt: "+product.Name, fiber.Map{
			"action":  "USUNIECIE_PRODUKTU",
			"produkt": product.Name,
		})

		return c.JSON(fiber.Map{"message": "Produkt został usunięty"})
	}
}
