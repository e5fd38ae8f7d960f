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

type CreateRecipientRequest struct {
	Name string `json:"name"`
}

// GET /api/odbiorcy
func ListRecipientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var recipients []models.Recipient
		if err := database.DB.Order("name asc").Find(&recipients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się pobrać listy odbiorców")
		}
		return c.JSON(recipients)
	}
}

// POST /api/odbiorcy
func CreateRecipientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRecipientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane żądania")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Podaj nazwę odbiorcy")
		}

		recipient := models.Recipient{Name: body.Name}
		if err := database.DB.Create(&recipient).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się dodać odbiorcy")
		}

		audit.LogEvent(c, "Dodano odbiorcę: "+recipient.Name, fiber.Map{
			"action":   "DODANIE_ODBIORCY",
			"odbiorca": recipient.Name,
		})

		return c.Status(fiber.StatusCreated).JSON(recipient)
	}
}

// DELETE /api/odbiorcy
func DeleteRecipientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DeleteRequest
		if err := c.BodyParser(&body); err != nil || body.ID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Podaj ID odbiorcy do usunięcia")
		}

		var recipient models.Recipient
		if err := database.DB.First(&recipient, body.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Nie znaleziono odbiorcy o podanym ID")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się usunąć odbiorcy")
		}

		var refCount int64
		database.DB.Model(&models.ProductionBatch{}).Where("recipient_id = ?", body.ID).Count(&refCount)
		if refCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nie można usunąć odbiorcy powiązanego z partiami produkcyjnymi")
		}

		if err := database.DB.Delete(&recipient).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się usunąć odbiorcy")
		}

		audit.LogEvent(c, "Usunięto odbiorcę: "+recipient.Name, fiber.Map{
			"action":   "USUNIECIE_ODBIORCY",
			"odbiorca": recipient.Name,
		})

		return c.JSON(fiber.Map{"message": "Odbiorca został usunięty"})
	}
}
