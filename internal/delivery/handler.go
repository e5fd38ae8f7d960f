package delivery

import (
	"fmt"
	"regexp"
	"time"

	"naturtim-backend/internal/audit"
	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"
	"naturtim-backend/internal/warehouse"

	"github.com/gofiber/fiber/v2"
)

var batchNumberPattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

type CreateDeliveryRequest struct {
	BatchNumber string  `json:"batchNumber"`
	ProductID   uint    `json:"productId"`
	SupplierID  uint    `json:"supplierId"`
	RecipientID *uint   `json:"recipientId"`
	Weight      float64 `json:"weight"`
	BoxCount    float64 `json:"boxCount"`
	Notes       string  `json:"notes"`
}

// GET /api/przyjecia-dostawy/generate-batch-number
func GenerateBatchNumberHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		batchNumber, err := GenerateBatchNumber(database.DB, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd generowania numeru partii")
		}
		return c.JSON(fiber.Map{"batchNumber": batchNumber})
	}
}

// GET /api/przyjecia-dostawy: dostawy od najnowszej.
func ListDeliveriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var deliveries []models.ProductionBatch
		if err := database.DB.
			Preload("Product").Preload("Supplier").Preload("Recipient").
			Order("id desc").
			Find(&deliveries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd pobierania dostaw")
		}
		return c.JSON(fiber.Map{"deliveries": deliveries})
	}
}

// POST /api/przyjecia-dostawy: tworzy partię i przekazuje całą wagę
// do magazynu mroźni. Aktualizacja agregatu magazynu to osobna instrukcja
// po utworzeniu partii.
func CreateDeliveryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDeliveryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane żądania")
		}

		if body.ProductID == 0 || body.SupplierID == 0 || body.Weight <= 0 || body.BoxCount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane. Wypełnij wszystkie wymagane pola.")
		}
		if !batchNumberPattern.MatchString(body.BatchNumber) {
			return fiber.NewError(fiber.StatusBadRequest, "Numer partii musi mieć format NN/MM/RRRR")
		}

		// Jawna kontrola duplikatu: numer partii nie ma unikalnego indeksu,
		// bo dzielą go partie-dzieci z frakcjonowania.
		var existing int64
		database.DB.Model(&models.ProductionBatch{}).
			Where("batch_number = ?", body.BatchNumber).
			Count(&existing)
		if existing > 0 {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Partia o numerze %s już istnieje w systemie", body.BatchNumber))
		}

		now := time.Now()
		batch := models.ProductionBatch{
			BatchNumber:   body.BatchNumber,
			ProductID:     &body.ProductID,
			SupplierID:    &body.SupplierID,
			RecipientID:   body.RecipientID,
			InitialWeight: &body.Weight,
			Mroznia:       body.Weight, // cała dostawa trafia do mroźni
			Kartony:       body.BoxCount,
			Notes:         body.Notes,
			DeliveryDate:  &now,
		}

		if err := database.DB.Create(&batch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Wystąpił błąd podczas tworzenia dostawy")
		}

		database.DB.
			Preload("Product").Preload("Supplier").Preload("Recipient").
			First(&batch, batch.ID)

		audit.LogEvent(c, "Przyjęto dostawę: partia "+batch.BatchNumber, fiber.Map{
			"action":  "PRZYJECIE_DOSTAWY",
			"partia":  batch.BatchNumber,
			"waga":    fmt.Sprintf("%g kg", body.Weight),
			"kartony": body.BoxCount,
		})

		if err := warehouse.AddWeight(warehouse.NameMroznia, body.Weight); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(fiber.Map{
			"delivery": batch,
			"success":  true,
			"message":  "Dostawa została pomyślnie zarejestrowana",
		})
	}
}
