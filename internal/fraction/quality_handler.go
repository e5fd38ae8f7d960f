package fraction

import (
	"errors"
	"fmt"
	"time"

	"naturtim-backend/internal/audit"
	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QualityControlRequest struct {
	BatchID        uint    `json:"batchId"`
	FinishedWeight float64 `json:"finishedWeight"`
	WasteWeight    float64 `json:"wasteWeight"`
}

// GET /api/kontrola-jakosci: partie frakcjonowane czekające na kontrolę.
func ListQualityBatchesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var batches []models.ProductionBatch
		if err := database.DB.
			Preload("Product").Preload("Fraction").
			Where("fraction_id IS NOT NULL AND polprodukt > 0").
			Order("fractioning_date desc").
			Find(&batches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd pobierania partii do kontroli jakości")
		}
		return c.JSON(batches)
	}
}

// POST /api/kontrola-jakosci: rozlicza partię frakcjonowaną: zużyty
// półprodukt schodzi ze stanu, waga gotowa zasila gotowy produkt, odpad
// zostaje tylko w zapisie kontroli. Całość w jednej transakcji.
func RecordQualityControlHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body QualityControlRequest
		if err := c.BodyParser(&body); err != nil || body.BatchID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane wejściowe")
		}
		if body.FinishedWeight <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Waga gotowego produktu musi być większa od zera")
		}
		if body.WasteWeight < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Waga odpadu nie może być ujemna")
		}

		var batch models.ProductionBatch
		if err := database.DB.Preload("Fraction").First(&batch, body.BatchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Nie znaleziono partii")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd zapisu kontroli jakości")
		}
		if batch.FractionID == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Partia nie ma przypisanej frakcji")
		}

		used := body.FinishedWeight + body.WasteWeight
		if used > batch.Polprodukt {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Niewystarczająca ilość półproduktu. Dostępne: %g kg", batch.Polprodukt))
		}

		now := time.Now()
		record := models.BatchFraction{
			BatchID:             batch.ID,
			FractionID:          *batch.FractionID,
			PolproduktWeight:    used,
			GotowyProduktWeight: body.FinishedWeight,
			WasteWeight:         body.WasteWeight,
			QualityControlDate:  &now,
		}

		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd zapisu kontroli jakości")
		}

		if err := tx.Model(&models.ProductionBatch{}).
			Where("id = ?", batch.ID).
			Updates(map[string]any{
				"polprodukt":     batch.Polprodukt - used,
				"gotowy_produkt": batch.GotowyProdukt + body.FinishedWeight,
			}).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd zapisu kontroli jakości")
		}

		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd zapisu kontroli jakości")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd zapisu kontroli jakości")
		}

		fracName := ""
		if batch.Fraction != nil {
			fracName = batch.Fraction.Name
		}
		audit.LogEvent(c, "Kontrola jakości partii "+batch.BatchNumber, fiber.Map{
			"action":         "KONTROLA_JAKOSCI",
			"partia":         batch.BatchNumber,
			"frakcja":        fracName,
			"gotowy_produkt": fmt.Sprintf("%g kg", body.FinishedWeight),
			"odpad":          fmt.Sprintf("%g kg", body.WasteWeight),
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Wynik kontroli jakości został zapisany",
			"record":  record,
		})
	}
}
