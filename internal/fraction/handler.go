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

type AssignRequest struct {
	BatchID    uint    `json:"batchId"`
	FractionID uint    `json:"fractionId"`
	Weight     float64 `json:"weight"`
}

type batchWithStockView struct {
	ID              uint    `json:"id"`
	BatchNumber     string  `json:"batchNumber"`
	AvailableWeight float64 `json:"availableWeight"`
	Product         struct {
		Name string `json:"name"`
	} `json:"product"`
}

// GET /api/frakcje/batches: partie z niezerowym stanem półproduktu, do podziału.
func ListFractionBatchesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var batches []models.ProductionBatch
		if err := database.DB.
			Preload("Product").
			Where("polprodukt > 0").
			Order("batch_number asc").
			Find(&batches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd pobierania partii do frakcjonowania")
		}

		views := make([]batchWithStockView, 0, len(batches))
		for i := range batches {
			b := &batches[i]
			v := batchWithStockView{
				ID:              b.ID,
				BatchNumber:     b.BatchNumber,
				AvailableWeight: b.Polprodukt,
			}
			if b.Product != nil {
				v.Product.Name = b.Product.Name
			}
			views = append(views, v)
		}
		return c.JSON(views)
	}
}

// POST /api/frakcje/assign: wydziela z partii-rodzica wskazaną wagę do nowej
// partii-dziecka z przypisaną frakcją. Rodzic i dziecko dzielą numer partii;
// zdjęcie wagi z rodzica i utworzenie dziecka dzieje się w jednej transakcji.
func AssignFractionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AssignRequest
		if err := c.BodyParser(&body); err != nil || body.BatchID == 0 || body.FractionID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane wejściowe")
		}
		if body.Weight <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Waga musi być większa od zera")
		}

		var parent models.ProductionBatch
		if err := database.DB.Preload("Product").First(&parent, body.BatchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Nie znaleziono partii")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd przypisywania frakcji")
		}

		var frac models.Fraction
		if err := database.DB.First(&frac, body.FractionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Nie znaleziono frakcji")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd przypisywania frakcji")
		}

		if body.Weight > parent.Polprodukt {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Niewystarczająca ilość półproduktu. Dostępne: %g kg", parent.Polprodukt))
		}

		now := time.Now()
		child := models.ProductionBatch{
			BatchNumber:     parent.BatchNumber,
			ProductID:       parent.ProductID,
			SupplierID:      parent.SupplierID,
			StatusID:        parent.StatusID,
			FractionID:      &body.FractionID,
			Polprodukt:      body.Weight,
			FractioningDate: &now,
		}

		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd przypisywania frakcji")
		}

		if err := tx.Model(&models.ProductionBatch{}).
			Where("id = ?", parent.ID).
			Update("polprodukt", parent.Polprodukt-body.Weight).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd przypisywania frakcji")
		}

		if err := tx.Create(&child).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd przypisywania frakcji")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd przypisywania frakcji")
		}

		audit.LogEvent(c, "Przypisano frakcję do partii "+parent.BatchNumber, fiber.Map{
			"action":  "PRZYPISANIE_FRAKCJI",
			"partia":  parent.BatchNumber,
			"frakcja": frac.Name,
			"waga":    fmt.Sprintf("%g kg", body.Weight),
		})

		database.DB.Preload("Product").Preload("Fraction").First(&child, child.ID)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": fmt.Sprintf("Przypisano %g kg frakcji %s do partii %s", body.Weight, frac.Name, parent.BatchNumber),
			"batch":   child,
		})
	}
}
