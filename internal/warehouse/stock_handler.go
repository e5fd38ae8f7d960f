package warehouse

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

// Mapa klucza ilości z żądania na kolumnę partii. Tylko te cztery pola
// wolno nadpisać inwentaryzacją.
var allowedQuantityKeys = map[string]string{
	"mroznia":       "mroznia",
	"polprodukt":    "polprodukt",
	"gotowyProdukt": "gotowy_produkt",
	"kartony":       "kartony",
}

// Etykiety do dziennika zdarzeń.
var quantityKeyLabels = map[string]string{
	"mroznia":       "Mroźnia",
	"polprodukt":    "Półprodukt",
	"gotowyProdukt": "Gotowy produkt",
	"kartony":       "Kartony",
}

// ListStockHandler zwraca partie z niezerowym stanem w zadanej kolumnie,
// czyli widok jednej zakładki magazynowej (mroźnia, półfabrykat, gotowy
// produkt, kartony).
func ListStockHandler(quantityKey string) fiber.Handler {
	column := allowedQuantityKeys[quantityKey]
	return func(c *fiber.Ctx) error {
		var batches []models.ProductionBatch
		if err := database.DB.
			Preload("Product").Preload("Supplier").Preload("Fraction").
			Where(column+" > 0").
			Order("batch_number asc").
			Find(&batches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd pobierania stanu magazynu")
		}
		return c.JSON(batches)
	}
}

type StockPatchRequest struct {
	DeliveryID  uint     `json:"deliveryId"`
	NewQuantity *float64 `json:"newQuantity"`
}

// PatchStockHandler nadpisuje stan kolumny wynikającej ze ścieżki zakładki.
func PatchStockHandler(quantityKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StockPatchRequest
		if err := c.BodyParser(&body); err != nil || body.DeliveryID == 0 || body.NewQuantity == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane inwentaryzacji")
		}
		return overwriteQuantity(c, body.DeliveryID, quantityKey, *body.NewQuantity)
	}
}

type InventoryRequest struct {
	DeliveryID  uint     `json:"deliveryId"`
	QuantityKey string   `json:"quantityKey"`
	NewQuantity *float64 `json:"newQuantity"`
}

// PATCH /api/inwentaryzacja: jak wyżej, ale kolumna przychodzi w ciele
// żądania jako quantityKey.
func InventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body InventoryRequest
		if err := c.BodyParser(&body); err != nil || body.DeliveryID == 0 || body.NewQuantity == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane inwentaryzacji")
		}
		return overwriteQuantity(c, body.DeliveryID, body.QuantityKey, *body.NewQuantity)
	}
}

// overwriteQuantity nadpisuje stan jednej kolumny magazynowej partii wartością
// z przeliczenia fizycznego. Wartość jest bezwzględna, nie deltą; partia
// dostaje stempel ostatniej inwentaryzacji, a stary i nowy stan lądują
// w dzienniku zdarzeń.
func overwriteQuantity(c *fiber.Ctx, deliveryID uint, quantityKey string, newQuantity float64) error {
	column, ok := allowedQuantityKeys[quantityKey]
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowy klucz ilości")
	}
	if newQuantity < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Stan magazynowy nie może być ujemny")
	}

	var batch models.ProductionBatch
	if err := database.DB.First(&batch, deliveryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Nie znaleziono partii")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Błąd inwentaryzacji")
	}

	oldQuantity := map[string]float64{
		"mroznia":       batch.Mroznia,
		"polprodukt":    batch.Polprodukt,
		"gotowyProdukt": batch.GotowyProdukt,
		"kartony":       batch.Kartony,
	}[quantityKey]

	if err := database.DB.Model(&batch).Updates(map[string]any{
		column:              newQuantity,
		"last_inventory_at": time.Now(),
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Błąd inwentaryzacji")
	}

	audit.LogEvent(c, "Inwentaryzacja partii "+batch.BatchNumber, fiber.Map{
		"action":     "INWENTARYZACJA",
		"partia":     batch.BatchNumber,
		"magazyn":    quantityKeyLabels[quantityKey],
		"stary_stan": fmt.Sprintf("%g", oldQuantity),
		"nowy_stan":  fmt.Sprintf("%g", newQuantity),
	})

	database.DB.Preload("Product").Preload("Supplier").First(&batch, batch.ID)
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Stan magazynowy został zaktualizowany",
		"delivery": batch,
	})
}
