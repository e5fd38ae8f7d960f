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

type warehouseListView struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	TotalWeight       float64   `json:"totalWeight"`
	LastInventoryDate time.Time `json:"lastInventoryDate"`
	FractionCount     int64     `json:"fractionCount"`
}

// GET /api/magazyny/warehouses: cztery magazyny z liczbą wierszy frakcyjnych.
func ListWarehousesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var warehouses []models.Warehouse
		if err := database.DB.Order("id asc").Find(&warehouses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd pobierania magazynów")
		}

		views := make([]warehouseListView, 0, len(warehouses))
		for _, wh := range warehouses {
			var count int64
			database.DB.Model(&models.WarehouseFraction{}).
				Where("warehouse_id = ?", wh.ID).
				Count(&count)
			views = append(views, warehouseListView{
				ID:                wh.ID,
				Name:              wh.Name,
				Description:       wh.Description,
				TotalWeight:       wh.TotalWeight,
				LastInventoryDate: wh.LastInventoryDate,
				FractionCount:     count,
			})
		}
		return c.JSON(views)
	}
}

type warehouseFractionView struct {
	ID                uint    `json:"id"`
	FractionID        uint    `json:"fractionId"`
	FractionName      string  `json:"fractionName"`
	ProductionBatchID *uint   `json:"productionBatchId"`
	BatchNumber       string  `json:"batchNumber"`
	ProductName       string  `json:"productName"`
	Weight            float64 `json:"weight"`
}

// GET /api/magazyny/warehouses/:id: stan magazynu wiersz po wierszu.
func GetWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowy identyfikator magazynu")
		}

		var wh models.Warehouse
		if err := database.DB.First(&wh, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Magazyn nie istnieje")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd pobierania magazynu")
		}

		var rows []models.WarehouseFraction
		if err := database.DB.
			Preload("Fraction").
			Preload("ProductionBatch").Preload("ProductionBatch.Product").
			Where("warehouse_id = ?", wh.ID).
			Order("id asc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd pobierania magazynu")
		}

		views := make([]warehouseFractionView, 0, len(rows))
		for i := range rows {
			r := &rows[i]
			v := warehouseFractionView{
				ID:                r.ID,
				FractionID:        r.FractionID,
				FractionName:      r.Fraction.Name,
				ProductionBatchID: r.ProductionBatchID,
				Weight:            r.Weight,
			}
			if r.ProductionBatch != nil {
				v.BatchNumber = r.ProductionBatch.BatchNumber
				if r.ProductionBatch.Product != nil {
					v.ProductName = r.ProductionBatch.Product.Name
				}
			}
			views = append(views, v)
		}

		return c.JSON(fiber.Map{
			"warehouse": wh,
			"fractions": views,
		})
	}
}

type PatchWarehouseRequest struct {
	FractionID        uint     `json:"fractionId"`
	ProductionBatchID *uint    `json:"productionBatchId"`
	NewQuantity       *float64 `json:"newQuantity"`
}

// PATCH /api/magazyny/warehouses/:id: inwentaryzacja wiersza frakcyjnego.
// NewQuantity nadpisuje stan bezwzględnie (to nie delta); po zapisie agregaty
// wszystkich magazynów są przeliczane od nowa.
func PatchWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowy identyfikator magazynu")
		}

		var body PatchWarehouseRequest
		if err := c.BodyParser(&body); err != nil || body.FractionID == 0 || body.NewQuantity == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane inwentaryzacji")
		}
		if *body.NewQuantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Stan magazynowy nie może być ujemny")
		}

		var wh models.Warehouse
		if err := database.DB.First(&wh, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Magazyn nie istnieje")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd inwentaryzacji magazynu")
		}

		query := database.DB.Where("warehouse_id = ? AND fraction_id = ?", wh.ID, body.FractionID)
		if body.ProductionBatchID != nil {
			query = query.Where("production_batch_id = ?", *body.ProductionBatchID)
		} else {
			query = query.Where("production_batch_id IS NULL")
		}

		var row models.WarehouseFraction
		oldWeight := 0.0
		if err := query.First(&row).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusInternalServerError, "Błąd inwentaryzacji magazynu")
			}
			row = models.WarehouseFraction{
				WarehouseID:       wh.ID,
				FractionID:        body.FractionID,
				ProductionBatchID: body.ProductionBatchID,
				Weight:            *body.NewQuantity,
			}
			if err := database.DB.Create(&row).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Błąd inwentaryzacji magazynu")
			}
		} else {
			oldWeight = row.Weight
			if err := database.DB.Model(&row).Update("weight", *body.NewQuantity).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Błąd inwentaryzacji magazynu")
			}
		}

		if err := RecalculateTotals(database.DB); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd przeliczania stanów magazynów")
		}
		database.DB.Model(&models.Warehouse{}).
			Where("id = ?", wh.ID).
			Update("last_inventory_date", time.Now())

		audit.LogEvent(c, "Inwentaryzacja magazynu "+wh.Name, fiber.Map{
			"action":      "INWENTARYZACJA_MAGAZYNU",
			"magazyn":     wh.Name,
			"frakcja_id":  body.FractionID,
			"stary_stan":  fmt.Sprintf("%g kg", oldWeight),
			"nowy_stan":   fmt.Sprintf("%g kg", *body.NewQuantity),
		})

		database.DB.First(&wh, wh.ID)
		return c.JSON(fiber.Map{
			"success":   true,
			"message":   "Stan magazynu został zaktualizowany",
			"warehouse": wh,
		})
	}
}
