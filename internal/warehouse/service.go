package warehouse

import (
	"fmt"
	"time"

	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"

	"gorm.io/gorm"
)

// Nazwy czterech stałych magazynów (zgodne z danymi seedowanymi).
const (
	NameMroznia       = "Mroźnia"
	NamePolfabrykat   = "Półfabrykat"
	NameGotowyProdukt = "Gotowy produkt"
	NameKartony       = "Kartony"
)

// AddWeight dodaje (lub przy ujemnej delcie zdejmuje) wagę z zagregowanego
// stanu magazynu i stempluje datę inwentaryzacji. To osobna instrukcja po
// utworzeniu partii, przyjęcie dostawy celowo nie jest transakcyjne.
func AddWeight(warehouseName string, weightDelta float64) error {
	var wh models.Warehouse
	if err := database.DB.Where("name = ?", warehouseName).First(&wh).Error; err != nil {
		return fmt.Errorf("magazyn %s nie istnieje", warehouseName)
	}

	return database.DB.Model(&wh).Updates(map[string]any{
		"total_weight":        wh.TotalWeight + weightDelta,
		"last_inventory_date": time.Now(),
	}).Error
}

// RecalculateTotals przelicza zdenormalizowane TotalWeight każdego magazynu
// z sumy jego wierszy frakcyjnych. Wołane po każdej zmianie frakcji oraz
// okresowo, żeby agregat nie rozjeżdżał się ze stanem wierszy.
func RecalculateTotals(db *gorm.DB) error {
	var warehouses []models.Warehouse
	if err := db.Find(&warehouses).Error; err != nil {
		return err
	}

	for _, wh := range warehouses {
		var sum float64
		if err := db.Model(&models.WarehouseFraction{}).
			Where("warehouse_id = ?", wh.ID).
			Select("COALESCE(SUM(weight), 0)").
			Scan(&sum).Error; err != nil {
			return err
		}

		if err := db.Model(&models.Warehouse{}).
			Where("id = ?", wh.ID).
			Update("total_weight", sum).Error; err != nil {
			return err
		}
	}
	return nil
}
