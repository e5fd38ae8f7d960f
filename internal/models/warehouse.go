package models

import "time"

// Warehouse to jeden z czterech stałych magazynów (Mroźnia, Półfabrykat,
// Gotowy produkt, Kartony). TotalWeight jest zdenormalizowane, przeliczane
// z wierszy WarehouseFraction przy aktualizacji i przez zadanie okresowe.
type Warehouse struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description       string    `gorm:"size:255" json:"description"`
	TotalWeight       float64   `json:"totalWeight"`
	LastInventoryDate time.Time `json:"lastInventoryDate"`

	WarehouseFractions []WarehouseFraction `json:"-"`
}
