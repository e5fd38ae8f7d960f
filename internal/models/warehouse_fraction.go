package models

// WarehouseFraction wiąże magazyn z frakcją (i opcjonalnie partią) oraz wagą.
type WarehouseFraction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WarehouseID uint      `gorm:"index;not null" json:"warehouseId"`
	Warehouse   Warehouse `json:"-"`
	FractionID  uint      `gorm:"index;not null" json:"fractionId"`
	Fraction    Fraction  `json:"fraction,omitempty"`

	ProductionBatchID *uint            `json:"productionBatchId"`
	ProductionBatch   *ProductionBatch `json:"productionBatch,omitempty"`

	Weight float64 `json:"weight"`
}
