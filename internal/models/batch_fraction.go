package models

import "time"

// BatchFraction zapisuje wynik kontroli jakości jednej pary partia+frakcja:
// ile półproduktu zużyto, ile wyszło gotowego produktu, ile poszło na odpad.
type BatchFraction struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	BatchID    uint            `gorm:"index;not null" json:"batchId"`
	Batch      ProductionBatch `json:"-"`
	FractionID uint            `gorm:"index;not null" json:"fractionId"`
	Fraction   Fraction        `json:"fraction,omitempty"`

	PolproduktWeight    float64 `json:"polproduktWeight"`
	GotowyProduktWeight float64 `gorm:"column:gotowy_produkt_weight" json:"gotowyProduktWeight"`
	WasteWeight         float64 `json:"wasteWeight"`

	QualityControlDate *time.Time `json:"qualityControlDate"`
	CreatedAt          time.Time  `json:"createdAt"`
}
