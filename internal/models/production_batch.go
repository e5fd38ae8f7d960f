package models

import "time"

// ProductionBatch to centralna encja systemu: jedna partia surowca wędrująca
// przez zakład (mroźnia -> liofilizacja -> frakcjonowanie -> gotowy produkt).
// Partii nigdy nie usuwamy, harmonogram czyści tylko pola procesu.
//
// Numer partii NIE ma unikalnego indeksu: partie-dzieci tworzone przy
// przypisaniu frakcji dziedziczą numer rodzica. Unikalność przy przyjęciu
// dostawy pilnuje jawna kontrola w handlerze.
type ProductionBatch struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	BatchNumber string `gorm:"size:20;index;not null" json:"batchNumber"`

	ProductID   *uint      `json:"productId"`
	Product     *Product   `json:"product,omitempty"`
	SupplierID  *uint      `json:"supplierId"`
	Supplier    *Supplier  `json:"supplier,omitempty"`
	RecipientID *uint      `json:"recipientId"`
	Recipient   *Recipient `json:"recipient,omitempty"`
	MachineID   *uint      `json:"machineId"`
	Machine     *Machine   `json:"machine,omitempty"`
	FractionID  *uint      `json:"fractionId"`
	Fraction    *Fraction  `json:"fraction,omitempty"`
	StatusID    *uint      `json:"statusId"`
	Status      *BatchStatus `json:"status,omitempty"`

	// Wagi na kolejnych etapach (kg). Cztery pola magazynowe to stany
	// "per partia"; zagregowany stan magazynu trzyma model Warehouse.
	InitialWeight            *float64 `json:"initialWeight"`
	PostLyophilizationWeight *float64 `json:"postLyophilizationWeight"`
	DryMassPercentage        *float64 `json:"dryMassPercentage"`
	Mroznia                  float64  `json:"mroznia"`
	Polprodukt               float64  `json:"polprodukt"`
	GotowyProdukt            float64  `gorm:"column:gotowy_produkt" json:"gotowyProdukt"`
	Kartony                  float64  `json:"kartony"`

	DeliveryDate            *time.Time `json:"deliveryDate"`
	ScheduledDate           *time.Time `json:"scheduledDate"`
	LyophilizationStartDate *time.Time `json:"lyophilizationStartDate"`
	LyophilizationEndDate   *time.Time `json:"lyophilizationEndDate"`
	FractioningDate         *time.Time `json:"fractioningDate"`
	LastInventoryAt         *time.Time `json:"lastInventoryAt"`

	Notes string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
