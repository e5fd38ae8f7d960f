package models

// Fraction to forma cięcia półproduktu (np. "Kostka", "Grys").
type Fraction struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}
