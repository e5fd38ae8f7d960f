package models

// Machine to fizyczny liofilizator; kolor służy do rysowania wykresu Gantta.
type Machine struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:50;not null" json:"name"`
	Color string `gorm:"size:20" json:"color"`
}
