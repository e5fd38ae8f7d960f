package models

import "time"

// AuditLog jest append-only: kto, co i kiedy zmienił. Nazwę użytkownika
// trzymamy zdenormalizowaną, żeby wpis przeżył usunięcie konta.
type AuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"userId"`
	UserName    string    `gorm:"size:200" json:"userName"`
	Description string    `gorm:"size:255" json:"description"`
	Details     string    `gorm:"type:jsonb" json:"details"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
}
