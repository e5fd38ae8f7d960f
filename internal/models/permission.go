package models

type Permission struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Href        string `gorm:"size:255" json:"href"`
	Description string `gorm:"size:255" json:"description"`

	Users []User `gorm:"many2many:user_permissions" json:"-"`
}
