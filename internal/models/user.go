package models

import "time"

type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Login       string `gorm:"size:50;uniqueIndex;not null" json:"login"`
	Password    string `gorm:"size:255;not null" json:"-"`
	Username    string `gorm:"size:100" json:"username"`
	UserSurname string `gorm:"size:100" json:"userSurname"`

	Permissions []Permission `gorm:"many2many:user_permissions" json:"permissions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName zwraca "imię nazwisko" albo login, gdy brak danych osobowych.
func (u *User) FullName() string {
	if u.Username == "" && u.UserSurname == "" {
		return u.Login
	}
	if u.UserSurname == "" {
		return u.Username
	}
	return u.Username + " " + u.UserSurname
}
