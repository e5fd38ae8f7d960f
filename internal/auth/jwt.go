package auth

import (
	"time"

	"naturtim-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// JWTCustomClaims niesie spłaszczoną listę nazw uprawnień, żeby middleware
// nie musiał odpytywać bazy przy każdym żądaniu.
type JWTCustomClaims struct {
	UserID      uint     `json:"user_id"`
	Login       string   `json:"login"`
	Username    string   `json:"username"`
	UserSurname string   `json:"userSurname"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, user *models.User) (string, error) {
	permNames := make([]string, 0, len(user.Permissions))
	for _, p := range user.Permissions {
		permNames = append(permNames, p.Name)
	}

	claims := &JWTCustomClaims{
		UserID:      user.ID,
		Login:       user.Login,
		Username:    user.Username,
		UserSurname: user.UserSurname,
		Permissions: permNames,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(8 * time.Hour)), // jedna zmiana
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
