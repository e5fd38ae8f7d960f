package auth

import (
	"encoding/json"
	"strings"
	"time"

	"naturtim-backend/internal/config"
	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane żądania")
		}

		body.Login = strings.TrimSpace(body.Login)
		if body.Login == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Brakuje nazwy użytkownika lub hasła")
		}

		var user models.User
		if err := database.DB.Preload("Permissions").Where("login = ?", body.Login).First(&user).Error; err != nil {
			logLoginAttempt(body.Login, false, 0, "")
			return fiber.NewError(fiber.StatusUnauthorized, "Nieprawidłowe dane logowania")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
			logLoginAttempt(body.Login, false, 0, "")
			return fiber.NewError(fiber.StatusUnauthorized, "Nieprawidłowe dane logowania")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się utworzyć tokenu")
		}

		logLoginAttempt(user.Login, true, user.ID, user.FullName())

		c.Cookie(&fiber.Cookie{
			Name:     AuthCookieName,
			Value:    token,
			HTTPOnly: true,
			SameSite: "Strict",
			Path:     "/",
			Expires:  time.Now().Add(8 * time.Hour),
		})

		permNames := make([]string, 0, len(user.Permissions))
		for _, p := range user.Permissions {
			permNames = append(permNames, p.Name)
		}

		return c.JSON(fiber.Map{
			"message": "Logowanie powiodło się",
			"token":   token,
			"user": fiber.Map{
				"id":          user.ID,
				"login":       user.Login,
				"username":    user.Username,
				"userSurname": user.UserSurname,
				"permissions": permNames,
			},
		})
	}
}

func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(CtxUserIDKey).(uint)
		userName, _ := c.Locals(CtxUserNameKey).(string)

		if userID != 0 {
			writeAuthLog(userID, userName, "Wylogowanie z systemu", map[string]any{"action": "WYLOGOWANIE"})
		}

		c.Cookie(&fiber.Cookie{
			Name:     AuthCookieName,
			Value:    "",
			HTTPOnly: true,
			Path:     "/",
			Expires:  time.Now().Add(-time.Hour),
		})

		return c.JSON(fiber.Map{"message": "Wylogowano pomyślnie"})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(CtxUserIDKey).(uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Musisz być zalogowany")
		}

		var user models.User
		if err := database.DB.Preload("Permissions").First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Nie znaleziono użytkownika")
		}

		permNames := make([]string, 0, len(user.Permissions))
		for _, p := range user.Permissions {
			permNames = append(permNames, p.Name)
		}

		return c.JSON(fiber.Map{
			"id":          user.ID,
			"login":       user.Login,
			"username":    user.Username,
			"userSurname": user.UserSurname,
			"permissions": permNames,
		})
	}
}

// Wpisy o logowaniach piszemy bezpośrednio (a nie przez pakiet audit),
// bo przy nieudanym logowaniu nie ma jeszcze żadnego kontekstu użytkownika.
func logLoginAttempt(login string, success bool, userID uint, userName string) {
	desc := "Nieudana próba logowania: " + login
	action := "LOGOWANIE_NIEUDANE"
	if success {
		desc = "Zalogowano do systemu: " + login
		action = "LOGOWANIE"
	}
	if userName == "" {
		userName = login
	}
	writeAuthLog(userID, userName, desc, map[string]any{"action": action, "login": login})
}

func writeAuthLog(userID uint, userName, description string, details map[string]any) {
	detailsJSON, _ := json.Marshal(details)
	database.DB.Create(&models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		Description: description,
		Details:     string(detailsJSON),
		Timestamp:   time.Now(),
	})
}
