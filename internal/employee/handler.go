package employee

import (
	"errors"
	"strings"

	"naturtim-backend/internal/audit"
	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type employeeView struct {
	ID          uint     `json:"id"`
	Login       string   `json:"login"`
	Username    string   `json:"username"`
	UserSurname string   `json:"userSurname"`
	Permissions []string `json:"permissions"`
}

func toEmployeeView(u *models.User) employeeView {
	perms := make([]string, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		perms = append(perms, p.Name)
	}
	return employeeView{
		ID:          u.ID,
		Login:       u.Login,
		Username:    u.Username,
		UserSurname: u.UserSurname,
		Permissions: perms,
	}
}

// GET /api/pracownicy: pracownicy z uprawnieniami, bez haseł.
func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Preload("Permissions").Order("login asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd pobierania pracowników")
		}

		views := make([]employeeView, 0, len(users))
		for i := range users {
			views = append(views, toEmployeeView(&users[i]))
		}
		return c.JSON(views)
	}
}

type CreateEmployeeRequest struct {
	Login       string   `json:"login"`
	Password    string   `json:"password"`
	Username    string   `json:"username"`
	UserSurname string   `json:"userSurname"`
	Permissions []string `json:"permissions"`
}

// POST /api/pracownicy
func CreateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane żądania")
		}

		body.Login = strings.TrimSpace(body.Login)
		if len(body.Login) < 3 {
			return fiber.NewError(fiber.StatusBadRequest, "Login musi mieć co najmniej 3 znaki")
		}
		if len(body.Password) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Hasło musi mieć co najmniej 6 znaków")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), 10)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd tworzenia pracownika")
		}

		perms, err := findPermissionsByName(body.Permissions)
		if err != nil {
			return err
		}

		user := models.User{
			Login:       body.Login,
			Password:    string(hashed),
			Username:    strings.TrimSpace(body.Username),
			UserSurname: strings.TrimSpace(body.UserSurname),
			Permissions: perms,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Pracownik o podanym loginie już istnieje")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd tworzenia pracownika")
		}

		audit.LogEvent(c, "Dodano pracownika: "+user.Login, fiber.Map{
			"action":      "DODANIE_PRACOWNIKA",
			"login":       user.Login,
			"uprawnienia": body.Permissions,
		})

		return c.Status(fiber.StatusCreated).JSON(toEmployeeView(&user))
	}
}

type UpdateEmployeeRequest struct {
	ID          uint      `json:"id"`
	Password    string    `json:"password"`
	Username    *string   `json:"username"`
	UserSurname *string   `json:"userSurname"`
	Permissions *[]string `json:"permissions"`
}

// PUT /api/pracownicy: aktualizuje dane, hasło i zestaw uprawnień.
// Różnicę uprawnień (dodane/odebrane) zapisujemy w dzienniku zdarzeń.
func UpdateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateEmployeeRequest
		if err := c.BodyParser(&body); err != nil || body.ID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane żądania")
		}

		var user models.User
		if err := database.DB.Preload("Permissions").First(&user, body.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Nie znaleziono pracownika")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd aktualizacji pracownika")
		}

		if body.Username != nil {
			user.Username = strings.TrimSpace(*body.Username)
		}
		if body.UserSurname != nil {
			user.UserSurname = strings.TrimSpace(*body.UserSurname)
		}
		if body.Password != "" {
			if len(body.Password) < 6 {
				return fiber.NewError(fiber.StatusBadRequest, "Hasło musi mieć co najmniej 6 znaków")
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), 10)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Błąd aktualizacji pracownika")
			}
			user.Password = string(hashed)
		}

		details := fiber.Map{
			"action": "AKTUALIZACJA_PRACOWNIKA",
			"login":  user.Login,
		}

		if body.Permissions != nil {
			newPerms, err := findPermissionsByName(*body.Permissions)
			if err != nil {
				return err
			}

			added, removed := diffPermissions(user.Permissions, newPerms)
			if len(added) > 0 {
				details["dodane_uprawnienia"] = added
			}
			if len(removed) > 0 {
				details["odebrane_uprawnienia"] = removed
			}

			if err := database.DB.Model(&user).Association("Permissions").Replace(newPerms); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Błąd aktualizacji uprawnień")
			}
			user.Permissions = newPerms
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd aktualizacji pracownika")
		}

		audit.LogEvent(c, "Zaktualizowano pracownika: "+user.Login, details)

		return c.JSON(toEmployeeView(&user))
	}
}

type DeleteEmployeeRequest struct {
	ID uint `json:"id"`
}

// DELETE /api/pracownicy
func DeleteEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DeleteEmployeeRequest
		if err := c.BodyParser(&body); err != nil || body.ID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane żądania")
		}

		var user models.User
		if err := database.DB.First(&user, body.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Nie znaleziono pracownika")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd usuwania pracownika")
		}

		if err := database.DB.Select("Permissions").Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd usuwania pracownika")
		}

		audit.LogEvent(c, "Usunięto pracownika: "+user.Login, fiber.Map{
			"action": "USUNIECIE_PRACOWNIKA",
			"login":  user.Login,
		})

		return c.JSON(fiber.Map{"success": true, "message": "Pracownik został usunięty"})
	}
}

func findPermissionsByName(names []string) ([]models.Permission, error) {
	if len(names) == 0 {
		return []models.Permission{}, nil
	}
	var perms []models.Permission
	if err := database.DB.Where("name IN ?", names).Find(&perms).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Błąd pobierania uprawnień")
	}
	if len(perms) != len(names) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nieznane uprawnienie na liście")
	}
	return perms, nil
}

func diffPermissions(old, new []models.Permission) (added, removed []string) {
	oldSet := make(map[string]bool, len(old))
	for _, p := range old {
		oldSet[p.Name] = true
	}
	newSet := make(map[string]bool, len(new))
	for _, p := range new {
		newSet[p.Name] = true
		if !oldSet[p.Name] {
			added = append(added, p.Name)
		}
	}
	for _, p := range old {
		if !newSet[p.Name] {
			removed = append(removed, p.Name)
		}
	}
	return added, removed
}
