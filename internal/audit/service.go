package audit

import (
	"encoding/json"
	"log"
	"time"

	"naturtim-backend/internal/auth"
	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LogEvent zapisuje zdarzenie w dzienniku w imieniu zalogowanego użytkownika.
// Brak użytkownika w kontekście to nie błąd, logujemy ostrzeżenie i nic
// nie zapisujemy, żeby operacja domenowa nie wywróciła się na audycie.
func LogEvent(c *fiber.Ctx, description string, details any) {
	userID, ok := c.Locals(auth.CtxUserIDKey).(uint)
	if !ok || userID == 0 {
		log.Println("[WARN] Próba zapisania zdarzenia bez zalogowanego użytkownika:", description)
		return
	}

	userName, _ := c.Locals(auth.CtxUserNameKey).(string)
	if userName == "" {
		userName, _ = c.Locals(auth.CtxUserLoginKey).(string)
	}

	detailsStr := ""
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			detailsStr = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		Description: description,
		Details:     detailsStr,
		Timestamp:   time.Now(),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Println("[WARN] Nie udało się zapisać zdarzenia:", err)
	}
}
