package audit

import (
	"math"
	"strconv"
	"time"

	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type paginationInfo struct {
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	PageCount int   `json:"pageCount"`
}

// GET /api/audit-log?searchTerm=&fromDate=&toDate=&page=&pageSize=&sortDirection=
// searchTerm przeszukuje nazwę użytkownika oraz JSON ze szczegółami
// (tam siedzą m.in. numery partii).
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		searchTerm := c.Query("searchTerm")
		fromDate := c.Query("fromDate")
		toDate := c.Query("toDate")

		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		pageSize, err := strconv.Atoi(c.Query("pageSize", "20"))
		if err != nil || pageSize < 1 {
			pageSize = 20
		}

		sortDirection := c.Query("sortDirection", "desc")
		if sortDirection != "asc" && sortDirection != "desc" {
			sortDirection = "desc"
		}

		dbq := database.DB.Model(&models.AuditLog{})

		if searchTerm != "" {
			like := "%" + searchTerm + "%"
			dbq = dbq.Where("user_name LIKE ? OR details LIKE ?", like, like)
		}

		if fromDate != "" {
			if from, err := time.Parse("2006-01-02", fromDate); err == nil {
				dbq = dbq.Where("timestamp >= ?", from)
			}
		}
		if toDate != "" {
			if to, err := time.Parse("2006-01-02", toDate); err == nil {
				// włącznie z całym dniem końcowym
				end := to.Add(24*time.Hour - time.Nanosecond)
				dbq = dbq.Where("timestamp <= ?", end)
			}
		}

		var total int64
		if err := dbq.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Wystąpił błąd podczas pobierania zdarzeń")
		}

		var logs []models.AuditLog
		if err := dbq.
			Order("timestamp " + sortDirection).
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Wystąpił błąd podczas pobierania zdarzeń")
		}

		return c.JSON(fiber.Map{
			"data": logs,
			"pagination": paginationInfo{
				Total:     total,
				Page:      page,
				PageSize:  pageSize,
				PageCount: int(math.Ceil(float64(total) / float64(pageSize))),
			},
		})
	}
}
