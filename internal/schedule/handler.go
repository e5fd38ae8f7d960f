package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"naturtim-backend/internal/audit"
	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProcessRequest struct {
	ID         uint   `json:"id"`
	MachineID  uint   `json:"machineId"`
	DeliveryID uint   `json:"deliveryId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

type processView struct {
	ID         string        `json:"id"`
	MachineID  uint          `json:"machineId"`
	DeliveryID uint          `json:"deliveryId"`
	StartDate  *time.Time    `json:"startDate"`
	EndDate    *time.Time    `json:"endDate"`
	Machine    *models.Machine `json:"machine"`
	Status     ProcessStatus `json:"status"`
	Delivery   deliveryView  `json:"delivery"`
}

type deliveryView struct {
	ID          uint    `json:"id"`
	BatchNumber string  `json:"batchNumber"`
	Mroznia     float64 `json:"mroznia"`
	CreatedAt   string  `json:"createdAt"`
	Product     struct {
		Name string `json:"name"`
	} `json:"product"`
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}

func productName(b *models.ProductionBatch) string {
	if b.Product != nil {
		return b.Product.Name
	}
	return "Nieznany produkt"
}

func machineName(b *models.ProductionBatch) string {
	if b.Machine != nil {
		return b.Machine.Name
	}
	return "Nieznana maszyna"
}

// GET /api/harmonogram: maszyny, dostawy i procesy w jednym pakiecie.
func GetScheduleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var machines []models.Machine
		if err := database.DB.Find(&machines).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się pobrać danych harmonogramu")
		}

		var deliveries []models.ProductionBatch
		if err := database.DB.Preload("Product").Order("created_at desc").Find(&deliveries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się pobrać danych harmonogramu")
		}

		var processes []models.ProductionBatch
		if err := database.DB.
			Preload("Machine").Preload("Product").
			Where("machine_id IS NOT NULL").
			Where("lyophilization_start_date IS NOT NULL OR scheduled_date IS NOT NULL").
			Find(&processes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się pobrać danych harmonogramu")
		}

		deliveryViews := make([]deliveryView, 0, len(deliveries))
		for i := range deliveries {
			deliveryViews = append(deliveryViews, toDeliveryView(&deliveries[i]))
		}

		processViews := make([]processView, 0, len(processes))
		for i := range processes {
			processViews = append(processViews, toProcessView(&processes[i]))
		}

		return c.JSON(fiber.Map{
			"machines":   machines,
			"deliveries": deliveryViews,
			"processes":  processViews,
		})
	}
}

func toDeliveryView(b *models.ProductionBatch) deliveryView {
	v := deliveryView{
		ID:          b.ID,
		BatchNumber: b.BatchNumber,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
	if b.InitialWeight != nil {
		v.Mroznia = *b.InitialWeight
	}
	v.Product.Name = productName(b)
	return v
}

func toProcessView(b *models.ProductionBatch) processView {
	v := processView{
		ID:         strconv.FormatUint(uint64(b.ID), 10),
		DeliveryID: b.ID,
		Machine:    b.Machine,
		Status:     DeriveStatus(b),
		Delivery:   toDeliveryView(b),
	}
	if b.MachineID != nil {
		v.MachineID = *b.MachineID
	}

	v.StartDate = b.LyophilizationStartDate
	if v.StartDate == nil {
		v.StartDate = b.ScheduledDate
	}
	v.EndDate = b.LyophilizationEndDate
	if v.EndDate == nil && b.ScheduledDate != nil {
		// brak daty końca: przyjmujemy domyślne 8 godzin procesu
		end := b.ScheduledDate.Add(8 * time.Hour)
		v.EndDate = &end
	}
	return v
}

// POST /api/harmonogram: przypisuje partię do maszyny w zadanym oknie.
// Kolizje okien na tej samej maszynie sprawdza frontend; serwer zapisuje
// harmonogram tak, jak go dostał.
func AddProcessHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProcessRequest
		if err := c.BodyParser(&body); err != nil || body.DeliveryID == 0 || body.MachineID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane procesu")
		}

		result, err := applyProcess(body.DeliveryID, body)
		if err != nil {
			return err
		}

		audit.LogEvent(c, "Dodano nowy proces liofilizacji: partia "+result.BatchNumber, fiber.Map{
			"action":       "DODANIE_PROCESU",
			"partia":       result.BatchNumber,
			"maszyna":      result.MachineName,
			"czas_trwania": fmt.Sprintf("%d minut", result.Duration),
		})

		return c.Status(fiber.StatusCreated).JSON(result)
	}
}

// PUT /api/harmonogram
func UpdateProcessHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProcessRequest
		if err := c.BodyParser(&body); err != nil || body.ID == 0 || body.MachineID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane procesu")
		}

		result, err := applyProcess(body.ID, body)
		if err != nil {
			return err
		}

		audit.LogEvent(c, "Zaktualizowano proces liofilizacji: partia "+result.BatchNumber, fiber.Map{
			"action":       "AKTUALIZACJA_PROCESU",
			"partia":       result.BatchNumber,
			"maszyna":      result.MachineName,
			"czas_trwania": fmt.Sprintf("%d minut", result.Duration),
		})

		return c.JSON(result)
	}
}

type processResult struct {
	ID          string     `json:"id"`
	MachineID   uint       `json:"machineId"`
	DeliveryID  uint       `json:"deliveryId"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	BatchNumber string     `json:"batchNumber"`
	MachineName string     `json:"machineName"`
	Duration    int        `json:"duration"`
}

func applyProcess(batchID uint, body ProcessRequest) (*processResult, error) {
	start, err := parseDate(body.StartDate)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowa data rozpoczęcia")
	}
	end, err := parseDate(body.EndDate)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowa data zakończenia")
	}

	var batch models.ProductionBatch
	if err := database.DB.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Nie znaleziono partii")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Nie udało się zapisać procesu")
	}

	batch.MachineID = &body.MachineID
	batch.LyophilizationStartDate = &start
	batch.LyophilizationEndDate = &end
	batch.ScheduledDate = &start

	if err := database.DB.Save(&batch).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Nie udało się zapisać procesu")
	}

	database.DB.Preload("Machine").First(&batch, batch.ID)

	return &processResult{
		ID:          strconv.FormatUint(uint64(batch.ID), 10),
		MachineID:   body.MachineID,
		DeliveryID:  batch.ID,
		StartDate:   batch.LyophilizationStartDate,
		EndDate:     batch.LyophilizationEndDate,
		BatchNumber: batch.BatchNumber,
		MachineName: machineName(&batch),
		Duration:    DurationMinutes(&batch),
	}, nil
}

// DELETE /api/harmonogram?id=: czyści pola procesu na partii (partia
// zostaje). Rozpoczętego procesu nie wolno usunąć.
func DeleteProcessHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := c.Query("id")
		if idStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Brakujący parametr id")
		}
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowy parametr id")
		}

		var batch models.ProductionBatch
		if err := database.DB.Preload("Machine").First(&batch, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Proces o ID %d nie istnieje", id))
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się usunąć procesu")
		}

		if batch.InitialWeight != nil && batch.LyophilizationStartDate != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nie można usunąć rozpoczętego procesu liofilizacji")
		}

		duration := DurationMinutes(&batch)
		mName := machineName(&batch)

		if err := database.DB.Model(&batch).Updates(map[string]any{
			"machine_id":                nil,
			"lyophilization_start_date": nil,
			"lyophilization_end_date":   nil,
			"scheduled_date":            nil,
		}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nie udało się usunąć procesu")
		}

		audit.LogEvent(c, "Usunięto proces liofilizacji: partia "+batch.BatchNumber, fiber.Map{
			"action":       "USUNIECIE_PROCESU",
			"partia":       batch.BatchNumber,
			"maszyna":      mName,
			"czas_trwania": fmt.Sprintf("%d minut", duration),
		})

		return c.JSON(fiber.Map{
			"success":     true,
			"message":     fmt.Sprintf("Proces %d usunięty", id),
			"batchNumber": batch.BatchNumber,
			"machineName": mName,
			"duration":    duration,
		})
	}
}
