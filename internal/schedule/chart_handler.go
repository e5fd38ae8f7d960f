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

type chartProcessView struct {
	ID         string          `json:"id"`
	MachineID  uint            `json:"machineId"`
	DeliveryID uint            `json:"deliveryId"`
	Quantity   float64         `json:"quantity"`
	StartDate  *time.Time      `json:"startDate"`
	EndDate    *time.Time      `json:"endDate"`
	Machine    *models.Machine `json:"machine"`
	Status     ProcessStatus   `json:"status"`
	Delivery   struct {
		BatchNumber string `json:"batchNumber"`
		Product     struct {
			Name string `json:"name"`
		} `json:"product"`
	} `json:"delivery"`
}

// GET /api/wykres: procesy z pełnym oknem czasowym, dla wykresu Gantta.
func ListChartProcessesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var processes []models.ProductionBatch
		if err := database.DB.
			Preload("Machine").Preload("Product").
			Where("lyophilization_start_date IS NOT NULL AND lyophilization_end_date IS NOT NULL").
			Find(&processes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Wystąpił problem podczas pobierania danych")
		}

		views := make([]chartProcessView, 0, len(processes))
		for i := range processes {
			b := &processes[i]
			v := chartProcessView{
				ID:         strconv.FormatUint(uint64(b.ID), 10),
				DeliveryID: b.ID,
				StartDate:  b.LyophilizationStartDate,
				EndDate:    b.LyophilizationEndDate,
				Machine:    b.Machine,
				Status:     DeriveStatus(b),
			}
			if b.MachineID != nil {
				v.MachineID = *b.MachineID
			}
			if b.InitialWeight != nil {
				v.Quantity = *b.InitialWeight
			}
			v.Delivery.BatchNumber = b.BatchNumber
			v.Delivery.Product.Name = productName(b)
			views = append(views, v)
		}

		return c.JSON(views)
	}
}

type ChartUpdateRequest struct {
	ID              uint     `json:"id"`
	ActualStartDate string   `json:"actualStartDate"`
	ActualEndDate   string   `json:"actualEndDate"`
	InputWeight     *float64 `json:"inputWeight"`
	OutputWeight    *float64 `json:"outputWeight"`
}

// PUT /api/wykres: rejestruje faktyczny start/koniec procesu.
// Start z wagą wejściową zdejmuje surowiec z mroźni (ujemny wynik jest
// przycinany do zera); koniec z wagą wyjściową zasila półprodukt i liczy
// procent suchej masy.
func UpdateChartProcessHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ChartUpdateRequest
		if err := c.BodyParser(&body); err != nil || body.ID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowe dane procesu")
		}

		var batch models.ProductionBatch
		if err := database.DB.Preload("Machine").First(&batch, body.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Nie znaleziono partii")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Wystąpił problem podczas aktualizacji danych")
		}

		updates := map[string]any{}

		if body.ActualStartDate != "" {
			start, err := parseDate(body.ActualStartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowa data rozpoczęcia")
			}
			// powtórka z tą samą datą startu niczego nie zmienia, inaczej
			// każdy retry klienta zdejmowałby wagę z mroźni jeszcze raz
			if batch.LyophilizationStartDate == nil || !batch.LyophilizationStartDate.Equal(start) {
				updates["lyophilization_start_date"] = start

				if body.InputWeight != nil && *body.InputWeight > 0 {
					input := *body.InputWeight
					remaining := batch.Mroznia - input
					if remaining < 0 {
						remaining = 0
					}
					updates["initial_weight"] = input
					updates["mroznia"] = remaining

					audit.LogEvent(c, "Rozpoczęto proces liofilizacji: partia "+batch.BatchNumber, fiber.Map{
						"action":             "ROZPOCZECIE_LIOFILIZACJI",
						"partia":             batch.BatchNumber,
						"maszyna":            machineName(&batch),
						"waga_wejsciowa":     fmt.Sprintf("%g kg", input),
						"pozostalo_w_mrozni": fmt.Sprintf("%g kg", remaining),
					})
				} else {
					audit.LogEvent(c, "Aktualizacja czasu rozpoczęcia liofilizacji: partia "+batch.BatchNumber, fiber.Map{
						"action":  "AKTUALIZACJA_CZASU_ROZPOCZECIA",
						"partia":  batch.BatchNumber,
						"maszyna": machineName(&batch),
					})
				}
			}
		}

		if body.ActualEndDate != "" {
			end, err := parseDate(body.ActualEndDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Nieprawidłowa data zakończenia")
			}
			// ta sama zasada co przy starcie: identyczna data końca to no-op
			if batch.LyophilizationEndDate == nil || !batch.LyophilizationEndDate.Equal(end) {
				updates["lyophilization_end_date"] = end

				if body.OutputWeight != nil && *body.OutputWeight > 0 {
					output := *body.OutputWeight
					updates["post_lyophilization_weight"] = output
					updates["polprodukt"] = batch.Polprodukt + output

					dryMass := ""
					if batch.InitialWeight != nil && *batch.InitialWeight > 0 {
						pct := output / *batch.InitialWeight * 100
						updates["dry_mass_percentage"] = pct
						dryMass = fmt.Sprintf("%.2f%%", pct)
					}

					audit.LogEvent(c, "Zakończono proces liofilizacji: partia "+batch.BatchNumber, fiber.Map{
						"action":                      "ZAKONCZENIE_LIOFILIZACJI",
						"partia":                      batch.BatchNumber,
						"maszyna":                     machineName(&batch),
						"waga_wyjsciowa":              fmt.Sprintf("%g kg", output),
						"przeniesiono_do_polproduktu": fmt.Sprintf("%g kg", output),
						"sucha_masa":                  dryMass,
					})
				} else {
					audit.LogEvent(c, "Aktualizacja czasu zakończenia liofilizacji: partia "+batch.BatchNumber, fiber.Map{
						"action":  "AKTUALIZACJA_CZASU_ZAKONCZENIA",
						"partia":  batch.BatchNumber,
						"maszyna": machineName(&batch),
					})
				}
			}
		}

		if len(updates) > 0 {
			if err := database.DB.Model(&batch).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Wystąpił problem podczas aktualizacji danych")
			}
		}

		database.DB.Preload("Machine").Preload("Product").First(&batch, batch.ID)
		return c.JSON(batch)
	}
}
