package schedule

import (
	"time"

	"naturtim-backend/internal/models"
)

type ProcessStatus string

const (
	StatusPlanned   ProcessStatus = "PLANNED"
	StatusStarted   ProcessStatus = "STARTED"
	StatusCompleted ProcessStatus = "COMPLETED"
)

// DeriveStatus wyprowadza status procesu z obecności pól partii.
// Statusu nigdy nie zapisujemy w bazie, więc nie ma się co rozjechać.
func DeriveStatus(b *models.ProductionBatch) ProcessStatus {
	if b.InitialWeight != nil && b.LyophilizationStartDate != nil {
		if b.PostLyophilizationWeight != nil && b.LyophilizationEndDate != nil {
			return StatusCompleted
		}
		return StatusStarted
	}
	return StatusPlanned
}

// DurationMinutes liczy zaplanowany czas procesu w minutach.
func DurationMinutes(b *models.ProductionBatch) int {
	if b.LyophilizationStartDate == nil || b.LyophilizationEndDate == nil {
		return 0
	}
	return int(b.LyophilizationEndDate.Sub(*b.LyophilizationStartDate).Round(time.Minute).Minutes())
}
