package schedule

import (
	"testing"
	"time"

	"naturtim-backend/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestDeriveStatus(t *testing.T) {
	start := time.Date(2025, time.March, 10, 6, 0, 0, 0, time.UTC)
	end := start.Add(22 * time.Hour)

	cases := []struct {
		name  string
		batch models.ProductionBatch
		want  ProcessStatus
	}{
		{
			name:  "swiezo przyjeta partia",
			batch: models.ProductionBatch{},
			want:  StatusPlanned,
		},
		{
			name: "zaplanowana ale nierozpoczeta",
			batch: models.ProductionBatch{
				ScheduledDate: timePtr(start),
			},
			want: StatusPlanned,
		},
		{
			name: "sama data startu bez wagi",
			batch: models.ProductionBatch{
				LyophilizationStartDate: timePtr(start),
			},
			want: StatusPlanned,
		},
		{
			name: "rozpoczeta",
			batch: models.ProductionBatch{
				InitialWeight:           floatPtr(120),
				LyophilizationStartDate: timePtr(start),
			},
			want: StatusStarted,
		},
		{
			name: "rozpoczeta z sama data konca",
			batch: models.ProductionBatch{
				InitialWeight:           floatPtr(120),
				LyophilizationStartDate: timePtr(start),
				LyophilizationEndDate:   timePtr(end),
			},
			want: StatusStarted,
		},
		{
			name: "zakonczona",
			batch: models.ProductionBatch{
				InitialWeight:            floatPtr(120),
				LyophilizationStartDate:  timePtr(start),
				PostLyophilizationWeight: floatPtr(18),
				LyophilizationEndDate:    timePtr(end),
			},
			want: StatusCompleted,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveStatus(&tc.batch); got != tc.want {
				t.Errorf("oczekiwano %s, otrzymano %s", tc.want, got)
			}
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2025, time.March, 10, 6, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	b := models.ProductionBatch{
		LyophilizationStartDate: timePtr(start),
		LyophilizationEndDate:   timePtr(end),
	}
	if got := DurationMinutes(&b); got != 90 {
		t.Errorf("oczekiwano 90 minut, otrzymano %d", got)
	}
	if got := DurationMinutes(&models.ProductionBatch{}); got != 0 {
		t.Errorf("brak dat powinien dawać 0 minut, otrzymano %d", got)
	}
}
