package warehouse

import (
	"log"
	"time"

	"naturtim-backend/internal/database"

	"github.com/go-co-op/gocron"
)

// StartReconciliation uruchamia okresowe przeliczanie agregatów magazynów.
// Zdenormalizowane TotalWeight może się rozjechać z wierszami frakcyjnymi
// (aktualizacje nie są transakcyjne), więc co pięć minut liczymy od nowa.
func StartReconciliation() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	_, err := scheduler.Every(5).Minutes().Do(func() {
		if err := RecalculateTotals(database.DB); err != nil {
			log.Println("[WARN] Przeliczanie stanów magazynów nie powiodło się:", err)
		}
	})
	if err != nil {
		log.Println("[WARN] Nie udało się zarejestrować zadania przeliczania magazynów:", err)
	}

	scheduler.StartAsync()
	return scheduler
}
