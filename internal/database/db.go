package database

import (
	"log"

	"naturtim-backend/internal/config"
	"naturtim-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError zamienia kody sterownika na gorm.ErrDuplicatedKey /
	// gorm.ErrRecordNotFound, na których rozgałęziają się handlery.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Nie można połączyć się z bazą danych: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Błąd AutoMigrate: %v", err)
	}

	if err := Seed(DB); err != nil {
		log.Fatalf("Błąd seedowania danych referencyjnych: %v", err)
	}

	log.Println("Połączenie z bazą danych gotowe. Migracja zakończona.")
}

// Migrate tworzy/aktualizuje schemat. Wydzielone, bo testy migrują
// bazę SQLite w pamięci tym samym kodem.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&models.Product{},
		&models.Supplier{},
		&models.Recipient{},
		&models.Machine{},
		&models.Fraction{},
		&models.BatchStatus{},
		&models.ProductionBatch{},
		&models.BatchFraction{},
		&models.Warehouse{},
		&models.WarehouseFraction{},
		&models.AuditLog{},
	)
}
