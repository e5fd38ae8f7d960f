package delivery

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"naturtim-backend/internal/models"

	"gorm.io/gorm"
)

// GenerateBatchNumber zwraca kolejny numer partii w formacie NN/MM/RRRR,
// numerowany w obrębie bieżącego miesiąca. Numery z nienumerycznym
// prefiksem są pomijane przy szukaniu maksimum.
func GenerateBatchNumber(db *gorm.DB, now time.Time) (string, error) {
	month := fmt.Sprintf("%02d", int(now.Month()))
	year := strconv.Itoa(now.Year())
	suffix := "/" + month + "/" + year

	var batches []models.ProductionBatch
	if err := db.Where("batch_number LIKE ?", "%"+suffix).Find(&batches).Error; err != nil {
		return "", err
	}

	maxNumber := 0
	for _, b := range batches {
		parts := strings.Split(b.BatchNumber, "/")
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		if n > maxNumber {
			maxNumber = n
		}
	}

	return fmt.Sprintf("%02d%s", maxNumber+1, suffix), nil
}
