package schedule

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"naturtim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func newChartApp() *fiber.App {
	app := fiber.New()
	app.Put("/api/wykres", UpdateChartProcessHandler())
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestChartStartMovesWeightFromFreezer(t *testing.T) {
	db := newTestDB(t)
	batch := models.ProductionBatch{BatchNumber: "01/03/2025", Mroznia: 200}
	if err := db.Create(&batch).Error; err != nil {
		t.Fatalf("tworzenie partii: %v", err)
	}

	app := newChartApp()
	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/wykres", fiber.Map{
		"id":              batch.ID,
		"actualStartDate": "2025-03-12T06:00:00Z",
		"inputWeight":     150.0,
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("oczekiwano statusu 200, otrzymano %d", resp.StatusCode)
	}

	var reloaded models.ProductionBatch
	db.First(&reloaded, batch.ID)
	if reloaded.LyophilizationStartDate == nil {
		t.Errorf("data startu nie została zapisana")
	}
	if reloaded.InitialWeight == nil || *reloaded.InitialWeight != 150 {
		t.Errorf("waga wejściowa nie została zapisana")
	}
	if reloaded.Mroznia != 50 {
		t.Errorf("mroźnia: oczekiwano 50, otrzymano %g", reloaded.Mroznia)
	}
}

func TestChartStartClampsFreezerAtZero(t *testing.T) {
	db := newTestDB(t)
	batch := models.ProductionBatch{BatchNumber: "02/03/2025", Mroznia: 100}
	db.Create(&batch)

	app := newChartApp()
	resp, _ := app.Test(jsonRequest(http.MethodPut, "/api/wykres", fiber.Map{
		"id":              batch.ID,
		"actualStartDate": "2025-03-12T06:00:00Z",
		"inputWeight":     120.0,
	}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("oczekiwano statusu 200, otrzymano %d", resp.StatusCode)
	}

	var reloaded models.ProductionBatch
	db.First(&reloaded, batch.ID)
	if reloaded.Mroznia != 0 {
		t.Errorf("mroźnia nie może zejść poniżej zera, jest %g", reloaded.Mroznia)
	}
}

func TestChartRepeatedStartDoesNotDrainFreezer(t *testing.T) {
	db := newTestDB(t)
	batch := models.ProductionBatch{BatchNumber: "05/03/2025", Mroznia: 100}
	db.Create(&batch)

	app := newChartApp()
	body := fiber.Map{
		"id":              batch.ID,
		"actualStartDate": "2025-03-12T06:00:00Z",
		"inputWeight":     40.0,
	}

	for i := 0; i < 2; i++ {
		resp, err := app.Test(jsonRequest(http.MethodPut, "/api/wykres", body))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("żądanie %d: oczekiwano statusu 200, otrzymano %d", i+1, resp.StatusCode)
		}
	}

	var reloaded models.ProductionBatch
	db.First(&reloaded, batch.ID)
	if reloaded.Mroznia != 60 {
		t.Errorf("powtórzony identyczny start nie może zdejmować wagi drugi raz: oczekiwano 60, otrzymano %g", reloaded.Mroznia)
	}
	if reloaded.InitialWeight == nil || *reloaded.InitialWeight != 40 {
		t.Errorf("waga wejściowa: oczekiwano 40, otrzymano %v", reloaded.InitialWeight)
	}
}

func TestChartRepeatedEndDoesNotInflateSemiFinished(t *testing.T) {
	db := newTestDB(t)
	weight := 100.0
	batch := models.ProductionBatch{
		BatchNumber:   "06/03/2025",
		InitialWeight: &weight,
	}
	db.Create(&batch)

	app := newChartApp()
	body := fiber.Map{
		"id":            batch.ID,
		"actualEndDate": "2025-03-13T08:00:00Z",
		"outputWeight":  12.0,
	}

	for i := 0; i < 2; i++ {
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/api/wykres", body))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("żądanie %d: oczekiwano statusu 200, otrzymano %d", i+1, resp.StatusCode)
		}
	}

	var reloaded models.ProductionBatch
	db.First(&reloaded, batch.ID)
	if reloaded.Polprodukt != 12 {
		t.Errorf("powtórzony identyczny koniec nie może dublować półproduktu: oczekiwano 12, otrzymano %g", reloaded.Polprodukt)
	}
}

func TestChartEndFillsSemiFinishedAndDryMass(t *testing.T) {
	db := newTestDB(t)
	weight := 150.0
	batch := models.ProductionBatch{
		BatchNumber:   "03/03/2025",
		InitialWeight: &weight,
		Polprodukt:    5,
	}
	db.Create(&batch)

	app := newChartApp()
	resp, _ := app.Test(jsonRequest(http.MethodPut, "/api/wykres", fiber.Map{
		"id":            batch.ID,
		"actualEndDate": "2025-03-13T08:00:00Z",
		"outputWeight":  18.0,
	}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("oczekiwano statusu 200, otrzymano %d", resp.StatusCode)
	}

	var reloaded models.ProductionBatch
	db.First(&reloaded, batch.ID)
	if reloaded.LyophilizationEndDate == nil {
		t.Errorf("data zakończenia nie została zapisana")
	}
	if reloaded.PostLyophilizationWeight == nil || *reloaded.PostLyophilizationWeight != 18 {
		t.Errorf("waga wyjściowa nie została zapisana")
	}
	if reloaded.Polprodukt != 23 {
		t.Errorf("półprodukt: oczekiwano 23, otrzymano %g", reloaded.Polprodukt)
	}
	if reloaded.DryMassPercentage == nil || math.Abs(*reloaded.DryMassPercentage-12) > 1e-9 {
		t.Errorf("sucha masa: oczekiwano 12%%, otrzymano %v", reloaded.DryMassPercentage)
	}
}

func TestChartUpdateUnknownBatch(t *testing.T) {
	newTestDB(t)
	app := newChartApp()

	resp, _ := app.Test(jsonRequest(http.MethodPut, "/api/wykres", fiber.Map{
		"id":              9999,
		"actualStartDate": "2025-03-12T06:00:00Z",
	}))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("nieistniejąca partia: oczekiwano 404, otrzymano %d", resp.StatusCode)
	}
}
