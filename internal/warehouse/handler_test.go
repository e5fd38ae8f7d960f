package warehouse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("otwarcie bazy testowej: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("uchwyt sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migracja bazy testowej: %v", err)
	}
	database.DB = db
	return db
}

func jsonRequest(method, target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newWarehouseApp() *fiber.App {
	app := fiber.New()
	app.Patch("/api/magazyny/warehouses/:id", PatchWarehouseHandler())
	return app
}

func TestPatchWarehouseUpsertsFractionAndRecalculates(t *testing.T) {
	db := newTestDB(t)
	wh := models.Warehouse{Name: NameGotowyProdukt}
	if err := db.Create(&wh).Error; err != nil {
		t.Fatalf("tworzenie magazynu: %v", err)
	}
	frac := models.Fraction{Name: "Proszek"}
	if err := db.Create(&frac).Error; err != nil {
		t.Fatalf("tworzenie frakcji: %v", err)
	}

	app := newWarehouseApp()
	target := fmt.Sprintf("/api/magazyny/warehouses/%d", wh.ID)

	resp, err := app.Test(jsonRequest(http.MethodPatch, target, fiber.Map{
		"fractionId":  frac.ID,
		"newQuantity": 25.0,
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("oczekiwano statusu 200, otrzymano %d", resp.StatusCode)
	}

	var row models.WarehouseFraction
	if err := db.Where("warehouse_id = ? AND fraction_id = ?", wh.ID, frac.ID).First(&row).Error; err != nil {
		t.Fatalf("wiersz frakcyjny nie został utworzony: %v", err)
	}
	if row.Weight != 25 {
		t.Errorf("waga wiersza: oczekiwano 25, otrzymano %g", row.Weight)
	}

	var reloaded models.Warehouse
	db.First(&reloaded, wh.ID)
	if reloaded.TotalWeight != 25 {
		t.Errorf("agregat magazynu: oczekiwano 25, otrzymano %g", reloaded.TotalWeight)
	}

	// druga inwentaryzacja nadpisuje stan, nie dokłada
	resp, _ = app.Test(jsonRequest(http.MethodPatch, target, fiber.Map{
		"fractionId":  frac.ID,
		"newQuantity": 10.0,
	}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("druga inwentaryzacja: oczekiwano 200, otrzymano %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.WarehouseFraction{}).Count(&count)
	if count != 1 {
		t.Errorf("oczekiwano jednego wiersza frakcyjnego, jest %d", count)
	}
	db.First(&reloaded, wh.ID)
	if reloaded.TotalWeight != 10 {
		t.Errorf("agregat po nadpisaniu: oczekiwano 10, otrzymano %g", reloaded.TotalWeight)
	}
}

func TestPatchWarehouseValidation(t *testing.T) {
	db := newTestDB(t)
	wh := models.Warehouse{Name: NameKartony}
	db.Create(&wh)
	frac := models.Fraction{Name: "Grys"}
	db.Create(&frac)

	app := newWarehouseApp()

	resp, _ := app.Test(jsonRequest(http.MethodPatch,
		fmt.Sprintf("/api/magazyny/warehouses/%d", wh.ID),
		fiber.Map{"fractionId": frac.ID, "newQuantity": -3.0}))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("ujemny stan: oczekiwano 400, otrzymano %d", resp.StatusCode)
	}

	resp, _ = app.Test(jsonRequest(http.MethodPatch, "/api/magazyny/warehouses/999",
		fiber.Map{"fractionId": frac.ID, "newQuantity": 5.0}))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("nieistniejący magazyn: oczekiwano 404, otrzymano %d", resp.StatusCode)
	}
}

func TestRecalculateTotalsSumsFractionRows(t *testing.T) {
	db := newTestDB(t)
	wh := models.Warehouse{Name: NamePolfabrykat, TotalWeight: 999}
	db.Create(&wh)
	frac := models.Fraction{Name: "Plaster"}
	db.Create(&frac)

	db.Create(&models.WarehouseFraction{WarehouseID: wh.ID, FractionID: frac.ID, Weight: 12.5})
	db.Create(&models.WarehouseFraction{WarehouseID: wh.ID, FractionID: frac.ID, Weight: 7.5})

	if err := RecalculateTotals(db); err != nil {
		t.Fatalf("RecalculateTotals: %v", err)
	}

	var reloaded models.Warehouse
	db.First(&reloaded, wh.ID)
	if reloaded.TotalWeight != 20 {
		t.Errorf("agregat: oczekiwano 20, otrzymano %g", reloaded.TotalWeight)
	}
}
