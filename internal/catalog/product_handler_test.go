package catalog

import (
	"bytes"
	"encoding/json"
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

func newProductApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/produkty", CreateProductHandler())
	app.Delete("/api/produkty", DeleteProductHandler())
	return app
}

func TestCreateProduct(t *testing.T) {
	db := newTestDB(t)
	app := newProductApp()

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/produkty", fiber.Map{"name": "Wiśnia"}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("oczekiwano statusu 201, otrzymano %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Product{}).Where("name = ?", "Wiśnia").Count(&count)
	if count != 1 {
		t.Errorf("produkt nie został zapisany")
	}

	resp, _ = app.Test(jsonRequest(http.MethodPost, "/api/produkty", fiber.Map{"name": "   "}))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("pusta nazwa: oczekiwano 400, otrzymano %d", resp.StatusCode)
	}
}

func TestDeleteProductReferencedByBatch(t *testing.T) {
	db := newTestDB(t)
	product := models.Product{Name: "Jabłko"}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("tworzenie produktu: %v", err)
	}
	if err := db.Create(&models.ProductionBatch{BatchNumber: "01/03/2025", ProductID: &product.ID}).Error; err != nil {
		t.Fatalf("tworzenie partii: %v", err)
	}

	app := newProductApp()
	resp, _ := app.Test(jsonRequest(http.MethodDelete, "/api/produkty", fiber.Map{"id": product.ID}))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("produkt powiązany z partią: oczekiwano 400, otrzymano %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 1 {
		t.Errorf("produkt nie powinien zostać usunięty")
	}
}

func TestDeleteProduct(t *testing.T) {
	db := newTestDB(t)
	product := models.Product{Name: "Gruszka"}
	db.Create(&product)

	app := newProductApp()
	resp, _ := app.Test(jsonRequest(http.MethodDelete, "/api/produkty", fiber.Map{"id": product.ID}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("oczekiwano statusu 200, otrzymano %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Errorf("produkt powinien zostać usunięty")
	}

	resp, _ = app.Test(jsonRequest(http.MethodDelete, "/api/produkty", fiber.Map{"id": 999}))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("nieistniejący produkt: oczekiwano 404, otrzymano %d", resp.StatusCode)
	}
}
