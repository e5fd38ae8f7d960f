package audit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

type auditListResponse struct {
	Data       []models.AuditLog `json:"data"`
	Pagination paginationInfo    `json:"pagination"`
}

func seedAuditLogs(t *testing.T, db *gorm.DB) {
	t.Helper()
	base := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	logs := []models.AuditLog{
		{UserID: 1, UserName: "Jan Kowalski", Description: "Przyjęto dostawę: partia 01/03/2025",
			Details: `{"action":"PRZYJECIE_DOSTAWY","produkt":"Malina"}`, Timestamp: base},
		{UserID: 2, UserName: "Anna Nowak", Description: "Przypisano frakcję do partii 01/03/2025",
			Details: `{"action":"PRZYPISANIE_FRAKCJI","frakcja":"Grys"}`, Timestamp: base.Add(24 * time.Hour)},
		{UserID: 1, UserName: "Jan Kowalski", Description: "Inwentaryzacja partii 02/03/2025",
			Details: `{"action":"INWENTARYZACJA","magazyn":"Mroźnia"}`, Timestamp: base.Add(48 * time.Hour)},
	}
	for i := range logs {
		if err := db.Create(&logs[i]).Error; err != nil {
			t.Fatalf("tworzenie zdarzenia: %v", err)
		}
	}
}

func listLogs(t *testing.T, app *fiber.App, query string) auditListResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/audit-log"+query, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("oczekiwano statusu 200, otrzymano %d", resp.StatusCode)
	}
	var out auditListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("dekodowanie odpowiedzi: %v", err)
	}
	return out
}

func newAuditApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/audit-log", ListAuditLogsHandler())
	return app
}

func TestListAuditLogsSearchTerm(t *testing.T) {
	db := newTestDB(t)
	seedAuditLogs(t, db)
	app := newAuditApp()

	out := listLogs(t, app, "?searchTerm=Malina")
	if len(out.Data) != 1 {
		t.Fatalf("searchTerm w szczegółach: oczekiwano 1 zdarzenia, otrzymano %d", len(out.Data))
	}
	if out.Data[0].UserName != "Jan Kowalski" {
		t.Errorf("nieoczekiwane zdarzenie: %+v", out.Data[0])
	}

	out = listLogs(t, app, "?searchTerm=Nowak")
	if len(out.Data) != 1 {
		t.Errorf("searchTerm po nazwie użytkownika: oczekiwano 1 zdarzenia, otrzymano %d", len(out.Data))
	}
}

func TestListAuditLogsPagination(t *testing.T) {
	db := newTestDB(t)
	seedAuditLogs(t, db)
	app := newAuditApp()

	out := listLogs(t, app, "?page=2&pageSize=2")
	if len(out.Data) != 1 {
		t.Errorf("druga strona: oczekiwano 1 zdarzenia, otrzymano %d", len(out.Data))
	}
	if out.Pagination.Total != 3 || out.Pagination.PageCount != 2 {
		t.Errorf("paginacja: total %d, pageCount %d", out.Pagination.Total, out.Pagination.PageCount)
	}
}

func TestListAuditLogsSortAndDateRange(t *testing.T) {
	db := newTestDB(t)
	seedAuditLogs(t, db)
	app := newAuditApp()

	out := listLogs(t, app, "?sortDirection=asc")
	if len(out.Data) != 3 {
		t.Fatalf("oczekiwano 3 zdarzeń, otrzymano %d", len(out.Data))
	}
	if !out.Data[0].Timestamp.Before(out.Data[2].Timestamp) {
		t.Errorf("sortowanie rosnące nie działa")
	}

	// domyślnie malejąco
	out = listLogs(t, app, "")
	if !out.Data[0].Timestamp.After(out.Data[2].Timestamp) {
		t.Errorf("domyślne sortowanie powinno być malejące")
	}

	out = listLogs(t, app, "?fromDate=2025-03-11&toDate=2025-03-11")
	if len(out.Data) != 1 {
		t.Errorf("zakres dat: oczekiwano 1 zdarzenia, otrzymano %d", len(out.Data))
	}
}
