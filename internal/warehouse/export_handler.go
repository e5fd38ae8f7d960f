package warehouse

import (
	"fmt"
	"time"

	"naturtim-backend/internal/database"
	"naturtim-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/magazyny/export: pełny stan magazynowy wszystkich partii
// w arkuszu xlsx, do raportów i inwentaryzacji papierowej.
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var batches []models.ProductionBatch
		if err := database.DB.
			Preload("Product").Preload("Supplier").Preload("Fraction").
			Order("batch_number asc").
			Find(&batches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd eksportu stanów magazynowych")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Magazyny"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Numer partii", "Produkt", "Dostawca", "Frakcja",
			"Mroźnia (kg)", "Półprodukt (kg)", "Gotowy produkt (kg)", "Kartony",
			"Data dostawy", "Ostatnia inwentaryzacja"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for rowIdx, b := range batches {
			row := rowIdx + 2
			productName := ""
			if b.Product != nil {
				productName = b.Product.Name
			}
			supplierName := ""
			if b.Supplier != nil {
				supplierName = b.Supplier.Name
			}
			fractionName := ""
			if b.Fraction != nil {
				fractionName = b.Fraction.Name
			}
			deliveryDate := ""
			if b.DeliveryDate != nil {
				deliveryDate = b.DeliveryDate.Format("2006-01-02")
			}
			lastInventory := ""
			if b.LastInventoryAt != nil {
				lastInventory = b.LastInventoryAt.Format("2006-01-02 15:04")
			}

			values := []any{b.BatchNumber, productName, supplierName, fractionName,
				b.Mroznia, b.Polprodukt, b.GotowyProdukt, b.Kartony,
				deliveryDate, lastInventory}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Błąd generowania pliku xlsx")
		}

		filename := fmt.Sprintf("magazyny_%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}
}
