package main

import (
	"log"
	"strings"

	"naturtim-backend/internal/audit"
	"naturtim-backend/internal/auth"
	"naturtim-backend/internal/catalog"
	"naturtim-backend/internal/config"
	"naturtim-backend/internal/database"
	"naturtim-backend/internal/delivery"
	"naturtim-backend/internal/employee"
	"naturtim-backend/internal/fraction"
	"naturtim-backend/internal/schedule"
	"naturtim-backend/internal/warehouse"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Nieoczekiwany błąd:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Nieoczekiwany błąd serwera",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(corsOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Delete("/auth/logout", auth.LogoutHandler())
	protected.Get("/permissions", employee.MyPermissionsHandler())
	protected.Get("/permissions/all", employee.AllPermissionsHandler())

	// Słownik maszyn dostępny po zalogowaniu (używa go też harmonogram)
	protected.Get("/machines", catalog.ListMachinesHandler())

	// Produkty
	products := protected.Group("/produkty", auth.RequirePermission("Produkty"))
	products.Get("/", catalog.ListProductsHandler())
	products.Post("/", catalog.CreateProductHandler())
	products.Delete("/", catalog.DeleteProductHandler())

	// Dostawcy
	suppliers := protected.Group("/dostawcy", auth.RequirePermission("Dostawcy"))
	suppliers.Get("/", catalog.ListSuppliersHandler())
	suppliers.Post("/", catalog.CreateSupplierHandler())
	suppliers.Delete("/", catalog.DeleteSupplierHandler())

	// Odbiorcy
	recipients := protected.Group("/odbiorcy", auth.RequirePermission("Odbiorcy"))
	recipients.Get("/", catalog.ListRecipientsHandler())
	recipients.Post("/", catalog.CreateRecipientHandler())
	recipients.Delete("/", catalog.DeleteRecipientHandler())

	// Przyjęcia dostawy
	deliveries := protected.Group("/przyjecia-dostawy", auth.RequirePermission("Przyjecia Dostawy"))
	deliveries.Get("/", delivery.ListDeliveriesHandler())
	deliveries.Get("/generate-batch-number", delivery.GenerateBatchNumberHandler())
	deliveries.Post("/", delivery.CreateDeliveryHandler())

	// Harmonogram liofilizacji
	harmonogram := protected.Group("/harmonogram", auth.RequirePermission("Harmonogram"))
	harmonogram.Get("/", schedule.GetScheduleHandler())
	harmonogram.Post("/", schedule.AddProcessHandler())
	harmonogram.Put("/", schedule.UpdateProcessHandler())
	harmonogram.Delete("/", schedule.DeleteProcessHandler())

	// Wykres przebiegu procesów
	wykres := protected.Group("/wykres", auth.RequirePermission("Wykres"))
	wykres.Get("/", schedule.ListChartProcessesHandler())
	wykres.Put("/", schedule.UpdateChartProcessHandler())

	// Frakcjonowanie
	fractions := protected.Group("/frakcje", auth.RequirePermission("Frakcje"))
	fractions.Get("/batches", fraction.ListFractionBatchesHandler())
	fractions.Get("/fractions", catalog.ListFractionsHandler())
	fractions.Post("/assign", fraction.AssignFractionHandler())

	// Kontrola jakości
	quality := protected.Group("/kontrola-jakosci", auth.RequirePermission("Kontrola Jakości"))
	quality.Get("/", fraction.ListQualityBatchesHandler())
	quality.Post("/", fraction.RecordQualityControlHandler())

	// Magazyny
	magazyny := protected.Group("/magazyny", auth.RequirePermission("Magazyny"))
	magazyny.Get("/warehouses", warehouse.ListWarehousesHandler())
	magazyny.Get("/warehouses/:id", warehouse.GetWarehouseHandler())
	magazyny.Patch("/warehouses/:id", warehouse.PatchWarehouseHandler())
	magazyny.Get("/export", warehouse.ExportHandler())
	magazyny.Get("/mroznia", warehouse.ListStockHandler("mroznia"))
	magazyny.Patch("/mroznia", warehouse.PatchStockHandler("mroznia"))
	magazyny.Get("/polfabrykat", warehouse.ListStockHandler("polprodukt"))
	magazyny.Patch("/polfabrykat", warehouse.PatchStockHandler("polprodukt"))
	magazyny.Get("/gotowy-produkt", warehouse.ListStockHandler("gotowyProdukt"))
	magazyny.Patch("/gotowy-produkt", warehouse.PatchStockHandler("gotowyProdukt"))
	magazyny.Get("/kartony", warehouse.ListStockHandler("kartony"))
	magazyny.Patch("/kartony", warehouse.PatchStockHandler("kartony"))
	protected.Patch("/inwentaryzacja", auth.RequirePermission("Magazyny"), warehouse.InventoryHandler())

	// Pracownicy
	employees := protected.Group("/pracownicy", auth.RequirePermission("Pracownicy"))
	employees.Get("/", employee.ListEmployeesHandler())
	employees.Post("/", employee.CreateEmployeeHandler())
	employees.Put("/", employee.UpdateEmployeeHandler())
	employees.Delete("/", employee.DeleteEmployeeHandler())

	// Dziennik zdarzeń
	protected.Get("/audit-log", auth.RequirePermission("Zdarzenia"), audit.ListAuditLogsHandler())

	scheduler := warehouse.StartReconciliation()
	defer scheduler.Stop()

	log.Println("Serwer nasłuchuje na porcie:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
