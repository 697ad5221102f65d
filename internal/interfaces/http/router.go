package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/antonyto02/nexsoft-inventory/internal/application/inventory"
	"github.com/antonyto02/nexsoft-inventory/internal/application/ports"
	"github.com/antonyto02/nexsoft-inventory/internal/application/usecase"
	"github.com/antonyto02/nexsoft-inventory/internal/interfaces/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	MovementUC *inventory.ManualMovementUseCase
	SummaryUC  *inventory.HomeSummaryUseCase
	RfidUC     *inventory.RfidUseCase
	VoiceUC    *usecase.VoiceUseCase
	EntryMode  *inventory.EntryMode
	Storage    ports.ObjectStorage
	Hub        *ws.Hub
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// WebSocket del dashboard (sin auth: el feed no expone datos por tenant
	// distintos de los que ya emite el bus del proceso).
	app.Use("/ws/inventory", ws.Upgrade)
	app.Get("/ws/inventory", deps.Hub.Handler())

	// Rutas protegidas (requieren Bearer Token)
	inv := app.Group("/inventory", AuthMiddleware(deps.JWTSecret))

	productHandler := NewProductHandler(deps.ProductUC, deps.Storage)
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.SummaryUC, deps.RfidUC, deps.EntryMode, deps.VoiceUC)

	inv.Get("/home", inventoryHandler.HomeSummary)
	inv.Get("/upload-url", productHandler.UploadURL)
	inv.Get("/rfid-mode", inventoryHandler.GetEntryMode)
	inv.Patch("/rfid-mode", inventoryHandler.SetEntryMode)
	inv.Post("/voice-command", inventoryHandler.VoiceCommand)

	// Products. Las rutas fijas van antes que /:id para que Fiber no las
	// capture como id.
	inv.Post("/products", productHandler.Create)
	inv.Get("/products", productHandler.List)
	inv.Get("/products/search", productHandler.Search)
	inv.Get("/products/status/:status", productHandler.ListByStatus)
	inv.Get("/products/:id", productHandler.GetByID)
	inv.Patch("/products/:id", productHandler.Update)
	inv.Delete("/products/:id", productHandler.Remove)

	// Movements
	inv.Post("/products/:id/movements", inventoryHandler.CreateMovement)
	inv.Get("/products/:id/movements", inventoryHandler.ListMovements)

	// RFID
	inv.Post("/products/:id/rfid-entries", inventoryHandler.RegisterRfidEntries)
}
