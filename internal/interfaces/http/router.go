package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/batch"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/masterdata"
	"github.com/jhoicas/Almacen-api/internal/application/orders"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// RouterDeps dependencias para el router. Los repositorios van atados al pool
// (lecturas sueltas); toda mutación pasa por los casos de uso transaccionales.
type RouterDeps struct {
	OrdersUC      *orders.UseCase
	AdjustmentUC  *ledger.AdjustmentUseCase
	BatchRegistry *batch.Registry
	MasterDataUC  *masterdata.UseCase
	ReportsUC     *reports.UseCase
	LedgerReader  *ledger.Ledger
	History       repository.StockHistoryRepository
	Batches       repository.BatchRepository
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Flujo de órdenes PO → TO → RO (protegido)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrdersUC)
	ordersGroup.Post("/purchase", orderHandler.CreatePurchase)
	ordersGroup.Post("/purchase/:id/deactivate", orderHandler.DeactivatePurchase)
	ordersGroup.Post("/transfer", orderHandler.CreateTransfer)
	ordersGroup.Post("/receive", orderHandler.CreateReceive)

	// Stock: consultas, historial y ajustes (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerReader, deps.History, deps.AdjustmentUC)
	stockGroup.Get("/batches", stockHandler.AvailableBatches)
	stockGroup.Get("/quantity", stockHandler.Quantity)
	stockGroup.Get("/history", stockHandler.History)
	stockGroup.Post("/adjustments", RequireRole("admin", "bodeguero"), stockHandler.RegisterAdjustment)

	// Lotes (protegido)
	batchGroup := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchRegistry, deps.Batches)
	batchGroup.Post("/production", batchHandler.CreateProduction)
	batchGroup.Post("/legacy", batchHandler.EnsureLegacy)
	batchGroup.Get("/", batchHandler.ListByLocation)

	// Datos maestros (protegido)
	masterHandler := NewMasterDataHandler(deps.MasterDataUC)
	items := protected.Group("/items")
	items.Post("/", RequireRole("admin"), masterHandler.CreateItem)
	items.Get("/", masterHandler.ListItems)
	locations := protected.Group("/locations")
	locations.Post("/", RequireRole("admin"), masterHandler.CreateLocation)
	locations.Get("/", masterHandler.ListLocations)

	// Reportes (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/stock-levels", reportHandler.StockLevels)
	reportsGroup.Get("/transfers", reportHandler.Transfers)
	reportsGroup.Get("/production", reportHandler.Production)
}
