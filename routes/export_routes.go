package routes

import (
	"github.com/bandkasse/bandkasse/handlers"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/gofiber/fiber/v2"
)

func ExportRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	exports := api.Group("/exports", middleware.Protected())
	exports.Get("/statement", handlers.ExportStatementPDF)
	exports.Post("/statement/dispatch", handlers.DispatchStatementEmail)
	exports.Get("/archived-transactions", middleware.RequireCapability(middleware.CapArchiveLedger), handlers.ExportArchivedTransactionsCSV)
}
