package routes

import (
	"github.com/bandkasse/bandkasse/handlers"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/gofiber/fiber/v2"
)

func TransactionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	transactions := api.Group("/transactions", middleware.Protected())
	transactions.Get("", handlers.ListTransactions)
	transactions.Post("/archive", middleware.RequireCapability(middleware.CapArchiveLedger), handlers.ArchiveTransactions)
}
