package routes

import (
	"github.com/bandkasse/bandkasse/handlers"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)
	admin.Get("/logs", handlers.ListLogs)
}
