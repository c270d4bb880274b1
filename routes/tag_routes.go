package routes

import (
	"github.com/bandkasse/bandkasse/handlers"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/gofiber/fiber/v2"
)

func TagRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tags := api.Group("/tags", middleware.Protected())
	tags.Get("", handlers.ListTags)

	manage := tags.Group("", middleware.RequireCapability(middleware.CapManageTags))
	manage.Post("", handlers.CreateTag)
	manage.Put("/:tagId", handlers.UpdateTag)
	manage.Delete("/:tagId", handlers.DeleteTag)
}
