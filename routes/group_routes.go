package routes

import (
	"github.com/bandkasse/bandkasse/handlers"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/gofiber/fiber/v2"
)

func GroupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	groups := api.Group("/groups", middleware.Protected())
	groups.Get("", handlers.ListGroups)
	groups.Get("/even-split", handlers.EvenSplitShares)
	groups.Get("/:groupId", handlers.GetGroup)

	manage := groups.Group("", middleware.RequireCapability(middleware.CapManageGroups))
	manage.Post("", handlers.CreateGroup)
	manage.Put("/:groupId", handlers.UpdateGroup)
	manage.Delete("/:groupId", handlers.DeleteGroup)
}
