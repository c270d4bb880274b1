package routes

import (
	"github.com/bandkasse/bandkasse/handlers"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/gofiber/fiber/v2"
)

func ConcertRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	concerts := api.Group("/concerts", middleware.Protected())
	concerts.Get("", handlers.ListConcerts)
	concerts.Get("/:concertId", handlers.GetConcert)

	manage := concerts.Group("", middleware.RequireCapability(middleware.CapManageConcerts))
	manage.Post("", handlers.CreateConcert)
	manage.Put("/:concertId", handlers.UpdateConcert)
	manage.Delete("/:concertId", handlers.DeleteConcert)
}
