package routes

import (
	"github.com/bandkasse/bandkasse/handlers"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/gofiber/fiber/v2"
)

func MusicianRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("", handlers.GetOwnProfile)
	profile.Put("", handlers.UpdateOwnProfile)

	musicians := api.Group("/musicians", middleware.Protected())
	musicians.Get("/:musicianId/balance", handlers.GetMusicianBalance)

	admin := musicians.Group("", middleware.RequireCapability(middleware.CapManageMusicians))
	admin.Post("", handlers.CreateMusician)
	admin.Get("", handlers.GetAllMusicians)
	admin.Get("/:musicianId", handlers.GetMusician)
	admin.Put("/:musicianId", handlers.UpdateMusician)
	admin.Post("/:musicianId/archive", handlers.ArchiveMusician)
	admin.Post("/:musicianId/restore", handlers.RestoreMusician)
	admin.Delete("/:musicianId", handlers.DeleteMusician)
}
