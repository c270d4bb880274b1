package routes

import (
	"github.com/bandkasse/bandkasse/handlers"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Get("", handlers.ListBookings)
	bookings.Get("/:bookingId", handlers.GetBooking)

	manage := bookings.Group("", middleware.RequireCapability(middleware.CapManageBookings))
	manage.Post("", handlers.CreateBooking)
	manage.Put("/:bookingId", handlers.UpdateBooking)
	manage.Delete("/:bookingId", handlers.DeleteBooking)
}
