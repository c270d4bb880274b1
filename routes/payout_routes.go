package routes

import (
	"github.com/bandkasse/bandkasse/handlers"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/gofiber/fiber/v2"
)

func PayoutRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payouts := api.Group("/payout-requests", middleware.Protected())
	payouts.Post("", handlers.CreatePayoutRequest)
	payouts.Get("", handlers.ListOwnPayoutRequests)
	payouts.Put("/:requestId", handlers.UpdatePayoutRequest)
	payouts.Delete("/:requestId", handlers.DeletePayoutRequest)

	review := payouts.Group("", middleware.RequireCapability(middleware.CapReviewPayouts))
	review.Get("/pending", handlers.ListPendingPayoutRequests)
	review.Post("/:requestId/process", handlers.ProcessPayoutRequest)
	review.Post("/:requestId/statement", handlers.AttachStatement)
}
