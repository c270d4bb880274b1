package routes

import (
	"github.com/bandkasse/bandkasse/handlers"
	"github.com/bandkasse/bandkasse/middleware"
	ws "github.com/bandkasse/bandkasse/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func SettingsRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	settings := api.Group("/settings", middleware.Protected())
	settings.Get("", handlers.GetSettings)
	settings.Put("", middleware.RequireCapability(middleware.CapManageSettings), handlers.UpdateSetting)

	uploads := api.Group("/uploads", middleware.Protected(), middleware.RequireCapability(middleware.CapManageSettings))
	uploads.Get("/signature", handlers.GenerateUploadSignature)

	// Settings-change notifications. Clients reconnect on drop and
	// re-fetch settings on every received event.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/settings", websocket.New(func(conn *websocket.Conn) {
		client := &ws.Client{Conn: conn}
		ws.Register <- client
		defer func() {
			ws.Unregister <- client
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
