package routes

import (
	"github.com/dkrause/service_market/handlers"
	"github.com/gofiber/fiber/v2"
)

func BaseInfoRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/base-info", handlers.GetBaseInfo)
}
