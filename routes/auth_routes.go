package routes

import (
	"github.com/dkrause/service_market/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/registration", handlers.RegisterUser)
	api.Post("/login", handlers.LoginUser)
}
