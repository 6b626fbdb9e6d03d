package routes

import (
	"github.com/dkrause/service_market/handlers"
	"github.com/dkrause/service_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/profiles/business", middleware.Protected(), handlers.ListBusinessProfiles)
	api.Get("/profiles/customer", middleware.Protected(), handlers.ListCustomerProfiles)

	profile := api.Group("/profile/:id", middleware.Protected())
	profile.Get("", handlers.GetProfileDetail)
	profile.Patch("", handlers.UpdateProfile)
	profile.Post("/file", handlers.UploadProfileFile)
}
