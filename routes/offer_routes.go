package routes

import (
	"github.com/dkrause/service_market/handlers"
	"github.com/dkrause/service_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func OfferRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/offers", handlers.ListOffers)
	api.Post("/offers", middleware.Protected(), middleware.BusinessRequired(), handlers.CreateOffer)

	offer := api.Group("/offers/:id", middleware.Protected())
	offer.Get("", handlers.GetOffer)
	offer.Patch("", handlers.UpdateOffer)
	offer.Delete("", handlers.DeleteOffer)
	offer.Post("/image", handlers.UploadOfferImage)

	details := api.Group("/offerdetails", middleware.Protected())
	details.Get("", handlers.ListOfferDetails)
	details.Get("/:id", handlers.GetOfferDetail)
}
