package routes

import (
	"github.com/dkrause/service_market/handlers"
	"github.com/dkrause/service_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App) {
	reviews := app.Group("/api/v1/reviews", middleware.Protected())

	reviews.Get("", handlers.ListReviews)
	reviews.Post("", handlers.CreateReview)
	reviews.Get("/:id", handlers.GetReview)
	reviews.Put("/:id", handlers.UpdateReview)
	reviews.Patch("/:id", handlers.UpdateReview)
	reviews.Delete("/:id", handlers.DeleteReview)
}
