package routes

import (
	"github.com/dkrause/service_market/handlers"
	"github.com/dkrause/service_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	orders := api.Group("/orders", middleware.Protected())
	orders.Get("", handlers.ListOrders)
	orders.Post("", handlers.CreateOrder)
	orders.Patch("/:id", handlers.UpdateOrder)
	orders.Delete("/:id", handlers.DeleteOrder)

	api.Get("/order-count/:business_id", middleware.Protected(), handlers.GetOrderCount)
	api.Get("/completed-order-count/:business_id", middleware.Protected(), handlers.GetCompletedOrderCount)
}
