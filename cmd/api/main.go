package main

import (
	"log"
	"os"
	"time"

	config "github.com/dkrause/service_market/configs"
	"github.com/dkrause/service_market/database"
	"github.com/dkrause/service_market/jobs"
	"github.com/dkrause/service_market/routes"
	"github.com/dkrause/service_market/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()

	if err := os.MkdirAll(utils.UploadDir(), 0o755); err != nil {
		log.Fatalf("🔥 Failed to create upload directory: %v", err)
	}

	c := cron.New()
	c.AddFunc("30 3 * * *", jobs.SweepOrphanedUploads)
	go c.Start()
	log.Println("✅ Cron job for upload sweep scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Service Market",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.OfferRoutes(app)
	routes.OrderRoutes(app)
	routes.ReviewRoutes(app)
	routes.BaseInfoRoutes(app)
	routes.UploadRoutes(app)

	port := config.ConfigDefault("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
