package middleware

import (
	config "github.com/dkrause/service_market/configs"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"error": "Invalid, expired or missing bearer token"})
}

func BusinessRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Locals("user").(*jwt.Token)
		claims := token.Claims.(jwt.MapClaims)
		userType, _ := claims["type"].(string)
		isStaff, _ := claims["is_staff"].(bool)

		if userType != "business" && !isStaff {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: business account required",
			})
		}
		return c.Next()
	}
}
