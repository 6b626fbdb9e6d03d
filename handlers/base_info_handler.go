package handlers

import (
	"math"

	"github.com/dkrause/service_market/database"
	"github.com/dkrause/service_market/models"
	"github.com/gofiber/fiber/v2"
)

// GetBaseInfo returns aggregate marketplace counters, computed fresh on
// every request.
func GetBaseInfo(c *fiber.Ctx) error {
	var reviewCount int64
	database.DB.Model(&models.Review{}).Count(&reviewCount)

	averageRating := 0.0
	if reviewCount > 0 {
		database.DB.Model(&models.Review{}).
			Select("AVG(rating)").
			Row().Scan(&averageRating)
		averageRating = math.Round(averageRating*100) / 100
	}

	var businessProfileCount int64
	database.DB.Model(&models.User{}).Where("type = ?", models.UserTypeBusiness).Count(&businessProfileCount)

	var offerCount int64
	database.DB.Model(&models.Offer{}).Count(&offerCount)

	return c.JSON(fiber.Map{
		"review_count":           reviewCount,
		"average_rating":         averageRating,
		"business_profile_count": businessProfileCount,
		"offer_count":            offerCount,
	})
}
