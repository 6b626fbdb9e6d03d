package handlers

import (
	"github.com/dkrause/service_market/database"
	"github.com/dkrause/service_market/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	BusinessUser string `json:"business_user" validate:"required,uuid"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Description  string `json:"description"`
}

type UpdateReviewRequest struct {
	Rating      *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Description *string `json:"description"`
}

func ListReviews(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Review{})

	if businessUserID := c.Query("business_user_id"); businessUserID != "" {
		query = query.Where("business_user_id = ?", businessUserID)
	}
	if reviewerID := c.Query("reviewer_id"); reviewerID != "" {
		query = query.Where("reviewer_id = ?", reviewerID)
	}
	switch c.Query("ordering") {
	case "rating":
		query = query.Order("rating asc")
	case "-rating":
		query = query.Order("rating desc")
	case "updated_at":
		query = query.Order("updated_at asc")
	case "-updated_at":
		query = query.Order("updated_at desc")
	}

	reviews := []models.Review{}
	if err := query.Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve reviews"})
	}

	return c.JSON(reviews)
}

func CreateReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	reviewerID, _ := uuid.Parse(claims["user_id"].(string))
	userType, _ := claims["type"].(string)

	if userType != models.UserTypeCustomer {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "Only customers can create reviews"})
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var businessUser models.User
	if err := database.DB.First(&businessUser, "id = ?", req.BusinessUser).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Business user not found"})
	}
	if businessUser.Type != models.UserTypeBusiness {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "You can only review business users"})
	}

	// No unique constraint on the pair, a concurrent insert can slip through.
	var count int64
	database.DB.Model(&models.Review{}).
		Where("business_user_id = ? AND reviewer_id = ?", businessUser.ID, reviewerID).
		Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "You have already reviewed this business user"})
	}

	review := models.Review{
		BusinessUserID: businessUser.ID,
		ReviewerID:     reviewerID,
		Rating:         req.Rating,
		Description:    req.Description,
	}
	if err := database.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

func GetReview(c *fiber.Ctx) error {
	var review models.Review
	if err := database.DB.First(&review, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review not found"})
	}
	return c.JSON(review)
}

func UpdateReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	requesterID := claims["user_id"].(string)
	isStaff, _ := claims["is_staff"].(bool)

	var review models.Review
	if err := database.DB.First(&review, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review not found"})
	}

	if review.ReviewerID.String() != requesterID && !isStaff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have permission to edit this review"})
	}

	var req UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Description != nil {
		review.Description = *req.Description
	}

	if err := database.DB.Save(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update review"})
	}

	return c.JSON(review)
}

func DeleteReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	requesterID := claims["user_id"].(string)
	isStaff, _ := claims["is_staff"].(bool)

	var review models.Review
	if err := database.DB.First(&review, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review not found"})
	}

	if review.ReviewerID.String() != requesterID && !isStaff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have permission to delete this review"})
	}

	if err := database.DB.Delete(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete review"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
