package handlers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dkrause/service_market/database"
	"github.com/dkrause/service_market/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func ListOrders(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)
	userType, _ := claims["type"].(string)

	orders := []models.Order{}
	switch userType {
	case models.UserTypeCustomer:
		database.DB.Where("customer_user_id = ?", userID).Find(&orders)
	case models.UserTypeBusiness:
		database.DB.Where("business_user_id = ?", userID).Find(&orders)
	}

	return c.JSON(orders)
}

func CreateOrder(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	userType, _ := claims["type"].(string)

	var body map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var unexpected []string
	for key := range body {
		if key != "offer_detail_id" {
			unexpected = append(unexpected, key)
		}
	}
	if len(unexpected) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Only 'offer_detail_id' is needed. But got: %s.", strings.Join(unexpected, ", ")),
		})
	}

	rawID, ok := body["offer_detail_id"]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "offer_detail_id is required."})
	}
	var detailIDStr string
	if err := json.Unmarshal(rawID, &detailIDStr); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "offer_detail_id must be a valid id."})
	}
	detailID, err := uuid.Parse(detailIDStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "offer_detail_id must be a valid id."})
	}

	var detail models.OfferDetail
	if err := database.DB.First(&detail, "id = ?", detailID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Given offer detail ID not found."})
	}

	if userType == models.UserTypeBusiness {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "Only customers can create orders."})
	}

	var offer models.Offer
	if err := database.DB.First(&offer, "id = ?", detail.OfferID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Given offer detail ID not found."})
	}

	order := models.Order{
		CustomerUserID:     userID,
		BusinessUserID:     offer.UserID,
		Title:              detail.Title,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Price:              detail.Price,
		Features:           detail.Features,
		OfferType:          detail.OfferType,
		Status:             models.OrderStatusInProgress,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

func UpdateOrder(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)
	userType, _ := claims["type"].(string)

	var order models.Order
	if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	if userType != models.UserTypeBusiness || order.BusinessUserID.String() != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Permission denied, you need to be the creator of the related offer to change the order status",
		})
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	rawStatus, ok := body["status"]
	if !ok || len(body) != 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only the 'status' field can be updated. Valid values are: 'in_progress', 'completed', 'cancelled'.",
		})
	}

	var status string
	if err := json.Unmarshal(rawStatus, &status); err != nil || !models.ValidOrderStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only the 'status' field can be updated. Valid values are: 'in_progress', 'completed', 'cancelled'.",
		})
	}

	order.Status = status
	if err := database.DB.Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update order"})
	}

	return c.JSON(order)
}

func DeleteOrder(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	isStaff, _ := claims["is_staff"].(bool)

	var order models.Order
	if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	if !isStaff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Permission denied, only staff can delete orders"})
	}

	if err := database.DB.Delete(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete order"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func GetOrderCount(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Params("business_id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var count int64
	database.DB.Model(&models.Order{}).
		Where("business_user_id = ? AND status <> ?", user.ID, models.OrderStatusCompleted).
		Count(&count)

	return c.JSON(fiber.Map{"order_count": count})
}

func GetCompletedOrderCount(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Params("business_id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var count int64
	database.DB.Model(&models.Order{}).
		Where("business_user_id = ? AND status = ?", user.ID, models.OrderStatusCompleted).
		Count(&count)

	return c.JSON(fiber.Map{"completed_order_count": count})
}
