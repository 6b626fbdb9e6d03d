package handlers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dkrause/service_market/database"
	"github.com/dkrause/service_market/models"
	"github.com/dkrause/service_market/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type CustomerProfileResponse struct {
	User       string    `json:"user"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	File       string    `json:"file"`
	UploadedAt time.Time `json:"uploaded_at"`
	Type       string    `json:"type"`
}

type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Location     *string `json:"location"`
	Tel          *string `json:"tel"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours"`
}

func ListBusinessProfiles(c *fiber.Ctx) error {
	var profiles []models.User
	if err := database.DB.Where("type = ?", models.UserTypeBusiness).Find(&profiles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve profiles"})
	}
	return c.JSON(profiles)
}

func ListCustomerProfiles(c *fiber.Ctx) error {
	var profiles []models.User
	if err := database.DB.Where("type = ?", models.UserTypeCustomer).Find(&profiles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve profiles"})
	}

	response := make([]CustomerProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		response = append(response, CustomerProfileResponse{
			User:       p.ID.String(),
			Username:   p.Username,
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			File:       p.File,
			UploadedAt: p.CreatedAt,
			Type:       p.Type,
		})
	}
	return c.JSON(response)
}

func GetProfileDetail(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.Where("id = ?", c.Params("id")).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}
	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	requesterID := claims["user_id"].(string)
	isStaff, _ := claims["is_staff"].(bool)

	var user models.User
	if err := database.DB.Where("id = ?", c.Params("id")).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	if user.ID.String() != requesterID && !isStaff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have permission to edit this profile"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Tel != nil {
		user.Tel = *req.Tel
	}
	if req.Description != nil {
		user.Description = *req.Description
	}
	if req.WorkingHours != nil {
		user.WorkingHours = *req.WorkingHours
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(user)
}

func UploadProfileFile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	requesterID := claims["user_id"].(string)
	isStaff, _ := claims["is_staff"].(bool)

	var user models.User
	if err := database.DB.Where("id = ?", c.Params("id")).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	if user.ID.String() != requesterID && !isStaff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have permission to edit this profile"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A 'file' form field is required"})
	}
	if !utils.AllowedExtension(file.Filename, utils.ProfileFileExtensions) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Invalid file. Allowed extensions are %s.", strings.Join(utils.ProfileFileExtensions, ", ")),
		})
	}
	if file.Size > utils.MaxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File too large. Size should not exceed 5 MB."})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	storedName := fmt.Sprintf("user_%s%s", user.ID, ext)

	utils.RemoveStoredFile(user.File)
	if err := c.SaveFile(file, utils.StoredFilePath(storedName)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store file"})
	}

	user.File = storedName
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(user)
}
