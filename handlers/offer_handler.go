package handlers

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dkrause/service_market/database"
	"github.com/dkrause/service_market/models"
	"github.com/dkrause/service_market/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 5
	maxPageSize     = 50
)

type OfferDetailStub struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type OfferUserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

type OfferListItem struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Image           string            `json:"image"`
	Description     string            `json:"description"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Details         []OfferDetailStub `json:"details"`
	MinPrice        int               `json:"min_price"`
	MinDeliveryTime int               `json:"min_delivery_time"`
	UserDetails     OfferUserDetails  `json:"user_details"`
}

type OfferDetailedResponse struct {
	ID              string            `json:"id"`
	User            string            `json:"user"`
	Title           string            `json:"title"`
	Image           string            `json:"image"`
	Description     string            `json:"description"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Details         []OfferDetailStub `json:"details"`
	MinPrice        int               `json:"min_price"`
	MinDeliveryTime int               `json:"min_delivery_time"`
}

type OfferDetailRequest struct {
	Title              string   `json:"title" validate:"required"`
	Revisions          int      `json:"revisions" validate:"gte=0"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days" validate:"required,gt=0"`
	Price              int      `json:"price" validate:"required,gt=0"`
	Features           []string `json:"features"`
	OfferType          string   `json:"offer_type" validate:"required,oneof=basic standard premium"`
}

type CreateOfferRequest struct {
	Title       string               `json:"title" validate:"required"`
	Image       string               `json:"image"`
	Description string               `json:"description"`
	Details     []OfferDetailRequest `json:"details" validate:"required,len=3,dive"`
}

type UpdateOfferDetailRequest struct {
	OfferType          string   `json:"offer_type"`
	Title              *string  `json:"title"`
	Revisions          *int     `json:"revisions"`
	DeliveryTimeInDays *int     `json:"delivery_time_in_days"`
	Price              *int     `json:"price"`
	Features           []string `json:"features"`
}

type UpdateOfferRequest struct {
	Title       *string                    `json:"title"`
	Image       *string                    `json:"image"`
	Description *string                    `json:"description"`
	Details     []UpdateOfferDetailRequest `json:"details"`
}

func detailStubs(details []models.OfferDetail) []OfferDetailStub {
	stubs := make([]OfferDetailStub, 0, len(details))
	for _, d := range details {
		stubs = append(stubs, OfferDetailStub{
			ID:  d.ID.String(),
			URL: fmt.Sprintf("/api/v1/offerdetails/%s", d.ID),
		})
	}
	return stubs
}

// offerFilterQuery builds the filtered offer query from request parameters.
// Price and delivery-time filters act on the offer's detail rows.
func offerFilterQuery(c *fiber.Ctx) (*gorm.DB, error) {
	query := database.DB.Model(&models.Offer{})

	if creatorID := c.Query("creator_id"); creatorID != "" {
		id, err := uuid.Parse(creatorID)
		if err != nil {
			return nil, fmt.Errorf("creator_id must be a valid id")
		}
		query = query.Where("user_id = ?", id)
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		value, err := strconv.Atoi(minPrice)
		if err != nil {
			return nil, fmt.Errorf("min_price must be a number")
		}
		query = query.Where(
			"id IN (SELECT offer_id FROM offer_details GROUP BY offer_id HAVING MIN(price) >= ?)", value)
	}
	if maxDelivery := c.Query("max_delivery_time"); maxDelivery != "" {
		value, err := strconv.Atoi(maxDelivery)
		if err != nil {
			return nil, fmt.Errorf("max_delivery_time must be a number")
		}
		query = query.Where(
			"id IN (SELECT offer_id FROM offer_details WHERE delivery_time_in_days <= ?)", value)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		term := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", term, term)
	}

	return query, nil
}

func offerOrdering(ordering string) string {
	switch ordering {
	case "-updated_at":
		return "updated_at desc"
	case "min_price":
		return "(SELECT MIN(price) FROM offer_details WHERE offer_details.offer_id = offers.id) asc"
	case "-min_price":
		return "(SELECT MIN(price) FROM offer_details WHERE offer_details.offer_id = offers.id) desc"
	default:
		return "updated_at asc"
	}
}

func ListOffers(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "page must be a positive number"})
	}
	pageSize, err := strconv.Atoi(c.Query("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "page_size must be a positive number"})
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	query, err := offerFilterQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	countQuery, err := offerFilterQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve offers"})
	}

	var offers []models.Offer
	if err := query.
		Order(offerOrdering(c.Query("ordering"))).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Preload("Details").
		Preload("User").
		Find(&offers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve offers"})
	}

	results := make([]OfferListItem, 0, len(offers))
	for _, offer := range offers {
		results = append(results, OfferListItem{
			ID:              offer.ID.String(),
			Title:           offer.Title,
			Image:           offer.Image,
			Description:     offer.Description,
			CreatedAt:       offer.CreatedAt,
			UpdatedAt:       offer.UpdatedAt,
			Details:         detailStubs(offer.Details),
			MinPrice:        offer.MinPrice(),
			MinDeliveryTime: offer.MinDeliveryTime(),
			UserDetails: OfferUserDetails{
				FirstName: offer.User.FirstName,
				LastName:  offer.User.LastName,
				Username:  offer.User.Username,
			},
		})
	}

	return c.JSON(fiber.Map{
		"count":        total,
		"total_pages":  int(math.Ceil(float64(total) / float64(pageSize))),
		"current_page": page,
		"results":      results,
	})
}

func CreateOffer(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You must provide 3 offer details: " + err.Error()})
	}

	seen := map[string]bool{}
	for _, d := range req.Details {
		if seen[d.OfferType] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "details must contain one basic, one standard and one premium tier"})
		}
		seen[d.OfferType] = true
	}

	if req.Image != "" && !utils.AllowedExtension(req.Image, utils.ImageExtensions) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Invalid file. Allowed extensions are %s.", strings.Join(utils.ImageExtensions, ", ")),
		})
	}

	offer := models.Offer{
		UserID:      userID,
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&offer).Error; err != nil {
			return err
		}
		for _, d := range req.Details {
			detail := models.OfferDetail{
				OfferID:            offer.ID,
				Title:              d.Title,
				Revisions:          d.Revisions,
				DeliveryTimeInDays: d.DeliveryTimeInDays,
				Price:              d.Price,
				Features:           d.Features,
				OfferType:          d.OfferType,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
			offer.Details = append(offer.Details, detail)
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create offer"})
	}

	return c.Status(fiber.StatusCreated).JSON(offer)
}

func GetOffer(c *fiber.Ctx) error {
	var offer models.Offer
	if err := database.DB.Preload("Details").First(&offer, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Offer not found"})
	}

	return c.JSON(OfferDetailedResponse{
		ID:              offer.ID.String(),
		User:            offer.UserID.String(),
		Title:           offer.Title,
		Image:           offer.Image,
		Description:     offer.Description,
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
		Details:         detailStubs(offer.Details),
		MinPrice:        offer.MinPrice(),
		MinDeliveryTime: offer.MinDeliveryTime(),
	})
}

func UpdateOffer(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	requesterID := claims["user_id"].(string)
	isStaff, _ := claims["is_staff"].(bool)

	var offer models.Offer
	if err := database.DB.Preload("Details").First(&offer, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Offer not found"})
	}

	if offer.UserID.String() != requesterID && !isStaff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Permission denied"})
	}

	var req UpdateOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Title != nil {
		offer.Title = *req.Title
	}
	if req.Image != nil {
		if *req.Image != "" && !utils.AllowedExtension(*req.Image, utils.ImageExtensions) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid file. Allowed extensions are %s.", strings.Join(utils.ImageExtensions, ", ")),
			})
		}
		offer.Image = *req.Image
	}
	if req.Description != nil {
		offer.Description = *req.Description
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, d := range req.Details {
			if d.OfferType == "" {
				return fiber.NewError(fiber.StatusBadRequest, "offer_type for each offer detail must be provided")
			}

			var detail *models.OfferDetail
			for i := range offer.Details {
				if offer.Details[i].OfferType == d.OfferType {
					detail = &offer.Details[i]
					break
				}
			}
			if detail == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Offer detail does not exist")
			}

			if d.Title != nil {
				detail.Title = *d.Title
			}
			if d.Revisions != nil {
				detail.Revisions = *d.Revisions
			}
			if d.DeliveryTimeInDays != nil {
				detail.DeliveryTimeInDays = *d.DeliveryTimeInDays
			}
			if d.Price != nil {
				detail.Price = *d.Price
			}
			if d.Features != nil {
				detail.Features = d.Features
			}
			if err := tx.Save(detail).Error; err != nil {
				return err
			}
		}
		return tx.Save(&offer).Error
	})
	if err != nil {
		if ferr, ok := err.(*fiber.Error); ok {
			return c.Status(ferr.Code).JSON(fiber.Map{"error": ferr.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update offer"})
	}

	return c.JSON(offer)
}

func DeleteOffer(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	requesterID := claims["user_id"].(string)
	isStaff, _ := claims["is_staff"].(bool)

	var offer models.Offer
	if err := database.DB.First(&offer, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Offer not found"})
	}

	if offer.UserID.String() != requesterID && !isStaff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Permission denied"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", offer.ID).Delete(&models.OfferDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&offer).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete offer"})
	}

	utils.RemoveStoredFile(offer.Image)

	return c.SendStatus(fiber.StatusNoContent)
}

func UploadOfferImage(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	requesterID := claims["user_id"].(string)
	isStaff, _ := claims["is_staff"].(bool)

	var offer models.Offer
	if err := database.DB.First(&offer, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Offer not found"})
	}

	if offer.UserID.String() != requesterID && !isStaff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Permission denied"})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "An 'image' form field is required"})
	}
	if !utils.AllowedExtension(file.Filename, utils.ImageExtensions) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Invalid file. Allowed extensions are %s.", strings.Join(utils.ImageExtensions, ", ")),
		})
	}
	if file.Size > utils.MaxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File too large. Size should not exceed 5 MB."})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	storedName := fmt.Sprintf("offer_%s%s", offer.ID, ext)

	utils.RemoveStoredFile(offer.Image)
	if err := c.SaveFile(file, utils.StoredFilePath(storedName)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store image"})
	}

	offer.Image = storedName
	if err := database.DB.Save(&offer).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update offer"})
	}

	return c.JSON(offer)
}

func ListOfferDetails(c *fiber.Ctx) error {
	var details []models.OfferDetail
	if err := database.DB.Find(&details).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve offer details"})
	}
	return c.JSON(details)
}

func GetOfferDetail(c *fiber.Ctx) error {
	var detail models.OfferDetail
	if err := database.DB.First(&detail, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Offer detail not found"})
	}
	return c.JSON(detail)
}
