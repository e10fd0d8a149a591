package propertyController

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"mcan/database"
	"mcan/middleware"
	"mcan/models"
	"mcan/utils"
	propertyValidator "mcan/validators/property"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// GetAllProperties lists properties with pagination and filters
func GetAllProperties(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 12)
	search := c.Query("search")
	stateChapter := c.Query("stateChapter")
	propType := c.Query("type")
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	if limit > 50 {
		limit = 50
	}

	db := database.Database.Db
	query := db.Model(&models.Property{})

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if stateChapter != "" {
		query = query.Where("state_chapter = ?", stateChapter)
	}
	if propType != "" {
		query = query.Where("type = ?", propType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var properties []models.Property
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&properties).Error; err != nil {
		log.Printf("Error fetching properties: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch properties!", nil)
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	if totalPages == 0 {
		totalPages = 1
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Properties fetched successfully!", fiber.Map{
		"properties": properties,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
			"hasNext":    int64(page*limit) < total,
			"hasPrev":    page > 1,
		},
	})
}

// GetPropertyById fetches a single property
func GetPropertyById(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid property id!", nil)
	}

	var property models.Property
	if err := database.Database.Db.Where("id = ?", id).First(&property).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Property not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Property fetched successfully!", property)
}

// CreateProperty records a new association-owned property
func CreateProperty(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateProperty").(*propertyValidator.CreatePropertyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	userId, _ := c.Locals("userId").(uint)

	status := models.PropertyActive
	if reqData.Status != "" {
		status = models.PropertyStatus(reqData.Status)
	}

	location := reqData.Location
	if len(location) == 0 {
		location = datatypes.JSON([]byte("{}"))
	}

	property := models.Property{
		Name:              reqData.Name,
		Description:       reqData.Description,
		Type:              models.PropertyType(reqData.Type),
		Location:          location,
		Photos:            datatypes.JSON([]byte("[]")),
		OwnershipDocument: reqData.OwnershipDocument,
		Status:            status,
		StateChapter:      reqData.StateChapter,
		AddedBy:           userId,
		AddedDate:         time.Now(),
	}

	if err := database.Database.Db.Create(&property).Error; err != nil {
		log.Printf("Error creating property: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create property!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Property created successfully!", property)
}

// UpdatePropertyStatus flips the usage status flag
func UpdatePropertyStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid property id!", nil)
	}

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if !models.PropertyStatus(reqData.Status).Valid() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown property status!", nil)
	}

	db := database.Database.Db

	var property models.Property
	if err := db.Where("id = ?", id).First(&property).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Property not found!", nil)
	}

	if err := db.Model(&property).Update("status", reqData.Status).Error; err != nil {
		log.Printf("Error updating property %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update property!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Property status updated!", property)
}

// UploadPropertyPhoto stores a photo and appends its URL to the property
func UploadPropertyPhoto(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid property id!", nil)
	}

	db := database.Database.Db

	var property models.Property
	if err := db.Where("id = ?", id).First(&property).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Property not found!", nil)
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Photo file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(file, "./public/uploads/properties")
	if err != nil {
		log.Printf("Error saving photo for property %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save photo!", nil)
	}

	var photos []string
	if len(property.Photos) > 0 {
		if err := json.Unmarshal(property.Photos, &photos); err != nil {
			photos = nil
		}
	}
	photos = append(photos, utils.GetFileURL(path))

	encoded, err := json.Marshal(photos)
	if err != nil {
		log.Printf("Error encoding photos for property %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save photo!", nil)
	}

	if err := db.Model(&property).Update("photos", datatypes.JSON(encoded)).Error; err != nil {
		log.Printf("Error linking photo for property %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save photo!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Photo uploaded!", fiber.Map{
		"photos": photos,
	})
}
