package userController

import (
	"log"
	"strings"

	"mcan/database"
	"mcan/middleware"
	"mcan/models"
	"mcan/services"
	"mcan/utils"
	userValidator "mcan/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers lists users with pagination and search/role/state filters
func GetAllUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	search := c.Query("search")
	role := c.Query("role")
	stateCode := c.Query("stateCode")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	db := database.Database.Db
	query := db.Model(&models.User{})

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			pattern, pattern, "%"+search+"%",
		)
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if stateCode != "" {
		query = query.Where("state_code = ?", stateCode)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	if totalPages == 0 {
		totalPages = 1
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
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

// GetUserById fetches a single user
func GetUserById(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", id).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", user)
}

// UpdateUser applies a partial profile update
func UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData, ok := c.Locals("validatedUpdateUser").(*userValidator.UpdateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.FullName.Set {
		updates["full_name"] = reqData.FullName.Value
	}
	if reqData.Phone.Set {
		updates["phone"] = reqData.Phone.Value
	}
	if reqData.StateCode.Set {
		updates["state_code"] = optionalColumn(reqData.StateCode)
	}
	if reqData.StateOfOrigin.Set {
		updates["state_of_origin"] = optionalColumn(reqData.StateOfOrigin)
	}
	if reqData.DeploymentState.Set {
		updates["deployment_state"] = optionalColumn(reqData.DeploymentState)
	}
	if reqData.ServiceYear.Set {
		updates["service_year"] = optionalColumn(reqData.ServiceYear)
	}
	if reqData.ProfilePicture.Set {
		updates["profile_picture"] = optionalColumn(reqData.ProfilePicture)
	}

	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			log.Printf("Error updating user %d: %v", id, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
		}
	}

	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		log.Printf("Error reloading user %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", user)
}

// optionalColumn maps an explicit null onto an empty column value
func optionalColumn(f services.OptionalString) string {
	if f.Null {
		return ""
	}
	return f.Value
}

// ActivateUser re-enables a deactivated account
func ActivateUser(c *fiber.Ctx) error {
	return setUserActive(c, true, "User activated successfully!")
}

// DeactivateUser disables an account. Users are never hard-deleted; the
// SUPER_ADMIN account cannot be deactivated.
func DeactivateUser(c *fiber.Ctx) error {
	return setUserActive(c, false, "User deactivated successfully!")
}

func setUserActive(c *fiber.Ctx, active bool, message string) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if !active && user.Role == models.RoleSuperAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Cannot deactivate SUPER_ADMIN!", nil)
	}

	if err := db.Model(&user).Update("is_active", active).Error; err != nil {
		log.Printf("Error toggling user %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, nil)
}

// UploadProfilePicture stores a profile photo and links it to the user
func UploadProfilePicture(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Photo file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(file, "./public/uploads/profiles")
	if err != nil {
		log.Printf("Error saving profile picture for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save photo!", nil)
	}

	db := database.Database.Db
	url := utils.GetFileURL(path)
	if err := db.Model(&models.User{}).Where("id = ?", userId).Update("profile_picture", url).Error; err != nil {
		log.Printf("Error linking profile picture for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save photo!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile picture uploaded!", fiber.Map{
		"profilePicture": url,
	})
}
