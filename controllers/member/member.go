package memberController

import (
	"log"
	"strings"

	"mcan/database"
	"mcan/middleware"
	"mcan/models"
	"mcan/services"
	memberValidator "mcan/validators/member"

	"github.com/gofiber/fiber/v2"
)

// GetAllMembers lists members with pagination and search/state/status
// filters, with the owning user preloaded
func GetAllMembers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	search := c.Query("search")
	stateCode := c.Query("stateCode")
	membershipStatus := c.Query("membershipStatus")

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
	query := db.Model(&models.Member{}).
		Joins("JOIN users ON users.id = members.user_id")

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(users.full_name) LIKE ? OR LOWER(users.email) LIKE ? OR users.phone LIKE ?",
			pattern, pattern, "%"+search+"%",
		)
	}
	if stateCode != "" {
		query = query.Where("members.state_code = ?", stateCode)
	}
	if membershipStatus != "" {
		query = query.Where("members.membership_status = ?", membershipStatus)
	}

	var total int64
	query.Count(&total)

	var members []models.Member
	offset := (page - 1) * limit
	if err := query.Preload("User").
		Order("members.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&members).Error; err != nil {
		log.Printf("Error fetching members: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch members!", nil)
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	if totalPages == 0 {
		totalPages = 1
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Members fetched successfully!", fiber.Map{
		"members": members,
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

// GetMemberById fetches one member with the owning user
func GetMemberById(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	var member models.Member
	if err := database.Database.Db.Preload("User").Where("id = ?", id).First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member fetched successfully!", member)
}

// EnrollMember creates the membership record for a user
func EnrollMember(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEnroll").(*memberValidator.EnrollRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	membershipService := services.NewMembershipService(database.Database.Db)
	member, err := membershipService.Enroll(reqData.UserID, reqData.StateCode, reqData.DeploymentState, reqData.ServiceYear)
	if err != nil {
		return middleware.JsonResponse(c, services.StatusCode(err), false, services.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Member created successfully!", member)
}

// UpdateMember applies a partial update to the membership record
func UpdateMember(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	reqData, ok := c.Locals("validatedUpdateMember").(*services.MemberUpdate)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	membershipService := services.NewMembershipService(database.Database.Db)
	member, serr := membershipService.UpdateAttributes(uint(id), *reqData)
	if serr != nil {
		return middleware.JsonResponse(c, services.StatusCode(serr), false, services.Message(serr), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member updated successfully!", member)
}

// SetMemberPaymentStatus is the administrative dues-standing override,
// including EXEMPT
func SetMemberPaymentStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	reqData := new(struct {
		PaymentStatus string `json:"paymentStatus"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	membershipService := services.NewMembershipService(database.Database.Db)
	member, serr := membershipService.SetPaymentStatus(uint(id), models.MemberPaymentStatus(reqData.PaymentStatus))
	if serr != nil {
		return middleware.JsonResponse(c, services.StatusCode(serr), false, services.Message(serr), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment status updated!", member)
}

// GenerateEIDCard issues a new e-ID card for the member's user
func GenerateEIDCard(c *fiber.Ctx) error {
	member, ok := findMember(c)
	if !ok {
		return nil
	}

	eidService := services.NewEIDService(database.Database.Db)
	card, err := eidService.Issue(member.UserID)
	if err != nil {
		return middleware.JsonResponse(c, services.StatusCode(err), false, services.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "e-ID generated!", card)
}

// GetEIDCard returns the member's current (highest-version) card
func GetEIDCard(c *fiber.Ctx) error {
	member, ok := findMember(c)
	if !ok {
		return nil
	}

	eidService := services.NewEIDService(database.Database.Db)
	card, err := eidService.CurrentCard(member.UserID)
	if err != nil {
		return middleware.JsonResponse(c, services.StatusCode(err), false, services.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "e-ID fetched!", card)
}

// DownloadEIDCard returns just the rendered markup of the current card
func DownloadEIDCard(c *fiber.Ctx) error {
	member, ok := findMember(c)
	if !ok {
		return nil
	}

	eidService := services.NewEIDService(database.Database.Db)
	card, err := eidService.CurrentCard(member.UserID)
	if err != nil {
		return middleware.JsonResponse(c, services.StatusCode(err), false, services.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "e-ID download ready!", fiber.Map{
		"svgMarkup": card.SVGMarkup,
		"version":   card.Version,
	})
}

// findMember resolves the :id path parameter. On failure it has already
// written the response and returns ok=false.
func findMember(c *fiber.Ctx) (*models.Member, bool) {
	id, err := c.ParamsInt("id")
	if err != nil {
		_ = middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
		return nil, false
	}

	var member models.Member
	if err := database.Database.Db.Where("id = ?", id).First(&member).Error; err != nil {
		_ = middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
		return nil, false
	}
	return &member, true
}
