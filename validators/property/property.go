package propertyValidator

import (
	"mcan/middleware"
	"mcan/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// CreatePropertyRequest is a new property record
type CreatePropertyRequest struct {
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Type              string         `json:"type"`
	Location          datatypes.JSON `json:"location"`
	OwnershipDocument string         `json:"ownershipDocument"`
	Status            string         `json:"status"`
	StateChapter      string         `json:"stateChapter"`
}

// CreateProperty validates a property creation request
func CreateProperty() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreatePropertyRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		}
		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		}
		if !models.PropertyType(reqData.Type).Valid() {
			errors["type"] = "Type must be MOSQUE, OFFICE, HALL, SCHOOL or OTHER!"
		}
		if reqData.StateChapter == "" {
			errors["stateChapter"] = "State chapter is required!"
		}
		if reqData.Status != "" && !models.PropertyStatus(reqData.Status).Valid() {
			errors["status"] = "Unknown property status!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateProperty", reqData)
		return c.Next()
	}
}
