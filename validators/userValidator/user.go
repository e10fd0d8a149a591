package userValidator

import (
	"mcan/middleware"
	"mcan/services"

	"github.com/gofiber/fiber/v2"
)

// UpdateUserRequest is a partial profile update. Each slot records whether
// the key was present in the request body, so an omitted field and a field
// sent as null are handled differently.
type UpdateUserRequest struct {
	FullName        services.OptionalString `json:"fullName"`
	Phone           services.OptionalString `json:"phone"`
	StateCode       services.OptionalString `json:"stateCode"`
	StateOfOrigin   services.OptionalString `json:"stateOfOrigin"`
	DeploymentState services.OptionalString `json:"deploymentState"`
	ServiceYear     services.OptionalString `json:"serviceYear"`
	ProfilePicture  services.OptionalString `json:"profilePicture"`
}

// UpdateUser validates a profile update request
func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateUserRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.FullName.Set && (reqData.FullName.Null || reqData.FullName.Value == "") {
			errors["fullName"] = "Full name cannot be empty!"
		}
		if reqData.Phone.Set && (reqData.Phone.Null || reqData.Phone.Value == "") {
			errors["phone"] = "Phone number cannot be empty!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateUser", reqData)
		return c.Next()
	}
}
