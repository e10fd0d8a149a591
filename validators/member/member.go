package memberValidator

import (
	"mcan/middleware"
	"mcan/services"

	"github.com/gofiber/fiber/v2"
)

// EnrollRequest is the enrollment payload
type EnrollRequest struct {
	UserID          uint   `json:"userId"`
	StateCode       string `json:"stateCode"`
	DeploymentState string `json:"deploymentState"`
	ServiceYear     string `json:"serviceYear"`
}

// Enroll validates a member enrollment request
func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["userId"] = "User ID is required!"
		}
		if reqData.StateCode == "" {
			errors["stateCode"] = "State code is required!"
		}
		if reqData.DeploymentState == "" {
			errors["deploymentState"] = "Deployment state is required!"
		}
		if reqData.ServiceYear == "" {
			errors["serviceYear"] = "Service year is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

// UpdateMember validates a partial member update. Presence is tracked per
// field so omitted keys are left untouched.
func UpdateMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.MemberUpdate)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedUpdateMember", reqData)
		return c.Next()
	}
}
