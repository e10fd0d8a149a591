package authValidator

import (
	"strings"

	"mcan/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Email           string `json:"email"`
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	StateCode       string `json:"stateCode"`
	StateOfOrigin   string `json:"stateOfOrigin"`
	DeploymentState string `json:"deploymentState"`
	ServiceYear     string `json:"serviceYear"`
}

// Register validates the registration request
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !strings.Contains(reqData.Email, "@") {
			errors["email"] = "A valid email is required!"
		}
		if reqData.FullName == "" {
			errors["fullName"] = "Full name is required!"
		}
		if reqData.Phone == "" {
			errors["phone"] = "Phone number is required!"
		}
		if len(reqData.Password) < 8 {
			errors["password"] = "Password must be at least 8 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates the login request
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Email == "" {
			errors["email"] = "Email is required!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
