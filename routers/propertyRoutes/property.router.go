package propertyRoutes

import (
	propertyController "mcan/controllers/property"
	"mcan/middleware"
	"mcan/models"
	propertyValidator "mcan/validators/property"

	"github.com/gofiber/fiber/v2"
)

func SetupPropertyRoutes(app *fiber.App) {
	propertyGroup := app.Group("/properties", middleware.JWTMiddleware)

	propertyGroup.Get("/", propertyController.GetAllProperties)
	propertyGroup.Get("/:id", propertyController.GetPropertyById)

	// Admin routes
	propertyGroup.Post("/", middleware.RequireRole(models.AdminRoles...), propertyValidator.CreateProperty(), propertyController.CreateProperty)
	propertyGroup.Patch("/:id/status", middleware.RequireRole(models.AdminRoles...), propertyController.UpdatePropertyStatus)
	propertyGroup.Post("/:id/photos", middleware.RequireRole(models.AdminRoles...), propertyController.UploadPropertyPhoto)
}
