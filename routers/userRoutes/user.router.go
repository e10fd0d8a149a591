package userRoutes

import (
	userController "mcan/controllers/userControllers"
	"mcan/middleware"
	"mcan/models"
	userValidator "mcan/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users")

	userGroup.Post("/profile-picture", middleware.JWTMiddleware, userController.UploadProfilePicture)

	// Admin routes
	userGroup.Get("/", middleware.JWTMiddleware, middleware.RequireRole(models.AdminRoles...), userController.GetAllUsers)
	userGroup.Get("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.AdminRoles...), userController.GetUserById)
	userGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.AdminRoles...), userValidator.UpdateUser(), userController.UpdateUser)
	userGroup.Patch("/:id/activate", middleware.JWTMiddleware, middleware.RequireRole(models.RoleSuperAdmin, models.RoleNationalAdmin), userController.ActivateUser)
	userGroup.Patch("/:id/deactivate", middleware.JWTMiddleware, middleware.RequireRole(models.RoleSuperAdmin, models.RoleNationalAdmin), userController.DeactivateUser)
}
