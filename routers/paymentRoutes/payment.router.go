package paymentRoutes

import (
	paymentController "mcan/controllers/payment"
	"mcan/middleware"
	"mcan/models"
	paymentValidator "mcan/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payments")

	// Gateway webhook carries its own reference; no session
	paymentGroup.Post("/webhook", paymentController.PaymentWebhook)

	paymentGroup.Post("/initiate", middleware.JWTMiddleware, paymentValidator.RecordPayment(false), paymentController.InitiatePayment)
	paymentGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.AdminRoles...), paymentValidator.RecordPayment(true), paymentController.RecordPayment)
	paymentGroup.Patch("/:id/settle", middleware.JWTMiddleware, middleware.RequireRole(models.RoleSuperAdmin, models.RoleNationalAdmin), paymentValidator.SettlePayment(), paymentController.SettlePayment)
}
