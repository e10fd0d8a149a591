package memberRoutes

import (
	memberController "mcan/controllers/member"
	paymentController "mcan/controllers/payment"
	"mcan/middleware"
	"mcan/models"
	memberValidator "mcan/validators/member"
	paymentValidator "mcan/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupMemberRoutes(app *fiber.App) {
	memberGroup := app.Group("/members", middleware.JWTMiddleware)

	memberGroup.Get("/", memberController.GetAllMembers)
	memberGroup.Get("/:id", memberController.GetMemberById)
	memberGroup.Post("/", middleware.RequireRole(models.AdminRoles...), memberValidator.Enroll(), memberController.EnrollMember)
	memberGroup.Put("/:id", middleware.RequireRole(models.AdminRoles...), memberValidator.UpdateMember(), memberController.UpdateMember)
	memberGroup.Patch("/:id/payment-status", middleware.RequireRole(models.RoleSuperAdmin, models.RoleNationalAdmin), memberController.SetMemberPaymentStatus)

	// e-ID card
	memberGroup.Post("/:id/eid", memberController.GenerateEIDCard)
	memberGroup.Get("/:id/eid", memberController.GetEIDCard)
	memberGroup.Get("/:id/eid/download", memberController.DownloadEIDCard)

	// Dues
	memberGroup.Get("/:id/payments", paymentController.GetMemberPayments)
	memberGroup.Post("/:id/consents", paymentValidator.RecordConsent(), paymentController.RecordConsent)
	memberGroup.Get("/:id/consents", paymentController.GetConsentHistory)
	memberGroup.Get("/:id/consents/current", paymentController.GetCurrentConsent)
}
