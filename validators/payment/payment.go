package paymentValidator

import (
	"mcan/middleware"
	"mcan/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// RecordPaymentRequest is a new dues transaction
type RecordPaymentRequest struct {
	MemberID             uint    `json:"memberId"`
	Amount               float64 `json:"amount"`
	Currency             string  `json:"currency"`
	PaymentMethod        string  `json:"paymentMethod"`
	TransactionReference string  `json:"transactionReference"`
	FlutterwaveReference string  `json:"flutterwaveReference"`
	Description          string  `json:"description"`
	ConsentGiven         bool    `json:"consentGiven"`
	ConsentDate          string  `json:"consentDate"`
}

// RecordPayment validates a payment recording request
func RecordPayment(requireReference bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RecordPaymentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.MemberID == 0 {
			errors["memberId"] = "Member ID is required!"
		}
		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}
		if !models.PaymentMethod(reqData.PaymentMethod).Valid() {
			errors["paymentMethod"] = "Payment method must be BANK_TRANSFER, CARD, USSD or ALLOWANCE_DEDUCTION!"
		}
		if requireReference && reqData.TransactionReference == "" {
			errors["transactionReference"] = "Transaction reference is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRecordPayment", reqData)
		return c.Next()
	}
}

// SettlePaymentRequest resolves a pending payment
type SettlePaymentRequest struct {
	Status string `json:"status"`
}

// SettlePayment validates a settlement request
func SettlePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SettlePaymentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if !models.PaymentStatus(reqData.Status).Terminal() {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be COMPLETED, FAILED or REFUNDED!",
			})
		}

		c.Locals("validatedSettlePayment", reqData)
		return c.Next()
	}
}

// RecordConsentRequest is a new standing payment authorization
type RecordConsentRequest struct {
	MonthlyAmount float64        `json:"monthlyAmount"`
	PaymentMethod string         `json:"paymentMethod"`
	BankDetails   datatypes.JSON `json:"bankDetails"`
	AutoDeduction bool           `json:"autoDeduction"`
	ConsentGiven  *bool          `json:"consentGiven"`
}

// RecordConsent validates a consent request
func RecordConsent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RecordConsentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.MonthlyAmount <= 0 {
			errors["monthlyAmount"] = "Monthly amount must be greater than 0!"
		}
		if reqData.PaymentMethod == "" {
			errors["paymentMethod"] = "Payment method is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRecordConsent", reqData)
		return c.Next()
	}
}
