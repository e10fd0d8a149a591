package paymentController

import (
	"log"
	"time"

	"mcan/database"
	"mcan/middleware"
	"mcan/models"
	"mcan/services"
	"mcan/utils"
	paymentValidator "mcan/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// InitiatePayment records a PENDING payment with a server-generated
// transaction reference, for payments started from the portal rather than
// reported by the gateway
func InitiatePayment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRecordPayment").(*paymentValidator.RecordPaymentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	reqData.TransactionReference = services.NewTransactionReference()
	return recordPayment(c, reqData, "Payment initiated!")
}

// RecordPayment records a PENDING payment under a gateway-assigned
// transaction reference
func RecordPayment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRecordPayment").(*paymentValidator.RecordPaymentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	return recordPayment(c, reqData, "Payment recorded!")
}

func recordPayment(c *fiber.Ctx, reqData *paymentValidator.RecordPaymentRequest, message string) error {
	var consentDate *time.Time
	if reqData.ConsentDate != "" {
		parsed, err := time.Parse(time.RFC3339, reqData.ConsentDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "consentDate must be RFC3339!", nil)
		}
		consentDate = &parsed
	}

	paymentService := services.NewPaymentService(database.Database.Db)
	payment, err := paymentService.RecordPayment(services.RecordPaymentInput{
		MemberID:             reqData.MemberID,
		Amount:               reqData.Amount,
		Currency:             reqData.Currency,
		PaymentMethod:        models.PaymentMethod(reqData.PaymentMethod),
		TransactionReference: reqData.TransactionReference,
		FlutterwaveReference: reqData.FlutterwaveReference,
		Description:          reqData.Description,
		ConsentGiven:         reqData.ConsentGiven,
		ConsentDate:          consentDate,
	})
	if err != nil {
		return middleware.JsonResponse(c, services.StatusCode(err), false, services.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, message, payment)
}

// SettlePayment resolves a pending payment by id (administrative path)
func SettlePayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payment id!", nil)
	}

	reqData, ok := c.Locals("validatedSettlePayment").(*paymentValidator.SettlePaymentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	paymentService := services.NewPaymentService(database.Database.Db)
	payment, serr := paymentService.Settle(uint(id), models.PaymentStatus(reqData.Status))
	if serr != nil {
		return middleware.JsonResponse(c, services.StatusCode(serr), false, services.Message(serr), nil)
	}

	if payment.Status == models.PaymentCompleted {
		go sendReceipt(payment)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment settled!", payment)
}

// PaymentWebhook handles gateway callbacks. Duplicate and out-of-order
// deliveries are tolerated: the settle path rejects anything that is no
// longer PENDING as a conflict.
func PaymentWebhook(c *fiber.Ctx) error {
	reqData := new(struct {
		TxRef  string `json:"txRef"`
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.TxRef == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "txRef is required!", nil)
	}

	final, ok := gatewayStatus(reqData.Status)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown gateway status!", nil)
	}

	paymentService := services.NewPaymentService(database.Database.Db)
	payment, err := paymentService.FindByReference(reqData.TxRef)
	if err != nil {
		return middleware.JsonResponse(c, services.StatusCode(err), false, services.Message(err), nil)
	}

	// Confirm with the gateway before trusting a success callback. Skipped
	// when no secret key is configured.
	if final == models.PaymentCompleted {
		verification, verr := utils.VerifyFlutterwaveTransaction(reqData.TxRef)
		if verr != nil {
			log.Printf("Webhook verification failed for %s: %v", reqData.TxRef, verr)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Could not verify transaction with gateway!", nil)
		}
		if verification != nil && verification.Status != "successful" {
			final = models.PaymentFailed
		}
	}

	payment, serr := paymentService.Settle(payment.ID, final)
	if serr != nil {
		return middleware.JsonResponse(c, services.StatusCode(serr), false, services.Message(serr), nil)
	}

	if payment.Status == models.PaymentCompleted {
		go sendReceipt(payment)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Webhook processed!", fiber.Map{
		"transactionReference": payment.TransactionReference,
		"status":               payment.Status,
	})
}

// gatewayStatus maps Flutterwave callback statuses onto settlement statuses
func gatewayStatus(status string) (models.PaymentStatus, bool) {
	switch status {
	case "successful", "completed":
		return models.PaymentCompleted, true
	case "failed", "cancelled":
		return models.PaymentFailed, true
	case "refunded":
		return models.PaymentRefunded, true
	default:
		return "", false
	}
}

// GetMemberPayments lists a member's payment history, newest first
func GetMemberPayments(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	db := database.Database.Db

	if err := db.Where("id = ?", memberID).First(&models.Member{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	query := db.Model(&models.Payment{}).Where("member_id = ?", memberID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var payments []models.Payment
	offset := (page - 1) * limit
	if err := query.Order("payment_date DESC").Limit(limit).Offset(offset).Find(&payments).Error; err != nil {
		log.Printf("Error fetching payments for member %d: %v", memberID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": payments,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// RecordConsent appends a new standing authorization for a member
func RecordConsent(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	reqData, ok := c.Locals("validatedRecordConsent").(*paymentValidator.RecordConsentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	consentGiven := true
	if reqData.ConsentGiven != nil {
		consentGiven = *reqData.ConsentGiven
	}

	consentService := services.NewConsentService(database.Database.Db)
	consent, serr := consentService.RecordConsent(services.RecordConsentInput{
		MemberID:      uint(memberID),
		MonthlyAmount: reqData.MonthlyAmount,
		PaymentMethod: reqData.PaymentMethod,
		BankDetails:   reqData.BankDetails,
		AutoDeduction: reqData.AutoDeduction,
		ConsentGiven:  consentGiven,
	})
	if serr != nil {
		return middleware.JsonResponse(c, services.StatusCode(serr), false, services.Message(serr), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Consent recorded!", consent)
}

// GetCurrentConsent returns the member's newest consent
func GetCurrentConsent(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	consentService := services.NewConsentService(database.Database.Db)
	consent, serr := consentService.CurrentConsent(uint(memberID))
	if serr != nil {
		return middleware.JsonResponse(c, services.StatusCode(serr), false, services.Message(serr), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Consent fetched!", consent)
}

// GetConsentHistory returns all of the member's consent rows, newest first
func GetConsentHistory(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	consentService := services.NewConsentService(database.Database.Db)
	consents, serr := consentService.ConsentHistory(uint(memberID))
	if serr != nil {
		return middleware.JsonResponse(c, services.StatusCode(serr), false, services.Message(serr), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Consent history fetched!", consents)
}

// sendReceipt emails a receipt for a completed payment, best effort
func sendReceipt(payment *models.Payment) {
	db := database.Database.Db

	var member models.Member
	if err := db.Preload("User").Where("id = ?", payment.MemberID).First(&member).Error; err != nil {
		log.Printf("Error loading member %d for receipt: %v", payment.MemberID, err)
		return
	}

	if err := utils.SendPaymentReceiptEmail(member.User.Email, member.User.FullName,
		payment.Amount, payment.Currency, payment.TransactionReference); err != nil {
		log.Printf("Error sending receipt for payment %d: %v", payment.ID, err)
	}
}
