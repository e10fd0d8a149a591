package services

import (
	"errors"
	"log"
	"time"

	"mcan/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentService records dues transactions and settles them. Recording is
// idempotent on the transaction reference; settlement is a one-way move out
// of PENDING.
type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// NewTransactionReference generates a reference for self-initiated payments.
// Gateway callbacks carry their own reference and never use this.
func NewTransactionReference() string {
	return "MCAN-" + uuid.NewString()
}

// RecordPaymentInput carries a new payment transaction
type RecordPaymentInput struct {
	MemberID             uint
	Amount               float64
	Currency             string
	PaymentMethod        models.PaymentMethod
	TransactionReference string
	FlutterwaveReference string
	Description          string
	ConsentGiven         bool
	ConsentDate          *time.Time
}

// RecordPayment inserts a PENDING payment. The unique index on
// transaction_reference is what actually enforces idempotency: a duplicate
// gateway retry loses the insert race at the storage layer and comes back
// as Conflict, regardless of interleaving.
func (s *PaymentService) RecordPayment(in RecordPaymentInput) (*models.Payment, error) {
	if in.Amount <= 0 {
		return nil, InvalidArgument("Amount must be greater than 0!")
	}
	if in.TransactionReference == "" {
		return nil, InvalidArgument("Transaction reference is required!")
	}
	if !in.PaymentMethod.Valid() {
		return nil, InvalidArgument("Unknown payment method!")
	}
	if in.Currency == "" {
		in.Currency = "NGN"
	}
	if len(in.Currency) != 3 {
		return nil, InvalidArgument("Currency must be a 3-letter ISO code!")
	}

	if err := s.DB.Where("id = ?", in.MemberID).First(&models.Member{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Member not found!")
		}
		log.Printf("[PAYMENTS] Error fetching member %d: %v", in.MemberID, err)
		return nil, Internal("Failed to record payment!")
	}

	payment := models.Payment{
		MemberID:             in.MemberID,
		Amount:               in.Amount,
		Currency:             in.Currency,
		Status:               models.PaymentPending,
		PaymentMethod:        in.PaymentMethod,
		TransactionReference: in.TransactionReference,
		FlutterwaveReference: in.FlutterwaveReference,
		PaymentDate:          time.Now(),
		Description:          in.Description,
		ConsentGiven:         in.ConsentGiven,
		ConsentDate:          in.ConsentDate,
	}

	if err := s.DB.Create(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Transaction already processed!")
		}
		log.Printf("[PAYMENTS] Error creating payment %s: %v", in.TransactionReference, err)
		return nil, Internal("Failed to record payment!")
	}

	return &payment, nil
}

// FindByReference looks a payment up by its transaction reference, which is
// what gateway webhooks carry.
func (s *PaymentService) FindByReference(reference string) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.Where("transaction_reference = ?", reference).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Payment not found!")
		}
		log.Printf("[PAYMENTS] Error fetching payment %s: %v", reference, err)
		return nil, Internal("Failed to fetch payment!")
	}
	return &payment, nil
}

// Settle resolves a PENDING payment to a terminal status. The status write
// is a conditional update so only one of two racing settlements can win,
// and the ledger follow-up runs in the same transaction so the payment and
// member rows can never diverge.
func (s *PaymentService) Settle(paymentID uint, final models.PaymentStatus) (*models.Payment, error) {
	if !final.Terminal() {
		return nil, InvalidArgument("Settlement status must be COMPLETED, FAILED or REFUNDED!")
	}

	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", paymentID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Payment not found!")
			}
			log.Printf("[PAYMENTS] Error fetching payment %d: %v", paymentID, err)
			return Internal("Failed to settle payment!")
		}

		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", paymentID, models.PaymentPending).
			Update("status", final)
		if res.Error != nil {
			log.Printf("[PAYMENTS] Error settling payment %d: %v", paymentID, res.Error)
			return Internal("Failed to settle payment!")
		}
		if res.RowsAffected == 0 {
			return Conflict("Payment is already settled!")
		}

		switch final {
		case models.PaymentCompleted:
			if err := s.advanceSchedule(tx, &payment); err != nil {
				return err
			}
		case models.PaymentRefunded:
			if err := s.revertSchedule(tx, &payment); err != nil {
				return err
			}
		}
		// FAILED leaves the ledger alone: a failed attempt neither makes a
		// member CURRENT nor forces OVERDUE.

		payment.Status = final
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[PAYMENTS] Payment %d (%s) settled as %s", payment.ID, payment.TransactionReference, final)
	return &payment, nil
}

// advanceSchedule applies a completed payment to the member's dues
// schedule: last payment date, next payment date one month on, and CURRENT
// standing. The standing update is guarded so a manual EXEMPT is never
// auto-cleared.
func (s *PaymentService) advanceSchedule(tx *gorm.DB, payment *models.Payment) error {
	next := payment.PaymentDate.AddDate(0, 1, 0)

	err := tx.Model(&models.Member{}).
		Where("id = ?", payment.MemberID).
		Updates(map[string]interface{}{
			"last_payment_date": payment.PaymentDate,
			"next_payment_date": next,
		}).Error
	if err != nil {
		log.Printf("[PAYMENTS] Error advancing schedule for member %d: %v", payment.MemberID, err)
		return Internal("Failed to settle payment!")
	}

	err = tx.Model(&models.Member{}).
		Where("id = ? AND payment_status <> ?", payment.MemberID, models.PaymentStatusExempt).
		Update("payment_status", models.PaymentStatusCurrent).Error
	if err != nil {
		log.Printf("[PAYMENTS] Error updating standing for member %d: %v", payment.MemberID, err)
		return Internal("Failed to settle payment!")
	}
	return nil
}

// revertSchedule unwinds the schedule advancement of a payment being
// refunded, but only when the outcome is unambiguous:
//   - the ledger was never advanced, or a later completed payment owns the
//     current schedule: nothing to revert;
//   - the refunded payment produced the current schedule: restore it from
//     the latest remaining completed payment, or clear it when none exists;
//   - the ledger state cannot be explained by the payment rows: flag the
//     member for manual reconciliation instead of guessing.
func (s *PaymentService) revertSchedule(tx *gorm.DB, payment *models.Payment) error {
	var member models.Member
	if err := tx.Where("id = ?", payment.MemberID).First(&member).Error; err != nil {
		log.Printf("[PAYMENTS] Error fetching member %d: %v", payment.MemberID, err)
		return Internal("Failed to settle payment!")
	}

	if member.LastPaymentDate == nil {
		return nil
	}

	if !member.LastPaymentDate.Equal(payment.PaymentDate) {
		// The schedule belongs to some other payment. If a completed
		// payment explains it, this refund has nothing to unwind.
		var owner int64
		err := tx.Model(&models.Payment{}).
			Where("member_id = ? AND status = ? AND id <> ? AND payment_date = ?",
				payment.MemberID, models.PaymentCompleted, payment.ID, member.LastPaymentDate).
			Count(&owner).Error
		if err != nil {
			log.Printf("[PAYMENTS] Error inspecting payments for member %d: %v", payment.MemberID, err)
			return Internal("Failed to settle payment!")
		}
		if owner > 0 {
			return nil
		}

		log.Printf("[PAYMENTS] Refund of payment %d needs manual reconciliation for member %d", payment.ID, payment.MemberID)
		return tx.Model(&models.Member{}).
			Where("id = ?", payment.MemberID).
			Update("needs_reconciliation", true).Error
	}

	updates := map[string]interface{}{
		"last_payment_date": nil,
		"next_payment_date": nil,
	}

	var previous models.Payment
	err := tx.Where("member_id = ? AND status = ? AND id <> ?",
		payment.MemberID, models.PaymentCompleted, payment.ID).
		Order("payment_date DESC").First(&previous).Error
	switch {
	case err == nil:
		// Restore exactly what settling the previous payment wrote.
		updates["last_payment_date"] = previous.PaymentDate
		updates["next_payment_date"] = previous.PaymentDate.AddDate(0, 1, 0)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No completed payment remains; back to the pre-first-payment state.
	default:
		log.Printf("[PAYMENTS] Error fetching prior payment for member %d: %v", payment.MemberID, err)
		return Internal("Failed to settle payment!")
	}

	if err := tx.Model(&models.Member{}).Where("id = ?", payment.MemberID).Updates(updates).Error; err != nil {
		log.Printf("[PAYMENTS] Error reverting schedule for member %d: %v", payment.MemberID, err)
		return Internal("Failed to settle payment!")
	}
	return nil
}
