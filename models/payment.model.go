package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentStatus defines the status of a payment transaction
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

var terminalPaymentStatuses = map[PaymentStatus]bool{
	PaymentCompleted: true,
	PaymentFailed:    true,
	PaymentRefunded:  true,
}

// Terminal reports whether s is a final settlement status. Terminal
// statuses are one-way: a payment never leaves them.
func (s PaymentStatus) Terminal() bool {
	return terminalPaymentStatuses[s]
}

// PaymentMethod defines how a payment was made
type PaymentMethod string

const (
	MethodBankTransfer       PaymentMethod = "BANK_TRANSFER"
	MethodCard               PaymentMethod = "CARD"
	MethodUSSD               PaymentMethod = "USSD"
	MethodAllowanceDeduction PaymentMethod = "ALLOWANCE_DEDUCTION"
)

var validPaymentMethods = map[PaymentMethod]bool{
	MethodBankTransfer:       true,
	MethodCard:               true,
	MethodUSSD:               true,
	MethodAllowanceDeduction: true,
}

func (m PaymentMethod) Valid() bool {
	return validPaymentMethods[m]
}

// Payment is one dues transaction against a member. TransactionReference is
// the idempotency key for gateway callbacks, unique across all payments.
// Rows are never deleted; they are the audit trail.
type Payment struct {
	gorm.Model
	MemberID             uint          `gorm:"not null;index" json:"memberId"`
	Member               Member        `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
	Amount               float64       `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency             string        `gorm:"size:3;not null;default:'NGN'" json:"currency"`
	Status               PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_payments_status_method,priority:1" json:"status"`
	PaymentMethod        PaymentMethod `gorm:"type:varchar(30);not null;index:idx_payments_status_method,priority:2" json:"paymentMethod"`
	TransactionReference string        `gorm:"size:100;not null;uniqueIndex" json:"transactionReference"`
	FlutterwaveReference string        `gorm:"size:100" json:"flutterwaveReference"`
	PaymentDate          time.Time     `gorm:"not null" json:"paymentDate"`
	Description          string        `gorm:"not null" json:"description"`

	// Consent snapshot captured at recording time, deliberately independent
	// of whatever the live consent rows say afterwards.
	ConsentGiven bool       `gorm:"not null;default:false" json:"consentGiven"`
	ConsentDate  *time.Time `json:"consentDate"`
}

func (Payment) TableName() string {
	return "payments"
}
