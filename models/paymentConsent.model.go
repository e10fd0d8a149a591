package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentConsent is a member's standing authorization for recurring dues
// collection. Rows are append-only: changing bank details or amount means
// inserting a new consent, never editing an old one, so the full consent
// history survives for audit.
type PaymentConsent struct {
	gorm.Model
	MemberID      uint           `gorm:"not null;index" json:"memberId"`
	Member        Member         `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
	MonthlyAmount float64        `gorm:"type:decimal(12,2);not null" json:"monthlyAmount"`
	ConsentGiven  bool           `gorm:"not null;default:true" json:"consentGiven"`
	ConsentDate   time.Time      `gorm:"not null" json:"consentDate"`
	PaymentMethod string         `gorm:"size:50;not null" json:"paymentMethod"`
	BankDetails   datatypes.JSON `json:"bankDetails,omitempty"`
	AutoDeduction bool           `gorm:"not null;default:false" json:"autoDeduction"`
}

func (PaymentConsent) TableName() string {
	return "payment_consents"
}
