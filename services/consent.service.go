package services

import (
	"errors"
	"log"
	"time"

	"mcan/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ConsentService records standing authorizations for recurring dues
// collection. The registry is append-only.
type ConsentService struct {
	DB *gorm.DB
}

func NewConsentService(db *gorm.DB) *ConsentService {
	return &ConsentService{DB: db}
}

// RecordConsentInput carries a new consent row
type RecordConsentInput struct {
	MemberID      uint
	MonthlyAmount float64
	PaymentMethod string
	BankDetails   datatypes.JSON
	AutoDeduction bool
	ConsentGiven  bool
}

// RecordConsent inserts a new consent row. Prior consents are never edited
// or deleted; superseding is the only form of change.
func (s *ConsentService) RecordConsent(in RecordConsentInput) (*models.PaymentConsent, error) {
	if in.MonthlyAmount <= 0 {
		return nil, InvalidArgument("Monthly amount must be greater than 0!")
	}
	if in.PaymentMethod == "" {
		return nil, InvalidArgument("Payment method is required!")
	}

	if err := s.DB.Where("id = ?", in.MemberID).First(&models.Member{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Member not found!")
		}
		log.Printf("[CONSENTS] Error fetching member %d: %v", in.MemberID, err)
		return nil, Internal("Failed to record consent!")
	}

	consent := models.PaymentConsent{
		MemberID:      in.MemberID,
		MonthlyAmount: in.MonthlyAmount,
		ConsentGiven:  in.ConsentGiven,
		ConsentDate:   time.Now(),
		PaymentMethod: in.PaymentMethod,
		BankDetails:   in.BankDetails,
		AutoDeduction: in.AutoDeduction,
	}

	if err := s.DB.Create(&consent).Error; err != nil {
		log.Printf("[CONSENTS] Error creating consent for member %d: %v", in.MemberID, err)
		return nil, Internal("Failed to record consent!")
	}

	return &consent, nil
}

// CurrentConsent returns the member's newest consent row. Ordering is by
// primary key, which is monotonic, rather than created_at, which can
// collide under load.
func (s *ConsentService) CurrentConsent(memberID uint) (*models.PaymentConsent, error) {
	var consent models.PaymentConsent
	err := s.DB.Where("member_id = ?", memberID).Order("id DESC").First(&consent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("No consent on record for this member!")
		}
		log.Printf("[CONSENTS] Error fetching consent for member %d: %v", memberID, err)
		return nil, Internal("Failed to fetch consent!")
	}
	return &consent, nil
}

// ConsentHistory returns all consent rows for a member, newest first.
func (s *ConsentService) ConsentHistory(memberID uint) ([]models.PaymentConsent, error) {
	var consents []models.PaymentConsent
	err := s.DB.Where("member_id = ?", memberID).Order("id DESC").Find(&consents).Error
	if err != nil {
		log.Printf("[CONSENTS] Error fetching consent history for member %d: %v", memberID, err)
		return nil, Internal("Failed to fetch consent history!")
	}
	return consents, nil
}
