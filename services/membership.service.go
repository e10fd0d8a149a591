package services

import (
	"errors"
	"log"
	"time"

	"mcan/models"

	"gorm.io/gorm"
)

// MembershipService owns the membership ledger: enrollment, attribute
// updates and the status state machine.
type MembershipService struct {
	DB *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{DB: db}
}

// Enroll creates the membership ledger row for a user. A user can hold at
// most one membership; the unique index on user_id closes the race between
// two concurrent enrollments.
func (s *MembershipService) Enroll(userID uint, stateCode, deploymentState, serviceYear string) (*models.Member, error) {
	if stateCode == "" || deploymentState == "" || serviceYear == "" {
		return nil, InvalidArgument("stateCode, deploymentState and serviceYear are required!")
	}

	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found!")
		}
		log.Printf("[MEMBERS] Error fetching user %d: %v", userID, err)
		return nil, Internal("Failed to enroll member!")
	}

	member := models.Member{
		UserID:           userID,
		StateCode:        stateCode,
		DeploymentState:  deploymentState,
		ServiceYear:      serviceYear,
		MembershipStatus: models.MembershipActive,
		PaymentStatus:    models.PaymentStatusCurrent,
		RegistrationDate: time.Now(),
	}

	if err := s.DB.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Member record already exists for this user!")
		}
		log.Printf("[MEMBERS] Error creating member for user %d: %v", userID, err)
		return nil, Internal("Failed to enroll member!")
	}

	return &member, nil
}

// MemberUpdate carries a partial update of the ledger. Absent slots leave
// the column untouched.
type MemberUpdate struct {
	StateCode        OptionalString `json:"stateCode"`
	DeploymentState  OptionalString `json:"deploymentState"`
	ServiceYear      OptionalString `json:"serviceYear"`
	MembershipStatus OptionalString `json:"membershipStatus"`
}

// UpdateAttributes applies the provided fields as one atomic merge. All
// validation happens before any write, and the attribute update plus a
// membershipStatus transition commit in the same transaction, so a rejected
// request leaves the row exactly as it was.
func (s *MembershipService) UpdateAttributes(memberID uint, upd MemberUpdate) (*models.Member, error) {
	var member models.Member
	if err := s.DB.Where("id = ?", memberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Member not found!")
		}
		log.Printf("[MEMBERS] Error fetching member %d: %v", memberID, err)
		return nil, Internal("Failed to update member!")
	}

	updates := map[string]interface{}{}
	if upd.StateCode.Set {
		if upd.StateCode.Null || upd.StateCode.Value == "" {
			return nil, InvalidArgument("stateCode cannot be empty!")
		}
		updates["state_code"] = upd.StateCode.Value
	}
	if upd.DeploymentState.Set {
		if upd.DeploymentState.Null || upd.DeploymentState.Value == "" {
			return nil, InvalidArgument("deploymentState cannot be empty!")
		}
		updates["deployment_state"] = upd.DeploymentState.Value
	}
	if upd.ServiceYear.Set {
		if upd.ServiceYear.Null || upd.ServiceYear.Value == "" {
			return nil, InvalidArgument("serviceYear cannot be empty!")
		}
		updates["service_year"] = upd.ServiceYear.Value
	}

	var next models.MembershipStatus
	if upd.MembershipStatus.Set {
		next = models.MembershipStatus(upd.MembershipStatus.Value)
		if !next.Valid() {
			return nil, InvalidArgument("Unknown membership status!")
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Member{}).Where("id = ?", memberID).Updates(updates).Error; err != nil {
				log.Printf("[MEMBERS] Error updating member %d: %v", memberID, err)
				return Internal("Failed to update member!")
			}
		}
		if upd.MembershipStatus.Set {
			if _, _, err := transitionStatus(tx, memberID, next); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Where("id = ?", memberID).First(&member).Error; err != nil {
		log.Printf("[MEMBERS] Error reloading member %d: %v", memberID, err)
		return nil, Internal("Failed to update member!")
	}
	return &member, nil
}

// TransitionStatus is the only writer of membership_status. It validates
// the target against the legal-value table and applies the change with a
// conditional update against the state it read, so two concurrent
// transitions cannot both win. Returns the prior and new state for audit.
func (s *MembershipService) TransitionStatus(memberID uint, next models.MembershipStatus) (models.MembershipStatus, models.MembershipStatus, error) {
	if !next.Valid() {
		return "", "", InvalidArgument("Unknown membership status!")
	}
	return transitionStatus(s.DB, memberID, next)
}

// transitionStatus is the shared transition core, run either standalone or
// inside an update transaction. The caller has already validated next.
func transitionStatus(db *gorm.DB, memberID uint, next models.MembershipStatus) (models.MembershipStatus, models.MembershipStatus, error) {
	var member models.Member
	if err := db.Where("id = ?", memberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", NotFound("Member not found!")
		}
		log.Printf("[MEMBERS] Error fetching member %d: %v", memberID, err)
		return "", "", Internal("Failed to update membership status!")
	}

	prior := member.MembershipStatus
	if prior == next {
		return prior, next, nil
	}

	res := db.Model(&models.Member{}).
		Where("id = ? AND membership_status = ?", memberID, prior).
		Update("membership_status", next)
	if res.Error != nil {
		log.Printf("[MEMBERS] Error transitioning member %d: %v", memberID, res.Error)
		return "", "", Internal("Failed to update membership status!")
	}
	if res.RowsAffected == 0 {
		return "", "", Conflict("Membership status changed concurrently, please retry!")
	}

	log.Printf("[MEMBERS] Member %d membership status %s -> %s", memberID, prior, next)
	return prior, next, nil
}

// SetPaymentStatus is the administrative override for dues standing, the
// only way EXEMPT is ever set or cleared.
func (s *MembershipService) SetPaymentStatus(memberID uint, next models.MemberPaymentStatus) (*models.Member, error) {
	if !next.Valid() {
		return nil, InvalidArgument("Unknown payment status!")
	}

	var member models.Member
	if err := s.DB.Where("id = ?", memberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Member not found!")
		}
		log.Printf("[MEMBERS] Error fetching member %d: %v", memberID, err)
		return nil, Internal("Failed to update payment status!")
	}

	if err := s.DB.Model(&member).Update("payment_status", next).Error; err != nil {
		log.Printf("[MEMBERS] Error setting payment status for member %d: %v", memberID, err)
		return nil, Internal("Failed to update payment status!")
	}

	log.Printf("[MEMBERS] Member %d payment status %s -> %s", memberID, member.PaymentStatus, next)
	member.PaymentStatus = next
	return &member, nil
}

// SweepOverdue flips CURRENT members to OVERDUE once their next payment
// date has elapsed. The conditional update only ever touches ACTIVE,
// CURRENT rows, so EXEMPT and suspended/expired members are untouched and
// a concurrent completed settlement cannot be overwritten.
func (s *MembershipService) SweepOverdue(cutoff time.Time) (int64, error) {
	res := s.DB.Model(&models.Member{}).
		Where("payment_status = ? AND membership_status = ?", models.PaymentStatusCurrent, models.MembershipActive).
		Where("next_payment_date IS NOT NULL AND next_payment_date < ?", cutoff).
		Update("payment_status", models.PaymentStatusOverdue)
	if res.Error != nil {
		log.Printf("[MEMBERS] Overdue sweep failed: %v", res.Error)
		return 0, Internal("Overdue sweep failed!")
	}
	return res.RowsAffected, nil
}
