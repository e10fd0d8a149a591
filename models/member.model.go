package models

import (
	"time"

	"gorm.io/gorm"
)

// MembershipStatus defines the membership lifecycle states
type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "ACTIVE"
	MembershipInactive  MembershipStatus = "INACTIVE"
	MembershipSuspended MembershipStatus = "SUSPENDED"
	MembershipExpired   MembershipStatus = "EXPIRED"
)

// validMembershipStatuses is the explicit table of legal status values.
// Any status may be reached from any other via an administrative
// transition; policy beyond that belongs to the authorization layer.
var validMembershipStatuses = map[MembershipStatus]bool{
	MembershipActive:    true,
	MembershipInactive:  true,
	MembershipSuspended: true,
	MembershipExpired:   true,
}

func (s MembershipStatus) Valid() bool {
	return validMembershipStatuses[s]
}

// MemberPaymentStatus defines the dues standing of a member
type MemberPaymentStatus string

const (
	PaymentStatusCurrent MemberPaymentStatus = "CURRENT"
	PaymentStatusOverdue MemberPaymentStatus = "OVERDUE"
	PaymentStatusExempt  MemberPaymentStatus = "EXEMPT"
)

var validMemberPaymentStatuses = map[MemberPaymentStatus]bool{
	PaymentStatusCurrent: true,
	PaymentStatusOverdue: true,
	PaymentStatusExempt:  true,
}

func (s MemberPaymentStatus) Valid() bool {
	return validMemberPaymentStatuses[s]
}

// Member is the membership ledger row. Exactly one per user, enforced by
// the unique index on UserID. State attributes are duplicated from the user
// at enrollment and updated independently afterwards.
type Member struct {
	gorm.Model
	UserID           uint                `gorm:"not null;uniqueIndex" json:"userId"`
	User             User                `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	StateCode        string              `gorm:"size:20;not null;index:idx_members_state_status,priority:1" json:"stateCode"`
	DeploymentState  string              `gorm:"size:100;not null" json:"deploymentState"`
	ServiceYear      string              `gorm:"size:10;not null" json:"serviceYear"`
	MembershipStatus MembershipStatus    `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_members_state_status,priority:2" json:"membershipStatus"`
	PaymentStatus    MemberPaymentStatus `gorm:"type:varchar(20);not null;default:'CURRENT'" json:"paymentStatus"`
	RegistrationDate time.Time           `gorm:"not null" json:"registrationDate"`
	LastPaymentDate  *time.Time          `json:"lastPaymentDate"`
	NextPaymentDate  *time.Time          `json:"nextPaymentDate"`

	// Set when a refund could not be unwound automatically and the
	// payment schedule needs a manual look.
	NeedsReconciliation bool `gorm:"not null;default:false" json:"needsReconciliation"`
}

func (Member) TableName() string {
	return "members"
}
