package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is the closed set of user roles
type Role string

const (
	RoleSuperAdmin     Role = "SUPER_ADMIN"
	RoleNationalAdmin  Role = "NATIONAL_ADMIN"
	RoleStateAmeer     Role = "STATE_AMEER"
	RoleStateSecretary Role = "STATE_SECRETARY"
	RoleMcloAmeer      Role = "MCLO_AMEER"
	RoleMember         Role = "MEMBER"
)

var validRoles = map[Role]bool{
	RoleSuperAdmin:     true,
	RoleNationalAdmin:  true,
	RoleStateAmeer:     true,
	RoleStateSecretary: true,
	RoleMcloAmeer:      true,
	RoleMember:         true,
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return validRoles[r]
}

// AdminRoles are the roles allowed on administrative routes
var AdminRoles = []Role{RoleSuperAdmin, RoleNationalAdmin, RoleStateAmeer, RoleStateSecretary}

// User is the identity record. Emails are stored lowercased so the unique
// index is effectively case-insensitive. Users are never hard-deleted,
// deactivation flips IsActive.
type User struct {
	gorm.Model
	Email           string         `gorm:"uniqueIndex;not null" json:"email"`
	FullName        string         `gorm:"not null" json:"fullName"`
	Phone           string         `gorm:"size:20;not null" json:"phone"`
	Password        string         `gorm:"not null" json:"-"`
	Role            Role           `gorm:"type:varchar(20);not null;default:'MEMBER';index:idx_users_state_role,priority:2" json:"role"`
	StateCode       string         `gorm:"size:20;index:idx_users_state_role,priority:1" json:"stateCode"`
	StateOfOrigin   string         `gorm:"size:100" json:"stateOfOrigin"`
	DeploymentState string         `gorm:"size:100" json:"deploymentState"`
	ServiceYear     string         `gorm:"size:10" json:"serviceYear"`
	IsActive        bool           `gorm:"not null;default:true" json:"isActive"`
	IsEmailVerified bool           `gorm:"not null;default:false" json:"isEmailVerified"`
	ProfilePicture  string         `json:"profilePicture"`
	BiometricData   datatypes.JSON `json:"biometricData,omitempty"`
}

func (User) TableName() string {
	return "users"
}
