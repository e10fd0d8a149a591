package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PropertyType defines the kind of association-owned property
type PropertyType string

const (
	PropertyMosque PropertyType = "MOSQUE"
	PropertyOffice PropertyType = "OFFICE"
	PropertyHall   PropertyType = "HALL"
	PropertySchool PropertyType = "SCHOOL"
	PropertyOther  PropertyType = "OTHER"
)

var validPropertyTypes = map[PropertyType]bool{
	PropertyMosque: true,
	PropertyOffice: true,
	PropertyHall:   true,
	PropertySchool: true,
	PropertyOther:  true,
}

func (t PropertyType) Valid() bool {
	return validPropertyTypes[t]
}

// PropertyStatus defines the usage status of a property
type PropertyStatus string

const (
	PropertyActive           PropertyStatus = "ACTIVE"
	PropertyUnderMaintenance PropertyStatus = "UNDER_MAINTENANCE"
	PropertyAvailable        PropertyStatus = "AVAILABLE"
	PropertyOccupied         PropertyStatus = "OCCUPIED"
)

var validPropertyStatuses = map[PropertyStatus]bool{
	PropertyActive:           true,
	PropertyUnderMaintenance: true,
	PropertyAvailable:        true,
	PropertyOccupied:         true,
}

func (s PropertyStatus) Valid() bool {
	return validPropertyStatuses[s]
}

// Property is an association-owned asset. Status is a plain flag, there is
// no lifecycle behind it.
type Property struct {
	gorm.Model
	Name              string         `gorm:"not null" json:"name"`
	Description       string         `gorm:"type:text;not null" json:"description"`
	Type              PropertyType   `gorm:"type:varchar(20);not null;index:idx_properties_state_type_status,priority:2" json:"type"`
	Location          datatypes.JSON `gorm:"not null" json:"location"`
	Photos            datatypes.JSON `json:"photos"`
	OwnershipDocument string         `json:"ownershipDocument"`
	Status            PropertyStatus `gorm:"type:varchar(30);not null;default:'ACTIVE';index:idx_properties_state_type_status,priority:3" json:"status"`
	StateChapter      string         `gorm:"size:100;not null;index:idx_properties_state_type_status,priority:1" json:"stateChapter"`
	AddedBy           uint           `gorm:"default:0" json:"addedBy"`
	AddedDate         time.Time      `gorm:"not null" json:"addedDate"`
}

func (Property) TableName() string {
	return "properties"
}
