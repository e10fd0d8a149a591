package models

import (
	"gorm.io/gorm"
)

// EIDCard is a rendered e-ID document for a user. Cards are immutable:
// re-issuing appends a new row with the next VersionSeq. The current card
// is the row with the highest VersionSeq for the user, not the newest
// created_at, so timestamp collisions can never pick the wrong card.
type EIDCard struct {
	gorm.Model
	UserID     uint   `gorm:"not null;uniqueIndex:idx_eid_cards_user_version,priority:1" json:"userId"`
	User       User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SVGMarkup  string `gorm:"type:text;not null" json:"svgMarkup"`
	Version    string `gorm:"size:20;not null" json:"version"`
	VersionSeq int    `gorm:"not null;uniqueIndex:idx_eid_cards_user_version,priority:2,sort:desc" json:"versionSeq"`
}

func (EIDCard) TableName() string {
	return "eid_cards"
}
