// Package domain contains persistence models for the amil service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Organizer is a collection coordinator attached to one organization. Amils
// hang off an organizer, which is how a document created by an amil finds
// the wallet-owning organization.
type Organizer struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"not null;index" json:"org_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Organizer) TableName() string { return "organizers" }

// Amil is an individual collector under an organizer.
type Amil struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	OrganizerID snowflake.ID `gorm:"not null;index" json:"organizer_id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Amil) TableName() string { return "amils" }
