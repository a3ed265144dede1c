// Package domain contains persistence models for the donor service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Volunteer is a coin-collection coordinator attached to one organization.
// Donors hang off a volunteer, which is how a coin deposit finds the
// wallet-owning organization.
type Volunteer struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"not null;index" json:"org_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Volunteer) TableName() string { return "volunteers" }

// Donor is a registered coin-box holder under a volunteer.
type Donor struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	VolunteerID snowflake.ID `gorm:"not null;index" json:"volunteer_id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Phone       string       `gorm:"type:text" json:"phone"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Donor) TableName() string { return "donors" }
