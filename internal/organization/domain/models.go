// Package domain contains persistence models for the organization service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Scope is an organization's position in the three-level hierarchy:
// branch at the top, branch representative below it, twig at the bottom.
type Scope string

const (
	ScopeBranch               Scope = "BRANCH"
	ScopeBranchRepresentative Scope = "BRANCH_REPRESENTATIVE"
	ScopeTwig                 Scope = "TWIG"
)

func (s Scope) Valid() bool {
	switch s {
	case ScopeBranch, ScopeBranchRepresentative, ScopeTwig:
		return true
	default:
		return false
	}
}

// Organization owns wallets and business documents. Scope and district are
// fixed at creation.
type Organization struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"type:text;not null" json:"name"`
	Scope     Scope             `gorm:"type:text;not null;index" json:"scope"`
	District  string            `gorm:"type:text;not null;index" json:"district"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }
