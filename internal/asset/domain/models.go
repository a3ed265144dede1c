// Package domain contains persistence models for the asset recording service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// AssetRecording books a donated asset at its appraised value on the
// donation wallet.
type AssetRecording struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID `gorm:"not null;index" json:"org_id"`
	Name          string       `gorm:"type:text;not null" json:"name"`
	Value         int64        `gorm:"not null" json:"value"`
	Date          time.Time    `gorm:"not null" json:"date"`
	TransactionID snowflake.ID `gorm:"not null;index" json:"transaction_id"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (AssetRecording) TableName() string { return "asset_recordings" }
