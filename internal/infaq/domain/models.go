// Package domain contains persistence models for the infaq service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Infaq is a voluntary giving record. Amount is gross; the amil share is
// split off at posting time. OrgID is denormalized from the amil chain.
type Infaq struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	AmilID        snowflake.ID `gorm:"not null;index" json:"amil_id"`
	OrgID         snowflake.ID `gorm:"not null;index" json:"org_id"`
	GiverName     string       `gorm:"type:text;not null" json:"giver_name"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Date          time.Time    `gorm:"not null" json:"date"`
	TransactionID snowflake.ID `gorm:"not null;index" json:"transaction_id"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Infaq) TableName() string { return "infaqs" }
