// Package domain contains persistence models for the non-halal fund service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// NonHalalFundingReceive is money entering the non-halal wallet, typically
// conventional bank interest that must be segregated from zakat funds.
type NonHalalFundingReceive struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID `gorm:"not null;index" json:"org_id"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Date          time.Time    `gorm:"not null" json:"date"`
	Description   string       `gorm:"type:text" json:"description"`
	TransactionID snowflake.ID `gorm:"not null;index" json:"transaction_id"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (NonHalalFundingReceive) TableName() string { return "non_halal_funding_receives" }

// NonHalalFundingDistribution is money leaving the non-halal wallet, spent
// only on public infrastructure.
type NonHalalFundingDistribution struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID `gorm:"not null;index" json:"org_id"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Date          time.Time    `gorm:"not null" json:"date"`
	Description   string       `gorm:"type:text" json:"description"`
	TransactionID snowflake.ID `gorm:"not null;index" json:"transaction_id"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (NonHalalFundingDistribution) TableName() string { return "non_halal_funding_distributions" }
