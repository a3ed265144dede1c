// Package domain contains persistence models for the amil funding service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// FundingType classifies where amil operational money comes from.
// OTHER_AMIL is reserved for the automatic cut taken from zakat, infaq and
// dskl collections.
type FundingType string

const (
	FundingOtherAmil   FundingType = "OTHER_AMIL"
	FundingSalary      FundingType = "SALARY"
	FundingOperational FundingType = "OPERATIONAL"
)

func (f FundingType) Valid() bool {
	switch f {
	case FundingOtherAmil, FundingSalary, FundingOperational:
		return true
	default:
		return false
	}
}

// AmilFunding is money entering the AMIL wallet.
type AmilFunding struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID `gorm:"not null;index" json:"org_id"`
	FundingType   FundingType  `gorm:"type:text;not null" json:"funding_type"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Date          time.Time    `gorm:"not null" json:"date"`
	Description   string       `gorm:"type:text" json:"description"`
	TransactionID snowflake.ID `gorm:"not null;index" json:"transaction_id"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (AmilFunding) TableName() string { return "amil_fundings" }

// AmilFundingUsage is money leaving the AMIL wallet.
type AmilFundingUsage struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID `gorm:"not null;index" json:"org_id"`
	Purpose       string       `gorm:"type:text;not null" json:"purpose"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Date          time.Time    `gorm:"not null" json:"date"`
	TransactionID snowflake.ID `gorm:"not null;index" json:"transaction_id"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (AmilFundingUsage) TableName() string { return "amil_funding_usages" }
