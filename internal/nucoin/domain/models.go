// Package domain contains persistence models for the nu coin service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TransferStatus is the approval state of a cross-organization transfer.
// Only APPROVED transfers post to the ledger.
type TransferStatus string

const (
	TransferPending  TransferStatus = "PENDING"
	TransferApproved TransferStatus = "APPROVED"
	TransferRejected TransferStatus = "REJECTED"
)

// NuCoin is a donor coin deposit. It lands on the staging aggregator wallet
// and is swept into the main coin wallet later. OrgID is denormalized from
// the donor chain at creation.
type NuCoin struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	DonorID       snowflake.ID `gorm:"not null;index" json:"donor_id"`
	OrgID         snowflake.ID `gorm:"not null;index" json:"org_id"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Date          time.Time    `gorm:"not null" json:"date"`
	TransactionID snowflake.ID `gorm:"not null;index" json:"transaction_id"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (NuCoin) TableName() string { return "nu_coins" }

// NuCoinAggregator is an organization-level coin deposit made directly on
// the aggregator wallet, bypassing the donor chain.
type NuCoinAggregator struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID `gorm:"not null;index" json:"org_id"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Date          time.Time    `gorm:"not null" json:"date"`
	TransactionID snowflake.ID `gorm:"not null;index" json:"transaction_id"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (NuCoinAggregator) TableName() string { return "nu_coin_aggregators" }

// NuCoinTransfer moves coin funds between two organizations. Strategy is
// recorded at posting time for audit.
type NuCoinTransfer struct {
	ID               snowflake.ID   `gorm:"primaryKey" json:"id"`
	SourceOrgID      snowflake.ID   `gorm:"not null;index" json:"source_org_id"`
	DestinationOrgID snowflake.ID   `gorm:"not null;index" json:"destination_org_id"`
	Amount           int64          `gorm:"not null" json:"amount"`
	Status           TransferStatus `gorm:"type:text;not null" json:"status"`
	Strategy         string         `gorm:"type:text;not null" json:"strategy"`
	Date             time.Time      `gorm:"not null" json:"date"`
	TransactionID    snowflake.ID   `gorm:"not null;index" json:"transaction_id"`
	CreatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (NuCoinTransfer) TableName() string { return "nu_coin_transfers" }
