// Package domain contains the wallet store, the transaction ledger and the
// yearly mutation aggregate.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// WalletType enumerates the funds an organization can hold. A wallet is
// created lazily on the first incoming transaction for its type.
type WalletType string

const (
	WalletTypeAlmsgiving                WalletType = "ALMSGIVING"
	WalletTypeAmil                      WalletType = "AMIL"
	WalletTypeNuCoin                    WalletType = "NU_COIN"
	WalletTypeNuCoinAggregator          WalletType = "NU_COIN_AGGREGATOR"
	WalletTypeNonHalal                  WalletType = "NON_HALAL"
	WalletTypeOrganizationSocialFunding WalletType = "ORGANIZATION_SOCIAL_FUNDING"
	WalletTypeQurban                    WalletType = "QURBAN"
	WalletTypeDonation                  WalletType = "DONATION"
	WalletTypeCampaignProgram           WalletType = "CAMPAIGN_PROGRAM"
	WalletTypeUnboundedDisbursement     WalletType = "UNBOUNDED_DISBURSEMENT"
	WalletTypeNucareDisaster            WalletType = "NUCARE_DISASTER"
	WalletTypeNucareEducation           WalletType = "NUCARE_EDUCATION"
	WalletTypeNucareHealth              WalletType = "NUCARE_HEALTH"
	WalletTypeNucareEconomy             WalletType = "NUCARE_ECONOMY"
)

// TransactionType is the posting direction. Incoming amounts are positive,
// outgoing amounts are negative.
type TransactionType string

const (
	TransactionIncoming TransactionType = "INCOMING"
	TransactionOutgoing TransactionType = "OUTGOING"
)

// SourceKind identifies the business document behind a posting. It replaces
// the legacy convention of tagging postings through description prefixes,
// which reports had to LIKE-match.
type SourceKind string

const (
	SourceZakat                  SourceKind = "zakat"
	SourceInfaq                  SourceKind = "infaq"
	SourceDskl                   SourceKind = "dskl"
	SourceZakatAmilCut           SourceKind = "zakat_amil_cut"
	SourceInfaqAmilCut           SourceKind = "infaq_amil_cut"
	SourceDsklAmilCut            SourceKind = "dskl_amil_cut"
	SourceAmilFunding            SourceKind = "amil_funding"
	SourceAmilFundingUsage       SourceKind = "amil_funding_usage"
	SourceZakatDistribution      SourceKind = "zakat_distribution"
	SourceInfaqDistribution      SourceKind = "infaq_distribution"
	SourceNonHalalReceive        SourceKind = "non_halal_receive"
	SourceNonHalalDistribution   SourceKind = "non_halal_distribution"
	SourceNuCoin                 SourceKind = "nu_coin"
	SourceNuCoinAggregator       SourceKind = "nu_coin_aggregator"
	SourceNuCoinTransfer         SourceKind = "nu_coin_transfer"
	SourceAssetRecording         SourceKind = "asset_recording"
)

// Wallet is the single balance record for an (organization, type) pair.
// Only the transaction poster mutates it, under a pessimistic lock.
type Wallet struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"not null;index;uniqueIndex:ux_wallets_org_type,priority:1" json:"organization_id"`
	Type      WalletType   `gorm:"type:text;not null;uniqueIndex:ux_wallets_org_type,priority:2" json:"type"`
	Amount    int64        `gorm:"not null" json:"amount"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Wallet) TableName() string { return "wallets" }

// Transaction is the immutable ledger entry for one posting. It links back to
// the business document that caused it through (source_kind, source_id).
type Transaction struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	WalletID    snowflake.ID    `gorm:"not null;index" json:"wallet_id"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Amount      int64           `gorm:"not null" json:"amount"`
	Type        TransactionType `gorm:"type:text;not null" json:"type"`
	Description string          `gorm:"type:text;not null" json:"description"`
	SourceKind  SourceKind      `gorm:"type:text;not null;index" json:"source_kind"`
	SourceID    snowflake.ID    `gorm:"not null;index" json:"source_id"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Transaction) TableName() string { return "transactions" }

// WalletMutation is the yearly running total per (organization, wallet type).
// Reports read it instead of scanning the full ledger.
type WalletMutation struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID `gorm:"not null;index;uniqueIndex:ux_wallet_mutations_org_type_year,priority:1" json:"organization_id"`
	WalletType WalletType   `gorm:"type:text;not null;uniqueIndex:ux_wallet_mutations_org_type_year,priority:2" json:"wallet_type"`
	Year       int          `gorm:"not null;uniqueIndex:ux_wallet_mutations_org_type_year,priority:3" json:"year"`
	Amount     int64        `gorm:"not null" json:"amount"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (WalletMutation) TableName() string { return "wallet_mutations" }
