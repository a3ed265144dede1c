// Package domain contains the read-side query contracts for report
// generation. Reporting never writes; it consumes the ledger the transaction
// poster produced.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	walletdomain "github.com/lazisku/maal/internal/wallet/domain"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

// TransactionFilter narrows a ledger scan. Zero values mean "any".
type TransactionFilter struct {
	OrgID      snowflake.ID
	WalletType walletdomain.WalletType
	SourceKind walletdomain.SourceKind
	From       time.Time
	To         time.Time
}

type ListTransactionsRequest struct {
	OrgID      string
	WalletType string
	SourceKind string
	From       time.Time
	To         time.Time
	PageToken  string
	PageSize   int
}

type ListTransactionsResponse struct {
	pagination.PageInfo
	Transactions []walletdomain.Transaction `json:"transactions"`
}

type GetMutationRequest struct {
	OrgID      string
	WalletType string
	Year       int
}

// YearlyRecap aggregates one organization's ledger year. Collected amounts
// are net of the amil cut, which is reported separately.
type YearlyRecap struct {
	OrgID               snowflake.ID                           `json:"org_id"`
	Year                int                                    `json:"year"`
	ZakatCollected      int64                                  `json:"zakat_collected"`
	InfaqCollected      int64                                  `json:"infaq_collected"`
	DsklCollected       int64                                  `json:"dskl_collected"`
	AmilCut             int64                                  `json:"amil_cut"`
	AmilFunding         int64                                  `json:"amil_funding"`
	AmilFundingUsed     int64                                  `json:"amil_funding_used"`
	ZakatDistributed    int64                                  `json:"zakat_distributed"`
	InfaqDistributed    int64                                  `json:"infaq_distributed"`
	NonHalalReceived    int64                                  `json:"non_halal_received"`
	NonHalalDistributed int64                                  `json:"non_halal_distributed"`
	CoinDeposits        int64                                  `json:"coin_deposits"`
	CoinTransfers       int64                                  `json:"coin_transfers"`
	AssetValue          int64                                  `json:"asset_value"`
	WalletTotals        map[walletdomain.WalletType]int64      `json:"wallet_totals"`
}

type YearlyRecapRequest struct {
	OrgID string
	Year  int
}

type Repository interface {
	ListTransactions(ctx context.Context, db *gorm.DB, filter TransactionFilter, page pagination.Pagination) ([]*walletdomain.Transaction, error)
	ListMutations(ctx context.Context, db *gorm.DB, orgID snowflake.ID, year int) ([]*walletdomain.WalletMutation, error)
	ListYearTransactions(ctx context.Context, db *gorm.DB, orgID snowflake.ID, year int) ([]*walletdomain.Transaction, error)
}

type Service interface {
	ListTransactions(context.Context, ListTransactionsRequest) (ListTransactionsResponse, error)
	GetMutation(context.Context, GetMutationRequest) (walletdomain.WalletMutation, error)
	YearlyRecap(context.Context, YearlyRecapRequest) (YearlyRecap, error)
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidWalletType = errors.New("invalid_wallet_type")
	ErrInvalidYear       = errors.New("invalid_year")
	ErrMutationNotFound  = errors.New("wallet_mutation_not_found")
)
