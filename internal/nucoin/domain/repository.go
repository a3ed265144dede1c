package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	InsertCoin(ctx context.Context, db *gorm.DB, coin *NuCoin) error
	FindCoinByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*NuCoin, error)
	ListCoins(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*NuCoin, error)
	SetCoinTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error

	InsertAggregate(ctx context.Context, db *gorm.DB, agg *NuCoinAggregator) error
	SetAggregateTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error

	InsertTransfer(ctx context.Context, db *gorm.DB, transfer *NuCoinTransfer) error
	FindTransferByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*NuCoinTransfer, error)
	ListTransfers(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*NuCoinTransfer, error)
	SetTransferTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error
}
