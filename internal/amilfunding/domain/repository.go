package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	InsertFunding(ctx context.Context, db *gorm.DB, funding *AmilFunding) error
	FindFundingByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*AmilFunding, error)
	ListFunding(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*AmilFunding, error)
	SetFundingTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error

	InsertUsage(ctx context.Context, db *gorm.DB, usage *AmilFundingUsage) error
	FindUsageByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*AmilFundingUsage, error)
	ListUsage(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*AmilFundingUsage, error)
	SetUsageTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error
}
