package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	InsertReceive(ctx context.Context, db *gorm.DB, receive *NonHalalFundingReceive) error
	FindReceiveByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*NonHalalFundingReceive, error)
	ListReceives(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*NonHalalFundingReceive, error)
	SetReceiveTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error

	InsertDistribution(ctx context.Context, db *gorm.DB, dist *NonHalalFundingDistribution) error
	FindDistributionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*NonHalalFundingDistribution, error)
	ListDistributions(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*NonHalalFundingDistribution, error)
	SetDistributionTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error
}
