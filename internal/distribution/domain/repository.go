package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	InsertDonee(ctx context.Context, db *gorm.DB, donee *Donee) error
	FindDoneeByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Donee, error)
	ListDonees(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*Donee, error)

	InsertZakatDistribution(ctx context.Context, db *gorm.DB, dist *ZakatDistribution) error
	FindZakatDistributionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ZakatDistribution, error)
	ListZakatDistributions(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*ZakatDistribution, error)
	SetZakatDistributionTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error

	InsertInfaqDistribution(ctx context.Context, db *gorm.DB, dist *InfaqDistribution) error
	FindInfaqDistributionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*InfaqDistribution, error)
	ListInfaqDistributions(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*InfaqDistribution, error)
	SetInfaqDistributionTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error
}
