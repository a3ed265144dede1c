package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/nonhalal/domain"
	"github.com/lazisku/maal/pkg/db/option"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertReceive(ctx context.Context, db *gorm.DB, receive *domain.NonHalalFundingReceive) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO non_halal_funding_receives (id, org_id, amount, date, description, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		receive.ID,
		receive.OrgID,
		receive.Amount,
		receive.Date,
		receive.Description,
		receive.TransactionID,
		receive.CreatedAt,
		receive.UpdatedAt,
	).Error
}

func (r *repo) FindReceiveByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.NonHalalFundingReceive, error) {
	var receive domain.NonHalalFundingReceive
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, amount, date, description, transaction_id, created_at, updated_at
		 FROM non_halal_funding_receives WHERE id = ?`,
		id,
	).Scan(&receive).Error
	if err != nil {
		return nil, err
	}
	if receive.ID == 0 {
		return nil, nil
	}
	return &receive, nil
}

func (r *repo) ListReceives(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.NonHalalFundingReceive, error) {
	var receives []*domain.NonHalalFundingReceive
	stmt := db.WithContext(ctx).Model(&domain.NonHalalFundingReceive{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&receives).Error; err != nil {
		return nil, err
	}
	return receives, nil
}

func (r *repo) SetReceiveTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE non_halal_funding_receives SET transaction_id = ? WHERE id = ?`,
		transactionID,
		id,
	).Error
}

func (r *repo) InsertDistribution(ctx context.Context, db *gorm.DB, dist *domain.NonHalalFundingDistribution) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO non_halal_funding_distributions (id, org_id, amount, date, description, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		dist.ID,
		dist.OrgID,
		dist.Amount,
		dist.Date,
		dist.Description,
		dist.TransactionID,
		dist.CreatedAt,
		dist.UpdatedAt,
	).Error
}

func (r *repo) FindDistributionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.NonHalalFundingDistribution, error) {
	var dist domain.NonHalalFundingDistribution
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, amount, date, description, transaction_id, created_at, updated_at
		 FROM non_halal_funding_distributions WHERE id = ?`,
		id,
	).Scan(&dist).Error
	if err != nil {
		return nil, err
	}
	if dist.ID == 0 {
		return nil, nil
	}
	return &dist, nil
}

func (r *repo) ListDistributions(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.NonHalalFundingDistribution, error) {
	var dists []*domain.NonHalalFundingDistribution
	stmt := db.WithContext(ctx).Model(&domain.NonHalalFundingDistribution{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&dists).Error; err != nil {
		return nil, err
	}
	return dists, nil
}

func (r *repo) SetDistributionTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE non_halal_funding_distributions SET transaction_id = ? WHERE id = ?`,
		transactionID,
		id,
	).Error
}
