package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/nucoin/domain"
	"github.com/lazisku/maal/pkg/db/option"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertCoin(ctx context.Context, db *gorm.DB, coin *domain.NuCoin) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO nu_coins (id, donor_id, org_id, amount, date, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		coin.ID,
		coin.DonorID,
		coin.OrgID,
		coin.Amount,
		coin.Date,
		coin.TransactionID,
		coin.CreatedAt,
		coin.UpdatedAt,
	).Error
}

func (r *repo) FindCoinByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.NuCoin, error) {
	var coin domain.NuCoin
	err := db.WithContext(ctx).Raw(
		`SELECT id, donor_id, org_id, amount, date, transaction_id, created_at, updated_at
		 FROM nu_coins WHERE id = ?`,
		id,
	).Scan(&coin).Error
	if err != nil {
		return nil, err
	}
	if coin.ID == 0 {
		return nil, nil
	}
	return &coin, nil
}

func (r *repo) ListCoins(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.NuCoin, error) {
	var coins []*domain.NuCoin
	stmt := db.WithContext(ctx).Model(&domain.NuCoin{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&coins).Error; err != nil {
		return nil, err
	}
	return coins, nil
}

func (r *repo) SetCoinTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE nu_coins SET transaction_id = ? WHERE id = ?`,
		transactionID,
		id,
	).Error
}

func (r *repo) InsertAggregate(ctx context.Context, db *gorm.DB, agg *domain.NuCoinAggregator) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO nu_coin_aggregators (id, org_id, amount, date, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		agg.ID,
		agg.OrgID,
		agg.Amount,
		agg.Date,
		agg.TransactionID,
		agg.CreatedAt,
		agg.UpdatedAt,
	).Error
}

func (r *repo) SetAggregateTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE nu_coin_aggregators SET transaction_id = ? WHERE id = ?`,
		transactionID,
		id,
	).Error
}

func (r *repo) InsertTransfer(ctx context.Context, db *gorm.DB, transfer *domain.NuCoinTransfer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO nu_coin_transfers (id, source_org_id, destination_org_id, amount, status, strategy, date, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		transfer.ID,
		transfer.SourceOrgID,
		transfer.DestinationOrgID,
		transfer.Amount,
		transfer.Status,
		transfer.Strategy,
		transfer.Date,
		transfer.TransactionID,
		transfer.CreatedAt,
		transfer.UpdatedAt,
	).Error
}

func (r *repo) FindTransferByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.NuCoinTransfer, error) {
	var transfer domain.NuCoinTransfer
	err := db.WithContext(ctx).Raw(
		`SELECT id, source_org_id, destination_org_id, amount, status, strategy, date, transaction_id, created_at, updated_at
		 FROM nu_coin_transfers WHERE id = ?`,
		id,
	).Scan(&transfer).Error
	if err != nil {
		return nil, err
	}
	if transfer.ID == 0 {
		return nil, nil
	}
	return &transfer, nil
}

func (r *repo) ListTransfers(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.NuCoinTransfer, error) {
	var transfers []*domain.NuCoinTransfer
	stmt := db.WithContext(ctx).Model(&domain.NuCoinTransfer{})
	if orgID != 0 {
		stmt = stmt.Where("source_org_id = ? OR destination_org_id = ?", orgID, orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

func (r *repo) SetTransferTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE nu_coin_transfers SET transaction_id = ? WHERE id = ?`,
		transactionID,
		id,
	).Error
}
