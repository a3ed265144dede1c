package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/asset/domain"
	"github.com/lazisku/maal/pkg/db/option"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, asset *domain.AssetRecording) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO asset_recordings (id, org_id, name, value, date, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		asset.ID,
		asset.OrgID,
		asset.Name,
		asset.Value,
		asset.Date,
		asset.TransactionID,
		asset.CreatedAt,
		asset.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.AssetRecording, error) {
	var asset domain.AssetRecording
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, name, value, date, transaction_id, created_at, updated_at
		 FROM asset_recordings WHERE id = ?`,
		id,
	).Scan(&asset).Error
	if err != nil {
		return nil, err
	}
	if asset.ID == 0 {
		return nil, nil
	}
	return &asset, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.AssetRecording, error) {
	var assets []*domain.AssetRecording
	stmt := db.WithContext(ctx).Model(&domain.AssetRecording{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *repo) SetTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE asset_recordings SET transaction_id = ? WHERE id = ?`,
		transactionID,
		id,
	).Error
}
