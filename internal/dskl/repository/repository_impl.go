package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/dskl/domain"
	"github.com/lazisku/maal/pkg/db/option"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, dskl *domain.Dskl) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO dskls (id, amil_id, org_id, kind, amount, date, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		dskl.ID,
		dskl.AmilID,
		dskl.OrgID,
		dskl.Kind,
		dskl.Amount,
		dskl.Date,
		dskl.TransactionID,
		dskl.CreatedAt,
		dskl.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Dskl, error) {
	var dskl domain.Dskl
	err := db.WithContext(ctx).Raw(
		`SELECT id, amil_id, org_id, kind, amount, date, transaction_id, created_at, updated_at
		 FROM dskls WHERE id = ?`,
		id,
	).Scan(&dskl).Error
	if err != nil {
		return nil, err
	}
	if dskl.ID == 0 {
		return nil, nil
	}
	return &dskl, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.Dskl, error) {
	var dskls []*domain.Dskl
	stmt := db.WithContext(ctx).Model(&domain.Dskl{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&dskls).Error; err != nil {
		return nil, err
	}
	return dskls, nil
}

func (r *repo) SetTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE dskls SET transaction_id = ? WHERE id = ?`,
		transactionID,
		id,
	).Error
}
