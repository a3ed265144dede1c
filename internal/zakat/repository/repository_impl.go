package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/zakat/domain"
	"github.com/lazisku/maal/pkg/db/option"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, zakat *domain.Zakat) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO zakats (id, amil_id, org_id, muzakki_name, amount, date, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		zakat.ID,
		zakat.AmilID,
		zakat.OrgID,
		zakat.MuzakkiName,
		zakat.Amount,
		zakat.Date,
		zakat.TransactionID,
		zakat.CreatedAt,
		zakat.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Zakat, error) {
	var zakat domain.Zakat
	err := db.WithContext(ctx).Raw(
		`SELECT id, amil_id, org_id, muzakki_name, amount, date, transaction_id, created_at, updated_at
		 FROM zakats WHERE id = ?`,
		id,
	).Scan(&zakat).Error
	if err != nil {
		return nil, err
	}
	if zakat.ID == 0 {
		return nil, nil
	}
	return &zakat, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.Zakat, error) {
	var zakats []*domain.Zakat
	stmt := db.WithContext(ctx).Model(&domain.Zakat{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&zakats).Error; err != nil {
		return nil, err
	}
	return zakats, nil
}

func (r *repo) SetTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE zakats SET transaction_id = ? WHERE id = ?`,
		transactionID,
		id,
	).Error
}

func (r *repo) UpdateMuzakkiName(ctx context.Context, db *gorm.DB, id snowflake.ID, name string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE zakats SET muzakki_name = ?, updated_at = ? WHERE id = ?`,
		name,
		time.Now().UTC(),
		id,
	).Error
}
