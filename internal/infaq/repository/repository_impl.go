package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/infaq/domain"
	"github.com/lazisku/maal/pkg/db/option"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, infaq *domain.Infaq) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO infaqs (id, amil_id, org_id, giver_name, amount, date, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		infaq.ID,
		infaq.AmilID,
		infaq.OrgID,
		infaq.GiverName,
		infaq.Amount,
		infaq.Date,
		infaq.TransactionID,
		infaq.CreatedAt,
		infaq.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Infaq, error) {
	var infaq domain.Infaq
	err := db.WithContext(ctx).Raw(
		`SELECT id, amil_id, org_id, giver_name, amount, date, transaction_id, created_at, updated_at
		 FROM infaqs WHERE id = ?`,
		id,
	).Scan(&infaq).Error
	if err != nil {
		return nil, err
	}
	if infaq.ID == 0 {
		return nil, nil
	}
	return &infaq, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.Infaq, error) {
	var infaqs []*domain.Infaq
	stmt := db.WithContext(ctx).Model(&domain.Infaq{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&infaqs).Error; err != nil {
		return nil, err
	}
	return infaqs, nil
}

func (r *repo) SetTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE infaqs SET transaction_id = ? WHERE id = ?`,
		transactionID,
		id,
	).Error
}
