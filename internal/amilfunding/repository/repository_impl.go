package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/amilfunding/domain"
	"github.com/lazisku/maal/pkg/db/option"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertFunding(ctx context.Context, db *gorm.DB, funding *domain.AmilFunding) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO amil_fundings (id, org_id, funding_type, amount, date, description, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		funding.ID,
		funding.OrgID,
		funding.FundingType,
		funding.Amount,
		funding.Date,
		funding.Description,
		funding.TransactionID,
		funding.CreatedAt,
		funding.UpdatedAt,
	).Error
}

func (r *repo) FindFundingByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.AmilFunding, error) {
	var funding domain.AmilFunding
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, funding_type, amount, date, description, transaction_id, created_at, updated_at
		 FROM amil_fundings WHERE id = ?`,
		id,
	).Scan(&funding).Error
	if err != nil {
		return nil, err
	}
	if funding.ID == 0 {
		return nil, nil
	}
	return &funding, nil
}

func (r *repo) ListFunding(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.AmilFunding, error) {
	var fundings []*domain.AmilFunding
	stmt := db.WithContext(ctx).Model(&domain.AmilFunding{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&fundings).Error; err != nil {
		return nil, err
	}
	return fundings, nil
}

func (r *repo) SetFundingTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE amil_fundings SET transaction_id = ? WHERE id = ?`,
		transactionID,
		id,
	).Error
}

func (r *repo) InsertUsage(ctx context.Context, db *gorm.DB, usage *domain.AmilFundingUsage) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO amil_funding_usages (id, org_id, purpose, amount, date, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		usage.ID,
		usage.OrgID,
		usage.Purpose,
		usage.Amount,
		usage.Date,
		usage.TransactionID,
		usage.CreatedAt,
		usage.UpdatedAt,
	).Error
}

func (r *repo) FindUsageByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.AmilFundingUsage, error) {
	var usage domain.AmilFundingUsage
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, purpose, amount, date, transaction_id, created_at, updated_at
		 FROM amil_funding_usages WHERE id = ?`,
		id,
	).Scan(&usage).Error
	if err != nil {
		return nil, err
	}
	if usage.ID == 0 {
		return nil, nil
	}
	return &usage, nil
}

func (r *repo) ListUsage(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.AmilFundingUsage, error) {
	var usages []*domain.AmilFundingUsage
	stmt := db.WithContext(ctx).Model(&domain.AmilFundingUsage{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}

func (r *repo) SetUsageTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE amil_funding_usages SET transaction_id = ? WHERE id = ?`,
		transactionID,
		id,
	).Error
}
