package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/reporting/domain"
	walletdomain "github.com/lazisku/maal/internal/wallet/domain"
	"github.com/lazisku/maal/pkg/db/option"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListTransactions(ctx context.Context, db *gorm.DB, filter domain.TransactionFilter, page pagination.Pagination) ([]*walletdomain.Transaction, error) {
	var txns []*walletdomain.Transaction
	stmt := db.WithContext(ctx).Model(&walletdomain.Transaction{}).
		Joins("JOIN wallets ON wallets.id = transactions.wallet_id")
	if filter.OrgID != 0 {
		stmt = stmt.Where("wallets.org_id = ?", filter.OrgID)
	}
	if filter.WalletType != "" {
		stmt = stmt.Where("wallets.type = ?", filter.WalletType)
	}
	if filter.SourceKind != "" {
		stmt = stmt.Where("transactions.source_kind = ?", filter.SourceKind)
	}
	if !filter.From.IsZero() {
		stmt = stmt.Where("transactions.date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		stmt = stmt.Where("transactions.date < ?", filter.To)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("transactions.created_at desc, transactions.id desc").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *repo) ListMutations(ctx context.Context, db *gorm.DB, orgID snowflake.ID, year int) ([]*walletdomain.WalletMutation, error) {
	var mutations []*walletdomain.WalletMutation
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, wallet_type, year, amount, created_at, updated_at
		 FROM wallet_mutations WHERE org_id = ? AND year = ?
		 ORDER BY wallet_type`,
		orgID,
		year,
	).Scan(&mutations).Error
	if err != nil {
		return nil, err
	}
	return mutations, nil
}

func (r *repo) ListYearTransactions(ctx context.Context, db *gorm.DB, orgID snowflake.ID, year int) ([]*walletdomain.Transaction, error) {
	// Half-open date range keeps the year filter portable across dialects.
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var txns []*walletdomain.Transaction
	err := db.WithContext(ctx).Model(&walletdomain.Transaction{}).
		Joins("JOIN wallets ON wallets.id = transactions.wallet_id").
		Where("wallets.org_id = ?", orgID).
		Where("transactions.date >= ? AND transactions.date < ?", from, to).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}
