package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/wallet/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func lockClause(lock domain.LockMode) string {
	switch lock {
	case domain.LockShare:
		return " FOR SHARE"
	case domain.LockUpdate:
		return " FOR UPDATE"
	default:
		return ""
	}
}

func (r *repo) FindWallet(ctx context.Context, db *gorm.DB, orgID snowflake.ID, walletType domain.WalletType, lock domain.LockMode) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, type, amount, created_at, updated_at
		 FROM wallets WHERE org_id = ? AND type = ?`+lockClause(lock),
		orgID,
		walletType,
	).Scan(&wallet).Error
	if err != nil {
		return nil, err
	}
	if wallet.ID == 0 {
		return nil, nil
	}
	return &wallet, nil
}

func (r *repo) InsertWallet(ctx context.Context, db *gorm.DB, wallet *domain.Wallet) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO wallets (id, org_id, type, amount, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		wallet.ID,
		wallet.OrgID,
		wallet.Type,
		wallet.Amount,
		wallet.CreatedAt,
		wallet.UpdatedAt,
	).Error
}

func (r *repo) AddWalletBalance(ctx context.Context, db *gorm.DB, walletID snowflake.ID, delta int64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE wallets SET amount = amount + ?, updated_at = ? WHERE id = ?`,
		delta,
		time.Now().UTC(),
		walletID,
	).Error
}

func (r *repo) InsertTransaction(ctx context.Context, db *gorm.DB, txn *domain.Transaction) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO transactions (id, wallet_id, date, amount, type, description, source_kind, source_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID,
		txn.WalletID,
		txn.Date,
		txn.Amount,
		txn.Type,
		txn.Description,
		txn.SourceKind,
		txn.SourceID,
		txn.CreatedAt,
	).Error
}

func (r *repo) UpsertMutation(ctx context.Context, db *gorm.DB, mutation *domain.WalletMutation) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO wallet_mutations (id, org_id, wallet_type, year, amount, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (org_id, wallet_type, year)
		 DO UPDATE SET amount = wallet_mutations.amount + ?, updated_at = ?`,
		mutation.ID,
		mutation.OrgID,
		mutation.WalletType,
		mutation.Year,
		mutation.Amount,
		mutation.CreatedAt,
		mutation.UpdatedAt,
		mutation.Amount,
		mutation.UpdatedAt,
	).Error
}

func (r *repo) FindMutation(ctx context.Context, db *gorm.DB, orgID snowflake.ID, walletType domain.WalletType, year int) (*domain.WalletMutation, error) {
	var mutation domain.WalletMutation
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, wallet_type, year, amount, created_at, updated_at
		 FROM wallet_mutations WHERE org_id = ? AND wallet_type = ? AND year = ?`,
		orgID,
		walletType,
		year,
	).Scan(&mutation).Error
	if err != nil {
		return nil, err
	}
	if mutation.ID == 0 {
		return nil, nil
	}
	return &mutation, nil
}
