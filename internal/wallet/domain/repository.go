package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// LockMode selects the pessimistic lock taken on wallet reads. Share protects
// the create-vs-update decision, Update guards a balance mutation.
type LockMode int

const (
	LockNone LockMode = iota
	LockShare
	LockUpdate
)

type Repository interface {
	FindWallet(ctx context.Context, db *gorm.DB, orgID snowflake.ID, walletType WalletType, lock LockMode) (*Wallet, error)
	InsertWallet(ctx context.Context, db *gorm.DB, wallet *Wallet) error
	AddWalletBalance(ctx context.Context, db *gorm.DB, walletID snowflake.ID, delta int64) error
	InsertTransaction(ctx context.Context, db *gorm.DB, txn *Transaction) error
	UpsertMutation(ctx context.Context, db *gorm.DB, mutation *WalletMutation) error
	FindMutation(ctx context.Context, db *gorm.DB, orgID snowflake.ID, walletType WalletType, year int) (*WalletMutation, error)
}
