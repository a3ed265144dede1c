package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// PostRequest describes one ledger posting. Amount carries the direction
// sign: incoming positive, outgoing negative.
type PostRequest struct {
	OrgID       snowflake.ID
	Amount      int64
	WalletType  WalletType
	Date        time.Time
	Description string
	Type        TransactionType
	SourceKind  SourceKind
	SourceID    snowflake.ID
}

// Poster is the single choke point for wallet balance changes and ledger
// appends. Callers pass their open transaction handle; the poster never owns
// the transaction boundary.
type Poster interface {
	Post(ctx context.Context, tx *gorm.DB, req PostRequest) (*Transaction, error)
}
