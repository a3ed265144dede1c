package domain

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrWalletNotFound    = errors.New("wallet_not_found")
	ErrInsufficientFunds = errors.New("insufficient_funds")
	ErrInvalidDirection  = errors.New("invalid_direction")
	ErrInvalidAmount     = errors.New("invalid_amount")
)

// SecondaryPostingError reports a failed amil-cut posting. It aborts the
// enclosing transaction together with the primary posting.
type SecondaryPostingError struct {
	OrgID  snowflake.ID
	Amount int64
	Err    error
}

func (e *SecondaryPostingError) Error() string {
	return fmt.Sprintf("amil cut posting failed for organization %s amount %d: %v", e.OrgID, e.Amount, e.Err)
}

func (e *SecondaryPostingError) Unwrap() error {
	return e.Err
}
