package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lazisku/maal/pkg/db/pagination"
)

type CreateCoinRequest struct {
	DonorID string
	Amount  int64
	Date    time.Time
}

type CreateAggregateRequest struct {
	OrgID  string
	Amount int64
	Date   time.Time
}

type CreateTransferRequest struct {
	SourceOrgID      string
	DestinationOrgID string
	Amount           int64
	Status           string
	Date             time.Time
}

type MoveFundRequest struct {
	OrgID string
}

// MoveFundResult is the sweep outcome. The sweep reports partial failures
// through HTTP-style status codes instead of errors.
type MoveFundResult struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Moved   int64  `json:"moved"`
}

type GetCoinRequest struct {
	ID string
}

type GetTransferRequest struct {
	ID string
}

type ListCoinRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListCoinResponse struct {
	pagination.PageInfo
	Coins []NuCoin `json:"coins"`
}

type ListTransferRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListTransferResponse struct {
	pagination.PageInfo
	Transfers []NuCoinTransfer `json:"transfers"`
}

type Service interface {
	CreateCoin(context.Context, CreateCoinRequest) (NuCoin, error)
	GetCoin(context.Context, GetCoinRequest) (NuCoin, error)
	ListCoins(context.Context, ListCoinRequest) (ListCoinResponse, error)

	CreateAggregate(context.Context, CreateAggregateRequest) (NuCoinAggregator, error)

	CreateTransfer(context.Context, CreateTransferRequest) (NuCoinTransfer, error)
	GetTransfer(context.Context, GetTransferRequest) (NuCoinTransfer, error)
	ListTransfers(context.Context, ListTransferRequest) (ListTransferResponse, error)

	MoveFund(context.Context, MoveFundRequest) (MoveFundResult, error)
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrNotApproved      = errors.New("transfer_not_approved")
	ErrInvalidScopePair = errors.New("invalid_scope_pair")
	ErrCoinNotFound     = errors.New("nu_coin_not_found")
	ErrTransferNotFound = errors.New("nu_coin_transfer_not_found")
)
