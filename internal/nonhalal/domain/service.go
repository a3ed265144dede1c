package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lazisku/maal/pkg/db/pagination"
)

type CreateReceiveRequest struct {
	OrgID       string
	Amount      int64
	Date        time.Time
	Description string
}

type CreateDistributionRequest struct {
	OrgID       string
	Amount      int64
	Date        time.Time
	Description string
}

type GetReceiveRequest struct {
	ID string
}

type GetDistributionRequest struct {
	ID string
}

type ListReceiveRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListReceiveResponse struct {
	pagination.PageInfo
	Receives []NonHalalFundingReceive `json:"receives"`
}

type ListDistributionRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListDistributionResponse struct {
	pagination.PageInfo
	Distributions []NonHalalFundingDistribution `json:"distributions"`
}

type Service interface {
	CreateReceive(context.Context, CreateReceiveRequest) (NonHalalFundingReceive, error)
	GetReceive(context.Context, GetReceiveRequest) (NonHalalFundingReceive, error)
	ListReceives(context.Context, ListReceiveRequest) (ListReceiveResponse, error)

	CreateDistribution(context.Context, CreateDistributionRequest) (NonHalalFundingDistribution, error)
	GetDistribution(context.Context, GetDistributionRequest) (NonHalalFundingDistribution, error)
	ListDistributions(context.Context, ListDistributionRequest) (ListDistributionResponse, error)
}

var (
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidAmount        = errors.New("invalid_amount")
	ErrReceiveNotFound      = errors.New("non_halal_receive_not_found")
	ErrDistributionNotFound = errors.New("non_halal_distribution_not_found")
)
