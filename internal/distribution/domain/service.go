package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lazisku/maal/pkg/db/pagination"
)

type CreateDoneeRequest struct {
	OrgID string
	Name  string
	Asnaf string
}

type GetDoneeRequest struct {
	ID string
}

type ListDoneeRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListDoneeResponse struct {
	pagination.PageInfo
	Donees []Donee `json:"donees"`
}

type CreateZakatDistributionRequest struct {
	DoneeID string
	Amount  int64
	Date    time.Time
}

type CreateInfaqDistributionRequest struct {
	OrgID     string
	Recipient string
	Amount    int64
	Date      time.Time
}

type GetZakatDistributionRequest struct {
	ID string
}

type GetInfaqDistributionRequest struct {
	ID string
}

type ListZakatDistributionRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListZakatDistributionResponse struct {
	pagination.PageInfo
	Distributions []ZakatDistribution `json:"distributions"`
}

type ListInfaqDistributionRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListInfaqDistributionResponse struct {
	pagination.PageInfo
	Distributions []InfaqDistribution `json:"distributions"`
}

type Service interface {
	CreateDonee(context.Context, CreateDoneeRequest) (Donee, error)
	GetDonee(context.Context, GetDoneeRequest) (Donee, error)
	ListDonees(context.Context, ListDoneeRequest) (ListDoneeResponse, error)

	CreateZakatDistribution(context.Context, CreateZakatDistributionRequest) (ZakatDistribution, error)
	GetZakatDistribution(context.Context, GetZakatDistributionRequest) (ZakatDistribution, error)
	ListZakatDistributions(context.Context, ListZakatDistributionRequest) (ListZakatDistributionResponse, error)

	CreateInfaqDistribution(context.Context, CreateInfaqDistributionRequest) (InfaqDistribution, error)
	GetInfaqDistribution(context.Context, GetInfaqDistributionRequest) (InfaqDistribution, error)
	ListInfaqDistributions(context.Context, ListInfaqDistributionRequest) (ListInfaqDistributionResponse, error)
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidAsnaf     = errors.New("invalid_asnaf")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidRecipient = errors.New("invalid_recipient")
	ErrDoneeNotFound    = errors.New("donee_not_found")
	ErrNotFound         = errors.New("distribution_not_found")
)
