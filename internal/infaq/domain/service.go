package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lazisku/maal/pkg/db/pagination"
)

type CreateInfaqRequest struct {
	AmilID    string
	GiverName string
	Amount    int64
	Date      time.Time
}

type GetInfaqRequest struct {
	ID string
}

type ListInfaqRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListInfaqResponse struct {
	pagination.PageInfo
	Infaqs []Infaq `json:"infaqs"`
}

type Service interface {
	Create(context.Context, CreateInfaqRequest) (Infaq, error)
	GetByID(context.Context, GetInfaqRequest) (Infaq, error)
	List(context.Context, ListInfaqRequest) (ListInfaqResponse, error)
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrNotFound      = errors.New("infaq_not_found")
)
