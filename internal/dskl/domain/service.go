package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lazisku/maal/pkg/db/pagination"
)

type CreateDsklRequest struct {
	AmilID string
	Kind   string
	Amount int64
	Date   time.Time
}

type GetDsklRequest struct {
	ID string
}

type ListDsklRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListDsklResponse struct {
	pagination.PageInfo
	Dskls []Dskl `json:"dskls"`
}

type Service interface {
	Create(context.Context, CreateDsklRequest) (Dskl, error)
	GetByID(context.Context, GetDsklRequest) (Dskl, error)
	List(context.Context, ListDsklRequest) (ListDsklResponse, error)
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidKind   = errors.New("invalid_kind")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrNotFound      = errors.New("dskl_not_found")
)
