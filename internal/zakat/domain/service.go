package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lazisku/maal/pkg/db/pagination"
)

type CreateZakatRequest struct {
	AmilID      string
	MuzakkiName string
	Amount      int64
	Date        time.Time
}

type GetZakatRequest struct {
	ID string
}

// UpdateZakatRequest renames the muzakki on an existing record. Amounts are
// immutable once posted.
type UpdateZakatRequest struct {
	ID          string
	MuzakkiName string
}

type ListZakatRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListZakatResponse struct {
	pagination.PageInfo
	Zakats []Zakat `json:"zakats"`
}

type Service interface {
	Create(context.Context, CreateZakatRequest) (Zakat, error)
	GetByID(context.Context, GetZakatRequest) (Zakat, error)
	Update(context.Context, UpdateZakatRequest) (Zakat, error)
	List(context.Context, ListZakatRequest) (ListZakatResponse, error)
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrNotFound      = errors.New("zakat_not_found")
)
