package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lazisku/maal/pkg/db/pagination"
)

type CreateAssetRequest struct {
	OrgID string
	Name  string
	Value int64
	Date  time.Time
}

type GetAssetRequest struct {
	ID string
}

type ListAssetRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListAssetResponse struct {
	pagination.PageInfo
	Assets []AssetRecording `json:"assets"`
}

type Service interface {
	Create(context.Context, CreateAssetRequest) (AssetRecording, error)
	GetByID(context.Context, GetAssetRequest) (AssetRecording, error)
	List(context.Context, ListAssetRequest) (ListAssetResponse, error)
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidValue = errors.New("invalid_value")
	ErrNotFound     = errors.New("asset_recording_not_found")
)
