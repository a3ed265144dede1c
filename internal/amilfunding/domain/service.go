package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	walletdomain "github.com/lazisku/maal/internal/wallet/domain"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type CreateFundingRequest struct {
	OrgID       string
	FundingType string
	Amount      int64
	Date        time.Time
	Description string
}

type CreateUsageRequest struct {
	OrgID   string
	Purpose string
	Amount  int64
	Date    time.Time
}

type GetFundingRequest struct {
	ID string
}

type GetUsageRequest struct {
	ID string
}

type ListFundingRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListFundingResponse struct {
	pagination.PageInfo
	Fundings []AmilFunding `json:"fundings"`
}

type ListUsageRequest struct {
	OrgID     string
	PageToken string
	PageSize  int
}

type ListUsageResponse struct {
	pagination.PageInfo
	Usages []AmilFundingUsage `json:"usages"`
}

// PostCutRequest records the amil share cut off a collection document. The
// caller supplies its open transaction so the cut commits or rolls back with
// the primary posting.
type PostCutRequest struct {
	OrgID       snowflake.ID
	Amount      int64
	Date        time.Time
	SourceKind  walletdomain.SourceKind
	Description string
}

type Service interface {
	PostCut(ctx context.Context, tx *gorm.DB, req PostCutRequest) (AmilFunding, error)

	CreateFunding(context.Context, CreateFundingRequest) (AmilFunding, error)
	GetFunding(context.Context, GetFundingRequest) (AmilFunding, error)
	ListFunding(context.Context, ListFundingRequest) (ListFundingResponse, error)

	CreateUsage(context.Context, CreateUsageRequest) (AmilFundingUsage, error)
	GetUsage(context.Context, GetUsageRequest) (AmilFundingUsage, error)
	ListUsage(context.Context, ListUsageRequest) (ListUsageResponse, error)
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidFundingType = errors.New("invalid_funding_type")
	ErrInvalidPurpose     = errors.New("invalid_purpose")
	ErrFundingNotFound    = errors.New("amil_funding_not_found")
	ErrUsageNotFound      = errors.New("amil_funding_usage_not_found")
)
