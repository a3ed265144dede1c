package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/amilfunding/domain"
	obsmetrics "github.com/lazisku/maal/internal/observability/metrics"
	orgdomain "github.com/lazisku/maal/internal/organization/domain"
	walletdomain "github.com/lazisku/maal/internal/wallet/domain"
	"github.com/lazisku/maal/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	OrgRepo orgdomain.Repository
	Poster  walletdomain.Poster
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	orgRepo orgdomain.Repository
	poster  walletdomain.Poster
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("amilfunding.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		orgRepo: p.OrgRepo,
		poster:  p.Poster,
		metrics: p.Metrics,
	}
}

// PostCut records the amil share of a collection inside the caller's
// transaction. A failing posting is wrapped in SecondaryPostingError so the
// caller can tell the cut failed rather than the primary posting.
func (s *Service) PostCut(ctx context.Context, tx *gorm.DB, req domain.PostCutRequest) (domain.AmilFunding, error) {
	if req.Amount <= 0 {
		return domain.AmilFunding{}, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	funding := domain.AmilFunding{
		ID:          s.genID.Generate(),
		OrgID:       req.OrgID,
		FundingType: domain.FundingOtherAmil,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.InsertFunding(ctx, tx, &funding); err != nil {
		return domain.AmilFunding{}, &walletdomain.SecondaryPostingError{OrgID: req.OrgID, Amount: req.Amount, Err: err}
	}

	txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
		OrgID:       req.OrgID,
		Amount:      req.Amount,
		WalletType:  walletdomain.WalletTypeAmil,
		Date:        req.Date,
		Description: req.Description,
		Type:        walletdomain.TransactionIncoming,
		SourceKind:  req.SourceKind,
		SourceID:    funding.ID,
	})
	if err != nil {
		return domain.AmilFunding{}, &walletdomain.SecondaryPostingError{OrgID: req.OrgID, Amount: req.Amount, Err: err}
	}

	funding.TransactionID = txn.ID
	if err := s.repo.SetFundingTransaction(ctx, tx, funding.ID, txn.ID); err != nil {
		return domain.AmilFunding{}, &walletdomain.SecondaryPostingError{OrgID: req.OrgID, Amount: req.Amount, Err: err}
	}

	s.metrics.RecordAmilCut(ctx, string(req.SourceKind))

	return funding, nil
}

func (s *Service) CreateFunding(ctx context.Context, req domain.CreateFundingRequest) (domain.AmilFunding, error) {
	if req.Amount <= 0 {
		return domain.AmilFunding{}, domain.ErrInvalidAmount
	}

	fundingType := domain.FundingType(strings.ToUpper(strings.TrimSpace(req.FundingType)))
	if !fundingType.Valid() {
		return domain.AmilFunding{}, domain.ErrInvalidFundingType
	}

	orgID, err := parseID(req.OrgID)
	if err != nil {
		return domain.AmilFunding{}, err
	}

	now := time.Now().UTC()
	funding := domain.AmilFunding{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		FundingType: fundingType,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertFunding(ctx, tx, &funding); err != nil {
			return err
		}

		txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       orgID,
			Amount:      funding.Amount,
			WalletType:  walletdomain.WalletTypeAmil,
			Date:        funding.Date,
			Description: funding.Description,
			Type:        walletdomain.TransactionIncoming,
			SourceKind:  walletdomain.SourceAmilFunding,
			SourceID:    funding.ID,
		})
		if err != nil {
			return err
		}

		funding.TransactionID = txn.ID
		return s.repo.SetFundingTransaction(ctx, tx, funding.ID, txn.ID)
	})
	if err != nil {
		return domain.AmilFunding{}, err
	}

	return funding, nil
}

func (s *Service) GetFunding(ctx context.Context, req domain.GetFundingRequest) (domain.AmilFunding, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.AmilFunding{}, err
	}

	funding, err := s.repo.FindFundingByID(ctx, s.db, id)
	if err != nil {
		return domain.AmilFunding{}, err
	}
	if funding == nil {
		return domain.AmilFunding{}, domain.ErrFundingNotFound
	}

	return *funding, nil
}

func (s *Service) ListFunding(ctx context.Context, req domain.ListFundingRequest) (domain.ListFundingResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListFundingResponse{}, err
		}
		orgID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListFunding(ctx, s.db, orgID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListFundingResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(funding *domain.AmilFunding) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        funding.ID.String(),
			CreatedAt: funding.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	fundings := make([]domain.AmilFunding, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		fundings = append(fundings, *item)
	}

	resp := domain.ListFundingResponse{Fundings: fundings}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) CreateUsage(ctx context.Context, req domain.CreateUsageRequest) (domain.AmilFundingUsage, error) {
	if req.Amount <= 0 {
		return domain.AmilFundingUsage{}, domain.ErrInvalidAmount
	}

	purpose := strings.TrimSpace(req.Purpose)
	if purpose == "" {
		return domain.AmilFundingUsage{}, domain.ErrInvalidPurpose
	}

	orgID, err := parseID(req.OrgID)
	if err != nil {
		return domain.AmilFundingUsage{}, err
	}

	now := time.Now().UTC()
	usage := domain.AmilFundingUsage{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Purpose:   purpose,
		Amount:    req.Amount,
		Date:      req.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertUsage(ctx, tx, &usage); err != nil {
			return err
		}

		txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       orgID,
			Amount:      -usage.Amount,
			WalletType:  walletdomain.WalletTypeAmil,
			Date:        usage.Date,
			Description: usage.Purpose,
			Type:        walletdomain.TransactionOutgoing,
			SourceKind:  walletdomain.SourceAmilFundingUsage,
			SourceID:    usage.ID,
		})
		if err != nil {
			return err
		}

		usage.TransactionID = txn.ID
		return s.repo.SetUsageTransaction(ctx, tx, usage.ID, txn.ID)
	})
	if err != nil {
		return domain.AmilFundingUsage{}, err
	}

	return usage, nil
}

func (s *Service) GetUsage(ctx context.Context, req domain.GetUsageRequest) (domain.AmilFundingUsage, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.AmilFundingUsage{}, err
	}

	usage, err := s.repo.FindUsageByID(ctx, s.db, id)
	if err != nil {
		return domain.AmilFundingUsage{}, err
	}
	if usage == nil {
		return domain.AmilFundingUsage{}, domain.ErrUsageNotFound
	}

	return *usage, nil
}

func (s *Service) ListUsage(ctx context.Context, req domain.ListUsageRequest) (domain.ListUsageResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListUsageResponse{}, err
		}
		orgID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListUsage(ctx, s.db, orgID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListUsageResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(usage *domain.AmilFundingUsage) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        usage.ID.String(),
			CreatedAt: usage.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	usages := make([]domain.AmilFundingUsage, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		usages = append(usages, *item)
	}

	resp := domain.ListUsageResponse{Usages: usages}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
