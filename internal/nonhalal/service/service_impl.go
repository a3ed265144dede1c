package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/nonhalal/domain"
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
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	orgRepo orgdomain.Repository
	poster  walletdomain.Poster
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("nonhalal.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		orgRepo: p.OrgRepo,
		poster:  p.Poster,
	}
}

func (s *Service) CreateReceive(ctx context.Context, req domain.CreateReceiveRequest) (domain.NonHalalFundingReceive, error) {
	if req.Amount <= 0 {
		return domain.NonHalalFundingReceive{}, domain.ErrInvalidAmount
	}

	orgID, err := parseID(req.OrgID)
	if err != nil {
		return domain.NonHalalFundingReceive{}, err
	}

	org, err := s.orgRepo.FindByID(ctx, s.db, orgID)
	if err != nil {
		return domain.NonHalalFundingReceive{}, err
	}
	if org == nil {
		return domain.NonHalalFundingReceive{}, orgdomain.ErrNotFound
	}

	now := time.Now().UTC()
	receive := domain.NonHalalFundingReceive{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertReceive(ctx, tx, &receive); err != nil {
			return err
		}

		txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       orgID,
			Amount:      receive.Amount,
			WalletType:  walletdomain.WalletTypeNonHalal,
			Date:        receive.Date,
			Description: receive.Description,
			Type:        walletdomain.TransactionIncoming,
			SourceKind:  walletdomain.SourceNonHalalReceive,
			SourceID:    receive.ID,
		})
		if err != nil {
			return err
		}

		receive.TransactionID = txn.ID
		return s.repo.SetReceiveTransaction(ctx, tx, receive.ID, txn.ID)
	})
	if err != nil {
		return domain.NonHalalFundingReceive{}, err
	}

	return receive, nil
}

func (s *Service) GetReceive(ctx context.Context, req domain.GetReceiveRequest) (domain.NonHalalFundingReceive, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.NonHalalFundingReceive{}, err
	}

	receive, err := s.repo.FindReceiveByID(ctx, s.db, id)
	if err != nil {
		return domain.NonHalalFundingReceive{}, err
	}
	if receive == nil {
		return domain.NonHalalFundingReceive{}, domain.ErrReceiveNotFound
	}

	return *receive, nil
}

func (s *Service) ListReceives(ctx context.Context, req domain.ListReceiveRequest) (domain.ListReceiveResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListReceiveResponse{}, err
		}
		orgID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListReceives(ctx, s.db, orgID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListReceiveResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(receive *domain.NonHalalFundingReceive) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        receive.ID.String(),
			CreatedAt: receive.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	receives := make([]domain.NonHalalFundingReceive, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		receives = append(receives, *item)
	}

	resp := domain.ListReceiveResponse{Receives: receives}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) CreateDistribution(ctx context.Context, req domain.CreateDistributionRequest) (domain.NonHalalFundingDistribution, error) {
	if req.Amount <= 0 {
		return domain.NonHalalFundingDistribution{}, domain.ErrInvalidAmount
	}

	orgID, err := parseID(req.OrgID)
	if err != nil {
		return domain.NonHalalFundingDistribution{}, err
	}

	org, err := s.orgRepo.FindByID(ctx, s.db, orgID)
	if err != nil {
		return domain.NonHalalFundingDistribution{}, err
	}
	if org == nil {
		return domain.NonHalalFundingDistribution{}, orgdomain.ErrNotFound
	}

	now := time.Now().UTC()
	dist := domain.NonHalalFundingDistribution{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertDistribution(ctx, tx, &dist); err != nil {
			return err
		}

		txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       orgID,
			Amount:      -dist.Amount,
			WalletType:  walletdomain.WalletTypeNonHalal,
			Date:        dist.Date,
			Description: dist.Description,
			Type:        walletdomain.TransactionOutgoing,
			SourceKind:  walletdomain.SourceNonHalalDistribution,
			SourceID:    dist.ID,
		})
		if err != nil {
			return err
		}

		dist.TransactionID = txn.ID
		return s.repo.SetDistributionTransaction(ctx, tx, dist.ID, txn.ID)
	})
	if err != nil {
		return domain.NonHalalFundingDistribution{}, err
	}

	return dist, nil
}

func (s *Service) GetDistribution(ctx context.Context, req domain.GetDistributionRequest) (domain.NonHalalFundingDistribution, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.NonHalalFundingDistribution{}, err
	}

	dist, err := s.repo.FindDistributionByID(ctx, s.db, id)
	if err != nil {
		return domain.NonHalalFundingDistribution{}, err
	}
	if dist == nil {
		return domain.NonHalalFundingDistribution{}, domain.ErrDistributionNotFound
	}

	return *dist, nil
}

func (s *Service) ListDistributions(ctx context.Context, req domain.ListDistributionRequest) (domain.ListDistributionResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListDistributionResponse{}, err
		}
		orgID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListDistributions(ctx, s.db, orgID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListDistributionResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(dist *domain.NonHalalFundingDistribution) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        dist.ID.String(),
			CreatedAt: dist.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	dists := make([]domain.NonHalalFundingDistribution, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		dists = append(dists, *item)
	}

	resp := domain.ListDistributionResponse{Distributions: dists}
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
