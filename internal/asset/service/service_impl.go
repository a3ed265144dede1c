package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/asset/domain"
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
		log:     p.Log.Named("asset.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		orgRepo: p.OrgRepo,
		poster:  p.Poster,
	}
}

// Create books a donated asset at its appraised value.
func (s *Service) Create(ctx context.Context, req domain.CreateAssetRequest) (domain.AssetRecording, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.AssetRecording{}, domain.ErrInvalidName
	}
	if req.Value <= 0 {
		return domain.AssetRecording{}, domain.ErrInvalidValue
	}

	orgID, err := parseID(req.OrgID)
	if err != nil {
		return domain.AssetRecording{}, err
	}

	org, err := s.orgRepo.FindByID(ctx, s.db, orgID)
	if err != nil {
		return domain.AssetRecording{}, err
	}
	if org == nil {
		return domain.AssetRecording{}, orgdomain.ErrNotFound
	}

	now := time.Now().UTC()
	asset := domain.AssetRecording{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Name:      name,
		Value:     req.Value,
		Date:      req.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &asset); err != nil {
			return err
		}

		txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       orgID,
			Amount:      asset.Value,
			WalletType:  walletdomain.WalletTypeDonation,
			Date:        asset.Date,
			Description: "asset recording " + name,
			Type:        walletdomain.TransactionIncoming,
			SourceKind:  walletdomain.SourceAssetRecording,
			SourceID:    asset.ID,
		})
		if err != nil {
			return err
		}

		asset.TransactionID = txn.ID
		return s.repo.SetTransaction(ctx, tx, asset.ID, txn.ID)
	})
	if err != nil {
		return domain.AssetRecording{}, err
	}

	return asset, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetAssetRequest) (domain.AssetRecording, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.AssetRecording{}, err
	}

	asset, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.AssetRecording{}, err
	}
	if asset == nil {
		return domain.AssetRecording{}, domain.ErrNotFound
	}

	return *asset, nil
}

func (s *Service) List(ctx context.Context, req domain.ListAssetRequest) (domain.ListAssetResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListAssetResponse{}, err
		}
		orgID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, orgID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListAssetResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(asset *domain.AssetRecording) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        asset.ID.String(),
			CreatedAt: asset.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	assets := make([]domain.AssetRecording, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		assets = append(assets, *item)
	}

	resp := domain.ListAssetResponse{Assets: assets}
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
