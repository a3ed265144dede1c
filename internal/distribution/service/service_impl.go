package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/distribution/domain"
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
		log:     p.Log.Named("distribution.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		orgRepo: p.OrgRepo,
		poster:  p.Poster,
	}
}

func (s *Service) CreateDonee(ctx context.Context, req domain.CreateDoneeRequest) (domain.Donee, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Donee{}, domain.ErrInvalidName
	}

	asnaf := domain.Asnaf(strings.ToUpper(strings.TrimSpace(req.Asnaf)))
	if !asnaf.Valid() {
		return domain.Donee{}, domain.ErrInvalidAsnaf
	}

	orgID, err := parseID(req.OrgID)
	if err != nil {
		return domain.Donee{}, err
	}

	org, err := s.orgRepo.FindByID(ctx, s.db, orgID)
	if err != nil {
		return domain.Donee{}, err
	}
	if org == nil {
		return domain.Donee{}, orgdomain.ErrNotFound
	}

	now := time.Now().UTC()
	donee := domain.Donee{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Name:      name,
		Asnaf:     asnaf,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.InsertDonee(ctx, s.db, &donee); err != nil {
		return domain.Donee{}, err
	}

	return donee, nil
}

func (s *Service) GetDonee(ctx context.Context, req domain.GetDoneeRequest) (domain.Donee, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Donee{}, err
	}

	donee, err := s.repo.FindDoneeByID(ctx, s.db, id)
	if err != nil {
		return domain.Donee{}, err
	}
	if donee == nil {
		return domain.Donee{}, domain.ErrDoneeNotFound
	}

	return *donee, nil
}

func (s *Service) ListDonees(ctx context.Context, req domain.ListDoneeRequest) (domain.ListDoneeResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListDoneeResponse{}, err
		}
		orgID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListDonees(ctx, s.db, orgID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListDoneeResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(donee *domain.Donee) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        donee.ID.String(),
			CreatedAt: donee.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	donees := make([]domain.Donee, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		donees = append(donees, *item)
	}

	resp := domain.ListDoneeResponse{Donees: donees}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

// CreateZakatDistribution pays a donee out of the almsgiving wallet. The
// posting rejects overdraws, so a distribution can never exceed the balance.
func (s *Service) CreateZakatDistribution(ctx context.Context, req domain.CreateZakatDistributionRequest) (domain.ZakatDistribution, error) {
	if req.Amount <= 0 {
		return domain.ZakatDistribution{}, domain.ErrInvalidAmount
	}

	doneeID, err := parseID(req.DoneeID)
	if err != nil {
		return domain.ZakatDistribution{}, err
	}

	donee, err := s.repo.FindDoneeByID(ctx, s.db, doneeID)
	if err != nil {
		return domain.ZakatDistribution{}, err
	}
	if donee == nil {
		return domain.ZakatDistribution{}, domain.ErrDoneeNotFound
	}

	now := time.Now().UTC()
	dist := domain.ZakatDistribution{
		ID:        s.genID.Generate(),
		DoneeID:   doneeID,
		OrgID:     donee.OrgID,
		Amount:    req.Amount,
		Date:      req.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertZakatDistribution(ctx, tx, &dist); err != nil {
			return err
		}

		txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       donee.OrgID,
			Amount:      -dist.Amount,
			WalletType:  walletdomain.WalletTypeAlmsgiving,
			Date:        dist.Date,
			Description: "zakat distribution to " + donee.Name,
			Type:        walletdomain.TransactionOutgoing,
			SourceKind:  walletdomain.SourceZakatDistribution,
			SourceID:    dist.ID,
		})
		if err != nil {
			return err
		}

		dist.TransactionID = txn.ID
		return s.repo.SetZakatDistributionTransaction(ctx, tx, dist.ID, txn.ID)
	})
	if err != nil {
		return domain.ZakatDistribution{}, err
	}

	return dist, nil
}

func (s *Service) GetZakatDistribution(ctx context.Context, req domain.GetZakatDistributionRequest) (domain.ZakatDistribution, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.ZakatDistribution{}, err
	}

	dist, err := s.repo.FindZakatDistributionByID(ctx, s.db, id)
	if err != nil {
		return domain.ZakatDistribution{}, err
	}
	if dist == nil {
		return domain.ZakatDistribution{}, domain.ErrNotFound
	}

	return *dist, nil
}

func (s *Service) ListZakatDistributions(ctx context.Context, req domain.ListZakatDistributionRequest) (domain.ListZakatDistributionResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListZakatDistributionResponse{}, err
		}
		orgID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListZakatDistributions(ctx, s.db, orgID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListZakatDistributionResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(dist *domain.ZakatDistribution) string {
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

	dists := make([]domain.ZakatDistribution, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		dists = append(dists, *item)
	}

	resp := domain.ListZakatDistributionResponse{Distributions: dists}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) CreateInfaqDistribution(ctx context.Context, req domain.CreateInfaqDistributionRequest) (domain.InfaqDistribution, error) {
	if req.Amount <= 0 {
		return domain.InfaqDistribution{}, domain.ErrInvalidAmount
	}

	recipient := strings.TrimSpace(req.Recipient)
	if recipient == "" {
		return domain.InfaqDistribution{}, domain.ErrInvalidRecipient
	}

	orgID, err := parseID(req.OrgID)
	if err != nil {
		return domain.InfaqDistribution{}, err
	}

	org, err := s.orgRepo.FindByID(ctx, s.db, orgID)
	if err != nil {
		return domain.InfaqDistribution{}, err
	}
	if org == nil {
		return domain.InfaqDistribution{}, orgdomain.ErrNotFound
	}

	now := time.Now().UTC()
	dist := domain.InfaqDistribution{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Recipient: recipient,
		Amount:    req.Amount,
		Date:      req.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertInfaqDistribution(ctx, tx, &dist); err != nil {
			return err
		}

		txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       orgID,
			Amount:      -dist.Amount,
			WalletType:  walletdomain.WalletTypeOrganizationSocialFunding,
			Date:        dist.Date,
			Description: "infaq distribution to " + recipient,
			Type:        walletdomain.TransactionOutgoing,
			SourceKind:  walletdomain.SourceInfaqDistribution,
			SourceID:    dist.ID,
		})
		if err != nil {
			return err
		}

		dist.TransactionID = txn.ID
		return s.repo.SetInfaqDistributionTransaction(ctx, tx, dist.ID, txn.ID)
	})
	if err != nil {
		return domain.InfaqDistribution{}, err
	}

	return dist, nil
}

func (s *Service) GetInfaqDistribution(ctx context.Context, req domain.GetInfaqDistributionRequest) (domain.InfaqDistribution, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.InfaqDistribution{}, err
	}

	dist, err := s.repo.FindInfaqDistributionByID(ctx, s.db, id)
	if err != nil {
		return domain.InfaqDistribution{}, err
	}
	if dist == nil {
		return domain.InfaqDistribution{}, domain.ErrNotFound
	}

	return *dist, nil
}

func (s *Service) ListInfaqDistributions(ctx context.Context, req domain.ListInfaqDistributionRequest) (domain.ListInfaqDistributionResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListInfaqDistributionResponse{}, err
		}
		orgID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListInfaqDistributions(ctx, s.db, orgID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListInfaqDistributionResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(dist *domain.InfaqDistribution) string {
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

	dists := make([]domain.InfaqDistribution, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		dists = append(dists, *item)
	}

	resp := domain.ListInfaqDistributionResponse{Distributions: dists}
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
