package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	amildomain "github.com/lazisku/maal/internal/amil/domain"
	fundingdomain "github.com/lazisku/maal/internal/amilfunding/domain"
	"github.com/lazisku/maal/internal/config"
	walletdomain "github.com/lazisku/maal/internal/wallet/domain"
	"github.com/lazisku/maal/internal/zakat/domain"
	"github.com/lazisku/maal/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Policy   *config.PolicyHolder
	Repo     domain.Repository
	AmilRepo amildomain.Repository
	Poster   walletdomain.Poster
	Funding  fundingdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	policy   *config.PolicyHolder
	repo     domain.Repository
	amilRepo amildomain.Repository
	poster   walletdomain.Poster
	funding  fundingdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("zakat.service"),
		genID:    p.GenID,
		policy:   p.Policy,
		repo:     p.Repo,
		amilRepo: p.AmilRepo,
		poster:   p.Poster,
		funding:  p.Funding,
	}
}

// Create records a zakat collection. The gross amount is split into a net
// almsgiving posting and an amil cut, both inside one transaction.
func (s *Service) Create(ctx context.Context, req domain.CreateZakatRequest) (domain.Zakat, error) {
	name := strings.TrimSpace(req.MuzakkiName)
	if name == "" {
		return domain.Zakat{}, domain.ErrInvalidName
	}
	if req.Amount <= 0 {
		return domain.Zakat{}, domain.ErrInvalidAmount
	}

	amilID, err := parseID(req.AmilID)
	if err != nil {
		return domain.Zakat{}, err
	}

	orgID, err := s.amilRepo.ResolveOwningOrg(ctx, s.db, amilID)
	if err != nil {
		return domain.Zakat{}, err
	}
	if orgID == 0 {
		return domain.Zakat{}, amildomain.ErrAmilNotFound
	}

	cut := s.policy.Current().AmilCut(req.Amount)
	net := req.Amount - cut

	now := time.Now().UTC()
	zakat := domain.Zakat{
		ID:          s.genID.Generate(),
		AmilID:      amilID,
		OrgID:       orgID,
		MuzakkiName: name,
		Amount:      req.Amount,
		Date:        req.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &zakat); err != nil {
			return err
		}

		txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       orgID,
			Amount:      net,
			WalletType:  walletdomain.WalletTypeAlmsgiving,
			Date:        zakat.Date,
			Description: "zakat from " + name,
			Type:        walletdomain.TransactionIncoming,
			SourceKind:  walletdomain.SourceZakat,
			SourceID:    zakat.ID,
		})
		if err != nil {
			return err
		}

		zakat.TransactionID = txn.ID
		if err := s.repo.SetTransaction(ctx, tx, zakat.ID, txn.ID); err != nil {
			return err
		}

		if cut > 0 {
			_, err = s.funding.PostCut(ctx, tx, fundingdomain.PostCutRequest{
				OrgID:       orgID,
				Amount:      cut,
				Date:        zakat.Date,
				SourceKind:  walletdomain.SourceZakatAmilCut,
				Description: "(zakat::amil-funding-cut) " + name,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return domain.Zakat{}, err
	}

	return zakat, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetZakatRequest) (domain.Zakat, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Zakat{}, err
	}

	zakat, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Zakat{}, err
	}
	if zakat == nil {
		return domain.Zakat{}, domain.ErrNotFound
	}

	return *zakat, nil
}

// Update renames the muzakki. It never touches the ledger.
func (s *Service) Update(ctx context.Context, req domain.UpdateZakatRequest) (domain.Zakat, error) {
	name := strings.TrimSpace(req.MuzakkiName)
	if name == "" {
		return domain.Zakat{}, domain.ErrInvalidName
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Zakat{}, err
	}

	zakat, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Zakat{}, err
	}
	if zakat == nil {
		return domain.Zakat{}, domain.ErrNotFound
	}

	if err := s.repo.UpdateMuzakkiName(ctx, s.db, id, name); err != nil {
		return domain.Zakat{}, err
	}

	zakat.MuzakkiName = name
	return *zakat, nil
}

func (s *Service) List(ctx context.Context, req domain.ListZakatRequest) (domain.ListZakatResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListZakatResponse{}, err
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
		return domain.ListZakatResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(zakat *domain.Zakat) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        zakat.ID.String(),
			CreatedAt: zakat.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	zakats := make([]domain.Zakat, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		zakats = append(zakats, *item)
	}

	resp := domain.ListZakatResponse{Zakats: zakats}
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
