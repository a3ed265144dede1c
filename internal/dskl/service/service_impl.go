package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	amildomain "github.com/lazisku/maal/internal/amil/domain"
	fundingdomain "github.com/lazisku/maal/internal/amilfunding/domain"
	"github.com/lazisku/maal/internal/config"
	"github.com/lazisku/maal/internal/dskl/domain"
	walletdomain "github.com/lazisku/maal/internal/wallet/domain"
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
		log:      p.Log.Named("dskl.service"),
		genID:    p.GenID,
		policy:   p.Policy,
		repo:     p.Repo,
		amilRepo: p.AmilRepo,
		poster:   p.Poster,
		funding:  p.Funding,
	}
}

// Create records a dskl collection. The gross amount is split into a net
// qurban posting and an amil cut, both inside one transaction.
func (s *Service) Create(ctx context.Context, req domain.CreateDsklRequest) (domain.Dskl, error) {
	kind := domain.Kind(strings.ToUpper(strings.TrimSpace(req.Kind)))
	if !kind.Valid() {
		return domain.Dskl{}, domain.ErrInvalidKind
	}
	if req.Amount <= 0 {
		return domain.Dskl{}, domain.ErrInvalidAmount
	}

	amilID, err := parseID(req.AmilID)
	if err != nil {
		return domain.Dskl{}, err
	}

	orgID, err := s.amilRepo.ResolveOwningOrg(ctx, s.db, amilID)
	if err != nil {
		return domain.Dskl{}, err
	}
	if orgID == 0 {
		return domain.Dskl{}, amildomain.ErrAmilNotFound
	}

	cut := s.policy.Current().AmilCut(req.Amount)
	net := req.Amount - cut

	now := time.Now().UTC()
	dskl := domain.Dskl{
		ID:        s.genID.Generate(),
		AmilID:    amilID,
		OrgID:     orgID,
		Kind:      kind,
		Amount:    req.Amount,
		Date:      req.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &dskl); err != nil {
			return err
		}

		txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       orgID,
			Amount:      net,
			WalletType:  walletdomain.WalletTypeQurban,
			Date:        dskl.Date,
			Description: "dskl " + strings.ToLower(string(kind)),
			Type:        walletdomain.TransactionIncoming,
			SourceKind:  walletdomain.SourceDskl,
			SourceID:    dskl.ID,
		})
		if err != nil {
			return err
		}

		dskl.TransactionID = txn.ID
		if err := s.repo.SetTransaction(ctx, tx, dskl.ID, txn.ID); err != nil {
			return err
		}

		if cut > 0 {
			_, err = s.funding.PostCut(ctx, tx, fundingdomain.PostCutRequest{
				OrgID:       orgID,
				Amount:      cut,
				Date:        dskl.Date,
				SourceKind:  walletdomain.SourceDsklAmilCut,
				Description: "(dskl::amil-funding-cut) " + strings.ToLower(string(kind)),
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return domain.Dskl{}, err
	}

	return dskl, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetDsklRequest) (domain.Dskl, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Dskl{}, err
	}

	dskl, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Dskl{}, err
	}
	if dskl == nil {
		return domain.Dskl{}, domain.ErrNotFound
	}

	return *dskl, nil
}

func (s *Service) List(ctx context.Context, req domain.ListDsklRequest) (domain.ListDsklResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListDsklResponse{}, err
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
		return domain.ListDsklResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(dskl *domain.Dskl) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        dskl.ID.String(),
			CreatedAt: dskl.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	dskls := make([]domain.Dskl, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		dskls = append(dskls, *item)
	}

	resp := domain.ListDsklResponse{Dskls: dskls}
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
