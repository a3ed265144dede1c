package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	amildomain "github.com/lazisku/maal/internal/amil/domain"
	fundingdomain "github.com/lazisku/maal/internal/amilfunding/domain"
	"github.com/lazisku/maal/internal/config"
	"github.com/lazisku/maal/internal/infaq/domain"
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
		log:      p.Log.Named("infaq.service"),
		genID:    p.GenID,
		policy:   p.Policy,
		repo:     p.Repo,
		amilRepo: p.AmilRepo,
		poster:   p.Poster,
		funding:  p.Funding,
	}
}

// Create records an infaq collection. The gross amount is split into a net
// social funding posting and an amil cut, both inside one transaction.
func (s *Service) Create(ctx context.Context, req domain.CreateInfaqRequest) (domain.Infaq, error) {
	name := strings.TrimSpace(req.GiverName)
	if name == "" {
		return domain.Infaq{}, domain.ErrInvalidName
	}
	if req.Amount <= 0 {
		return domain.Infaq{}, domain.ErrInvalidAmount
	}

	amilID, err := parseID(req.AmilID)
	if err != nil {
		return domain.Infaq{}, err
	}

	orgID, err := s.amilRepo.ResolveOwningOrg(ctx, s.db, amilID)
	if err != nil {
		return domain.Infaq{}, err
	}
	if orgID == 0 {
		return domain.Infaq{}, amildomain.ErrAmilNotFound
	}

	cut := s.policy.Current().AmilCut(req.Amount)
	net := req.Amount - cut

	now := time.Now().UTC()
	infaq := domain.Infaq{
		ID:        s.genID.Generate(),
		AmilID:    amilID,
		OrgID:     orgID,
		GiverName: name,
		Amount:    req.Amount,
		Date:      req.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &infaq); err != nil {
			return err
		}

		txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       orgID,
			Amount:      net,
			WalletType:  walletdomain.WalletTypeOrganizationSocialFunding,
			Date:        infaq.Date,
			Description: "infaq from " + name,
			Type:        walletdomain.TransactionIncoming,
			SourceKind:  walletdomain.SourceInfaq,
			SourceID:    infaq.ID,
		})
		if err != nil {
			return err
		}

		infaq.TransactionID = txn.ID
		if err := s.repo.SetTransaction(ctx, tx, infaq.ID, txn.ID); err != nil {
			return err
		}

		if cut > 0 {
			_, err = s.funding.PostCut(ctx, tx, fundingdomain.PostCutRequest{
				OrgID:       orgID,
				Amount:      cut,
				Date:        infaq.Date,
				SourceKind:  walletdomain.SourceInfaqAmilCut,
				Description: "(infaq::amil-funding-cut) " + name,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return domain.Infaq{}, err
	}

	return infaq, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInfaqRequest) (domain.Infaq, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Infaq{}, err
	}

	infaq, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Infaq{}, err
	}
	if infaq == nil {
		return domain.Infaq{}, domain.ErrNotFound
	}

	return *infaq, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInfaqRequest) (domain.ListInfaqResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListInfaqResponse{}, err
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
		return domain.ListInfaqResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(infaq *domain.Infaq) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        infaq.ID.String(),
			CreatedAt: infaq.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	infaqs := make([]domain.Infaq, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		infaqs = append(infaqs, *item)
	}

	resp := domain.ListInfaqResponse{Infaqs: infaqs}
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
