package service

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	donordomain "github.com/lazisku/maal/internal/donor/domain"
	"github.com/lazisku/maal/internal/nucoin/domain"
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

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	OrgRepo    orgdomain.Repository
	DonorRepo  donordomain.Repository
	WalletRepo walletdomain.Repository
	Poster     walletdomain.Poster
	Metrics    *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	orgRepo    orgdomain.Repository
	donorRepo  donordomain.Repository
	walletRepo walletdomain.Repository
	poster     walletdomain.Poster
	metrics    *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("nucoin.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		orgRepo:    p.OrgRepo,
		donorRepo:  p.DonorRepo,
		walletRepo: p.WalletRepo,
		poster:     p.Poster,
		metrics:    p.Metrics,
	}
}

// CreateCoin records a donor coin deposit on the staging aggregator wallet.
func (s *Service) CreateCoin(ctx context.Context, req domain.CreateCoinRequest) (domain.NuCoin, error) {
	if req.Amount <= 0 {
		return domain.NuCoin{}, domain.ErrInvalidAmount
	}

	donorID, err := parseID(req.DonorID)
	if err != nil {
		return domain.NuCoin{}, err
	}

	orgID, err := s.donorRepo.ResolveOwningOrg(ctx, s.db, donorID)
	if err != nil {
		return domain.NuCoin{}, err
	}
	if orgID == 0 {
		return domain.NuCoin{}, donordomain.ErrDonorNotFound
	}

	now := time.Now().UTC()
	coin := domain.NuCoin{
		ID:        s.genID.Generate(),
		DonorID:   donorID,
		OrgID:     orgID,
		Amount:    req.Amount,
		Date:      req.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertCoin(ctx, tx, &coin); err != nil {
			return err
		}

		txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       orgID,
			Amount:      coin.Amount,
			WalletType:  walletdomain.WalletTypeNuCoinAggregator,
			Date:        coin.Date,
			Description: "nu coin deposit",
			Type:        walletdomain.TransactionIncoming,
			SourceKind:  walletdomain.SourceNuCoin,
			SourceID:    coin.ID,
		})
		if err != nil {
			return err
		}

		coin.TransactionID = txn.ID
		return s.repo.SetCoinTransaction(ctx, tx, coin.ID, txn.ID)
	})
	if err != nil {
		return domain.NuCoin{}, err
	}

	return coin, nil
}

func (s *Service) GetCoin(ctx context.Context, req domain.GetCoinRequest) (domain.NuCoin, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.NuCoin{}, err
	}

	coin, err := s.repo.FindCoinByID(ctx, s.db, id)
	if err != nil {
		return domain.NuCoin{}, err
	}
	if coin == nil {
		return domain.NuCoin{}, domain.ErrCoinNotFound
	}

	return *coin, nil
}

func (s *Service) ListCoins(ctx context.Context, req domain.ListCoinRequest) (domain.ListCoinResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListCoinResponse{}, err
		}
		orgID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListCoins(ctx, s.db, orgID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListCoinResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(coin *domain.NuCoin) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        coin.ID.String(),
			CreatedAt: coin.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	coins := make([]domain.NuCoin, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		coins = append(coins, *item)
	}

	resp := domain.ListCoinResponse{Coins: coins}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

// CreateAggregate records a direct organization-level deposit on the
// aggregator wallet.
func (s *Service) CreateAggregate(ctx context.Context, req domain.CreateAggregateRequest) (domain.NuCoinAggregator, error) {
	if req.Amount <= 0 {
		return domain.NuCoinAggregator{}, domain.ErrInvalidAmount
	}

	orgID, err := parseID(req.OrgID)
	if err != nil {
		return domain.NuCoinAggregator{}, err
	}

	org, err := s.orgRepo.FindByID(ctx, s.db, orgID)
	if err != nil {
		return domain.NuCoinAggregator{}, err
	}
	if org == nil {
		return domain.NuCoinAggregator{}, orgdomain.ErrNotFound
	}

	now := time.Now().UTC()
	agg := domain.NuCoinAggregator{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Amount:    req.Amount,
		Date:      req.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertAggregate(ctx, tx, &agg); err != nil {
			return err
		}

		txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       orgID,
			Amount:      agg.Amount,
			WalletType:  walletdomain.WalletTypeNuCoinAggregator,
			Date:        agg.Date,
			Description: "nu coin aggregate deposit",
			Type:        walletdomain.TransactionIncoming,
			SourceKind:  walletdomain.SourceNuCoinAggregator,
			SourceID:    agg.ID,
		})
		if err != nil {
			return err
		}

		agg.TransactionID = txn.ID
		return s.repo.SetAggregateTransaction(ctx, tx, agg.ID, txn.ID)
	})
	if err != nil {
		return domain.NuCoinAggregator{}, err
	}

	return agg, nil
}

// CreateTransfer posts an approved cross-organization transfer. The scope
// pair of the two organizations decides whether the destination is credited
// or the source debited.
func (s *Service) CreateTransfer(ctx context.Context, req domain.CreateTransferRequest) (domain.NuCoinTransfer, error) {
	if req.Amount <= 0 {
		return domain.NuCoinTransfer{}, domain.ErrInvalidAmount
	}

	status := domain.TransferStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if status != domain.TransferApproved {
		return domain.NuCoinTransfer{}, domain.ErrNotApproved
	}

	sourceOrgID, err := parseID(req.SourceOrgID)
	if err != nil {
		return domain.NuCoinTransfer{}, err
	}
	destOrgID, err := parseID(req.DestinationOrgID)
	if err != nil {
		return domain.NuCoinTransfer{}, err
	}

	source, err := s.orgRepo.FindByID(ctx, s.db, sourceOrgID)
	if err != nil {
		return domain.NuCoinTransfer{}, err
	}
	if source == nil {
		return domain.NuCoinTransfer{}, orgdomain.ErrNotFound
	}

	destination, err := s.orgRepo.FindByID(ctx, s.db, destOrgID)
	if err != nil {
		return domain.NuCoinTransfer{}, err
	}
	if destination == nil {
		return domain.NuCoinTransfer{}, orgdomain.ErrNotFound
	}

	strategy, err := resolveStrategy(source.Scope, destination.Scope)
	if err != nil {
		return domain.NuCoinTransfer{}, err
	}

	now := time.Now().UTC()
	transfer := domain.NuCoinTransfer{
		ID:               s.genID.Generate(),
		SourceOrgID:      sourceOrgID,
		DestinationOrgID: destOrgID,
		Amount:           req.Amount,
		Status:           status,
		Strategy:         strategy.name,
		Date:             req.Date,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertTransfer(ctx, tx, &transfer); err != nil {
			return err
		}

		txn, err := s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       strategy.postOrgID(&transfer),
			Amount:      strategy.signedAmount(transfer.Amount),
			WalletType:  walletdomain.WalletTypeNuCoin,
			Date:        transfer.Date,
			Description: "nu coin transfer " + strategy.name,
			Type:        strategy.direction,
			SourceKind:  walletdomain.SourceNuCoinTransfer,
			SourceID:    transfer.ID,
		})
		if err != nil {
			return err
		}

		transfer.TransactionID = txn.ID
		return s.repo.SetTransferTransaction(ctx, tx, transfer.ID, txn.ID)
	})
	if err != nil {
		return domain.NuCoinTransfer{}, err
	}

	s.metrics.RecordCoinTransfer(ctx, strategy.name)
	return transfer, nil
}

func (s *Service) GetTransfer(ctx context.Context, req domain.GetTransferRequest) (domain.NuCoinTransfer, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.NuCoinTransfer{}, err
	}

	transfer, err := s.repo.FindTransferByID(ctx, s.db, id)
	if err != nil {
		return domain.NuCoinTransfer{}, err
	}
	if transfer == nil {
		return domain.NuCoinTransfer{}, domain.ErrTransferNotFound
	}

	return *transfer, nil
}

func (s *Service) ListTransfers(ctx context.Context, req domain.ListTransferRequest) (domain.ListTransferResponse, error) {
	var orgID snowflake.ID
	if strings.TrimSpace(req.OrgID) != "" {
		id, err := parseID(req.OrgID)
		if err != nil {
			return domain.ListTransferResponse{}, err
		}
		orgID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListTransfers(ctx, s.db, orgID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListTransferResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(transfer *domain.NuCoinTransfer) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        transfer.ID.String(),
			CreatedAt: transfer.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	transfers := make([]domain.NuCoinTransfer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		transfers = append(transfers, *item)
	}

	resp := domain.ListTransferResponse{Transfers: transfers}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

// MoveFund sweeps the aggregator wallet balance into the main coin wallet.
// Sweep outcomes are reported as a result object, not as errors.
func (s *Service) MoveFund(ctx context.Context, req domain.MoveFundRequest) (domain.MoveFundResult, error) {
	orgID, err := parseID(req.OrgID)
	if err != nil {
		return domain.MoveFundResult{}, err
	}

	var result domain.MoveFundResult

	err = s.db.Transaction(func(tx *gorm.DB) error {
		wallet, err := s.walletRepo.FindWallet(ctx, tx, orgID, walletdomain.WalletTypeNuCoinAggregator, walletdomain.LockUpdate)
		if err != nil {
			return err
		}
		if wallet == nil {
			result = domain.MoveFundResult{
				Status:  http.StatusNotFound,
				Message: "aggregator wallet not found",
			}
			return nil
		}

		balance := wallet.Amount
		date := time.Now().UTC()
		sweepID := s.genID.Generate()

		_, err = s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       orgID,
			Amount:      -balance,
			WalletType:  walletdomain.WalletTypeNuCoinAggregator,
			Date:        date,
			Description: "nu coin aggregator sweep",
			Type:        walletdomain.TransactionOutgoing,
			SourceKind:  walletdomain.SourceNuCoinAggregator,
			SourceID:    sweepID,
		})
		if err != nil {
			result = domain.MoveFundResult{
				Status:  http.StatusUnprocessableEntity,
				Message: err.Error(),
			}
			return err
		}

		_, err = s.poster.Post(ctx, tx, walletdomain.PostRequest{
			OrgID:       orgID,
			Amount:      balance,
			WalletType:  walletdomain.WalletTypeNuCoin,
			Date:        date,
			Description: "nu coin aggregator sweep",
			Type:        walletdomain.TransactionIncoming,
			SourceKind:  walletdomain.SourceNuCoinAggregator,
			SourceID:    sweepID,
		})
		if err != nil {
			result = domain.MoveFundResult{
				Status:  http.StatusUnprocessableEntity,
				Message: err.Error(),
			}
			return err
		}

		result = domain.MoveFundResult{
			Status:  http.StatusOK,
			Message: "fund moved",
			Moved:   balance,
		}
		return nil
	})
	if err != nil && result.Status == 0 {
		return domain.MoveFundResult{}, err
	}

	s.metrics.RecordFundSweep(ctx, strconv.Itoa(result.Status))
	return result, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
