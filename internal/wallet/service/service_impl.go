package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/clock"
	obsmetrics "github.com/lazisku/maal/internal/observability/metrics"
	orgdomain "github.com/lazisku/maal/internal/organization/domain"
	"github.com/lazisku/maal/internal/wallet/domain"
	"github.com/lazisku/maal/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	OrgRepo    orgdomain.Repository
	WalletRepo domain.Repository
	Metrics    *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	orgRepo    orgdomain.Repository
	walletRepo domain.Repository
	metrics    *obsmetrics.Metrics
}

func New(p Params) domain.Poster {
	return &Service{
		log:        p.Log.Named("wallet.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		orgRepo:    p.OrgRepo,
		walletRepo: p.WalletRepo,
		metrics:    p.Metrics,
	}
}

// Post appends one transaction to the ledger and applies it to the wallet
// balance and the yearly mutation aggregate. It runs entirely inside the
// caller's transaction; any returned error must roll that transaction back.
func (s *Service) Post(ctx context.Context, tx *gorm.DB, req domain.PostRequest) (*domain.Transaction, error) {
	if err := validateDirection(req); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindByID(ctx, tx, req.OrgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, orgdomain.ErrNotFound
	}

	// Share lock keeps the create-vs-update decision consistent against
	// concurrent postings to the same (org, type) pair.
	wallet, err := s.walletRepo.FindWallet(ctx, tx, req.OrgID, req.WalletType, domain.LockShare)
	if err != nil {
		return nil, err
	}

	if req.Type == domain.TransactionOutgoing {
		// An outgoing posting cannot target a missing or empty wallet,
		// and must never drive the balance negative.
		if wallet == nil || wallet.Amount == 0 || wallet.Amount+req.Amount < 0 {
			return nil, domain.ErrInsufficientFunds
		}
	}

	now := s.clock.Now()
	if wallet == nil {
		wallet = &domain.Wallet{
			ID:        s.genID.Generate(),
			OrgID:     req.OrgID,
			Type:      req.WalletType,
			Amount:    req.Amount,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.walletRepo.InsertWallet(ctx, tx, wallet); err != nil {
			if !db.IsDuplicateKeyErr(err) {
				return nil, err
			}
			// Lost the creation race; fall through to the update path.
			wallet, err = s.walletRepo.FindWallet(ctx, tx, req.OrgID, req.WalletType, domain.LockUpdate)
			if err != nil {
				return nil, err
			}
			if wallet == nil {
				return nil, domain.ErrWalletNotFound
			}
			if err := s.walletRepo.AddWalletBalance(ctx, tx, wallet.ID, req.Amount); err != nil {
				return nil, err
			}
		}
	} else {
		if _, err := s.walletRepo.FindWallet(ctx, tx, req.OrgID, req.WalletType, domain.LockUpdate); err != nil {
			return nil, err
		}
		if err := s.walletRepo.AddWalletBalance(ctx, tx, wallet.ID, req.Amount); err != nil {
			return nil, err
		}
	}

	txn := &domain.Transaction{
		ID:          s.genID.Generate(),
		WalletID:    wallet.ID,
		Date:        req.Date,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
		SourceKind:  req.SourceKind,
		SourceID:    req.SourceID,
		CreatedAt:   now,
	}
	if err := s.walletRepo.InsertTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	// Mutation upsert failure is fatal for the whole posting.
	mutation := &domain.WalletMutation{
		ID:         s.genID.Generate(),
		OrgID:      req.OrgID,
		WalletType: req.WalletType,
		Year:       now.Year(),
		Amount:     req.Amount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.walletRepo.UpsertMutation(ctx, tx, mutation); err != nil {
		return nil, err
	}

	s.log.Debug("posted wallet transaction",
		zap.String("org_id", req.OrgID.String()),
		zap.String("wallet_type", string(req.WalletType)),
		zap.String("type", string(req.Type)),
		zap.Int64("amount", req.Amount),
		zap.String("source_kind", string(req.SourceKind)),
	)
	s.metrics.RecordWalletPosting(ctx, string(req.WalletType), string(req.Type))

	return txn, nil
}

func validateDirection(req domain.PostRequest) error {
	switch req.Type {
	case domain.TransactionIncoming:
		if req.Amount < 0 {
			return domain.ErrInvalidDirection
		}
	case domain.TransactionOutgoing:
		if req.Amount > 0 {
			return domain.ErrInvalidDirection
		}
	default:
		return domain.ErrInvalidDirection
	}
	if req.Date.IsZero() {
		return domain.ErrInvalidAmount
	}
	return nil
}
