package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/lazisku/maal/internal/clock"
	donordomain "github.com/lazisku/maal/internal/donor/domain"
	donorrepository "github.com/lazisku/maal/internal/donor/repository"
	"github.com/lazisku/maal/internal/nucoin/domain"
	nucoinrepository "github.com/lazisku/maal/internal/nucoin/repository"
	orgdomain "github.com/lazisku/maal/internal/organization/domain"
	orgrepository "github.com/lazisku/maal/internal/organization/repository"
	walletdomain "github.com/lazisku/maal/internal/wallet/domain"
	walletrepository "github.com/lazisku/maal/internal/wallet/repository"
	walletservice "github.com/lazisku/maal/internal/wallet/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	svc  domain.Service
	node *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	// SQLite support hack: remove pessimistic lock clauses
	stripLocks := func(d *gorm.DB) {
		sql := d.Statement.SQL.String()
		if strings.Contains(sql, "FOR UPDATE") || strings.Contains(sql, "FOR SHARE") {
			newSQL := strings.ReplaceAll(sql, "FOR UPDATE", "")
			newSQL = strings.ReplaceAll(newSQL, "FOR SHARE", "")
			d.Statement.SQL.Reset()
			d.Statement.SQL.WriteString(newSQL)
		}
	}
	db.Callback().Query().Before("gorm:query").Register("sqlite_strip_locks", stripLocks)
	db.Callback().Row().Before("gorm:row").Register("sqlite_strip_locks_row", stripLocks)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&orgdomain.Organization{},
		&donordomain.Volunteer{},
		&donordomain.Donor{},
		&walletdomain.Wallet{},
		&walletdomain.Transaction{},
		&walletdomain.WalletMutation{},
		&domain.NuCoin{},
		&domain.NuCoinAggregator{},
		&domain.NuCoinTransfer{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	poster := walletservice.New(walletservice.Params{
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)),
		OrgRepo:    orgrepository.Provide(),
		WalletRepo: walletrepository.Provide(),
	})

	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Repo:       nucoinrepository.Provide(),
		OrgRepo:    orgrepository.Provide(),
		DonorRepo:  donorrepository.Provide(),
		WalletRepo: walletrepository.Provide(),
		Poster:     poster,
	})

	return &fixture{db: db, svc: svc, node: node}
}

func (f *fixture) seedOrg(t *testing.T, scope orgdomain.Scope) orgdomain.Organization {
	t.Helper()
	org := orgdomain.Organization{
		ID:       f.node.Generate(),
		Name:     "Org " + string(scope),
		Scope:    scope,
		District: "Sukamaju",
	}
	require.NoError(t, f.db.Create(&org).Error)
	return org
}

func (f *fixture) seedDonor(t *testing.T, org orgdomain.Organization) donordomain.Donor {
	t.Helper()
	volunteer := donordomain.Volunteer{ID: f.node.Generate(), OrgID: org.ID, Name: "Pak Slamet"}
	require.NoError(t, f.db.Create(&volunteer).Error)
	donor := donordomain.Donor{ID: f.node.Generate(), VolunteerID: volunteer.ID, Name: "Bu Aminah"}
	require.NoError(t, f.db.Create(&donor).Error)
	return donor
}

func TestCreateCoinLandsOnAggregator(t *testing.T) {
	f := newFixture(t)
	org := f.seedOrg(t, orgdomain.ScopeTwig)
	donor := f.seedDonor(t, org)

	coin, err := f.svc.CreateCoin(context.Background(), domain.CreateCoinRequest{
		DonorID: donor.ID.String(),
		Amount:  250,
		Date:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, org.ID, coin.OrgID)
	assert.NotZero(t, coin.TransactionID)

	var wallet walletdomain.Wallet
	require.NoError(t, f.db.First(&wallet, "org_id = ? AND type = ?", org.ID, walletdomain.WalletTypeNuCoinAggregator).Error)
	assert.Equal(t, int64(250), wallet.Amount)
}

func TestCreateTransferStrategies(t *testing.T) {
	f := newFixture(t)
	branch := f.seedOrg(t, orgdomain.ScopeBranch)
	rep := f.seedOrg(t, orgdomain.ScopeBranchRepresentative)
	twig := f.seedOrg(t, orgdomain.ScopeTwig)

	// Downward transfer credits the destination coin wallet.
	transfer, err := f.svc.CreateTransfer(context.Background(), domain.CreateTransferRequest{
		SourceOrgID:      branch.ID.String(),
		DestinationOrgID: rep.ID.String(),
		Amount:           400,
		Status:           "APPROVED",
		Date:             time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "representative-from-branch", transfer.Strategy)

	var repWallet walletdomain.Wallet
	require.NoError(t, f.db.First(&repWallet, "org_id = ? AND type = ?", rep.ID, walletdomain.WalletTypeNuCoin).Error)
	assert.Equal(t, int64(400), repWallet.Amount)

	// Upward transfer debits the source coin wallet.
	_, err = f.svc.CreateTransfer(context.Background(), domain.CreateTransferRequest{
		SourceOrgID:      rep.ID.String(),
		DestinationOrgID: branch.ID.String(),
		Amount:           150,
		Status:           "APPROVED",
		Date:             time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, f.db.First(&repWallet, "org_id = ? AND type = ?", rep.ID, walletdomain.WalletTypeNuCoin).Error)
	assert.Equal(t, int64(250), repWallet.Amount)

	// Transfers between peers are rejected.
	otherTwig := f.seedOrg(t, orgdomain.ScopeTwig)
	_, err = f.svc.CreateTransfer(context.Background(), domain.CreateTransferRequest{
		SourceOrgID:      twig.ID.String(),
		DestinationOrgID: otherTwig.ID.String(),
		Amount:           50,
		Status:           "APPROVED",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidScopePair)
}

func TestCreateTransferRequiresApproval(t *testing.T) {
	f := newFixture(t)
	branch := f.seedOrg(t, orgdomain.ScopeBranch)
	rep := f.seedOrg(t, orgdomain.ScopeBranchRepresentative)

	for _, status := range []string{"PENDING", "REJECTED", ""} {
		_, err := f.svc.CreateTransfer(context.Background(), domain.CreateTransferRequest{
			SourceOrgID:      branch.ID.String(),
			DestinationOrgID: rep.ID.String(),
			Amount:           100,
			Status:           status,
		})
		assert.ErrorIs(t, err, domain.ErrNotApproved)
	}

	var count int64
	require.NoError(t, f.db.Model(&domain.NuCoinTransfer{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMoveFundSweepsAggregator(t *testing.T) {
	f := newFixture(t)
	org := f.seedOrg(t, orgdomain.ScopeTwig)
	donor := f.seedDonor(t, org)

	_, err := f.svc.CreateCoin(context.Background(), domain.CreateCoinRequest{
		DonorID: donor.ID.String(),
		Amount:  700,
		Date:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	result, err := f.svc.MoveFund(context.Background(), domain.MoveFundRequest{OrgID: org.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, int64(700), result.Moved)

	var agg, coin walletdomain.Wallet
	require.NoError(t, f.db.First(&agg, "org_id = ? AND type = ?", org.ID, walletdomain.WalletTypeNuCoinAggregator).Error)
	require.NoError(t, f.db.First(&coin, "org_id = ? AND type = ?", org.ID, walletdomain.WalletTypeNuCoin).Error)
	assert.Zero(t, agg.Amount)
	assert.Equal(t, int64(700), coin.Amount)
}

func TestMoveFundWithoutAggregatorWallet(t *testing.T) {
	f := newFixture(t)
	org := f.seedOrg(t, orgdomain.ScopeTwig)

	result, err := f.svc.MoveFund(context.Background(), domain.MoveFundRequest{OrgID: org.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, result.Status)
	assert.Zero(t, result.Moved)
}

func TestMoveFundEmptyAggregatorFails(t *testing.T) {
	f := newFixture(t)
	org := f.seedOrg(t, orgdomain.ScopeTwig)
	donor := f.seedDonor(t, org)

	_, err := f.svc.CreateCoin(context.Background(), domain.CreateCoinRequest{
		DonorID: donor.ID.String(),
		Amount:  100,
		Date:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	first, err := f.svc.MoveFund(context.Background(), domain.MoveFundRequest{OrgID: org.ID.String()})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, first.Status)

	// A second sweep finds a zero balance and cannot post the outgoing leg.
	second, err := f.svc.MoveFund(context.Background(), domain.MoveFundRequest{OrgID: org.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, second.Status)
}
