package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	amildomain "github.com/lazisku/maal/internal/amil/domain"
	amilrepository "github.com/lazisku/maal/internal/amil/repository"
	fundingdomain "github.com/lazisku/maal/internal/amilfunding/domain"
	fundingrepository "github.com/lazisku/maal/internal/amilfunding/repository"
	fundingservice "github.com/lazisku/maal/internal/amilfunding/service"
	"github.com/lazisku/maal/internal/clock"
	"github.com/lazisku/maal/internal/config"
	orgdomain "github.com/lazisku/maal/internal/organization/domain"
	orgrepository "github.com/lazisku/maal/internal/organization/repository"
	walletdomain "github.com/lazisku/maal/internal/wallet/domain"
	walletrepository "github.com/lazisku/maal/internal/wallet/repository"
	walletservice "github.com/lazisku/maal/internal/wallet/service"
	"github.com/lazisku/maal/internal/zakat/domain"
	zakatrepository "github.com/lazisku/maal/internal/zakat/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	svc  domain.Service
	node *snowflake.Node
	amil amildomain.Amil
	org  orgdomain.Organization
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
		&amildomain.Organizer{},
		&amildomain.Amil{},
		&walletdomain.Wallet{},
		&walletdomain.Transaction{},
		&walletdomain.WalletMutation{},
		&fundingdomain.AmilFunding{},
		&domain.Zakat{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	org := orgdomain.Organization{
		ID:       node.Generate(),
		Name:     "Ranting Sukamaju",
		Scope:    orgdomain.ScopeTwig,
		District: "Sukamaju",
	}
	require.NoError(t, db.Create(&org).Error)

	organizer := amildomain.Organizer{ID: node.Generate(), OrgID: org.ID, Name: "Panitia Masjid"}
	require.NoError(t, db.Create(&organizer).Error)

	amil := amildomain.Amil{ID: node.Generate(), OrganizerID: organizer.ID, Name: "Pak Hasan"}
	require.NoError(t, db.Create(&amil).Error)

	clk := clock.NewFakeClock(time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC))
	poster := walletservice.New(walletservice.Params{
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clk,
		OrgRepo:    orgrepository.Provide(),
		WalletRepo: walletrepository.Provide(),
	})

	funding := fundingservice.New(fundingservice.Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    fundingrepository.Provide(),
		OrgRepo: orgrepository.Provide(),
		Poster:  poster,
	})

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Policy:   config.NewStaticPolicyHolder(config.PolicyConfig{AmilCutNumerator: 1, AmilCutDenominator: 10}),
		Repo:     zakatrepository.Provide(),
		AmilRepo: amilrepository.Provide(),
		Poster:   poster,
		Funding:  funding,
	})

	return &fixture{db: db, svc: svc, node: node, amil: amil, org: org}
}

func TestCreateZakatSplitsAmilCut(t *testing.T) {
	f := newFixture(t)

	zakat, err := f.svc.Create(context.Background(), domain.CreateZakatRequest{
		AmilID:      f.amil.ID.String(),
		MuzakkiName: "Bu Fatimah",
		Amount:      1000,
		Date:        time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, f.org.ID, zakat.OrgID)
	assert.Equal(t, int64(1000), zakat.Amount)
	assert.NotZero(t, zakat.TransactionID)

	var alms walletdomain.Wallet
	require.NoError(t, f.db.First(&alms, "org_id = ? AND type = ?", f.org.ID, walletdomain.WalletTypeAlmsgiving).Error)
	assert.Equal(t, int64(900), alms.Amount)

	var amilWallet walletdomain.Wallet
	require.NoError(t, f.db.First(&amilWallet, "org_id = ? AND type = ?", f.org.ID, walletdomain.WalletTypeAmil).Error)
	assert.Equal(t, int64(100), amilWallet.Amount)

	var funding fundingdomain.AmilFunding
	require.NoError(t, f.db.First(&funding, "org_id = ?", f.org.ID).Error)
	assert.Equal(t, fundingdomain.FundingOtherAmil, funding.FundingType)
	assert.Equal(t, int64(100), funding.Amount)
	assert.True(t, strings.HasPrefix(funding.Description, "(zakat::amil-funding-cut)"))
	assert.NotZero(t, funding.TransactionID)

	var cutTxn walletdomain.Transaction
	require.NoError(t, f.db.First(&cutTxn, "source_kind = ?", walletdomain.SourceZakatAmilCut).Error)
	assert.Equal(t, int64(100), cutTxn.Amount)
	assert.Equal(t, funding.ID, cutTxn.SourceID)
}

func TestCreateZakatSmallAmountSkipsCut(t *testing.T) {
	f := newFixture(t)

	// 9 * 1/10 floors to 0, no amil funding record is written.
	_, err := f.svc.Create(context.Background(), domain.CreateZakatRequest{
		AmilID:      f.amil.ID.String(),
		MuzakkiName: "Bu Fatimah",
		Amount:      9,
		Date:        time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var alms walletdomain.Wallet
	require.NoError(t, f.db.First(&alms, "org_id = ? AND type = ?", f.org.ID, walletdomain.WalletTypeAlmsgiving).Error)
	assert.Equal(t, int64(9), alms.Amount)

	var fundingCount int64
	require.NoError(t, f.db.Model(&fundingdomain.AmilFunding{}).Count(&fundingCount).Error)
	assert.Zero(t, fundingCount)
}

func TestCreateZakatValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CreateZakatRequest{
		AmilID: f.amil.ID.String(), MuzakkiName: "", Amount: 100,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = f.svc.Create(context.Background(), domain.CreateZakatRequest{
		AmilID: f.amil.ID.String(), MuzakkiName: "Bu Fatimah", Amount: -100,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.svc.Create(context.Background(), domain.CreateZakatRequest{
		AmilID: f.node.Generate().String(), MuzakkiName: "Bu Fatimah", Amount: 100,
	})
	assert.ErrorIs(t, err, amildomain.ErrAmilNotFound)
}

func TestUpdateZakatDoesNotTouchLedger(t *testing.T) {
	f := newFixture(t)

	zakat, err := f.svc.Create(context.Background(), domain.CreateZakatRequest{
		AmilID:      f.amil.ID.String(),
		MuzakkiName: "Bu Fatimah",
		Amount:      1000,
		Date:        time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var before int64
	require.NoError(t, f.db.Model(&walletdomain.Transaction{}).Count(&before).Error)

	updated, err := f.svc.Update(context.Background(), domain.UpdateZakatRequest{
		ID:          zakat.ID.String(),
		MuzakkiName: "Ibu Fatimah Azzahra",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ibu Fatimah Azzahra", updated.MuzakkiName)

	var after int64
	require.NoError(t, f.db.Model(&walletdomain.Transaction{}).Count(&after).Error)
	assert.Equal(t, before, after)
}
