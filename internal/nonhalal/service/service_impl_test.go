package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/lazisku/maal/internal/clock"
	"github.com/lazisku/maal/internal/nonhalal/domain"
	nonhalalrepository "github.com/lazisku/maal/internal/nonhalal/repository"
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

func newTestService(t *testing.T) (*gorm.DB, domain.Service, orgdomain.Organization) {
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
		&walletdomain.Wallet{},
		&walletdomain.Transaction{},
		&walletdomain.WalletMutation{},
		&domain.NonHalalFundingReceive{},
		&domain.NonHalalFundingDistribution{},
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

	poster := walletservice.New(walletservice.Params{
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clock.NewFakeClock(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)),
		OrgRepo:    orgrepository.Provide(),
		WalletRepo: walletrepository.Provide(),
	})

	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    nonhalalrepository.Provide(),
		OrgRepo: orgrepository.Provide(),
		Poster:  poster,
	})
	return db, svc, org
}

func TestDistributionWithoutFundsFails(t *testing.T) {
	db, svc, org := newTestService(t)

	_, err := svc.CreateDistribution(context.Background(), domain.CreateDistributionRequest{
		OrgID:       org.ID.String(),
		Amount:      500,
		Date:        time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Description: "bridge repair",
	})
	assert.ErrorIs(t, err, walletdomain.ErrInsufficientFunds)

	// The document insert rolled back with the posting.
	var count int64
	require.NoError(t, db.Model(&domain.NonHalalFundingDistribution{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReceiveThenDistribute(t *testing.T) {
	db, svc, org := newTestService(t)

	receive, err := svc.CreateReceive(context.Background(), domain.CreateReceiveRequest{
		OrgID:       org.ID.String(),
		Amount:      800,
		Date:        time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Description: "bank interest",
	})
	require.NoError(t, err)
	assert.NotZero(t, receive.TransactionID)

	dist, err := svc.CreateDistribution(context.Background(), domain.CreateDistributionRequest{
		OrgID:       org.ID.String(),
		Amount:      300,
		Date:        time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		Description: "road paving",
	})
	require.NoError(t, err)
	assert.NotZero(t, dist.TransactionID)

	var wallet walletdomain.Wallet
	require.NoError(t, db.First(&wallet, "org_id = ? AND type = ?", org.ID, walletdomain.WalletTypeNonHalal).Error)
	assert.Equal(t, int64(500), wallet.Amount)

	// Overdraw beyond the remaining balance still fails.
	_, err = svc.CreateDistribution(context.Background(), domain.CreateDistributionRequest{
		OrgID:       org.ID.String(),
		Amount:      501,
		Date:        time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC),
		Description: "too much",
	})
	assert.ErrorIs(t, err, walletdomain.ErrInsufficientFunds)
}
