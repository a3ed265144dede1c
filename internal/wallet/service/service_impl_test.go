package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/lazisku/maal/internal/clock"
	orgdomain "github.com/lazisku/maal/internal/organization/domain"
	orgrepository "github.com/lazisku/maal/internal/organization/repository"
	"github.com/lazisku/maal/internal/wallet/domain"
	walletrepository "github.com/lazisku/maal/internal/wallet/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
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
		&domain.Wallet{},
		&domain.Transaction{},
		&domain.WalletMutation{},
	))
	return db
}

func newPoster(t *testing.T, clk clock.Clock) (domain.Poster, *snowflake.Node) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	poster := New(Params{
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clk,
		OrgRepo:    orgrepository.Provide(),
		WalletRepo: walletrepository.Provide(),
	})
	return poster, node
}

func seedOrg(t *testing.T, db *gorm.DB, node *snowflake.Node) orgdomain.Organization {
	t.Helper()
	org := orgdomain.Organization{
		ID:       node.Generate(),
		Name:     "Ranting Sukamaju",
		Scope:    orgdomain.ScopeTwig,
		District: "Sukamaju",
	}
	require.NoError(t, db.Create(&org).Error)
	return org
}

func post(db *gorm.DB, poster domain.Poster, req domain.PostRequest) (*domain.Transaction, error) {
	var txn *domain.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		txn, err = poster.Post(context.Background(), tx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func TestPostIncomingCreatesWallet(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	poster, node := newPoster(t, clk)
	org := seedOrg(t, db, node)

	txn, err := post(db, poster, domain.PostRequest{
		OrgID:       org.ID,
		Amount:      900,
		WalletType:  domain.WalletTypeAlmsgiving,
		Date:        clk.Now(),
		Description: "zakat fitrah",
		Type:        domain.TransactionIncoming,
		SourceKind:  domain.SourceZakat,
		SourceID:    node.Generate(),
	})
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, int64(900), txn.Amount)
	assert.Equal(t, domain.TransactionIncoming, txn.Type)

	var wallet domain.Wallet
	require.NoError(t, db.First(&wallet, "org_id = ? AND type = ?", org.ID, domain.WalletTypeAlmsgiving).Error)
	assert.Equal(t, int64(900), wallet.Amount)
	assert.Equal(t, wallet.ID, txn.WalletID)

	var mutation domain.WalletMutation
	require.NoError(t, db.First(&mutation, "org_id = ? AND wallet_type = ?", org.ID, domain.WalletTypeAlmsgiving).Error)
	assert.Equal(t, 2025, mutation.Year)
	assert.Equal(t, int64(900), mutation.Amount)
}

func TestPostOutgoingMissingWalletFails(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	poster, node := newPoster(t, clk)
	org := seedOrg(t, db, node)

	_, err := post(db, poster, domain.PostRequest{
		OrgID:       org.ID,
		Amount:      -500,
		WalletType:  domain.WalletTypeNonHalal,
		Date:        clk.Now(),
		Description: "non halal distribution",
		Type:        domain.TransactionOutgoing,
		SourceKind:  domain.SourceNonHalalDistribution,
		SourceID:    node.Generate(),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	var walletCount, txnCount int64
	require.NoError(t, db.Model(&domain.Wallet{}).Count(&walletCount).Error)
	require.NoError(t, db.Model(&domain.Transaction{}).Count(&txnCount).Error)
	assert.Zero(t, walletCount)
	assert.Zero(t, txnCount)
}

func TestPostOutgoingNeverDrivesBalanceNegative(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	poster, node := newPoster(t, clk)
	org := seedOrg(t, db, node)

	_, err := post(db, poster, domain.PostRequest{
		OrgID: org.ID, Amount: 500, WalletType: domain.WalletTypeAmil,
		Date: clk.Now(), Type: domain.TransactionIncoming,
		SourceKind: domain.SourceAmilFunding, SourceID: node.Generate(),
	})
	require.NoError(t, err)

	_, err = post(db, poster, domain.PostRequest{
		OrgID: org.ID, Amount: -600, WalletType: domain.WalletTypeAmil,
		Date: clk.Now(), Type: domain.TransactionOutgoing,
		SourceKind: domain.SourceAmilFundingUsage, SourceID: node.Generate(),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	var wallet domain.Wallet
	require.NoError(t, db.First(&wallet, "org_id = ? AND type = ?", org.ID, domain.WalletTypeAmil).Error)
	assert.Equal(t, int64(500), wallet.Amount)

	// Draining to exactly zero is allowed, zero-balance wallets reject
	// further outgoing postings.
	_, err = post(db, poster, domain.PostRequest{
		OrgID: org.ID, Amount: -500, WalletType: domain.WalletTypeAmil,
		Date: clk.Now(), Type: domain.TransactionOutgoing,
		SourceKind: domain.SourceAmilFundingUsage, SourceID: node.Generate(),
	})
	require.NoError(t, err)

	_, err = post(db, poster, domain.PostRequest{
		OrgID: org.ID, Amount: -1, WalletType: domain.WalletTypeAmil,
		Date: clk.Now(), Type: domain.TransactionOutgoing,
		SourceKind: domain.SourceAmilFundingUsage, SourceID: node.Generate(),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestWalletUniqueAndBalanceEqualsSumOfPostings(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	poster, node := newPoster(t, clk)
	org := seedOrg(t, db, node)

	amounts := []int64{1000, 250, -300, 75, -25}
	for _, amount := range amounts {
		txnType := domain.TransactionIncoming
		kind := domain.SourceInfaq
		if amount < 0 {
			txnType = domain.TransactionOutgoing
			kind = domain.SourceInfaqDistribution
		}
		_, err := post(db, poster, domain.PostRequest{
			OrgID: org.ID, Amount: amount, WalletType: domain.WalletTypeOrganizationSocialFunding,
			Date: clk.Now(), Type: txnType, SourceKind: kind, SourceID: node.Generate(),
		})
		require.NoError(t, err)
	}

	var walletCount int64
	require.NoError(t, db.Model(&domain.Wallet{}).
		Where("org_id = ? AND type = ?", org.ID, domain.WalletTypeOrganizationSocialFunding).
		Count(&walletCount).Error)
	assert.Equal(t, int64(1), walletCount)

	var wallet domain.Wallet
	require.NoError(t, db.First(&wallet, "org_id = ? AND type = ?", org.ID, domain.WalletTypeOrganizationSocialFunding).Error)

	var sum int64
	require.NoError(t, db.Model(&domain.Transaction{}).
		Where("wallet_id = ?", wallet.ID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error)
	assert.Equal(t, sum, wallet.Amount)
	assert.Equal(t, int64(1000), wallet.Amount)
}

func TestMutationAggregatePerYear(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 12, 30, 8, 0, 0, 0, time.UTC))
	poster, node := newPoster(t, clk)
	org := seedOrg(t, db, node)

	for _, amount := range []int64{400, 600} {
		_, err := post(db, poster, domain.PostRequest{
			OrgID: org.ID, Amount: amount, WalletType: domain.WalletTypeAlmsgiving,
			Date: clk.Now(), Type: domain.TransactionIncoming,
			SourceKind: domain.SourceZakat, SourceID: node.Generate(),
		})
		require.NoError(t, err)
	}

	clk.Advance(72 * time.Hour) // into 2026
	_, err := post(db, poster, domain.PostRequest{
		OrgID: org.ID, Amount: 100, WalletType: domain.WalletTypeAlmsgiving,
		Date: clk.Now(), Type: domain.TransactionIncoming,
		SourceKind: domain.SourceZakat, SourceID: node.Generate(),
	})
	require.NoError(t, err)

	var current, next domain.WalletMutation
	require.NoError(t, db.First(&current, "org_id = ? AND wallet_type = ? AND year = ?", org.ID, domain.WalletTypeAlmsgiving, 2025).Error)
	require.NoError(t, db.First(&next, "org_id = ? AND wallet_type = ? AND year = ?", org.ID, domain.WalletTypeAlmsgiving, 2026).Error)
	assert.Equal(t, int64(1000), current.Amount)
	assert.Equal(t, int64(100), next.Amount)
}

func TestPostedTransactionsNeverChange(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	poster, node := newPoster(t, clk)
	org := seedOrg(t, db, node)

	first, err := post(db, poster, domain.PostRequest{
		OrgID: org.ID, Amount: 500, WalletType: domain.WalletTypeAlmsgiving,
		Date: clk.Now(), Description: "zakat maal", Type: domain.TransactionIncoming,
		SourceKind: domain.SourceZakat, SourceID: node.Generate(),
	})
	require.NoError(t, err)

	clk.Advance(24 * time.Hour)
	for _, amount := range []int64{300, -200} {
		txType := domain.TransactionIncoming
		if amount < 0 {
			txType = domain.TransactionOutgoing
		}
		_, err := post(db, poster, domain.PostRequest{
			OrgID: org.ID, Amount: amount, WalletType: domain.WalletTypeAlmsgiving,
			Date: clk.Now(), Type: txType,
			SourceKind: domain.SourceZakat, SourceID: node.Generate(),
		})
		require.NoError(t, err)
	}

	var reloaded domain.Transaction
	require.NoError(t, db.First(&reloaded, "id = ?", first.ID).Error)
	assert.Equal(t, first.Amount, reloaded.Amount)
	assert.Equal(t, first.Type, reloaded.Type)
	assert.Equal(t, first.WalletID, reloaded.WalletID)
	assert.True(t, first.Date.Equal(reloaded.Date))
	assert.Equal(t, first.Description, reloaded.Description)
}

func TestPostRejectsMismatchedSign(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	poster, node := newPoster(t, clk)
	org := seedOrg(t, db, node)

	_, err := post(db, poster, domain.PostRequest{
		OrgID: org.ID, Amount: -10, WalletType: domain.WalletTypeAlmsgiving,
		Date: clk.Now(), Type: domain.TransactionIncoming,
		SourceKind: domain.SourceZakat, SourceID: node.Generate(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)

	_, err = post(db, poster, domain.PostRequest{
		OrgID: org.ID, Amount: 10, WalletType: domain.WalletTypeAlmsgiving,
		Date: clk.Now(), Type: domain.TransactionOutgoing,
		SourceKind: domain.SourceZakatDistribution, SourceID: node.Generate(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)
}

func TestPostUnknownOrganization(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	poster, node := newPoster(t, clk)

	_, err := post(db, poster, domain.PostRequest{
		OrgID: node.Generate(), Amount: 100, WalletType: domain.WalletTypeAlmsgiving,
		Date: clk.Now(), Type: domain.TransactionIncoming,
		SourceKind: domain.SourceZakat, SourceID: node.Generate(),
	})
	assert.ErrorIs(t, err, orgdomain.ErrNotFound)
}
