package txutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type row struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&row{}))
	return db
}

func TestRollbackUnlessFinishedAfterCommitIsNoop(t *testing.T) {
	db := newTestDB(t)

	tx := Begin(db)
	require.NoError(t, tx.DB().Create(&row{ID: 1, Name: "kept"}).Error)
	require.NoError(t, tx.Commit())

	// Must not panic, must not undo the commit.
	tx.RollbackUnlessFinished()
	tx.RollbackUnlessFinished()

	var count int64
	require.NoError(t, db.Model(&row{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRollbackUnlessFinishedDiscardsOpenTx(t *testing.T) {
	db := newTestDB(t)

	tx := Begin(db)
	require.NoError(t, tx.DB().Create(&row{ID: 2, Name: "discarded"}).Error)
	tx.RollbackUnlessFinished()

	var count int64
	require.NoError(t, db.Model(&row{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// Commit after rollback is also a no-op.
	assert.NoError(t, tx.Commit())
}
