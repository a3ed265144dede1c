package txutil

import "gorm.io/gorm"

// Tx wraps a manually managed gorm transaction with a finished flag so that
// deferred rollbacks stay no-ops once the transaction committed. The bulk
// create paths manage per-item transactions by hand and rely on this guard.
type Tx struct {
	db       *gorm.DB
	finished bool
}

func Begin(db *gorm.DB) *Tx {
	return &Tx{db: db.Begin()}
}

// DB exposes the underlying transaction handle for repositories.
func (t *Tx) DB() *gorm.DB {
	return t.db
}

func (t *Tx) Commit() error {
	if t.finished {
		return nil
	}
	t.finished = true
	return t.db.Commit().Error
}

// RollbackUnlessFinished rolls the transaction back if it is still open.
// Calling it after Commit or a previous rollback does nothing.
func (t *Tx) RollbackUnlessFinished() {
	if t.finished {
		return
	}
	t.finished = true
	t.db.Rollback()
}
