package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, infaq *Infaq) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Infaq, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*Infaq, error)
	SetTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error
}
