package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, zakat *Zakat) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Zakat, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*Zakat, error)
	SetTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error
	UpdateMuzakkiName(ctx context.Context, db *gorm.DB, id snowflake.ID, name string) error
}
