package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	InsertOrganizer(ctx context.Context, db *gorm.DB, organizer *Organizer) error
	FindOrganizerByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Organizer, error)
	ListOrganizers(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*Organizer, error)

	InsertAmil(ctx context.Context, db *gorm.DB, amil *Amil) error
	FindAmilByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Amil, error)
	ListAmils(ctx context.Context, db *gorm.DB, organizerID snowflake.ID, page pagination.Pagination) ([]*Amil, error)

	// ResolveOwningOrg walks amil -> organizer -> organization and returns
	// the organization id, or 0 when the chain is broken.
	ResolveOwningOrg(ctx context.Context, db *gorm.DB, amilID snowflake.ID) (snowflake.ID, error)
}
