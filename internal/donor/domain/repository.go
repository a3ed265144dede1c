package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	InsertVolunteer(ctx context.Context, db *gorm.DB, volunteer *Volunteer) error
	FindVolunteerByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Volunteer, error)
	ListVolunteers(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*Volunteer, error)

	InsertDonor(ctx context.Context, db *gorm.DB, donor *Donor) error
	FindDonorByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Donor, error)
	ListDonors(ctx context.Context, db *gorm.DB, volunteerID snowflake.ID, page pagination.Pagination) ([]*Donor, error)

	// ResolveOwningOrg walks donor -> volunteer -> organization and returns
	// the organization id, or 0 when the chain is broken.
	ResolveOwningOrg(ctx context.Context, db *gorm.DB, donorID snowflake.ID) (snowflake.ID, error)
}
