package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/amil/domain"
	"github.com/lazisku/maal/pkg/db/option"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertOrganizer(ctx context.Context, db *gorm.DB, organizer *domain.Organizer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO organizers (id, org_id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		organizer.ID,
		organizer.OrgID,
		organizer.Name,
		organizer.CreatedAt,
		organizer.UpdatedAt,
	).Error
}

func (r *repo) FindOrganizerByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Organizer, error) {
	var organizer domain.Organizer
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, name, created_at, updated_at FROM organizers WHERE id = ?`,
		id,
	).Scan(&organizer).Error
	if err != nil {
		return nil, err
	}
	if organizer.ID == 0 {
		return nil, nil
	}
	return &organizer, nil
}

func (r *repo) ListOrganizers(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.Organizer, error) {
	var organizers []*domain.Organizer
	stmt := db.WithContext(ctx).Model(&domain.Organizer{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&organizers).Error; err != nil {
		return nil, err
	}
	return organizers, nil
}

func (r *repo) InsertAmil(ctx context.Context, db *gorm.DB, amil *domain.Amil) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO amils (id, organizer_id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		amil.ID,
		amil.OrganizerID,
		amil.Name,
		amil.CreatedAt,
		amil.UpdatedAt,
	).Error
}

func (r *repo) FindAmilByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Amil, error) {
	var amil domain.Amil
	err := db.WithContext(ctx).Raw(
		`SELECT id, organizer_id, name, created_at, updated_at FROM amils WHERE id = ?`,
		id,
	).Scan(&amil).Error
	if err != nil {
		return nil, err
	}
	if amil.ID == 0 {
		return nil, nil
	}
	return &amil, nil
}

func (r *repo) ListAmils(ctx context.Context, db *gorm.DB, organizerID snowflake.ID, page pagination.Pagination) ([]*domain.Amil, error) {
	var amils []*domain.Amil
	stmt := db.WithContext(ctx).Model(&domain.Amil{})
	if organizerID != 0 {
		stmt = stmt.Where("organizer_id = ?", organizerID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&amils).Error; err != nil {
		return nil, err
	}
	return amils, nil
}

func (r *repo) ResolveOwningOrg(ctx context.Context, db *gorm.DB, amilID snowflake.ID) (snowflake.ID, error) {
	var orgID snowflake.ID
	err := db.WithContext(ctx).Raw(
		`SELECT organizers.org_id
		 FROM amils
		 JOIN organizers ON organizers.id = amils.organizer_id
		 WHERE amils.id = ?`,
		amilID,
	).Scan(&orgID).Error
	if err != nil {
		return 0, err
	}
	return orgID, nil
}
