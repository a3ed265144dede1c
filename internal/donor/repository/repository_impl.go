package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/donor/domain"
	"github.com/lazisku/maal/pkg/db/option"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertVolunteer(ctx context.Context, db *gorm.DB, volunteer *domain.Volunteer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO volunteers (id, org_id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		volunteer.ID,
		volunteer.OrgID,
		volunteer.Name,
		volunteer.CreatedAt,
		volunteer.UpdatedAt,
	).Error
}

func (r *repo) FindVolunteerByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Volunteer, error) {
	var volunteer domain.Volunteer
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, name, created_at, updated_at FROM volunteers WHERE id = ?`,
		id,
	).Scan(&volunteer).Error
	if err != nil {
		return nil, err
	}
	if volunteer.ID == 0 {
		return nil, nil
	}
	return &volunteer, nil
}

func (r *repo) ListVolunteers(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.Volunteer, error) {
	var volunteers []*domain.Volunteer
	stmt := db.WithContext(ctx).Model(&domain.Volunteer{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&volunteers).Error; err != nil {
		return nil, err
	}
	return volunteers, nil
}

func (r *repo) InsertDonor(ctx context.Context, db *gorm.DB, donor *domain.Donor) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO donors (id, volunteer_id, name, phone, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		donor.ID,
		donor.VolunteerID,
		donor.Name,
		donor.Phone,
		donor.CreatedAt,
		donor.UpdatedAt,
	).Error
}

func (r *repo) FindDonorByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Donor, error) {
	var donor domain.Donor
	err := db.WithContext(ctx).Raw(
		`SELECT id, volunteer_id, name, phone, created_at, updated_at FROM donors WHERE id = ?`,
		id,
	).Scan(&donor).Error
	if err != nil {
		return nil, err
	}
	if donor.ID == 0 {
		return nil, nil
	}
	return &donor, nil
}

func (r *repo) ListDonors(ctx context.Context, db *gorm.DB, volunteerID snowflake.ID, page pagination.Pagination) ([]*domain.Donor, error) {
	var donors []*domain.Donor
	stmt := db.WithContext(ctx).Model(&domain.Donor{})
	if volunteerID != 0 {
		stmt = stmt.Where("volunteer_id = ?", volunteerID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&donors).Error; err != nil {
		return nil, err
	}
	return donors, nil
}

func (r *repo) ResolveOwningOrg(ctx context.Context, db *gorm.DB, donorID snowflake.ID) (snowflake.ID, error) {
	var orgID snowflake.ID
	err := db.WithContext(ctx).Raw(
		`SELECT volunteers.org_id
		 FROM donors
		 JOIN volunteers ON volunteers.id = donors.volunteer_id
		 WHERE donors.id = ?`,
		donorID,
	).Scan(&orgID).Error
	if err != nil {
		return 0, err
	}
	return orgID, nil
}
