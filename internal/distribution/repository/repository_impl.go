package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/distribution/domain"
	"github.com/lazisku/maal/pkg/db/option"
	"github.com/lazisku/maal/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertDonee(ctx context.Context, db *gorm.DB, donee *domain.Donee) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO donees (id, org_id, name, asnaf, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		donee.ID,
		donee.OrgID,
		donee.Name,
		donee.Asnaf,
		donee.CreatedAt,
		donee.UpdatedAt,
	).Error
}

func (r *repo) FindDoneeByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Donee, error) {
	var donee domain.Donee
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, name, asnaf, created_at, updated_at FROM donees WHERE id = ?`,
		id,
	).Scan(&donee).Error
	if err != nil {
		return nil, err
	}
	if donee.ID == 0 {
		return nil, nil
	}
	return &donee, nil
}

func (r *repo) ListDonees(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.Donee, error) {
	var donees []*domain.Donee
	stmt := db.WithContext(ctx).Model(&domain.Donee{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&donees).Error; err != nil {
		return nil, err
	}
	return donees, nil
}

func (r *repo) InsertZakatDistribution(ctx context.Context, db *gorm.DB, dist *domain.ZakatDistribution) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO zakat_distributions (id, donee_id, org_id, amount, date, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		dist.ID,
		dist.DoneeID,
		dist.OrgID,
		dist.Amount,
		dist.Date,
		dist.TransactionID,
		dist.CreatedAt,
		dist.UpdatedAt,
	).Error
}

func (r *repo) FindZakatDistributionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ZakatDistribution, error) {
	var dist domain.ZakatDistribution
	err := db.WithContext(ctx).Raw(
		`SELECT id, donee_id, org_id, amount, date, transaction_id, created_at, updated_at
		 FROM zakat_distributions WHERE id = ?`,
		id,
	).Scan(&dist).Error
	if err != nil {
		return nil, err
	}
	if dist.ID == 0 {
		return nil, nil
	}
	return &dist, nil
}

func (r *repo) ListZakatDistributions(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.ZakatDistribution, error) {
	var dists []*domain.ZakatDistribution
	stmt := db.WithContext(ctx).Model(&domain.ZakatDistribution{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&dists).Error; err != nil {
		return nil, err
	}
	return dists, nil
}

func (r *repo) SetZakatDistributionTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE zakat_distributions SET transaction_id = ? WHERE id = ?`,
		transactionID,
		id,
	).Error
}

func (r *repo) InsertInfaqDistribution(ctx context.Context, db *gorm.DB, dist *domain.InfaqDistribution) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO infaq_distributions (id, org_id, recipient, amount, date, transaction_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		dist.ID,
		dist.OrgID,
		dist.Recipient,
		dist.Amount,
		dist.Date,
		dist.TransactionID,
		dist.CreatedAt,
		dist.UpdatedAt,
	).Error
}

func (r *repo) FindInfaqDistributionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.InfaqDistribution, error) {
	var dist domain.InfaqDistribution
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, recipient, amount, date, transaction_id, created_at, updated_at
		 FROM infaq_distributions WHERE id = ?`,
		id,
	).Scan(&dist).Error
	if err != nil {
		return nil, err
	}
	if dist.ID == 0 {
		return nil, nil
	}
	return &dist, nil
}

func (r *repo) ListInfaqDistributions(ctx context.Context, db *gorm.DB, orgID snowflake.ID, page pagination.Pagination) ([]*domain.InfaqDistribution, error) {
	var dists []*domain.InfaqDistribution
	stmt := db.WithContext(ctx).Model(&domain.InfaqDistribution{})
	if orgID != 0 {
		stmt = stmt.Where("org_id = ?", orgID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&dists).Error; err != nil {
		return nil, err
	}
	return dists, nil
}

func (r *repo) SetInfaqDistributionTransaction(ctx context.Context, db *gorm.DB, id, transactionID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE infaq_distributions SET transaction_id = ? WHERE id = ?`,
		transactionID,
		id,
	).Error
}
