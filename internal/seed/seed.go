package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	amildomain "github.com/lazisku/maal/internal/amil/domain"
	fundingdomain "github.com/lazisku/maal/internal/amilfunding/domain"
	assetdomain "github.com/lazisku/maal/internal/asset/domain"
	distributiondomain "github.com/lazisku/maal/internal/distribution/domain"
	donordomain "github.com/lazisku/maal/internal/donor/domain"
	dskldomain "github.com/lazisku/maal/internal/dskl/domain"
	infaqdomain "github.com/lazisku/maal/internal/infaq/domain"
	nonhalaldomain "github.com/lazisku/maal/internal/nonhalal/domain"
	nucoindomain "github.com/lazisku/maal/internal/nucoin/domain"
	organizationdomain "github.com/lazisku/maal/internal/organization/domain"
	walletdomain "github.com/lazisku/maal/internal/wallet/domain"
	zakatdomain "github.com/lazisku/maal/internal/zakat/domain"
	"gorm.io/gorm"
)

const (
	rootOrgName     = "Main"
	rootOrgDistrict = "main"
)

// AutoMigrate builds the schema from the models. It backs development
// dialects where the versioned postgres migrations do not apply.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	return db.AutoMigrate(
		&organizationdomain.Organization{},
		&walletdomain.Wallet{},
		&walletdomain.Transaction{},
		&walletdomain.WalletMutation{},
		&amildomain.Organizer{},
		&amildomain.Amil{},
		&donordomain.Volunteer{},
		&donordomain.Donor{},
		&zakatdomain.Zakat{},
		&infaqdomain.Infaq{},
		&dskldomain.Dskl{},
		&fundingdomain.AmilFunding{},
		&fundingdomain.AmilFundingUsage{},
		&distributiondomain.Donee{},
		&distributiondomain.ZakatDistribution{},
		&distributiondomain.InfaqDistribution{},
		&nonhalaldomain.NonHalalFundingReceive{},
		&nonhalaldomain.NonHalalFundingDistribution{},
		&nucoindomain.NuCoin{},
		&nucoindomain.NuCoinAggregator{},
		&nucoindomain.NuCoinTransfer{},
		&assetdomain.AssetRecording{},
	)
}

// EnsureRootOrganization seeds the top-level branch so a fresh install has
// an organization to hang documents on.
func EnsureRootOrganization(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing organizationdomain.Organization
		err := tx.WithContext(ctx).
			Raw(`SELECT * FROM organizations WHERE scope = ? AND name = ? LIMIT 1`,
				organizationdomain.ScopeBranch, rootOrgName).
			Scan(&existing).Error
		if err != nil {
			return err
		}
		if existing.ID != 0 {
			return nil
		}

		now := time.Now().UTC()
		org := organizationdomain.Organization{
			ID:        node.Generate(),
			Name:      rootOrgName,
			Scope:     organizationdomain.ScopeBranch,
			District:  rootOrgDistrict,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.WithContext(ctx).Exec(
			`INSERT INTO organizations (id, name, scope, district, metadata, created_at, updated_at)
			 VALUES (?, ?, ?, ?, '{}', ?, ?)`,
			org.ID, org.Name, org.Scope, org.District, org.CreatedAt, org.UpdatedAt,
		).Error
	})
}
