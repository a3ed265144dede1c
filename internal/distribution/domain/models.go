// Package domain contains persistence models for the distribution service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Asnaf is the zakat recipient category.
type Asnaf string

const (
	AsnafFakir        Asnaf = "FAKIR"
	AsnafMiskin       Asnaf = "MISKIN"
	AsnafAmil         Asnaf = "AMIL"
	AsnafMualaf       Asnaf = "MUALAF"
	AsnafRiqab        Asnaf = "RIQAB"
	AsnafGharim       Asnaf = "GHARIM"
	AsnafFisabilillah Asnaf = "FISABILILLAH"
	AsnafIbnuSabil    Asnaf = "IBNU_SABIL"
)

func (a Asnaf) Valid() bool {
	switch a {
	case AsnafFakir, AsnafMiskin, AsnafAmil, AsnafMualaf, AsnafRiqab, AsnafGharim, AsnafFisabilillah, AsnafIbnuSabil:
		return true
	default:
		return false
	}
}

// Donee is a registered zakat recipient of one organization.
type Donee struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"not null;index" json:"org_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Asnaf     Asnaf        `gorm:"type:text;not null" json:"asnaf"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Donee) TableName() string { return "donees" }

// ZakatDistribution is a payout from the almsgiving wallet to a donee.
// OrgID is denormalized from the donee at creation.
type ZakatDistribution struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	DoneeID       snowflake.ID `gorm:"not null;index" json:"donee_id"`
	OrgID         snowflake.ID `gorm:"not null;index" json:"org_id"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Date          time.Time    `gorm:"not null" json:"date"`
	TransactionID snowflake.ID `gorm:"not null;index" json:"transaction_id"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (ZakatDistribution) TableName() string { return "zakat_distributions" }

// InfaqDistribution is a payout from the social funding wallet to a free-form
// recipient.
type InfaqDistribution struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID `gorm:"not null;index" json:"org_id"`
	Recipient     string       `gorm:"type:text;not null" json:"recipient"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Date          time.Time    `gorm:"not null" json:"date"`
	TransactionID snowflake.ID `gorm:"not null;index" json:"transaction_id"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (InfaqDistribution) TableName() string { return "infaq_distributions" }
