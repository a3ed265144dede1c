// Package domain contains persistence models for the dskl service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Kind classifies a dskl collection.
type Kind string

const (
	KindBPKH   Kind = "BPKH"
	KindQurban Kind = "QURBAN"
	KindFidyah Kind = "FIDYAH"
)

func (k Kind) Valid() bool {
	switch k {
	case KindBPKH, KindQurban, KindFidyah:
		return true
	default:
		return false
	}
}

// Dskl is a religious obligation collection record. Amount is gross; the
// amil share is split off at posting time. OrgID is denormalized from the
// amil chain.
type Dskl struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	AmilID        snowflake.ID `gorm:"not null;index" json:"amil_id"`
	OrgID         snowflake.ID `gorm:"not null;index" json:"org_id"`
	Kind          Kind         `gorm:"type:text;not null" json:"kind"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Date          time.Time    `gorm:"not null" json:"date"`
	TransactionID snowflake.ID `gorm:"not null;index" json:"transaction_id"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Dskl) TableName() string { return "dskls" }
