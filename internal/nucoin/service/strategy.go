package service

import (
	"github.com/bwmarrin/snowflake"
	"github.com/lazisku/maal/internal/nucoin/domain"
	orgdomain "github.com/lazisku/maal/internal/organization/domain"
	walletdomain "github.com/lazisku/maal/internal/wallet/domain"
)

// transferStrategy describes the single posting a cross-organization
// transfer resolves to. Funds only move one ledger step per transfer:
// downward transfers credit the receiving organization, upward transfers
// debit the sending one.
type transferStrategy struct {
	name      string
	direction walletdomain.TransactionType
}

// postOrgID picks the organization whose coin wallet the strategy posts to.
func (s transferStrategy) postOrgID(transfer *domain.NuCoinTransfer) snowflake.ID {
	if s.direction == walletdomain.TransactionIncoming {
		return transfer.DestinationOrgID
	}
	return transfer.SourceOrgID
}

// signedAmount applies the strategy direction to the transfer amount.
func (s transferStrategy) signedAmount(amount int64) int64 {
	if s.direction == walletdomain.TransactionOutgoing {
		return -amount
	}
	return amount
}

// resolveStrategy maps a scope pair to its transfer strategy. Pairs outside
// the hierarchy edges are rejected.
func resolveStrategy(source, destination orgdomain.Scope) (transferStrategy, error) {
	switch {
	case source == orgdomain.ScopeBranch && destination == orgdomain.ScopeBranchRepresentative:
		return transferStrategy{name: "representative-from-branch", direction: walletdomain.TransactionIncoming}, nil
	case source == orgdomain.ScopeBranchRepresentative && destination == orgdomain.ScopeTwig:
		return transferStrategy{name: "twig-from-representative", direction: walletdomain.TransactionIncoming}, nil
	case source == orgdomain.ScopeBranchRepresentative && destination == orgdomain.ScopeBranch:
		return transferStrategy{name: "representative-to-branch", direction: walletdomain.TransactionOutgoing}, nil
	case source == orgdomain.ScopeTwig && destination == orgdomain.ScopeBranchRepresentative:
		return transferStrategy{name: "twig-to-representative", direction: walletdomain.TransactionOutgoing}, nil
	default:
		return transferStrategy{}, domain.ErrInvalidScopePair
	}
}
