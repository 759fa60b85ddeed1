package repositories

import (
	"context"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository exposes read-only aggregations over the ledger.
type ReportingRepository interface {
	// GetTransactionStats aggregates matching ledger entries in a single pass.
	GetTransactionStats(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionStats, error)

	// GetAccountFlowTotals returns the completed sent and received sums for an account.
	GetAccountFlowTotals(ctx context.Context, accountID string) (sent, received decimal.Decimal, err error)
}
