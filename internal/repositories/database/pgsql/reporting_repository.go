package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/custodial_wallet_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a read-only repository for ledger aggregations.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetTransactionStats aggregates the matching ledger entries in a single pass.
// Derived figures (average, success rate) are computed with decimal arithmetic
// and rounded to 2 places.
func (r *ReportingRepository) GetTransactionStats(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionStats, error) {
	where, args := buildTransactionWhere(filter)

	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(amount), 0),
		       COUNT(*) FILTER (WHERE status = 'COMPLETED'),
		       COUNT(*) FILTER (WHERE status = 'FAILED')
		FROM transactions` + where + `;`

	var stats domain.TransactionStats
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&stats.TotalTransactions,
		&stats.TotalAmount,
		&stats.SuccessCount,
		&stats.FailCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transaction stats: %w", err)
	}

	stats.ComputeDerived()
	return &stats, nil
}

// GetAccountFlowTotals returns the completed sent and received sums for an account.
func (r *ReportingRepository) GetAccountFlowTotals(ctx context.Context, accountID string) (sent, received decimal.Decimal, err error) {
	query := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE sender_id = $1), 0),
		       COALESCE(SUM(amount) FILTER (WHERE receiver_id = $1), 0)
		FROM transactions
		WHERE status = 'COMPLETED';
	`
	if err = r.Pool.QueryRow(ctx, query, accountID).Scan(&sent, &received); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to aggregate flow totals for account %s: %w", accountID, err)
	}
	return sent, received, nil
}
