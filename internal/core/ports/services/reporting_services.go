package services

import (
	"context"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/SscSPs/custodial_wallet_app/internal/dto"
)

// ReportingService provides read models over the ledger.
type ReportingService interface {
	// GetTransactionByID retrieves a single ledger entry.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// GetTransactionByReference retrieves a ledger entry by its idempotency
	// reference, for reconciliation against external statements.
	GetTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, paginated ledger page.
	ListTransactions(ctx context.Context, req dto.ListTransactionsRequest) (*dto.ListTransactionsResponse, error)

	// GetStats aggregates the ledger entries matching the filter.
	GetStats(ctx context.Context, req dto.ListTransactionsRequest) (*domain.TransactionStats, error)

	// GetAccountStats aggregates one account's ledger activity plus flow totals.
	GetAccountStats(ctx context.Context, accountID string) (*domain.AccountStats, error)
}
