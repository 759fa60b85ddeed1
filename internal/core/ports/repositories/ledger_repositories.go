package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerReader defines read operations over the transaction ledger.
type LedgerReader interface {
	// FindTransactionByID retrieves a ledger entry by its internal identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByReference retrieves a ledger entry by its unique reference.
	FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of ledger entries ordered by
	// creation time descending, plus the total count of matching rows.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, int64, error)

	// CountPendingForAccount counts PENDING entries referencing the account as
	// either party. Used to guard account deletion.
	CountPendingForAccount(ctx context.Context, accountID string) (int64, error)
}

// LedgerWriter defines append and status-transition operations.
type LedgerWriter interface {
	// SaveTransaction appends a new ledger entry. An entry whose reference
	// already exists is rejected with apperrors.ErrDuplicate.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionStatus performs the single permitted status transition
	// out of PENDING. Transitions from a terminal status are rejected with
	// apperrors.ErrInvalidTransition; unknown IDs with apperrors.ErrNotFound.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus) (*domain.Transaction, error)

	// UpdateTransactionStatusInTx is UpdateTransactionStatus within the given
	// transaction. The transfer engine uses it so the COMPLETED transition
	// commits or rolls back together with the balance mutation it records.
	UpdateTransactionStatusInTx(ctx context.Context, tx pgx.Tx, transactionID string, status domain.TransactionStatus) (*domain.Transaction, error)

	// SaveAdminCredit atomically appends a completed ADMIN_CREDIT entry,
	// credits the receiving account, and appends the paired audit-log entry.
	// Either all three mutations commit or none do.
	SaveAdminCredit(ctx context.Context, txn domain.Transaction, audit domain.AuditEntry) error

	// MarkStalePendingFailed fails PENDING entries created before the cutoff
	// and returns how many rows were affected.
	MarkStalePendingFailed(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteTransactionsForAccountInTx removes all ledger entries referencing
	// the account within the given transaction. Used by account deletion only.
	DeleteTransactionsForAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
