package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its internal identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its externally visible account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations used inside database transactions
// by the transfer engine and admin paths.
type AccountTransactionSupport interface {
	// LockAccountsForUpdate selects the given accounts FOR UPDATE in a fixed
	// global order (by account ID) so concurrent transfers on the same pair
	// cannot deadlock. Must be called within a transaction.
	LockAccountsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDeltasInTx applies signed balance changes to the locked
	// accounts within the given transaction.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, updatedBy string, now time.Time) error

	// MarkIdentityVerifiedInTx flips the identity-verified flag within the
	// given transaction.
	MarkIdentityVerifiedInTx(ctx context.Context, tx pgx.Tx, accountID string, updatedBy string, now time.Time) error

	// SetFrozenInTx updates the frozen flag within the given transaction.
	SetFrozenInTx(ctx context.Context, tx pgx.Tx, accountID string, frozen bool, updatedBy string, now time.Time) error

	// DeleteAccountInTx removes an account row within the given transaction.
	DeleteAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
