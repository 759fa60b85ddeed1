package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/custodial_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/custodial_wallet_app/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) LockAccountsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, updatedBy, now)
	return args.Error(0)
}

func (m *MockAccountRepository) MarkIdentityVerifiedInTx(ctx context.Context, tx pgx.Tx, accountID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, updatedBy, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SetFrozenInTx(ctx context.Context, tx pgx.Tx, accountID string, frozen bool, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, frozen, updatedBy, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error {
	args := m.Called(ctx, tx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepository) CountPendingForAccount(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) UpdateTransactionStatusInTx(ctx context.Context, tx pgx.Tx, transactionID string, status domain.TransactionStatus) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, transactionID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) SaveAdminCredit(ctx context.Context, txn domain.Transaction, audit domain.AuditEntry) error {
	args := m.Called(ctx, txn, audit)
	return args.Error(0)
}

func (m *MockLedgerRepository) MarkStalePendingFailed(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) DeleteTransactionsForAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error {
	args := m.Called(ctx, tx, accountID)
	return args.Error(0)
}

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portsrepo.LedgerRepositoryWithTx = (*MockLedgerRepository)(nil)

// --- Mock AuditRepository ---

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListEntriesByActor(ctx context.Context, actorID string, limit, offset int) ([]domain.AuditEntry, int64, error) {
	args := m.Called(ctx, actorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.AuditEntry), args.Get(1).(int64), args.Error(2)
}

// Ensure mock implements the interface
var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetTransactionStats(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionStats), args.Error(1)
}

func (m *MockReportingRepository) GetAccountFlowTotals(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// Ensure mock implements the interface
var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

// --- Mock Notifier ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyTransactionCompleted(ctx context.Context, txn domain.Transaction) {
	m.Called(ctx, txn)
}

// Ensure mock implements the interface
var _ portssvc.Notifier = (*MockNotifier)(nil)

// --- Mock SettlementConfirmer ---

type MockSettlementConfirmer struct {
	mock.Mock
}

func (m *MockSettlementConfirmer) ConfirmSettlement(ctx context.Context, txn domain.Transaction) (string, error) {
	args := m.Called(ctx, txn)
	return args.String(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.SettlementConfirmer = (*MockSettlementConfirmer)(nil)
