package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/custodial_wallet_app/internal/apperrors"
	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/custodial_wallet_app/internal/core/ports/repositories"
	"github.com/SscSPs/custodial_wallet_app/internal/core/services"
	"github.com/SscSPs/custodial_wallet_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeLedgerStore is an in-memory stand-in for the account and ledger
// repositories. Begin takes an exclusive lock for the whole transaction, which
// serializes balance mutations the way row locks do in Postgres.
type fakeLedgerStore struct {
	mu   sync.Mutex // guards the maps below
	txMu sync.Mutex // held from Begin until Commit or Rollback

	accounts map[string]domain.Account
	txns     map[string]domain.Transaction
	refs     map[string]string // reference -> transaction ID

	staged       map[string]decimal.Decimal
	stagedStatus map[string]domain.TransactionStatus
	txDone       bool
}

func newFakeLedgerStore(accounts ...domain.Account) *fakeLedgerStore {
	s := &fakeLedgerStore{
		accounts: make(map[string]domain.Account),
		txns:     make(map[string]domain.Transaction),
		refs:     make(map[string]string),
	}
	for _, a := range accounts {
		s.accounts[a.AccountID] = a
	}
	return s
}

var (
	_ portsrepo.AccountRepositoryWithTx = (*fakeLedgerStore)(nil)
	_ portsrepo.LedgerRepositoryWithTx  = (*fakeLedgerStore)(nil)
)

func (s *fakeLedgerStore) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (s *fakeLedgerStore) FindAccountByNumber(_ context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.AccountNumber == accountNumber {
			return &a, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeLedgerStore) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if a, ok := s.accounts[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (s *fakeLedgerStore) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.AccountNumber == account.AccountNumber {
			return apperrors.ErrDuplicate
		}
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *fakeLedgerStore) Begin(_ context.Context) (pgx.Tx, error) {
	s.txMu.Lock()
	s.staged = make(map[string]decimal.Decimal)
	s.stagedStatus = make(map[string]domain.TransactionStatus)
	s.txDone = false
	return nil, nil
}

func (s *fakeLedgerStore) Commit(_ context.Context, _ pgx.Tx) error {
	if s.txDone {
		return nil
	}
	s.mu.Lock()
	for id, delta := range s.staged {
		a := s.accounts[id]
		a.Balance = a.Balance.Add(delta)
		s.accounts[id] = a
	}
	for id, status := range s.stagedStatus {
		t := s.txns[id]
		t.Status = status
		s.txns[id] = t
	}
	s.mu.Unlock()
	s.staged = nil
	s.stagedStatus = nil
	s.txDone = true
	s.txMu.Unlock()
	return nil
}

func (s *fakeLedgerStore) Rollback(_ context.Context, _ pgx.Tx) error {
	if s.txDone {
		return nil
	}
	s.staged = nil
	s.stagedStatus = nil
	s.txDone = true
	s.txMu.Unlock()
	return nil
}

func (s *fakeLedgerStore) LockAccountsForUpdate(_ context.Context, _ pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		a, ok := s.accounts[id]
		if !ok {
			return nil, apperrors.ErrNotFound
		}
		out[id] = a
	}
	return out, nil
}

func (s *fakeLedgerStore) ApplyBalanceDeltasInTx(_ context.Context, _ pgx.Tx, balanceChanges map[string]decimal.Decimal, _ string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, delta := range balanceChanges {
		a, ok := s.accounts[id]
		if !ok {
			return apperrors.ErrNotFound
		}
		if a.Balance.Add(delta).IsNegative() {
			return apperrors.ErrInsufficientFunds
		}
		s.staged[id] = s.staged[id].Add(delta)
	}
	return nil
}

func (s *fakeLedgerStore) MarkIdentityVerifiedInTx(_ context.Context, _ pgx.Tx, accountID string, _ string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	a.IdentityVerified = true
	s.accounts[accountID] = a
	return nil
}

func (s *fakeLedgerStore) SetFrozenInTx(_ context.Context, _ pgx.Tx, accountID string, frozen bool, _ string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	a.Frozen = frozen
	s.accounts[accountID] = a
	return nil
}

func (s *fakeLedgerStore) DeleteAccountInTx(_ context.Context, _ pgx.Tx, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, accountID)
	return nil
}

func (s *fakeLedgerStore) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (s *fakeLedgerStore) FindTransactionByReference(_ context.Context, reference string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.refs[reference]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	t := s.txns[id]
	return &t, nil
}

func (s *fakeLedgerStore) ListTransactions(_ context.Context, filter domain.TransactionFilter, limit, _ int) ([]domain.Transaction, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Transaction
	for _, t := range s.txns {
		if filter.AccountID != nil && t.SenderID != *filter.AccountID && t.ReceiverID != *filter.AccountID {
			continue
		}
		out = append(out, t)
	}
	total := int64(len(out))
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (s *fakeLedgerStore) CountPendingForAccount(_ context.Context, accountID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, t := range s.txns {
		if t.Status == domain.StatusPending && (t.SenderID == accountID || t.ReceiverID == accountID) {
			count++
		}
	}
	return count, nil
}

func (s *fakeLedgerStore) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.refs[txn.Reference]; exists {
		return apperrors.ErrDuplicate
	}
	s.refs[txn.Reference] = txn.TransactionID
	s.txns[txn.TransactionID] = txn
	return nil
}

func (s *fakeLedgerStore) UpdateTransactionStatus(_ context.Context, transactionID string, status domain.TransactionStatus) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if !t.Status.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidTransition
	}
	t.Status = status
	s.txns[transactionID] = t
	return &t, nil
}

func (s *fakeLedgerStore) UpdateTransactionStatusInTx(_ context.Context, _ pgx.Tx, transactionID string, status domain.TransactionStatus) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if !t.Status.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidTransition
	}
	// Staged like the balance deltas; visible only once the transaction commits.
	s.stagedStatus[transactionID] = status
	t.Status = status
	return &t, nil
}

func (s *fakeLedgerStore) SaveAdminCredit(_ context.Context, txn domain.Transaction, _ domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.refs[txn.Reference]; exists {
		return apperrors.ErrDuplicate
	}
	a, ok := s.accounts[txn.ReceiverID]
	if !ok {
		return apperrors.ErrNotFound
	}
	a.Balance = a.Balance.Add(txn.Amount)
	s.accounts[txn.ReceiverID] = a
	s.refs[txn.Reference] = txn.TransactionID
	s.txns[txn.TransactionID] = txn
	return nil
}

func (s *fakeLedgerStore) MarkStalePendingFailed(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for id, t := range s.txns {
		if t.Status == domain.StatusPending && t.CreatedAt.Before(cutoff) {
			t.Status = domain.StatusFailed
			s.txns[id] = t
			count++
		}
	}
	return count, nil
}

func (s *fakeLedgerStore) DeleteTransactionsForAccountInTx(_ context.Context, _ pgx.Tx, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.txns {
		if t.SenderID == accountID || t.ReceiverID == accountID {
			delete(s.refs, t.Reference)
			delete(s.txns, id)
		}
	}
	return nil
}

func (s *fakeLedgerStore) totalBalance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, a := range s.accounts {
		sum = sum.Add(a.Balance)
	}
	return sum
}

// TestConcurrentTransfers_ConservationAndNoOverdraft drains a funded account
// from many goroutines at once. With balance k*A and transfers of A, exactly k
// transfers may complete; the rest must fail cleanly without moving money.
func TestConcurrentTransfers_ConservationAndNoOverdraft(t *testing.T) {
	const (
		workers   = 12
		successes = 3
	)
	amount := decimal.NewFromInt(10)

	sender := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "2000000001",
		HolderName:    "Funded Sender",
		Balance:       amount.Mul(decimal.NewFromInt(successes)),
	}
	receiver := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "2000000002",
		HolderName:    "Receiver",
		Balance:       decimal.Zero,
	}
	initialTotal := sender.Balance.Add(receiver.Balance)

	store := newFakeLedgerStore(sender, receiver)
	svc := services.NewWalletService(store, store, nil, nil, 15*time.Minute)

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Transfer(context.Background(), sender.AccountID, dto.TransferRequest{
				ReceiverAccountNumber: receiver.AccountNumber,
				Amount:                amount,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var completed, insufficient int
	for err := range results {
		switch {
		case err == nil:
			completed++
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			insufficient++
		default:
			t.Fatalf("unexpected transfer error: %v", err)
		}
	}
	require.Equal(t, successes, completed, "exactly k transfers of A must succeed on a k*A balance")
	require.Equal(t, workers-successes, insufficient)

	finalSender, err := store.FindAccountByID(context.Background(), sender.AccountID)
	require.NoError(t, err)
	finalReceiver, err := store.FindAccountByID(context.Background(), receiver.AccountID)
	require.NoError(t, err)

	require.True(t, finalSender.Balance.IsZero(), "sender should be fully drained, got %s", finalSender.Balance)
	require.True(t, finalReceiver.Balance.Equal(initialTotal), "receiver should hold the full amount, got %s", finalReceiver.Balance)
	require.True(t, store.totalBalance().Equal(initialTotal), "transfers must conserve the total balance")
	require.False(t, finalSender.Balance.IsNegative())
	require.False(t, finalReceiver.Balance.IsNegative())
}

// TestConcurrentTransfers_LedgerStaysConsistent checks the ledger itself after
// a concurrent burst: unique references, no entry stuck PENDING, and completed
// entries that sum to exactly the money that moved.
func TestConcurrentTransfers_LedgerStaysConsistent(t *testing.T) {
	const workers = 8
	amount := decimal.NewFromInt(25)

	sender := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "2000000001",
		HolderName:    "Funded Sender",
		Balance:       decimal.NewFromInt(100),
	}
	receiver := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "2000000002",
		HolderName:    "Receiver",
		Balance:       decimal.Zero,
	}
	store := newFakeLedgerStore(sender, receiver)
	svc := services.NewWalletService(store, store, nil, nil, 15*time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = svc.Transfer(context.Background(), sender.AccountID, dto.TransferRequest{
				ReceiverAccountNumber: receiver.AccountNumber,
				Amount:                amount,
				Description:           fmt.Sprintf("burst %d", n),
			})
		}(i)
	}
	wg.Wait()

	store.mu.Lock()
	defer store.mu.Unlock()

	seenRefs := make(map[string]struct{}, len(store.txns))
	completedSum := decimal.Zero
	for _, txn := range store.txns {
		_, dup := seenRefs[txn.Reference]
		require.False(t, dup, "duplicate reference %s", txn.Reference)
		seenRefs[txn.Reference] = struct{}{}

		require.True(t, txn.IsTerminal(), "entry %s left in status %s", txn.TransactionID, txn.Status)
		if txn.Status == domain.StatusCompleted {
			completedSum = completedSum.Add(txn.Amount)
		}
	}

	moved := store.accounts[receiver.AccountID].Balance
	require.True(t, completedSum.Equal(moved), "completed entries sum to %s but %s moved", completedSum, moved)
}
