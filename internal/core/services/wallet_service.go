package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/custodial_wallet_app/internal/apperrors"
	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/custodial_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/custodial_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/custodial_wallet_app/internal/dto"
	"github.com/SscSPs/custodial_wallet_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// recentActivityLimit is how many ledger entries accompany a balance query.
const recentActivityLimit = 10

// walletService implements the transfer engine and holder-facing reads.
type walletService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	notifier    portssvc.Notifier
	settlement  portssvc.SettlementConfirmer
	staleAfter  time.Duration
}

// NewWalletService creates a new WalletService.
func NewWalletService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	notifier portssvc.Notifier,
	settlement portssvc.SettlementConfirmer,
	staleAfter time.Duration,
) portssvc.WalletSvcFacade {
	return &walletService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		notifier:    notifier,
		settlement:  settlement,
		staleAfter:  staleAfter,
	}
}

// Ensure walletService implements the portssvc.WalletSvcFacade interface
var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// GetBalance returns the current balance alongside recent ledger activity.
func (s *walletService) GetBalance(ctx context.Context, accountID string) (*dto.BalanceResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	filter := domain.TransactionFilter{AccountID: &account.AccountID}
	txns, _, err := s.ledgerRepo.ListTransactions(ctx, filter, recentActivityLimit, 0)
	if err != nil {
		return nil, err
	}

	return &dto.BalanceResponse{
		AccountID:     account.AccountID,
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance,
		Transactions:  dto.ToTransactionResponses(txns),
	}, nil
}

// Transfer atomically moves money between two ledger accounts. The ledger
// entry is committed PENDING before any balance moves, so a crash mid-transfer
// leaves an entry the sweeper will fail rather than a silent hole.
func (s *walletService) Transfer(ctx context.Context, senderID string, req dto.TransferRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	sender, err := s.accountRepo.FindAccountByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.accountRepo.FindAccountByNumber(ctx, req.ReceiverAccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: receiver account %s", apperrors.ErrNotFound, req.ReceiverAccountNumber)
		}
		return nil, err
	}

	if sender.AccountID == receiver.AccountID {
		return nil, apperrors.ErrSelfTransfer
	}
	if !sender.CanSend() {
		return nil, apperrors.ErrAccountFrozen
	}
	// Pre-check outside the lock for a fast rejection; re-checked under lock.
	if sender.Balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s cannot cover %s", apperrors.ErrInsufficientFunds, sender.Balance, req.Amount)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Reference:     uuid.NewString(),
		SenderID:      sender.AccountID,
		ReceiverID:    receiver.AccountID,
		Amount:        req.Amount,
		Type:          domain.TypeInternalTransfer,
		Status:        domain.StatusPending,
		Description:   req.Description,
		CreatedAt:     now,
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	// The PENDING entry gets its own commit before balances move.
	if err := s.ledgerRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, err
	}

	changes := map[string]decimal.Decimal{
		sender.AccountID:   req.Amount.Neg(),
		receiver.AccountID: req.Amount,
	}
	completed, err := s.settle(ctx, txn, []string{sender.AccountID, receiver.AccountID}, changes, senderID, now)
	if err != nil {
		s.failTransaction(ctx, txn.TransactionID)
		transfersTotal.WithLabelValues(string(txn.Type), string(domain.StatusFailed)).Inc()
		if errors.Is(err, apperrors.ErrInsufficientFunds) || errors.Is(err, apperrors.ErrAccountFrozen) {
			return nil, err
		}
		logger.Error("Balance mutation failed", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTransferFailed, err)
	}

	transfersTotal.WithLabelValues(string(txn.Type), string(domain.StatusCompleted)).Inc()
	logger.Info("Transfer completed",
		slog.String("transaction_id", completed.TransactionID),
		slog.String("reference", completed.Reference),
	)
	s.notify(logger, *completed)
	return completed, nil
}

// settle moves the balances and marks the entry COMPLETED in one database
// transaction, so the ledger status can never diverge from the balances it
// describes. Rows are locked in ascending account-ID order and the sender's
// balance and frozen flag are re-checked under the lock.
func (s *walletService) settle(ctx context.Context, txn domain.Transaction, accountIDs []string, changes map[string]decimal.Decimal, actorID string, now time.Time) (*domain.Transaction, error) {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.accountRepo.Rollback(ctx, tx)
	}()

	locked, err := s.accountRepo.LockAccountsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	sender := locked[txn.SenderID]
	if !sender.CanSend() {
		return nil, apperrors.ErrAccountFrozen
	}
	if sender.Balance.LessThan(txn.Amount) {
		return nil, fmt.Errorf("%w: balance %s cannot cover %s", apperrors.ErrInsufficientFunds, sender.Balance, txn.Amount)
	}

	if err := s.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, changes, actorID, now); err != nil {
		return nil, err
	}

	completed, err := s.ledgerRepo.UpdateTransactionStatusInTx(ctx, tx, txn.TransactionID, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return completed, nil
}

// ExternalTransfer debits the sender for an outbound bank transfer. The entry
// records the sender as its own receiver; the bank details are descriptive only.
func (s *walletService) ExternalTransfer(ctx context.Context, senderID string, req dto.ExternalTransferRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	sender, err := s.accountRepo.FindAccountByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if !sender.CanSend() {
		return nil, apperrors.ErrAccountFrozen
	}
	if sender.Balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s cannot cover %s", apperrors.ErrInsufficientFunds, sender.Balance, req.Amount)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Reference:     uuid.NewString(),
		SenderID:      sender.AccountID,
		ReceiverID:    sender.AccountID,
		Amount:        req.Amount,
		Type:          domain.TypeExternalTransfer,
		Status:        domain.StatusPending,
		Description:   req.Description,
		BankDetails: &domain.ExternalBankDetails{
			BankName:          req.BankName,
			BankAccountNumber: req.BankAccountNumber,
			BankAccountName:   req.BankAccountName,
		},
		CreatedAt: now,
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.ledgerRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, err
	}

	settlementRef, err := s.settlement.ConfirmSettlement(ctx, txn)
	if err != nil {
		s.failTransaction(ctx, txn.TransactionID)
		transfersTotal.WithLabelValues(string(txn.Type), string(domain.StatusFailed)).Inc()
		logger.Error("Settlement confirmation failed", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: settlement confirmation failed", apperrors.ErrTransferFailed)
	}

	changes := map[string]decimal.Decimal{sender.AccountID: req.Amount.Neg()}
	completed, err := s.settle(ctx, txn, []string{sender.AccountID}, changes, senderID, now)
	if err != nil {
		s.failTransaction(ctx, txn.TransactionID)
		transfersTotal.WithLabelValues(string(txn.Type), string(domain.StatusFailed)).Inc()
		if errors.Is(err, apperrors.ErrInsufficientFunds) || errors.Is(err, apperrors.ErrAccountFrozen) {
			return nil, err
		}
		logger.Error("External debit failed", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTransferFailed, err)
	}

	transfersTotal.WithLabelValues(string(txn.Type), string(domain.StatusCompleted)).Inc()
	logger.Info("External transfer completed",
		slog.String("transaction_id", completed.TransactionID),
		slog.String("settlement_ref", settlementRef),
	)
	s.notify(logger, *completed)
	return completed, nil
}

// SweepStalePending fails PENDING entries older than the configured age.
// These are entries whose balance mutation never completed, typically after a
// crash between the PENDING commit and the transfer transaction.
func (s *walletService) SweepStalePending(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.staleAfter)
	count, err := s.ledgerRepo.MarkStalePendingFailed(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		stalePendingSwept.Add(float64(count))
		middleware.GetLoggerFromCtx(ctx).Warn("Swept stale pending transactions", slog.Int64("count", count))
	}
	return count, nil
}

// failTransaction moves the entry to FAILED, logging rather than propagating
// any secondary error so the caller returns the original failure.
func (s *walletService) failTransaction(ctx context.Context, transactionID string) {
	if _, err := s.ledgerRepo.UpdateTransactionStatus(ctx, transactionID, domain.StatusFailed); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to mark transaction FAILED",
			slog.String("transaction_id", transactionID),
			slog.String("error", err.Error()),
		)
	}
}

// notify dispatches the completion notification without blocking the caller.
func (s *walletService) notify(logger *slog.Logger, txn domain.Transaction) {
	if s.notifier == nil {
		return
	}
	go s.notifier.NotifyTransactionCompleted(middleware.ContextWithLogger(context.Background(), logger), txn)
}
