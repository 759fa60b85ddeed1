package services

import (
	"context"
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
	"github.com/SscSPs/custodial_wallet_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// adminService implements the administrative credit and account lifecycle
// operations. Every mutation appends an audit-log entry in the same database
// transaction as the change it records.
type adminService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	auditRepo   portsrepo.AuditRepositoryFacade
	notifier    portssvc.Notifier
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	auditRepo portsrepo.AuditRepositoryFacade,
	notifier portssvc.Notifier,
) portssvc.AdminSvcFacade {
	return &adminService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		auditRepo:   auditRepo,
		notifier:    notifier,
	}
}

// Ensure adminService implements the portssvc.AdminSvcFacade interface
var _ portssvc.AdminSvcFacade = (*adminService)(nil)

// CreditAccount credits an account out of band. The ledger entry, the balance
// credit, and the audit-log entry commit in one database transaction, so the
// audit trail can never disagree with the ledger.
func (s *adminService) CreditAccount(ctx context.Context, actorID string, req dto.CreditAccountRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: credit amount must be positive", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Reference:     uuid.NewString(),
		SenderID:      actorID,
		ReceiverID:    account.AccountID,
		Amount:        req.Amount,
		Type:          domain.TypeAdminCredit,
		Status:        domain.StatusCompleted,
		Description:   req.Description,
		CreatedAt:     now,
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	amount := req.Amount
	audit := domain.AuditEntry{
		EntryID:   uuid.NewString(),
		ActorID:   actorID,
		Action:    domain.ActionCredit,
		AccountID: account.AccountID,
		Amount:    &amount,
		CreatedAt: now,
	}

	if err := s.ledgerRepo.SaveAdminCredit(ctx, txn, audit); err != nil {
		return nil, err
	}

	transfersTotal.WithLabelValues(string(txn.Type), string(domain.StatusCompleted)).Inc()
	logger.Info("Account credited",
		slog.String("account_id", account.AccountID),
		slog.String("amount", req.Amount.String()),
	)
	if s.notifier != nil {
		go s.notifier.NotifyTransactionCompleted(middleware.ContextWithLogger(context.Background(), logger), txn)
	}
	return &txn, nil
}

// VerifyIdentity marks an account's holder as identity-verified and records
// who did it.
func (s *adminService) VerifyIdentity(ctx context.Context, actorID string, accountID string) (*domain.Account, error) {
	now := time.Now().UTC()

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.accountRepo.Rollback(ctx, tx)
	}()

	if err := s.accountRepo.MarkIdentityVerifiedInTx(ctx, tx, accountID, actorID, now); err != nil {
		return nil, err
	}

	audit := domain.AuditEntry{
		EntryID:   uuid.NewString(),
		ActorID:   actorID,
		Action:    domain.ActionVerifyIdentity,
		AccountID: accountID,
		CreatedAt: now,
	}
	if err := s.auditRepo.AppendEntryInTx(ctx, tx, audit); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Account identity verified", slog.String("account_id", accountID))
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// SetAccountFrozen freezes or unfreezes an account, recording who did it.
func (s *adminService) SetAccountFrozen(ctx context.Context, actorID string, accountID string, frozen bool) (*domain.Account, error) {
	now := time.Now().UTC()

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.accountRepo.Rollback(ctx, tx)
	}()

	if err := s.accountRepo.SetFrozenInTx(ctx, tx, accountID, frozen, actorID, now); err != nil {
		return nil, err
	}

	action := domain.ActionFreezeAccount
	if !frozen {
		action = domain.ActionUnfreezeAccount
	}
	audit := domain.AuditEntry{
		EntryID:   uuid.NewString(),
		ActorID:   actorID,
		Action:    action,
		AccountID: accountID,
		CreatedAt: now,
	}
	if err := s.auditRepo.AppendEntryInTx(ctx, tx, audit); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Account freeze state changed",
		slog.String("account_id", accountID), slog.Bool("frozen", frozen))
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// DeleteAccount removes an account and its ledger history. Deletion is refused
// while the account holds a balance or has PENDING entries; the audit entry
// outlives the account on purpose.
func (s *adminService) DeleteAccount(ctx context.Context, actorID string, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account %s still holds a balance of %s", apperrors.ErrConflict, accountID, account.Balance)
	}

	pending, err := s.ledgerRepo.CountPendingForAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("%w: account %s has %d pending transactions", apperrors.ErrConflict, accountID, pending)
	}

	now := time.Now().UTC()
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.accountRepo.Rollback(ctx, tx)
	}()

	if err := s.ledgerRepo.DeleteTransactionsForAccountInTx(ctx, tx, accountID); err != nil {
		return err
	}

	audit := domain.AuditEntry{
		EntryID:   uuid.NewString(),
		ActorID:   actorID,
		Action:    domain.ActionDeleteAccount,
		AccountID: accountID,
		CreatedAt: now,
	}
	if err := s.auditRepo.AppendEntryInTx(ctx, tx, audit); err != nil {
		return err
	}

	if err := s.accountRepo.DeleteAccountInTx(ctx, tx, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Account deleted", slog.String("account_id", accountID), slog.String("actor_id", actorID))
	return nil
}

// ListAuditEntries retrieves a paginated audit trail for one administrator.
func (s *adminService) ListAuditEntries(ctx context.Context, actorID string, page, limit int) (*dto.ListAuditEntriesResponse, error) {
	page, limit = pagination.Normalize(page, limit)

	entries, totalCount, err := s.auditRepo.ListEntriesByActor(ctx, actorID, limit, pagination.Offset(page, limit))
	if err != nil {
		return nil, err
	}

	return &dto.ListAuditEntriesResponse{
		Entries:    dto.ToAuditEntryResponses(entries),
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: pagination.TotalPages(totalCount, limit),
	}, nil
}
