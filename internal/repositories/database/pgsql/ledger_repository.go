package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/custodial_wallet_app/internal/apperrors"
	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/custodial_wallet_app/internal/core/ports/repositories"
	"github.com/SscSPs/custodial_wallet_app/internal/models"
	"github.com/SscSPs/custodial_wallet_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, reference, sender_id, receiver_id, amount, type, status, description, bank_name, bank_account_number, bank_account_name, created_at`

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
	auditRepo   portsrepo.AuditLogWriter
}

// newPgxLedgerRepository creates a new repository for ledger data. The account
// and audit repositories participate in the admin-credit transaction.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport, auditRepo portsrepo.AuditLogWriter) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		auditRepo:      auditRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Reference,
		&m.SenderID,
		&m.ReceiverID,
		&m.Amount,
		&m.Type,
		&m.Status,
		&m.Description,
		&m.BankName,
		&m.BankAccountNumber,
		&m.BankAccountName,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func insertTransactionArgs(m models.Transaction) []any {
	return []any{
		m.TransactionID,
		m.Reference,
		m.SenderID,
		m.ReceiverID,
		m.Amount,
		m.Type,
		m.Status,
		m.Description,
		m.BankName,
		m.BankAccountNumber,
		m.BankAccountName,
		m.CreatedAt,
	}
}

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

// SaveTransaction appends a new ledger entry.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	_, err := r.Pool.Exec(ctx, insertTransactionQuery, insertTransactionArgs(m)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: transaction reference %s already recorded", apperrors.ErrDuplicate, m.Reference)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a ledger entry by its ID.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(*m)
	return &domainTxn, nil
}

// FindTransactionByReference retrieves a ledger entry by its unique reference.
func (r *PgxLedgerRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reference = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by reference %s: %w", reference, err)
	}

	domainTxn := mapping.ToDomainTransaction(*m)
	return &domainTxn, nil
}

// buildTransactionWhere renders the filter into a WHERE clause and its args.
func buildTransactionWhere(filter domain.TransactionFilter) (string, []any) {
	clauses := []string{}
	args := []any{}

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, clause+" $"+strconv.Itoa(len(args)))
	}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		n := strconv.Itoa(len(args))
		clauses = append(clauses, "(sender_id = $"+n+" OR receiver_id = $"+n+")")
	}
	if filter.Type != nil {
		add("type =", string(*filter.Type))
	}
	if filter.Status != nil {
		add("status =", string(*filter.Status))
	}
	if filter.From != nil {
		add("created_at >=", *filter.From)
	}
	if filter.To != nil {
		add("created_at <", *filter.To)
	}

	if len(clauses) == 0 {
		return "", args
	}
	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}

// ListTransactions retrieves a filtered page of ledger entries, newest first,
// plus the total count of matching rows.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, int64, error) {
	where, args := buildTransactionWhere(filter)

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM transactions` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	pageArgs := append(args, limit, offset)
	query := `SELECT ` + transactionColumns + ` FROM transactions` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2) + `;`

	rows, err := r.Pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), totalCount, nil
}

// CountPendingForAccount counts PENDING entries naming the account as either party.
func (r *PgxLedgerRepository) CountPendingForAccount(ctx context.Context, accountID string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM transactions
		WHERE status = 'PENDING' AND (sender_id = $1 OR receiver_id = $1);
	`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending transactions for account %s: %w", accountID, err)
	}
	return count, nil
}

// rowQuerier abstracts over the pool and an open pgx.Tx so the status
// transition can run either standalone or inside the transfer transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UpdateTransactionStatus performs the single permitted transition out of
// PENDING. The status guard in the WHERE clause makes terminal entries immutable
// even under concurrent sweeps.
func (r *PgxLedgerRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus) (*domain.Transaction, error) {
	return r.updateStatus(ctx, r.Pool, transactionID, status)
}

// UpdateTransactionStatusInTx performs the same transition within tx, so the
// COMPLETED mark commits atomically with the balance deltas it settles.
func (r *PgxLedgerRepository) UpdateTransactionStatusInTx(ctx context.Context, tx pgx.Tx, transactionID string, status domain.TransactionStatus) (*domain.Transaction, error) {
	return r.updateStatus(ctx, tx, transactionID, status)
}

func (r *PgxLedgerRepository) updateStatus(ctx context.Context, q rowQuerier, transactionID string, status domain.TransactionStatus) (*domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET status = $2
		WHERE transaction_id = $1 AND status = 'PENDING'
		RETURNING ` + transactionColumns + `;
	`
	m, err := scanTransaction(q.QueryRow(ctx, query, transactionID, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, findErr := r.FindTransactionByID(ctx, transactionID)
			if findErr != nil {
				return nil, findErr
			}
			return nil, fmt.Errorf("%w: transaction %s is already %s", apperrors.ErrInvalidTransition, transactionID, existing.Status)
		}
		return nil, fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(*m)
	return &domainTxn, nil
}

// SaveAdminCredit atomically appends a completed ADMIN_CREDIT entry, credits
// the receiving account, and appends the paired audit-log entry.
func (r *PgxLedgerRepository) SaveAdminCredit(ctx context.Context, txn domain.Transaction, audit domain.AuditEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	m := mapping.ToModelTransaction(txn)
	if _, err := tx.Exec(ctx, insertTransactionQuery, insertTransactionArgs(m)...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction reference %s already recorded", apperrors.ErrDuplicate, m.Reference)
		}
		return fmt.Errorf("failed to insert admin credit transaction %s: %w", m.TransactionID, err)
	}

	if _, err := r.accountRepo.LockAccountsForUpdate(ctx, tx, []string{txn.ReceiverID}); err != nil {
		return err
	}
	changes := map[string]decimal.Decimal{txn.ReceiverID: txn.Amount}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, changes, audit.ActorID, txn.CreatedAt); err != nil {
		return err
	}

	if err := r.auditRepo.AppendEntryInTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// MarkStalePendingFailed fails PENDING entries created before the cutoff.
func (r *PgxLedgerRepository) MarkStalePendingFailed(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE transactions
		SET status = 'FAILED'
		WHERE status = 'PENDING' AND created_at < $1;
	`
	tag, err := r.Pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to fail stale pending transactions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteTransactionsForAccountInTx removes all ledger entries referencing the account.
func (r *PgxLedgerRepository) DeleteTransactionsForAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error {
	query := `DELETE FROM transactions WHERE sender_id = $1 OR receiver_id = $1;`
	if _, err := tx.Exec(ctx, query, accountID); err != nil {
		return fmt.Errorf("failed to delete transactions for account %s: %w", accountID, err)
	}
	return nil
}
