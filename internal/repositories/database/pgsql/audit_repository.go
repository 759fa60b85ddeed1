package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/custodial_wallet_app/internal/core/ports/repositories"
	"github.com/SscSPs/custodial_wallet_app/internal/models"
	"github.com/SscSPs/custodial_wallet_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the administrative audit log.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// AppendEntryInTx inserts an audit-log row within the caller's transaction.
// The audit log is append-only; there is deliberately no update or delete path.
func (r *PgxAuditRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)

	query := `
		INSERT INTO audit_log (entry_id, actor_id, action, account_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.ActorID,
		m.Action,
		m.AccountID,
		m.Amount,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry %s: %w", m.EntryID, err)
	}
	return nil
}

// ListEntriesByActor retrieves a page of audit entries for one administrator,
// newest first, plus the total count.
func (r *PgxAuditRepository) ListEntriesByActor(ctx context.Context, actorID string, limit, offset int) ([]domain.AuditEntry, int64, error) {
	var totalCount int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_log WHERE actor_id = $1;`, actorID).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries for actor %s: %w", actorID, err)
	}

	query := `
		SELECT entry_id, actor_id, action, account_id, amount, created_at
		FROM audit_log
		WHERE actor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, actorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query audit entries for actor %s: %w", actorID, err)
	}
	defer rows.Close()

	modelEntries := []models.AuditEntry{}
	for rows.Next() {
		var m models.AuditEntry
		if err := rows.Scan(&m.EntryID, &m.ActorID, &m.Action, &m.AccountID, &m.Amount, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit entry row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating audit entry rows: %w", err)
	}

	return mapping.ToDomainAuditEntrySlice(modelEntries), totalCount, nil
}
