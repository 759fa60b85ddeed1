package repositories

import (
	"context"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditLogWriter appends administrative audit entries. Appends always happen
// inside the same database transaction as the mutation they describe.
type AuditLogWriter interface {
	AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error
}

// AuditLogReader reads back the audit trail for an administrator.
type AuditLogReader interface {
	ListEntriesByActor(ctx context.Context, actorID string, limit, offset int) ([]domain.AuditEntry, int64, error)
}

// AuditRepositoryFacade combines the audit-log repository interfaces.
type AuditRepositoryFacade interface {
	AuditLogWriter
	AuditLogReader
}
