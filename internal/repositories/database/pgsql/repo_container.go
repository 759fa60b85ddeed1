package pgsql

import (
	portsrepo "github.com/SscSPs/custodial_wallet_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, accountRepo, auditRepo)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		LedgerRepo:    ledgerRepo,
		AuditRepo:     auditRepo,
		ReportingRepo: reportingRepo,
	}
}
