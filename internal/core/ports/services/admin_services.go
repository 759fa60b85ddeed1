package services

import (
	"context"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/SscSPs/custodial_wallet_app/internal/dto"
)

// AdminCreditSvc defines the administrative balance-credit operation
type AdminCreditSvc interface {
	// CreditAccount credits an account out of band and records the paired
	// audit-log entry in the same database transaction.
	CreditAccount(ctx context.Context, actorID string, req dto.CreditAccountRequest) (*domain.Transaction, error)
}

// AccountAdministrationSvc defines administrative account lifecycle operations
type AccountAdministrationSvc interface {
	// VerifyIdentity marks an account's holder as identity-verified.
	VerifyIdentity(ctx context.Context, actorID string, accountID string) (*domain.Account, error)

	// SetAccountFrozen freezes or unfreezes an account. Frozen accounts may
	// still receive transfers but cannot initiate them.
	SetAccountFrozen(ctx context.Context, actorID string, accountID string, frozen bool) (*domain.Account, error)

	// DeleteAccount removes an account and its ledger history. Rejected while
	// the account holds a balance or still has PENDING ledger entries.
	DeleteAccount(ctx context.Context, actorID string, accountID string) error
}

// AuditReaderSvc reads back the administrative audit trail
type AuditReaderSvc interface {
	// ListAuditEntries retrieves a paginated audit trail for one administrator.
	ListAuditEntries(ctx context.Context, actorID string, page, limit int) (*dto.ListAuditEntriesResponse, error)
}

// AdminSvcFacade combines all administrative service interfaces
type AdminSvcFacade interface {
	AdminCreditSvc
	AccountAdministrationSvc
	AuditReaderSvc
}
