package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditAction identifies the kind of administrative action recorded in the audit log.
type AuditAction string

const (
	ActionCredit          AuditAction = "CREDIT"
	ActionVerifyIdentity  AuditAction = "VERIFY_IDENTITY"
	ActionFreezeAccount   AuditAction = "FREEZE_ACCOUNT"
	ActionUnfreezeAccount AuditAction = "UNFREEZE_ACCOUNT"
	ActionDeleteAccount   AuditAction = "DELETE_ACCOUNT"
)

// AuditEntry is an append-only record of an administrative action, keyed by
// the acting administrator. Entries are written in the same database
// transaction as the mutation they describe and are never updated or deleted.
type AuditEntry struct {
	EntryID   string           `json:"entryID"`   // Primary Key (UUID)
	ActorID   string           `json:"actorID"`   // Administrator who performed the action
	Action    AuditAction      `json:"action"`    // What was done
	AccountID string           `json:"accountID"` // Affected account
	Amount    *decimal.Decimal `json:"amount,omitempty"` // Set for CREDIT actions only
	CreatedAt time.Time        `json:"createdAt"`
}
