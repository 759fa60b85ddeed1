package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditEntry is the database representation of an administrative audit-log row.
type AuditEntry struct {
	EntryID   string           `db:"entry_id"`
	ActorID   string           `db:"actor_id"`
	Action    string           `db:"action"`
	AccountID string           `db:"account_id"`
	Amount    *decimal.Decimal `db:"amount"`
	CreatedAt time.Time        `db:"created_at"`
}
