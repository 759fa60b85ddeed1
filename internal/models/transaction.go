package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry (DB enum).
type TransactionType string

const (
	TypeInternalTransfer TransactionType = "INTERNAL_TRANSFER"
	TypeAdminCredit      TransactionType = "ADMIN_CREDIT"
	TypeExternalTransfer TransactionType = "EXTERNAL_TRANSFER"
)

// TransactionStatus is the lifecycle state of a ledger entry (DB enum).
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// Transaction is the database representation of a ledger entry.
// External bank fields are nullable and only set for EXTERNAL_TRANSFER rows.
type Transaction struct {
	TransactionID     string            `db:"transaction_id"`
	Reference         string            `db:"reference"`
	SenderID          string            `db:"sender_id"`
	ReceiverID        string            `db:"receiver_id"`
	Amount            decimal.Decimal   `db:"amount"`
	Type              TransactionType   `db:"type"`
	Status            TransactionStatus `db:"status"`
	Description       string            `db:"description"`
	BankName          *string           `db:"bank_name"`
	BankAccountNumber *string           `db:"bank_account_number"`
	BankAccountName   *string           `db:"bank_account_name"`
	CreatedAt         time.Time         `db:"created_at"`
}
