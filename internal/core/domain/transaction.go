package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TypeInternalTransfer TransactionType = "INTERNAL_TRANSFER"
	TypeAdminCredit      TransactionType = "ADMIN_CREDIT"
	TypeExternalTransfer TransactionType = "EXTERNAL_TRANSFER"
)

// TransactionStatus is the lifecycle state of a ledger entry.
// PENDING is the only non-terminal state.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// CanTransitionTo reports whether moving from s to next is a legal status change.
// Only PENDING -> COMPLETED and PENDING -> FAILED are permitted; COMPLETED and
// FAILED are terminal.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusCompleted || next == StatusFailed
}

// ExternalBankDetails carries descriptive counterparty information for
// external transfers. It is never used in balance math.
type ExternalBankDetails struct {
	BankName          string `json:"bankName"`
	BankAccountNumber string `json:"bankAccountNumber"`
	BankAccountName   string `json:"bankAccountName"`
}

// Transaction is an immutable ledger entry recording a balance movement.
// Apart from the single status transition out of PENDING, a persisted
// transaction never changes.
type Transaction struct {
	TransactionID string               `json:"transactionID"` // Primary Key (UUID)
	Reference     string               `json:"reference"`     // Globally unique idempotency/audit key
	SenderID      string               `json:"senderID"`      // FK -> Account.AccountID (or admin ID for ADMIN_CREDIT)
	ReceiverID    string               `json:"receiverID"`    // FK -> Account.AccountID; equals SenderID for EXTERNAL_TRANSFER
	Amount        decimal.Decimal      `json:"amount"`        // Strictly positive
	Type          TransactionType      `json:"type"`
	Status        TransactionStatus    `json:"status"`
	Description   string               `json:"description"` // Nullable free text
	BankDetails   *ExternalBankDetails `json:"bankDetails,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"` // Immutable creation timestamp
}

// Validate checks the structural invariants of a transaction record.
func (t Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction amount must be positive")
	}
	if t.SenderID == "" || t.ReceiverID == "" {
		return errors.New("transaction must reference a sender and a receiver")
	}
	if t.Reference == "" {
		return errors.New("transaction reference is required")
	}
	switch t.Type {
	case TypeInternalTransfer:
		if t.SenderID == t.ReceiverID {
			return errors.New("internal transfer cannot have identical sender and receiver")
		}
	case TypeExternalTransfer:
		if t.SenderID != t.ReceiverID {
			return errors.New("external transfer must record the sender as its own receiver")
		}
		if t.BankDetails == nil {
			return errors.New("external transfer requires bank details")
		}
	case TypeAdminCredit:
		// Sender is the administrative actor, no further structural constraints.
	default:
		return errors.New("unknown transaction type")
	}
	return nil
}

// IsTerminal reports whether the transaction has reached a final status.
func (t Transaction) IsTerminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}
