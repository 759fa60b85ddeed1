package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a balance-holding wallet account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID        string          `json:"accountID"`        // Primary Key (UUID), stable internal identity
	AccountNumber    string          `json:"accountNumber"`    // Externally visible 10-digit number, unique, immutable
	HolderName       string          `json:"holderName"`       // Display name of the account holder
	Balance          decimal.Decimal `json:"balance"`          // Non-negative; NUMERIC in storage, never float
	Frozen           bool            `json:"frozen"`           // Frozen accounts may receive but not initiate transfers
	IdentityVerified bool            `json:"identityVerified"` // Set by the admin identity-verification action
	AuditFields
}

// CanSend reports whether the account is allowed to initiate an outgoing transfer.
func (a Account) CanSend() bool {
	return !a.Frozen
}
