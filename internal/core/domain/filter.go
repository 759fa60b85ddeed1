package domain

import "time"

// TransactionFilter narrows ledger queries. Nil fields are ignored.
type TransactionFilter struct {
	AccountID *string // Matches entries where the account is sender or receiver
	Type      *TransactionType
	Status    *TransactionStatus
	From      *time.Time // Inclusive lower bound on creation time
	To        *time.Time // Exclusive upper bound on creation time
}
