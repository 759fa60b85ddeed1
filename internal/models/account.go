package models

import "github.com/shopspring/decimal"

// Account is the database representation of a wallet account.
type Account struct {
	AccountID        string          `db:"account_id"`
	AccountNumber    string          `db:"account_number"`
	HolderName       string          `db:"holder_name"`
	Balance          decimal.Decimal `db:"balance"`
	Frozen           bool            `db:"frozen"`
	IdentityVerified bool            `db:"identity_verified"`
	AuditFields
}
