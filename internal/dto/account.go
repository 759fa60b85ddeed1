package dto

import (
	"time"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to provision a new account.
type CreateAccountRequest struct {
	HolderName string `json:"holderName" binding:"required,min=2,max=120"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID        string          `json:"accountID"`
	AccountNumber    string          `json:"accountNumber"`
	HolderName       string          `json:"holderName"`
	Balance          decimal.Decimal `json:"balance"`
	Frozen           bool            `json:"frozen"`
	IdentityVerified bool            `json:"identityVerified"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy"`
}

// VerifyAccountNumberResponse confirms who an account number belongs to before a transfer.
type VerifyAccountNumberResponse struct {
	AccountNumber string `json:"accountNumber"`
	HolderName    string `json:"holderName"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		AccountNumber:    acc.AccountNumber,
		HolderName:       acc.HolderName,
		Balance:          acc.Balance,
		Frozen:           acc.Frozen,
		IdentityVerified: acc.IdentityVerified,
		CreatedAt:        acc.CreatedAt,
		CreatedBy:        acc.CreatedBy,
		LastUpdatedAt:    acc.LastUpdatedAt,
		LastUpdatedBy:    acc.LastUpdatedBy,
	}
}
