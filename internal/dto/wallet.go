package dto

import (
	"github.com/shopspring/decimal"
)

// TransferRequest defines the data needed to move money between two ledger accounts.
type TransferRequest struct {
	ReceiverAccountNumber string          `json:"receiverAccountNumber" binding:"required,len=10,numeric"`
	Amount                decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Description           string          `json:"description" binding:"max=280"`
}

// ExternalTransferRequest defines the data needed to record an outbound bank transfer.
type ExternalTransferRequest struct {
	Amount            decimal.Decimal `json:"amount" binding:"required,dgt0"`
	BankName          string          `json:"bankName" binding:"required,min=2,max=120"`
	BankAccountNumber string          `json:"bankAccountNumber" binding:"required,min=6,max=34"`
	BankAccountName   string          `json:"bankAccountName" binding:"required,min=2,max=120"`
	Description       string          `json:"description" binding:"max=280"`
}

// BalanceResponse pairs the current balance with the most recent ledger activity.
type BalanceResponse struct {
	AccountID     string                `json:"accountID"`
	AccountNumber string                `json:"accountNumber"`
	Balance       decimal.Decimal       `json:"balance"`
	Transactions  []TransactionResponse `json:"transactions"`
}
