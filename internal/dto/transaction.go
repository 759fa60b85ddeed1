package dto

import (
	"time"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankDetailsResponse mirrors domain.ExternalBankDetails.
type BankDetailsResponse struct {
	BankName          string `json:"bankName"`
	BankAccountNumber string `json:"bankAccountNumber"`
	BankAccountName   string `json:"bankAccountName"`
}

// TransactionResponse defines the data returned for a ledger entry.
// SenderName and ReceiverName are populated only on listings that enrich
// entries with the holders' names.
type TransactionResponse struct {
	TransactionID string               `json:"transactionID"`
	Reference     string               `json:"reference"`
	SenderID      string               `json:"senderID"`
	SenderName    string               `json:"senderName,omitempty"`
	ReceiverID    string               `json:"receiverID"`
	ReceiverName  string               `json:"receiverName,omitempty"`
	Amount        decimal.Decimal      `json:"amount"`
	Type          string               `json:"type"`
	Status        string               `json:"status"`
	Description   string               `json:"description,omitempty"`
	BankDetails   *BankDetailsResponse `json:"bankDetails,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.TransactionID,
		Reference:     txn.Reference,
		SenderID:      txn.SenderID,
		ReceiverID:    txn.ReceiverID,
		Amount:        txn.Amount,
		Type:          string(txn.Type),
		Status:        string(txn.Status),
		Description:   txn.Description,
		CreatedAt:     txn.CreatedAt,
	}
	if txn.BankDetails != nil {
		resp.BankDetails = &BankDetailsResponse{
			BankName:          txn.BankDetails.BankName,
			BankAccountNumber: txn.BankDetails.BankAccountNumber,
			BankAccountName:   txn.BankDetails.BankAccountName,
		}
	}
	return resp
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
