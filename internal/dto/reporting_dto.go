package dto

import (
	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListTransactionsRequest captures the query parameters of the ledger listing endpoint.
type ListTransactionsRequest struct {
	AccountID string `form:"accountID"`
	Type      string `form:"type" binding:"omitempty,oneof=INTERNAL_TRANSFER ADMIN_CREDIT EXTERNAL_TRANSFER"`
	Status    string `form:"status" binding:"omitempty,oneof=PENDING COMPLETED FAILED"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// ListTransactionsResponse is a paginated page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalCount   int64                 `json:"totalCount"`
	TotalPages   int                   `json:"totalPages"`
}

// TransactionStatsResponse mirrors domain.TransactionStats.
type TransactionStatsResponse struct {
	TotalTransactions int64           `json:"totalTransactions"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	AverageAmount     decimal.Decimal `json:"averageAmount"`
	SuccessCount      int64           `json:"successCount"`
	FailCount         int64           `json:"failCount"`
	SuccessRate       decimal.Decimal `json:"successRate"`
}

// AccountStatsResponse mirrors domain.AccountStats.
type AccountStatsResponse struct {
	TransactionStatsResponse
	TotalSent     decimal.Decimal `json:"totalSent"`
	TotalReceived decimal.Decimal `json:"totalReceived"`
}

// ToTransactionStatsResponse converts domain.TransactionStats to its DTO.
func ToTransactionStatsResponse(s *domain.TransactionStats) TransactionStatsResponse {
	return TransactionStatsResponse{
		TotalTransactions: s.TotalTransactions,
		TotalAmount:       s.TotalAmount,
		AverageAmount:     s.AverageAmount,
		SuccessCount:      s.SuccessCount,
		FailCount:         s.FailCount,
		SuccessRate:       s.SuccessRate,
	}
}

// ToAccountStatsResponse converts domain.AccountStats to its DTO.
func ToAccountStatsResponse(s *domain.AccountStats) AccountStatsResponse {
	return AccountStatsResponse{
		TransactionStatsResponse: ToTransactionStatsResponse(&s.TransactionStats),
		TotalSent:                s.TotalSent,
		TotalReceived:            s.TotalReceived,
	}
}
