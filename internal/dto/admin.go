package dto

import (
	"time"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditAccountRequest defines the data needed for an administrative balance credit.
type CreditAccountRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required,len=10,numeric"`
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Description   string          `json:"description" binding:"max=280"`
}

// AuditEntryResponse defines the data returned for an audit-log entry.
type AuditEntryResponse struct {
	EntryID   string           `json:"entryID"`
	ActorID   string           `json:"actorID"`
	Action    string           `json:"action"`
	AccountID string           `json:"accountID"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ListAuditEntriesResponse is a paginated page of audit-log entries.
type ListAuditEntriesResponse struct {
	Entries    []AuditEntryResponse `json:"entries"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalCount int64                `json:"totalCount"`
	TotalPages int                  `json:"totalPages"`
}

// ToAuditEntryResponse converts a domain.AuditEntry to AuditEntryResponse DTO.
func ToAuditEntryResponse(e *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		EntryID:   e.EntryID,
		ActorID:   e.ActorID,
		Action:    string(e.Action),
		AccountID: e.AccountID,
		Amount:    e.Amount,
		CreatedAt: e.CreatedAt,
	}
}

// ToAuditEntryResponses converts a slice of domain.AuditEntry to []AuditEntryResponse.
func ToAuditEntryResponses(entries []domain.AuditEntry) []AuditEntryResponse {
	responses := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToAuditEntryResponse(&e)
	}
	return responses
}
