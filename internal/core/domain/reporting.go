package domain

import "github.com/shopspring/decimal"

// TransactionStats is the result of a single aggregation pass over ledger records.
type TransactionStats struct {
	TotalTransactions int64           `json:"totalTransactions"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	AverageAmount     decimal.Decimal `json:"averageAmount"` // Rounded to 2 places
	SuccessCount      int64           `json:"successCount"`
	FailCount         int64           `json:"failCount"`
	SuccessRate       decimal.Decimal `json:"successRate"` // round(success/total*100, 2); 0 when empty
}

var oneHundred = decimal.NewFromInt(100)

// ComputeDerived fills in the average amount and success rate from the raw
// counts and sums. Both stay zero when there are no matching records.
func (s *TransactionStats) ComputeDerived() {
	if s.TotalTransactions == 0 {
		return
	}
	total := decimal.NewFromInt(s.TotalTransactions)
	s.AverageAmount = s.TotalAmount.Div(total).Round(2)
	s.SuccessRate = decimal.NewFromInt(s.SuccessCount).Div(total).Mul(oneHundred).Round(2)
}

// AccountStats extends TransactionStats with per-account flow totals.
type AccountStats struct {
	TransactionStats
	TotalSent     decimal.Decimal `json:"totalSent"`     // Sum of completed amounts where the account is sender
	TotalReceived decimal.Decimal `json:"totalReceived"` // Sum of completed amounts where the account is receiver
}
