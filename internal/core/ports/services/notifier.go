package services

import (
	"context"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
)

// Notifier delivers best-effort notifications about ledger activity.
// Failures are logged and never affect the outcome of the operation that
// triggered them.
type Notifier interface {
	NotifyTransactionCompleted(ctx context.Context, txn domain.Transaction)
}

// SettlementConfirmer acknowledges an outbound external transfer with the
// settlement network. Implementations return the settlement reference.
type SettlementConfirmer interface {
	ConfirmSettlement(ctx context.Context, txn domain.Transaction) (string, error)
}
