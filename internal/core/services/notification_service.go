package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	portssvc "github.com/SscSPs/custodial_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/custodial_wallet_app/internal/middleware"
	"github.com/SscSPs/custodial_wallet_app/internal/utils"
)

// logNotifier records notification events in the structured log. A real
// delivery channel (email, push) plugs in behind the same Notifier port.
type logNotifier struct{}

// NewLogNotifier creates a Notifier that only logs.
func NewLogNotifier() portssvc.Notifier {
	return &logNotifier{}
}

var _ portssvc.Notifier = (*logNotifier)(nil)

func (n *logNotifier) NotifyTransactionCompleted(ctx context.Context, txn domain.Transaction) {
	middleware.GetLoggerFromCtx(ctx).Info("Transaction notification dispatched",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()),
	)
}

// internalSettlementConfirmer acknowledges external transfers locally and
// issues a settlement reference. A network settlement client replaces it in
// deployments that clear through a real rail.
type internalSettlementConfirmer struct{}

// NewInternalSettlementConfirmer creates the local settlement confirmer.
func NewInternalSettlementConfirmer() portssvc.SettlementConfirmer {
	return &internalSettlementConfirmer{}
}

var _ portssvc.SettlementConfirmer = (*internalSettlementConfirmer)(nil)

func (c *internalSettlementConfirmer) ConfirmSettlement(ctx context.Context, txn domain.Transaction) (string, error) {
	ref, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to issue settlement reference: %w", err)
	}
	return ref, nil
}
