package services

import (
	"context"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/SscSPs/custodial_wallet_app/internal/dto"
)

// WalletReaderSvc defines read operations against a holder's own account
type WalletReaderSvc interface {
	// GetBalance returns the current balance alongside recent ledger activity.
	GetBalance(ctx context.Context, accountID string) (*dto.BalanceResponse, error)
}

// TransferSvc defines the money-movement operations of the transfer engine
type TransferSvc interface {
	// Transfer atomically moves the given amount between two ledger accounts.
	// The ledger entry is recorded PENDING before balances move and reaches a
	// terminal status before the call returns.
	Transfer(ctx context.Context, senderID string, req dto.TransferRequest) (*domain.Transaction, error)

	// ExternalTransfer debits the sender for an outbound bank transfer and
	// records the destination bank details on the ledger entry.
	ExternalTransfer(ctx context.Context, senderID string, req dto.ExternalTransferRequest) (*domain.Transaction, error)
}

// PendingSweeperSvc fails ledger entries stuck in PENDING.
type PendingSweeperSvc interface {
	// SweepStalePending marks stale PENDING entries FAILED and returns the count.
	SweepStalePending(ctx context.Context) (int64, error)
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	TransferSvc
	PendingSweeperSvc
}
