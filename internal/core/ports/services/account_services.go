package services

import (
	"context"

	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/SscSPs/custodial_wallet_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its internal identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByNumber retrieves an account by its account number.
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ResolveHolderName confirms which holder an account number belongs to.
	// Used by clients to verify a receiver before initiating a transfer.
	ResolveHolderName(ctx context.Context, accountNumber string) (*dto.VerifyAccountNumberResponse, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount provisions a new account with a freshly generated account number.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
