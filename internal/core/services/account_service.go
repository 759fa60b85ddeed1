package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/custodial_wallet_app/internal/apperrors"
	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/custodial_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/custodial_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/custodial_wallet_app/internal/dto"
	"github.com/SscSPs/custodial_wallet_app/internal/middleware"
	"github.com/SscSPs/custodial_wallet_app/internal/utils"
	"github.com/shopspring/decimal"
)

// maxAccountNumberAttempts bounds the retry loop for account-number collisions.
// With a 9-digit random space a collision is rare; hitting the bound means
// something is wrong with the generator or the table.
const maxAccountNumberAttempts = 5

// accountService owns the account provisioning and lookup operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount provisions a new account with a freshly generated account
// number, retrying on the off chance the number is already taken.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		accountNumber, err := utils.GenerateAccountNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate account number: %w", err)
		}

		account := domain.Account{
			AccountID:     uuid.NewString(),
			AccountNumber: accountNumber,
			HolderName:    req.HolderName,
			Balance:       decimal.Zero,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}

		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			logger.Info("Account created", slog.String("account_id", account.AccountID))
			return &account, nil
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Account number collision, retrying", slog.Int("attempt", attempt+1))
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("%w: could not allocate a unique account number", apperrors.ErrInternal)
}

// GetAccountByID retrieves an account by its internal identifier.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountByNumber retrieves an account by its account number.
func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByNumber(ctx, accountNumber)
}

// ResolveHolderName confirms which holder an account number belongs to.
// Deliberately exposes nothing beyond the holder's display name.
func (s *accountService) ResolveHolderName(ctx context.Context, accountNumber string) (*dto.VerifyAccountNumberResponse, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyAccountNumberResponse{
		AccountNumber: account.AccountNumber,
		HolderName:    account.HolderName,
	}, nil
}
