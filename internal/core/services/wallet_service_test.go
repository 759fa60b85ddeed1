package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/custodial_wallet_app/internal/apperrors"
	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	portssvc "github.com/SscSPs/custodial_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/custodial_wallet_app/internal/core/services"
	"github.com/SscSPs/custodial_wallet_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	mockNotifier    *MockNotifier
	mockSettlement  *MockSettlementConfirmer
	service         portssvc.WalletSvcFacade

	ctx      context.Context
	sender   domain.Account
	receiver domain.Account
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.mockSettlement = new(MockSettlementConfirmer)
	suite.service = services.NewWalletService(
		suite.mockAccountRepo,
		suite.mockLedgerRepo,
		suite.mockNotifier,
		suite.mockSettlement,
		15*time.Minute,
	)

	suite.ctx = context.Background()
	suite.sender = domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "2000000001",
		HolderName:    "Alice Sender",
		Balance:       decimal.NewFromInt(100),
	}
	suite.receiver = domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "2000000002",
		HolderName:    "Bob Receiver",
		Balance:       decimal.NewFromInt(20),
	}

	// Notifications run on a goroutine after completion; they are not the
	// behavior under test here.
	suite.mockNotifier.On("NotifyTransactionCompleted", mock.Anything, mock.Anything).Return().Maybe()
}

func (suite *WalletServiceTestSuite) transferRequest(amount int64) dto.TransferRequest {
	return dto.TransferRequest{
		ReceiverAccountNumber: suite.receiver.AccountNumber,
		Amount:                decimal.NewFromInt(amount),
		Description:           "rent",
	}
}

func (suite *WalletServiceTestSuite) expectLookups() {
	sender := suite.sender
	receiver := suite.receiver
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, suite.sender.AccountID).Return(&sender, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", suite.ctx, suite.receiver.AccountNumber).Return(&receiver, nil).Once()
}

func (suite *WalletServiceTestSuite) TestTransfer_Success() {
	suite.expectLookups()

	amount := decimal.NewFromInt(40)
	suite.mockLedgerRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(tx domain.Transaction) bool {
		return tx.Status == domain.StatusPending &&
			tx.Type == domain.TypeInternalTransfer &&
			tx.SenderID == suite.sender.AccountID &&
			tx.ReceiverID == suite.receiver.AccountID &&
			tx.Amount.Equal(amount)
	})).Return(nil).Once()

	locked := map[string]domain.Account{
		suite.sender.AccountID:   suite.sender,
		suite.receiver.AccountID: suite.receiver,
	}
	suite.mockAccountRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("LockAccountsForUpdate", suite.ctx, mock.Anything,
		[]string{suite.sender.AccountID, suite.receiver.AccountID}).Return(locked, nil).Once()
	suite.mockAccountRepo.On("ApplyBalanceDeltasInTx", suite.ctx, mock.Anything,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[suite.sender.AccountID].Equal(amount.Neg()) &&
				changes[suite.receiver.AccountID].Equal(amount)
		}), suite.sender.AccountID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil).Once()

	completed := domain.Transaction{
		TransactionID: uuid.NewString(),
		Reference:     uuid.NewString(),
		SenderID:      suite.sender.AccountID,
		ReceiverID:    suite.receiver.AccountID,
		Amount:        amount,
		Type:          domain.TypeInternalTransfer,
		Status:        domain.StatusCompleted,
	}
	// The COMPLETED transition shares the balance transaction.
	suite.mockLedgerRepo.On("UpdateTransactionStatusInTx", suite.ctx, mock.Anything,
		mock.AnythingOfType("string"), domain.StatusCompleted).Return(&completed, nil).Once()

	result, err := suite.service.Transfer(suite.ctx, suite.sender.AccountID, suite.transferRequest(40))

	suite.NoError(err)
	suite.NotNil(result)
	suite.Equal(domain.StatusCompleted, result.Status)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestTransfer_NonPositiveAmount() {
	_, err := suite.service.Transfer(suite.ctx, suite.sender.AccountID, suite.transferRequest(0))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestTransfer_ReceiverNotFound() {
	sender := suite.sender
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, suite.sender.AccountID).Return(&sender, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", suite.ctx, suite.receiver.AccountNumber).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Transfer(suite.ctx, suite.sender.AccountID, suite.transferRequest(40))

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestTransfer_SelfTransferRejected() {
	sender := suite.sender
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, suite.sender.AccountID).Return(&sender, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", suite.ctx, suite.sender.AccountNumber).Return(&sender, nil).Once()

	req := dto.TransferRequest{
		ReceiverAccountNumber: suite.sender.AccountNumber,
		Amount:                decimal.NewFromInt(10),
	}
	_, err := suite.service.Transfer(suite.ctx, suite.sender.AccountID, req)

	suite.ErrorIs(err, apperrors.ErrSelfTransfer)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestTransfer_FrozenSender() {
	suite.sender.Frozen = true
	suite.expectLookups()

	_, err := suite.service.Transfer(suite.ctx, suite.sender.AccountID, suite.transferRequest(40))

	suite.ErrorIs(err, apperrors.ErrAccountFrozen)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestTransfer_InsufficientFundsPreCheck() {
	suite.sender.Balance = decimal.NewFromInt(5)
	suite.expectLookups()

	_, err := suite.service.Transfer(suite.ctx, suite.sender.AccountID, suite.transferRequest(40))

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestTransfer_InsufficientFundsUnderLock() {
	suite.expectLookups()
	suite.mockLedgerRepo.On("SaveTransaction", suite.ctx, mock.Anything).Return(nil).Once()

	// The balance shrank between the pre-check and the lock. The locked
	// re-check must reject and the PENDING entry must be failed.
	drained := suite.sender
	drained.Balance = decimal.NewFromInt(5)
	locked := map[string]domain.Account{
		suite.sender.AccountID:   drained,
		suite.receiver.AccountID: suite.receiver,
	}
	suite.mockAccountRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("LockAccountsForUpdate", suite.ctx, mock.Anything, mock.Anything).Return(locked, nil).Once()
	suite.mockAccountRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil).Once()

	failed := domain.Transaction{Status: domain.StatusFailed}
	suite.mockLedgerRepo.On("UpdateTransactionStatus", suite.ctx,
		mock.AnythingOfType("string"), domain.StatusFailed).Return(&failed, nil).Once()

	_, err := suite.service.Transfer(suite.ctx, suite.sender.AccountID, suite.transferRequest(40))

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ApplyBalanceDeltasInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestTransfer_MutationFailureMarksFailed() {
	suite.expectLookups()
	suite.mockLedgerRepo.On("SaveTransaction", suite.ctx, mock.Anything).Return(nil).Once()

	locked := map[string]domain.Account{
		suite.sender.AccountID:   suite.sender,
		suite.receiver.AccountID: suite.receiver,
	}
	suite.mockAccountRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("LockAccountsForUpdate", suite.ctx, mock.Anything, mock.Anything).Return(locked, nil).Once()
	suite.mockAccountRepo.On("ApplyBalanceDeltasInTx", suite.ctx, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()
	suite.mockAccountRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil).Once()

	failed := domain.Transaction{Status: domain.StatusFailed}
	suite.mockLedgerRepo.On("UpdateTransactionStatus", suite.ctx,
		mock.AnythingOfType("string"), domain.StatusFailed).Return(&failed, nil).Once()

	_, err := suite.service.Transfer(suite.ctx, suite.sender.AccountID, suite.transferRequest(40))

	suite.ErrorIs(err, apperrors.ErrTransferFailed)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestExternalTransfer_Success() {
	sender := suite.sender
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, suite.sender.AccountID).Return(&sender, nil).Once()

	amount := decimal.NewFromInt(30)
	suite.mockLedgerRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(tx domain.Transaction) bool {
		return tx.Status == domain.StatusPending &&
			tx.Type == domain.TypeExternalTransfer &&
			tx.SenderID == suite.sender.AccountID &&
			tx.ReceiverID == suite.sender.AccountID &&
			tx.BankDetails != nil
	})).Return(nil).Once()

	suite.mockSettlement.On("ConfirmSettlement", suite.ctx, mock.Anything).Return("stl-12345", nil).Once()

	// The debit runs through the same locked settlement path as an internal
	// transfer, with only the sender's row involved.
	locked := map[string]domain.Account{suite.sender.AccountID: sender}
	suite.mockAccountRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("LockAccountsForUpdate", suite.ctx, mock.Anything,
		[]string{suite.sender.AccountID}).Return(locked, nil).Once()
	suite.mockAccountRepo.On("ApplyBalanceDeltasInTx", suite.ctx, mock.Anything,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 1 && changes[suite.sender.AccountID].Equal(amount.Neg())
		}), suite.sender.AccountID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil).Once()

	completed := domain.Transaction{
		TransactionID: uuid.NewString(),
		Status:        domain.StatusCompleted,
		Type:          domain.TypeExternalTransfer,
		Amount:        amount,
	}
	suite.mockLedgerRepo.On("UpdateTransactionStatusInTx", suite.ctx, mock.Anything,
		mock.AnythingOfType("string"), domain.StatusCompleted).Return(&completed, nil).Once()

	req := dto.ExternalTransferRequest{
		Amount:            amount,
		BankName:          "First Continental",
		BankAccountNumber: "0099887766",
		BankAccountName:   "Alice Sender",
	}
	result, err := suite.service.ExternalTransfer(suite.ctx, suite.sender.AccountID, req)

	suite.NoError(err)
	suite.Equal(domain.StatusCompleted, result.Status)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockSettlement.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestExternalTransfer_SettlementFailureMarksFailed() {
	sender := suite.sender
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, suite.sender.AccountID).Return(&sender, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockSettlement.On("ConfirmSettlement", suite.ctx, mock.Anything).
		Return("", errors.New("settlement gateway unavailable")).Once()

	failed := domain.Transaction{Status: domain.StatusFailed}
	suite.mockLedgerRepo.On("UpdateTransactionStatus", suite.ctx,
		mock.AnythingOfType("string"), domain.StatusFailed).Return(&failed, nil).Once()

	req := dto.ExternalTransferRequest{
		Amount:            decimal.NewFromInt(30),
		BankName:          "First Continental",
		BankAccountNumber: "0099887766",
		BankAccountName:   "Alice Sender",
	}
	_, err := suite.service.ExternalTransfer(suite.ctx, suite.sender.AccountID, req)

	suite.ErrorIs(err, apperrors.ErrTransferFailed)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestExternalTransfer_FrozenUnderLock() {
	sender := suite.sender
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, suite.sender.AccountID).Return(&sender, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockSettlement.On("ConfirmSettlement", suite.ctx, mock.Anything).Return("stl-12345", nil).Once()

	// A freeze landed between the pre-check and the row lock. The locked
	// re-check must reject the debit and the entry must be failed.
	frozen := sender
	frozen.Frozen = true
	locked := map[string]domain.Account{suite.sender.AccountID: frozen}
	suite.mockAccountRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("LockAccountsForUpdate", suite.ctx, mock.Anything,
		[]string{suite.sender.AccountID}).Return(locked, nil).Once()
	suite.mockAccountRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil).Once()

	failed := domain.Transaction{Status: domain.StatusFailed}
	suite.mockLedgerRepo.On("UpdateTransactionStatus", suite.ctx,
		mock.AnythingOfType("string"), domain.StatusFailed).Return(&failed, nil).Once()

	req := dto.ExternalTransferRequest{
		Amount:            decimal.NewFromInt(30),
		BankName:          "First Continental",
		BankAccountNumber: "0099887766",
		BankAccountName:   "Alice Sender",
	}
	_, err := suite.service.ExternalTransfer(suite.ctx, suite.sender.AccountID, req)

	suite.ErrorIs(err, apperrors.ErrAccountFrozen)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ApplyBalanceDeltasInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestExternalTransfer_FrozenSender() {
	suite.sender.Frozen = true
	sender := suite.sender
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, suite.sender.AccountID).Return(&sender, nil).Once()

	req := dto.ExternalTransferRequest{
		Amount:            decimal.NewFromInt(30),
		BankName:          "First Continental",
		BankAccountNumber: "0099887766",
		BankAccountName:   "Alice Sender",
	}
	_, err := suite.service.ExternalTransfer(suite.ctx, suite.sender.AccountID, req)

	suite.ErrorIs(err, apperrors.ErrAccountFrozen)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	suite.mockSettlement.AssertNotCalled(suite.T(), "ConfirmSettlement", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestGetBalance() {
	sender := suite.sender
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, suite.sender.AccountID).Return(&sender, nil).Once()

	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), Amount: decimal.NewFromInt(10), Status: domain.StatusCompleted},
	}
	suite.mockLedgerRepo.On("ListTransactions", suite.ctx,
		mock.MatchedBy(func(f domain.TransactionFilter) bool {
			return f.AccountID != nil && *f.AccountID == suite.sender.AccountID
		}), 10, 0).Return(txns, int64(1), nil).Once()

	balance, err := suite.service.GetBalance(suite.ctx, suite.sender.AccountID)

	suite.NoError(err)
	suite.True(suite.sender.Balance.Equal(balance.Balance))
	suite.Len(balance.Transactions, 1)
}

func (suite *WalletServiceTestSuite) TestSweepStalePending() {
	suite.mockLedgerRepo.On("MarkStalePendingFailed", suite.ctx,
		mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()

	count, err := suite.service.SweepStalePending(suite.ctx)

	suite.NoError(err)
	suite.Equal(int64(3), count)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestWalletService(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
