package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/custodial_wallet_app/internal/apperrors"
	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/custodial_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/custodial_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/custodial_wallet_app/internal/dto"
	"github.com/SscSPs/custodial_wallet_app/internal/utils/pagination"
)

const filterDateLayout = "2006-01-02"

// reportingService provides read models over the ledger. It never mutates.
type reportingService struct {
	ledgerRepo    portsrepo.LedgerReader
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(ledgerRepo portsrepo.LedgerReader, reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader) portssvc.ReportingService {
	return &reportingService{
		ledgerRepo:    ledgerRepo,
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

// Ensure reportingService implements the portssvc.ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// parseFilter converts the request's string fields into a typed filter.
// The To date is pushed forward a day so the bound stays exclusive while the
// caller thinks in inclusive calendar days.
func parseFilter(req dto.ListTransactionsRequest) (domain.TransactionFilter, error) {
	var filter domain.TransactionFilter

	if req.AccountID != "" {
		filter.AccountID = &req.AccountID
	}
	if req.Type != "" {
		t := domain.TransactionType(req.Type)
		filter.Type = &t
	}
	if req.Status != "" {
		s := domain.TransactionStatus(req.Status)
		filter.Status = &s
	}
	if req.From != "" {
		from, err := time.Parse(filterDateLayout, req.From)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, req.From)
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := time.Parse(filterDateLayout, req.To)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, req.To)
		}
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, fmt.Errorf("%w: to date precedes from date", apperrors.ErrValidation)
	}
	return filter, nil
}

// GetTransactionByID retrieves a single ledger entry.
func (s *reportingService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.ledgerRepo.FindTransactionByID(ctx, transactionID)
}

// GetTransactionByReference retrieves a ledger entry by its idempotency reference.
func (s *reportingService) GetTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	return s.ledgerRepo.FindTransactionByReference(ctx, reference)
}

// ListTransactions retrieves a filtered, paginated ledger page, newest first.
// Entries are enriched with the holder names of both parties.
func (s *reportingService) ListTransactions(ctx context.Context, req dto.ListTransactionsRequest) (*dto.ListTransactionsResponse, error) {
	filter, err := parseFilter(req)
	if err != nil {
		return nil, err
	}

	page, limit := pagination.Normalize(req.Page, req.Limit)
	txns, totalCount, err := s.ledgerRepo.ListTransactions(ctx, filter, limit, pagination.Offset(page, limit))
	if err != nil {
		return nil, err
	}

	responses := dto.ToTransactionResponses(txns)
	if err := s.attachHolderNames(ctx, responses); err != nil {
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: responses,
		Page:         page,
		Limit:        limit,
		TotalCount:   totalCount,
		TotalPages:   pagination.TotalPages(totalCount, limit),
	}, nil
}

// attachHolderNames resolves both parties of each entry in one batch lookup.
// IDs with no account row, such as the admin actor on a credit entry, are
// simply left without a name.
func (s *reportingService) attachHolderNames(ctx context.Context, responses []dto.TransactionResponse) error {
	if len(responses) == 0 {
		return nil
	}

	idSet := make(map[string]struct{}, len(responses)*2)
	for _, r := range responses {
		idSet[r.SenderID] = struct{}{}
		idSet[r.ReceiverID] = struct{}{}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range responses {
		if a, ok := accounts[responses[i].SenderID]; ok {
			responses[i].SenderName = a.HolderName
		}
		if a, ok := accounts[responses[i].ReceiverID]; ok {
			responses[i].ReceiverName = a.HolderName
		}
	}
	return nil
}

// GetStats aggregates the ledger entries matching the filter.
func (s *reportingService) GetStats(ctx context.Context, req dto.ListTransactionsRequest) (*domain.TransactionStats, error) {
	filter, err := parseFilter(req)
	if err != nil {
		return nil, err
	}
	return s.reportingRepo.GetTransactionStats(ctx, filter)
}

// GetAccountStats aggregates one account's ledger activity plus flow totals.
func (s *reportingService) GetAccountStats(ctx context.Context, accountID string) (*domain.AccountStats, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	filter := domain.TransactionFilter{AccountID: &account.AccountID}
	stats, err := s.reportingRepo.GetTransactionStats(ctx, filter)
	if err != nil {
		return nil, err
	}

	sent, received, err := s.reportingRepo.GetAccountFlowTotals(ctx, account.AccountID)
	if err != nil {
		return nil, err
	}

	return &domain.AccountStats{
		TransactionStats: *stats,
		TotalSent:        sent,
		TotalReceived:    received,
	}, nil
}
