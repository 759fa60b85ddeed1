package services

import (
	portsrepo "github.com/SscSPs/custodial_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/custodial_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/custodial_wallet_app/pkg/config"
)

// NewServiceContainer wires the services with their repositories.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	notifier := NewLogNotifier()

	container.Account = NewAccountService(repos.AccountRepo)
	container.Wallet = NewWalletService(
		repos.AccountRepo,
		repos.LedgerRepo,
		notifier,
		NewInternalSettlementConfirmer(),
		cfg.StalePendingAfter,
	)
	container.Admin = NewAdminService(repos.AccountRepo, repos.LedgerRepo, repos.AuditRepo, notifier)
	container.Reporting = NewReportingService(repos.LedgerRepo, repos.ReportingRepo, repos.AccountRepo)

	return container
}
