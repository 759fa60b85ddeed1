package mapping

import (
	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/SscSPs/custodial_wallet_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:        d.AccountID,
		AccountNumber:    d.AccountNumber,
		HolderName:       d.HolderName,
		Balance:          d.Balance,
		Frozen:           d.Frozen,
		IdentityVerified: d.IdentityVerified,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:        m.AccountID,
		AccountNumber:    m.AccountNumber,
		HolderName:       m.HolderName,
		Balance:          m.Balance,
		Frozen:           m.Frozen,
		IdentityVerified: m.IdentityVerified,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
