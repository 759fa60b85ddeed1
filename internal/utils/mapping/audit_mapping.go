package mapping

import (
	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/SscSPs/custodial_wallet_app/internal/models"
)

// ToModelAuditEntry converts a domain AuditEntry to a model AuditEntry
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		EntryID:   d.EntryID,
		ActorID:   d.ActorID,
		Action:    string(d.Action),
		AccountID: d.AccountID,
		Amount:    d.Amount,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainAuditEntry converts a model AuditEntry to a domain AuditEntry
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		EntryID:   m.EntryID,
		ActorID:   m.ActorID,
		Action:    domain.AuditAction(m.Action),
		AccountID: m.AccountID,
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainAuditEntrySlice converts a slice of model AuditEntries to domain AuditEntries
func ToDomainAuditEntrySlice(ms []models.AuditEntry) []domain.AuditEntry {
	ds := make([]domain.AuditEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditEntry(m)
	}
	return ds
}
