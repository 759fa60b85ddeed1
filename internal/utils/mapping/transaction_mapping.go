package mapping

import (
	"github.com/SscSPs/custodial_wallet_app/internal/core/domain"
	"github.com/SscSPs/custodial_wallet_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID: d.TransactionID,
		Reference:     d.Reference,
		SenderID:      d.SenderID,
		ReceiverID:    d.ReceiverID,
		Amount:        d.Amount,
		Type:          models.TransactionType(d.Type),
		Status:        models.TransactionStatus(d.Status),
		Description:   d.Description,
		CreatedAt:     d.CreatedAt,
	}
	if d.BankDetails != nil {
		bankName := d.BankDetails.BankName
		bankAccountNumber := d.BankDetails.BankAccountNumber
		bankAccountName := d.BankDetails.BankAccountName
		m.BankName = &bankName
		m.BankAccountNumber = &bankAccountNumber
		m.BankAccountName = &bankAccountName
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		Reference:     m.Reference,
		SenderID:      m.SenderID,
		ReceiverID:    m.ReceiverID,
		Amount:        m.Amount,
		Type:          domain.TransactionType(m.Type),
		Status:        domain.TransactionStatus(m.Status),
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
	}
	if m.BankName != nil || m.BankAccountNumber != nil || m.BankAccountName != nil {
		details := domain.ExternalBankDetails{}
		if m.BankName != nil {
			details.BankName = *m.BankName
		}
		if m.BankAccountNumber != nil {
			details.BankAccountNumber = *m.BankAccountNumber
		}
		if m.BankAccountName != nil {
			details.BankAccountName = *m.BankAccountName
		}
		d.BankDetails = &details
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
