package mapping

import (
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.ID,
		Name:        d.Name,
		Description: d.Description,
		CurrencyID:  d.CurrencyID,
		Funds:       d.Funds,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:          m.AccountID,
		Name:        m.Name,
		Description: m.Description,
		CurrencyID:  m.CurrencyID,
		Funds:       m.Funds,
		CreatedAt:   m.CreatedAt,
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
