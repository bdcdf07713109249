package services

import (
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Currency: NewCurrencyService(repos.CurrencyRepo),
		Account:  NewAccountService(repos.AccountRepo),
		Ledger:   NewLedgerService(repos.TransferRepo),
	}
}
