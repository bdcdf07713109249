package repositories

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByID retrieves a specific currency by its identifier.
	FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies ordered by identifier.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// CountCurrencies returns the number of stored currencies.
	CountCurrencies(ctx context.Context) (int64, error)
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
// Writes go through LedgerTx.
type CurrencyRepositoryFacade interface {
	CurrencyReader
}

// CurrencyRepositoryWithTx extends CurrencyRepositoryFacade with transaction capabilities
type CurrencyRepositoryWithTx interface {
	CurrencyRepositoryFacade
	TransactionManager
}
