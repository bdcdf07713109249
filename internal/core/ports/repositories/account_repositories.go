package repositories

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// ListAccounts retrieves all accounts ordered by identifier.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// CountAccounts returns the number of stored accounts.
	CountAccounts(ctx context.Context) (int64, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// Writes go through LedgerTx.
type AccountRepositoryFacade interface {
	AccountReader
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
