package repositories

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTx exposes the reads and writes allowed inside a single store transaction.
// Everything done through one LedgerTx is committed together or not at all.
type LedgerTx interface {
	// FindCurrencyByID retrieves a currency; returns apperrors.ErrNotFound if missing.
	FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error)

	// LockAccountsForUpdate row-locks the given accounts in ascending id order and returns
	// the ones that exist. Missing ids are simply absent from the map.
	LockAccountsForUpdate(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error)

	// SaveCurrency inserts a currency and sets its ID. Unique violations return apperrors.ErrDuplicate.
	SaveCurrency(ctx context.Context, currency *domain.Currency) error

	// SaveAccount inserts an account and sets its ID and CreatedAt. Unique violations return apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account *domain.Account) error

	// SaveTransfer appends a transfer record and sets its ID and TransferDate.
	SaveTransfer(ctx context.Context, transfer *domain.Transfer) error

	// UpdateAccountBalances adds each signed delta to the funds of the matching account.
	UpdateAccountBalances(ctx context.Context, balanceChanges map[int64]decimal.Decimal) error
}

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTx runs fn inside one store transaction. The transaction commits when fn
	// returns nil and is rolled back on any error or panic.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}

// RepositoryWithTx is a marker interface for repositories that support transactions
type RepositoryWithTx interface {
	TransactionManager
}
