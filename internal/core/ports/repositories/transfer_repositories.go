package repositories

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
)

// TransferReader defines read operations over the transfer log
type TransferReader interface {
	// FindTransferByID retrieves a single transfer record.
	FindTransferByID(ctx context.Context, transferID int64) (*domain.Transfer, error)

	// ListTransfers retrieves every transfer ordered by identifier.
	ListTransfers(ctx context.Context) ([]domain.Transfer, error)

	// ListTransfersByAccount retrieves transfers where the account is the source or the target,
	// ordered by identifier.
	ListTransfersByAccount(ctx context.Context, accountID int64) ([]domain.Transfer, error)

	// CountTransfers returns the number of stored transfers.
	CountTransfers(ctx context.Context) (int64, error)
}

// TransferRepositoryFacade combines all transfer-related repository interfaces
type TransferRepositoryFacade interface {
	TransferReader
}

// TransferRepositoryWithTx extends TransferRepositoryFacade with transaction capabilities
type TransferRepositoryWithTx interface {
	TransferRepositoryFacade
	TransactionManager
}
