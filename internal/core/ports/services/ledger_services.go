package services

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/dto"
)

// MoneyMovementSvc defines the balance-changing operations. Each call is one atomic unit:
// the transfer record and every balance change are committed together or not at all.
type MoneyMovementSvc interface {
	Deposit(ctx context.Context, req dto.DepositRequest) (*domain.Transfer, error)
	Withdraw(ctx context.Context, req dto.WithdrawRequest) (*domain.Transfer, error)
	Transfer(ctx context.Context, req dto.TransferRequest) (*domain.Transfer, error)
}

// TransferHistorySvc defines read operations over the transfer log
type TransferHistorySvc interface {
	GetTransferByID(ctx context.Context, transferID int64) (*domain.Transfer, error)
	ListTransfers(ctx context.Context) ([]domain.Transfer, error)
	ListTransfersByAccount(ctx context.Context, accountID int64) ([]domain.Transfer, error)
	CountTransfers(ctx context.Context) (int64, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	MoneyMovementSvc
	TransferHistorySvc
}
