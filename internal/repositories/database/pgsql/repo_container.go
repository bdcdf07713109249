package pgsql

import (
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, opts TxOptions) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo: newPgxCurrencyRepository(dbPool, opts),
		AccountRepo:  newPgxAccountRepository(dbPool, opts),
		TransferRepo: newPgxTransferRepository(dbPool, opts),
	}
}
