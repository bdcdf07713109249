package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool, opts TxOptions) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool, TxOpts: opts},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const selectAccountColumns = `SELECT account_id, name, description, currency_id, funds, created_at FROM accounts`

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, selectAccountColumns+` WHERE account_id = $1;`, accountID)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to find account by ID %d", accountID))
	}

	modelAcc, err := pgx.CollectExactlyOneRow(rows, scanAccount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translateError(err, fmt.Sprintf("failed to scan account %d", accountID))
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

// ListAccounts retrieves every account ordered by ID.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, selectAccountColumns+` ORDER BY account_id;`)
	if err != nil {
		return nil, translateError(err, "failed to query accounts")
	}

	modelAccounts, err := pgx.CollectRows(rows, scanAccount)
	if err != nil {
		return nil, translateError(err, "failed to scan accounts")
	}

	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

func (r *PgxAccountRepository) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts;`).Scan(&count); err != nil {
		return 0, translateError(err, "failed to count accounts")
	}
	return count, nil
}
