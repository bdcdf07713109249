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

// PgxTransferRepository reads the append-only transfer log.
type PgxTransferRepository struct {
	BaseRepository
}

func newPgxTransferRepository(pool *pgxpool.Pool, opts TxOptions) portsrepo.TransferRepositoryWithTx {
	return &PgxTransferRepository{
		BaseRepository: BaseRepository{Pool: pool, TxOpts: opts},
	}
}

var _ portsrepo.TransferRepositoryWithTx = (*PgxTransferRepository)(nil)

const selectTransferColumns = `
	SELECT transfer_id, from_account_id, to_account_id, name, currency_id, value, transfer_date
	FROM transfers`

func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID int64) (*domain.Transfer, error) {
	rows, err := r.Pool.Query(ctx, selectTransferColumns+` WHERE transfer_id = $1;`, transferID)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to find transfer by ID %d", transferID))
	}

	modelTr, err := pgx.CollectExactlyOneRow(rows, scanTransfer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translateError(err, fmt.Sprintf("failed to scan transfer %d", transferID))
	}

	domainTr := mapping.ToDomainTransfer(modelTr)
	return &domainTr, nil
}

func (r *PgxTransferRepository) ListTransfers(ctx context.Context) ([]domain.Transfer, error) {
	return r.listTransfers(ctx, selectTransferColumns+` ORDER BY transfer_id;`)
}

// ListTransfersByAccount returns transfers where the account is either side.
func (r *PgxTransferRepository) ListTransfersByAccount(ctx context.Context, accountID int64) ([]domain.Transfer, error) {
	return r.listTransfers(ctx,
		selectTransferColumns+` WHERE from_account_id = $1 OR to_account_id = $1 ORDER BY transfer_id;`,
		accountID,
	)
}

func (r *PgxTransferRepository) CountTransfers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transfers;`).Scan(&count); err != nil {
		return 0, translateError(err, "failed to count transfers")
	}
	return count, nil
}

func (r *PgxTransferRepository) listTransfers(ctx context.Context, query string, args ...any) ([]domain.Transfer, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to query transfers")
	}

	modelTransfers, err := pgx.CollectRows(rows, scanTransfer)
	if err != nil {
		return nil, translateError(err, "failed to scan transfers")
	}

	return mapping.ToDomainTransferSlice(modelTransfers), nil
}
