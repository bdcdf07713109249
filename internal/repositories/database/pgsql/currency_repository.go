package pgsql

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger/internal/models"
	"github.com/SscSPs/bank_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool, opts TxOptions) portsrepo.CurrencyRepositoryWithTx {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool, TxOpts: opts},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryWithTx = (*PgxCurrencyRepository)(nil)

// FindCurrencyByID retrieves a currency by its identifier.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	return findCurrencyByID(ctx, r.Pool, currencyID)
}

// ListCurrencies retrieves all currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
		SELECT currency_id, symbol
		FROM currencies
		ORDER BY currency_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err, "failed to query currencies")
	}

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		var currency models.Currency
		err := row.Scan(&currency.CurrencyID, &currency.Symbol)
		return currency, err
	})
	if err != nil {
		return nil, translateError(err, "failed to scan currencies")
	}

	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

func (r *PgxCurrencyRepository) CountCurrencies(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM currencies;`).Scan(&count); err != nil {
		return 0, translateError(err, "failed to count currencies")
	}
	return count, nil
}
