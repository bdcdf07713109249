package pgsql

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger/internal/models"
	"github.com/SscSPs/bank_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// pgxLedgerTx runs ledger reads and writes on one open pgx transaction.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	return findCurrencyByID(ctx, t.tx, currencyID)
}

// LockAccountsForUpdate takes row locks in ascending id order so concurrent
// movements over the same pair of accounts cannot deadlock.
func (t *pgxLedgerTx) LockAccountsForUpdate(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	accountsMap := make(map[int64]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return accountsMap, nil
	}

	query := `
		SELECT account_id, name, description, currency_id, funds, created_at
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := t.tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, translateError(err, "failed to lock accounts")
	}

	modelAccounts, err := pgx.CollectRows(rows, scanAccount)
	if err != nil {
		return nil, translateError(err, "failed to scan locked accounts")
	}

	for _, acc := range mapping.ToDomainAccountSlice(modelAccounts) {
		accountsMap[acc.ID] = acc
	}
	return accountsMap, nil
}

func (t *pgxLedgerTx) SaveCurrency(ctx context.Context, currency *domain.Currency) error {
	modelCurr := mapping.ToModelCurrency(*currency)

	query := `INSERT INTO currencies (symbol) VALUES ($1) RETURNING currency_id;`
	if err := t.tx.QueryRow(ctx, query, modelCurr.Symbol).Scan(&currency.ID); err != nil {
		return translateError(err, fmt.Sprintf("failed to save currency %s", modelCurr.Symbol))
	}
	return nil
}

func (t *pgxLedgerTx) SaveAccount(ctx context.Context, account *domain.Account) error {
	modelAcc := mapping.ToModelAccount(*account)

	query := `
		INSERT INTO accounts (name, description, currency_id, funds)
		VALUES ($1, $2, $3, $4)
		RETURNING account_id, created_at;
	`
	err := t.tx.QueryRow(ctx, query,
		modelAcc.Name,
		modelAcc.Description,
		modelAcc.CurrencyID,
		modelAcc.Funds,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return translateError(err, fmt.Sprintf("failed to save account %s", modelAcc.Name))
	}
	return nil
}

func (t *pgxLedgerTx) SaveTransfer(ctx context.Context, transfer *domain.Transfer) error {
	modelTr := mapping.ToModelTransfer(*transfer)

	query := `
		INSERT INTO transfers (from_account_id, to_account_id, name, currency_id, value)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING transfer_id, transfer_date;
	`
	err := t.tx.QueryRow(ctx, query,
		modelTr.FromAccountID,
		modelTr.ToAccountID,
		modelTr.Name,
		modelTr.CurrencyID,
		modelTr.Value,
	).Scan(&transfer.ID, &transfer.TransferDate)
	if err != nil {
		return translateError(err, "failed to save transfer")
	}
	return nil
}

// UpdateAccountBalances applies every delta as funds = funds + delta in a single batch.
func (t *pgxLedgerTx) UpdateAccountBalances(ctx context.Context, balanceChanges map[int64]decimal.Decimal) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `UPDATE accounts SET funds = funds + $2 WHERE account_id = $1;`

	accountIDs := make([]int64, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			accountIDs = append(accountIDs, accountID)
		}
	}
	if len(accountIDs) == 0 {
		return nil
	}
	slices.Sort(accountIDs)

	batch := &pgx.Batch{}
	for _, accountID := range accountIDs {
		batch.Queue(query, accountID, balanceChanges[accountID])
	}

	br := t.tx.SendBatch(ctx, batch)
	var batchErr error
	for _, accountID := range accountIDs {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = translateError(err, fmt.Sprintf("failed to update funds for account %d", accountID))
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %d not found during funds update", apperrors.ErrNotFound, accountID)
		}
	}

	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = translateError(err, "failed to close funds update batch")
	}
	return batchErr
}

// queryer is satisfied by both *pgxpool.Pool and pgx.Tx.
type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func findCurrencyByID(ctx context.Context, q queryer, currencyID int64) (*domain.Currency, error) {
	query := `SELECT currency_id, symbol FROM currencies WHERE currency_id = $1;`

	var modelCurr models.Currency
	err := q.QueryRow(ctx, query, currencyID).Scan(&modelCurr.CurrencyID, &modelCurr.Symbol)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translateError(err, fmt.Sprintf("failed to find currency by ID %d", currencyID))
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

func scanAccount(row pgx.CollectableRow) (models.Account, error) {
	var acc models.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.Name,
		&acc.Description,
		&acc.CurrencyID,
		&acc.Funds,
		&acc.CreatedAt,
	)
	return acc, err
}

func scanTransfer(row pgx.CollectableRow) (models.Transfer, error) {
	var tr models.Transfer
	err := row.Scan(
		&tr.TransferID,
		&tr.FromAccountID,
		&tr.ToAccountID,
		&tr.Name,
		&tr.CurrencyID,
		&tr.Value,
		&tr.TransferDate,
	)
	return tr, err
}
