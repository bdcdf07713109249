package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transfer mirrors a row of the transfers table.
// from_account_id is NULL for deposits, to_account_id is NULL for withdrawals.
type Transfer struct {
	TransferID    int64           `db:"transfer_id"`
	FromAccountID sql.NullInt64   `db:"from_account_id"`
	ToAccountID   sql.NullInt64   `db:"to_account_id"`
	Name          string          `db:"name"`
	CurrencyID    int64           `db:"currency_id"`
	Value         decimal.Decimal `db:"value"`
	TransferDate  time.Time       `db:"transfer_date"`
}
