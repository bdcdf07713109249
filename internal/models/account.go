package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account mirrors a row of the accounts table.
type Account struct {
	AccountID   int64           `db:"account_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	CurrencyID  int64           `db:"currency_id"`
	Funds       decimal.Decimal `db:"funds"`
	CreatedAt   time.Time       `db:"created_at"`
}
