package models

// Currency mirrors a row of the currencies table.
type Currency struct {
	CurrencyID int64  `db:"currency_id"`
	Symbol     string `db:"symbol"`
}
