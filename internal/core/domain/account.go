package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a funds holder denominated in exactly one currency.
// CurrencyID never changes after creation; Funds is mutated only by deposits,
// withdrawals and transfers.
type Account struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CurrencyID  int64           `json:"currencyID"`
	Funds       decimal.Decimal `json:"funds"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// MaxFunds is the largest balance an account can hold.
var MaxFunds = decimal.New(999_999_999_999, -MoneyDecimalPlaces)

// HasCurrency reports whether the account is denominated in the given currency.
func (a Account) HasCurrency(currencyID int64) bool {
	return a.CurrencyID == currencyID
}

// CanCover reports whether the account holds at least value. Equality is allowed.
func (a Account) CanCover(value decimal.Decimal) bool {
	return value.LessThanOrEqual(a.Funds)
}

// CanReceive reports whether adding value keeps the funds within MaxFunds.
func (a Account) CanReceive(value decimal.Decimal) bool {
	return a.Funds.Add(value).LessThanOrEqual(MaxFunds)
}

func (a Account) String() string {
	return a.Name
}
