package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransferKind is derived from which account references are present.
type TransferKind string

const (
	KindDeposit    TransferKind = "DEPOSIT"
	KindWithdrawal TransferKind = "WITHDRAWAL"
	KindTransfer   TransferKind = "TRANSFER"
)

var (
	errNoAccounts       = errors.New("transfer must reference at least one account")
	errNonPositiveValue = errors.New("transfer value must be positive")
)

// Transfer is an append-only ledger entry recording one completed money movement.
// FromAccountID is nil for deposits, ToAccountID is nil for withdrawals.
type Transfer struct {
	ID            int64           `json:"id"`
	FromAccountID *int64          `json:"fromAccountID"`
	ToAccountID   *int64          `json:"toAccountID"`
	Name          string          `json:"name"`
	CurrencyID    int64           `json:"currencyID"`
	Value         decimal.Decimal `json:"value"`
	TransferDate  time.Time       `json:"transferDate"`
}

// Kind returns the movement type of the transfer.
func (t Transfer) Kind() TransferKind {
	switch {
	case t.FromAccountID == nil:
		return KindDeposit
	case t.ToAccountID == nil:
		return KindWithdrawal
	default:
		return KindTransfer
	}
}

// Involves reports whether accountID is the source or the target of the transfer.
func (t Transfer) Involves(accountID int64) bool {
	return (t.FromAccountID != nil && *t.FromAccountID == accountID) ||
		(t.ToAccountID != nil && *t.ToAccountID == accountID)
}

// Validate checks the structural invariants of a transfer record before it is stored.
func (t Transfer) Validate() error {
	if t.FromAccountID == nil && t.ToAccountID == nil {
		return errNoAccounts
	}
	if !t.Value.IsPositive() {
		return errNonPositiveValue
	}
	return nil
}

// Describe renders the movement with its currency symbol, e.g. "Moved: 50.00USD None -> #7".
func (t Transfer) Describe(currencySymbol string) string {
	return fmt.Sprintf("Moved: %s%s %s -> %s",
		t.Value.StringFixed(MoneyDecimalPlaces), currencySymbol, accountRef(t.FromAccountID), accountRef(t.ToAccountID))
}

func accountRef(id *int64) string {
	if id == nil {
		return "None"
	}
	return fmt.Sprintf("#%d", *id)
}
