package accounting

import (
	"fmt"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceChanges returns the signed funds delta a transfer applies to each account it touches.
// This is used in both services and repositories to ensure consistent accounting logic.
//
//	deposit:    to   +value
//	withdrawal: from -value
//	transfer:   from -value, to +value
func BalanceChanges(t domain.Transfer) map[int64]decimal.Decimal {
	changes := make(map[int64]decimal.Decimal, 2)
	if t.FromAccountID != nil {
		changes[*t.FromAccountID] = t.Value.Neg()
	}
	if t.ToAccountID != nil {
		changes[*t.ToAccountID] = changes[*t.ToAccountID].Add(t.Value)
	}
	return changes
}

// ValidateBalanced checks that a set of balance changes sums to zero, i.e. funds are conserved.
// Deposits and withdrawals are unbalanced by nature and must not be passed here.
func ValidateBalanced(changes map[int64]decimal.Decimal) error {
	sum := decimal.Zero
	for _, delta := range changes {
		sum = sum.Add(delta)
	}
	if !sum.IsZero() {
		return fmt.Errorf("balance changes do not sum to zero: sum is %s", sum.String())
	}
	return nil
}
