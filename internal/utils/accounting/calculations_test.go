package accounting_test

import (
	"testing"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBalanceChanges(t *testing.T) {
	tests := []struct {
		name     string
		transfer domain.Transfer
		want     map[int64]string
	}{
		{
			name:     "deposit credits target",
			transfer: domain.Transfer{ToAccountID: int64Ptr(1), Value: dec("50.00")},
			want:     map[int64]string{1: "50"},
		},
		{
			name:     "withdrawal debits source",
			transfer: domain.Transfer{FromAccountID: int64Ptr(1), Value: dec("20.00")},
			want:     map[int64]string{1: "-20"},
		},
		{
			name:     "transfer moves value",
			transfer: domain.Transfer{FromAccountID: int64Ptr(1), ToAccountID: int64Ptr(2), Value: dec("10.50")},
			want:     map[int64]string{1: "-10.5", 2: "10.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.BalanceChanges(tt.transfer)
			assert.Len(t, got, len(tt.want))
			for id, want := range tt.want {
				assert.True(t, dec(want).Equal(got[id]), "account %d: want %s got %s", id, want, got[id])
			}
		})
	}
}

func TestValidateBalanced(t *testing.T) {
	transfer := domain.Transfer{FromAccountID: int64Ptr(1), ToAccountID: int64Ptr(2), Value: dec("999.99")}
	assert.NoError(t, accounting.ValidateBalanced(accounting.BalanceChanges(transfer)))

	deposit := domain.Transfer{ToAccountID: int64Ptr(1), Value: dec("1")}
	assert.Error(t, accounting.ValidateBalanced(accounting.BalanceChanges(deposit)))
}
