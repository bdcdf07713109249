package utils

import (
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with the ledger's fixed precision.
// Example: 50 returns "50.00", 12.345 returns "12.35"
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(domain.MoneyDecimalPlaces)
}

// MoneyDigits counts the digits of amount as written: the total and those after the decimal point.
// Trailing zeros count. The result depends only on the coefficient length and the exponent.
func MoneyDigits(amount decimal.Decimal) (digits, decimals int) {
	exp := int(amount.Exponent())
	n := amount.NumDigits()
	if exp >= 0 {
		if amount.IsZero() {
			return 0, 0
		}
		return n + exp, 0
	}
	if -exp > n {
		return -exp, -exp
	}
	return n, -exp
}

// HasMoneyPrecision reports whether amount fits the ledger's fractional digits without rounding.
func HasMoneyPrecision(amount decimal.Decimal) bool {
	return amount.Exponent() >= -domain.MoneyDecimalPlaces || amount.Equal(amount.Round(domain.MoneyDecimalPlaces))
}
