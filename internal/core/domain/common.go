package domain

// Field limits enforced on input and by the schema.
const (
	CurrencySymbolLength     = 3
	AccountNameMaxLength     = 63
	AccountDescriptionMaxLen = 127
	TransferNameMaxLength    = 50
)

// Every amount is stored as NUMERIC(12,2).
const (
	MoneyDecimalPlaces = 2
	MoneyMaxDigits     = 12
)
