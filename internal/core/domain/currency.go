package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	ID     int64  `json:"id"`     // Store-assigned surrogate key
	Symbol string `json:"symbol"` // e.g. "USD", unique
}

func (c Currency) String() string {
	return c.Symbol
}
