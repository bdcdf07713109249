package dto

// LedgerCounts holds the row count of every ledger table.
type LedgerCounts struct {
	Currencies int64 `json:"currencies"`
	Accounts   int64 `json:"accounts"`
	Transfers  int64 `json:"transfers"`
}

// HomeResponse lists the choices a client needs to build its forms.
type HomeResponse struct {
	AvailableCurrencies []CurrencyResponse `json:"available_currencies"`
	AvailableAccounts   []AccountResponse  `json:"available_accounts"`
	Counts              LedgerCounts       `json:"counts"`
}
