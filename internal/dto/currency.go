package dto

import (
	"strings"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
)

// CreateCurrencyForm is the raw input for creating a currency.
type CreateCurrencyForm struct {
	Symbol RawValue `json:"symbol" form:"symbol" binding:"required,min=3,max=3"`
}

// ToRequest upper-cases the symbol once the shape checks have passed.
func (f CreateCurrencyForm) ToRequest(errs FieldErrors) CreateCurrencyRequest {
	return CreateCurrencyRequest{Symbol: strings.ToUpper(f.Symbol.String())}
}

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	Symbol string
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	ID     int64  `json:"id"`
	Symbol string `json:"symbol"`
}

// CreateCurrencyResponse confirms a created currency.
type CreateCurrencyResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Symbol  string `json:"symbol"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		ID:     curr.ID,
		Symbol: curr.Symbol,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr)
	}
	return res
}
