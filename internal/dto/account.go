package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateAccountForm is the raw input for opening an account.
type CreateAccountForm struct {
	Name        RawValue `json:"name" form:"name" binding:"required,max=63"`
	Description RawValue `json:"description" form:"description" binding:"max=127"`
	Currency    RawValue `json:"currency" form:"currency" binding:"required"`
	Funds       RawValue `json:"funds" form:"funds"`
}

// ToRequest parses the typed fields, adding any problems to errs.
// An empty funds value means zero.
func (f CreateAccountForm) ToRequest(errs FieldErrors) CreateAccountRequest {
	req := CreateAccountRequest{
		Name:        f.Name.String(),
		Description: f.Description.String(),
		CurrencyID:  parseID(errs, "currency", f.Currency),
	}
	if f.Funds != "" {
		funds := parseAmount(errs, "funds", f.Funds)
		req.Funds = &funds
	}
	return req
}

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name        string
	Description string
	CurrencyID  int64
	Funds       *decimal.Decimal // nil means zero
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CurrencyID  int64     `json:"currencyID"`
	Funds       string    `json:"funds"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateAccountResponse confirms a created account.
type CreateAccountResponse struct {
	Success     bool   `json:"success"`
	ID          int64  `json:"id"`
	AccountName string `json:"account_name"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:          acc.ID,
		Name:        acc.Name,
		Description: acc.Description,
		CurrencyID:  acc.CurrencyID,
		Funds:       utils.FormatMoney(acc.Funds),
		CreatedAt:   acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
