package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// DepositForm is the raw input for a deposit.
type DepositForm struct {
	Name      RawValue `json:"name" form:"name" binding:"required,max=50"`
	ToAccount RawValue `json:"to_account" form:"to_account" binding:"required"`
	Currency  RawValue `json:"currency" form:"currency" binding:"required"`
	Value     RawValue `json:"value" form:"value" binding:"required"`
}

// ToRequest parses the typed fields, adding any problems to errs.
func (f DepositForm) ToRequest(errs FieldErrors) DepositRequest {
	return DepositRequest{
		Name:        f.Name.String(),
		ToAccountID: parseID(errs, "to_account", f.ToAccount),
		CurrencyID:  parseID(errs, "currency", f.Currency),
		Value:       parseAmount(errs, "value", f.Value),
	}
}

// WithdrawForm is the raw input for a withdrawal.
type WithdrawForm struct {
	Name        RawValue `json:"name" form:"name" binding:"required,max=50"`
	FromAccount RawValue `json:"from_account" form:"from_account" binding:"required"`
	Currency    RawValue `json:"currency" form:"currency" binding:"required"`
	Value       RawValue `json:"value" form:"value" binding:"required"`
}

// ToRequest parses the typed fields, adding any problems to errs.
func (f WithdrawForm) ToRequest(errs FieldErrors) WithdrawRequest {
	return WithdrawRequest{
		Name:          f.Name.String(),
		FromAccountID: parseID(errs, "from_account", f.FromAccount),
		CurrencyID:    parseID(errs, "currency", f.Currency),
		Value:         parseAmount(errs, "value", f.Value),
	}
}

// TransferForm is the raw input for a transfer between two accounts.
type TransferForm struct {
	Name        RawValue `json:"name" form:"name" binding:"required,max=50"`
	FromAccount RawValue `json:"from_account" form:"from_account" binding:"required"`
	ToAccount   RawValue `json:"to_account" form:"to_account" binding:"required"`
	Currency    RawValue `json:"currency" form:"currency" binding:"required"`
	Value       RawValue `json:"value" form:"value" binding:"required"`
}

// ToRequest parses the typed fields, adding any problems to errs.
func (f TransferForm) ToRequest(errs FieldErrors) TransferRequest {
	return TransferRequest{
		Name:          f.Name.String(),
		FromAccountID: parseID(errs, "from_account", f.FromAccount),
		ToAccountID:   parseID(errs, "to_account", f.ToAccount),
		CurrencyID:    parseID(errs, "currency", f.Currency),
		Value:         parseAmount(errs, "value", f.Value),
	}
}

// HistoryFilterForm holds the optional account filter of the history listing.
type HistoryFilterForm struct {
	ByAccount RawValue `form:"by_account"`
}

// ToAccountID returns the filter account id, or nil when no filter was given.
func (f HistoryFilterForm) ToAccountID(errs FieldErrors) *int64 {
	if f.ByAccount == "" {
		return nil
	}
	id := parseID(errs, "by_account", f.ByAccount)
	return &id
}

// DepositRequest defines the data needed to deposit funds into an account.
type DepositRequest struct {
	Name        string
	ToAccountID int64
	CurrencyID  int64
	Value       decimal.Decimal
}

// WithdrawRequest defines the data needed to withdraw funds from an account.
type WithdrawRequest struct {
	Name          string
	FromAccountID int64
	CurrencyID    int64
	Value         decimal.Decimal
}

// TransferRequest defines the data needed to move funds between two accounts.
type TransferRequest struct {
	Name          string
	FromAccountID int64
	ToAccountID   int64
	CurrencyID    int64
	Value         decimal.Decimal
}

// MoneyMovementResponse confirms a deposit, withdrawal or transfer with the values used.
type MoneyMovementResponse struct {
	Success     bool   `json:"success"`
	TransferID  int64  `json:"transfer_id"`
	Value       string `json:"value"`
	Account     *int64 `json:"account,omitempty"`
	FromAccount *int64 `json:"from_account,omitempty"`
	ToAccount   *int64 `json:"to_account,omitempty"`
}

// TransferResponse defines the data returned for a transfer record.
type TransferResponse struct {
	ID            int64               `json:"id"`
	Kind          domain.TransferKind `json:"kind"`
	Name          string              `json:"name"`
	FromAccountID *int64              `json:"fromAccountID"`
	ToAccountID   *int64              `json:"toAccountID"`
	CurrencyID    int64               `json:"currencyID"`
	Value         string              `json:"value"`
	TransferDate  time.Time           `json:"transferDate"`
}

// HistoryResponse wraps the transfer history, optionally filtered by account.
type HistoryResponse struct {
	ByAccount *int64             `json:"by_account,omitempty"`
	Transfers []TransferResponse `json:"transfers"`
}

// ToTransferResponse converts a domain.Transfer to TransferResponse DTO
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		ID:            t.ID,
		Kind:          t.Kind(),
		Name:          t.Name,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		CurrencyID:    t.CurrencyID,
		Value:         utils.FormatMoney(t.Value),
		TransferDate:  t.TransferDate,
	}
}

// ToListTransferResponse converts a slice of domain.Transfer to a slice of TransferResponse DTOs
func ToListTransferResponse(transfers []domain.Transfer) []TransferResponse {
	res := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		res[i] = ToTransferResponse(&t)
	}
	return res
}
