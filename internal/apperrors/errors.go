package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the store aborted the operation because of a concurrent update.
var ErrConflict = errors.New("concurrent update conflict")

// Ledger rule violations.
var (
	ErrInvalidCurrency         = errors.New("invalid currency")
	ErrInvalidTransferCurrency = errors.New("invalid transfer currency")
	ErrInvalidDepositAmount    = errors.New("invalid deposit amount")
	ErrInvalidWithdrawAmount   = errors.New("invalid withdraw amount")
	ErrSameAccountTransfer     = errors.New("cannot transfer to same account")
)

// FieldInternal is the catch-all slot for errors not tied to a single input field.
const FieldInternal = "internal"

// LedgerError is a rule violation reported to the caller verbatim.
// Error returns Message unchanged; Unwrap returns Kind so errors.Is works on the sentinels above.
type LedgerError struct {
	Kind    error
	Field   string
	Message string
}

func (e *LedgerError) Error() string { return e.Message }

func (e *LedgerError) Unwrap() error { return e.Kind }

// NewLedgerError builds a LedgerError reported in the internal slot.
func NewLedgerError(kind error, message string) *LedgerError {
	return &LedgerError{Kind: kind, Field: FieldInternal, Message: message}
}

// NewFieldError builds a LedgerError attributed to a single input field.
func NewFieldError(kind error, field, message string) *LedgerError {
	return &LedgerError{Kind: kind, Field: field, Message: message}
}

// AppError wraps an infrastructure failure with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }
