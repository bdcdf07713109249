package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// Form error messages shown to clients. Kept identical to the texts existing clients expect.
const (
	MsgRequired         = "This field is required."
	MsgEnterNumber      = "Enter a number."
	MsgNegativeValue    = "Value cannot be less than 0"
	MsgTooManyDecimals  = "Ensure that there are no more than 2 decimal places."
	MsgTooManyDigits    = "Ensure that there are no more than 12 digits in total."
	MsgTooManyWhole     = "Ensure that there are no more than 10 digits before the decimal point."
	msgInvalidChoiceFmt = "Select a valid choice. %s is not one of the available choices."
	msgMaxLengthFmt     = "Ensure this value has at most %s characters (it has %d)."
	msgMinLengthFmt     = "Ensure this value has at least %s characters (it has %d)."
)

// InvalidChoiceMessage is reported when an identifier does not name an existing row.
func InvalidChoiceMessage(raw string) string {
	return fmt.Sprintf(msgInvalidChoiceFmt, raw)
}

// MaxLengthMessage is reported when a text field exceeds its limit.
func MaxLengthMessage(limit string, got int) string {
	return fmt.Sprintf(msgMaxLengthFmt, limit, got)
}

// MinLengthMessage is reported when a text field is shorter than its minimum.
func MinLengthMessage(limit string, got int) string {
	return fmt.Sprintf(msgMinLengthFmt, limit, got)
}

// RawValue is an unparsed input value. It binds from form fields and from JSON
// strings or numbers, so amounts keep their exact decimal text. Surrounding
// whitespace is dropped before validation, so a blank value counts as missing.
type RawValue string

// UnmarshalParam implements binding.BindUnmarshaler for form and query values.
func (r *RawValue) UnmarshalParam(param string) error {
	*r = RawValue(strings.TrimSpace(param))
	return nil
}

// UnmarshalJSON accepts both `"12.50"` and `12.50`.
func (r *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RawValue(strings.TrimSpace(s))
		return nil
	}
	*r = RawValue(data)
	return nil
}

func (r RawValue) String() string { return string(r) }

// FieldErrors collects error messages per input field; the "internal" key holds
// errors that do not belong to a single field.
type FieldErrors map[string][]string

// Add appends a message for field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether field already has an error.
func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// ErrorResponse is the body returned for any failed request.
type ErrorResponse struct {
	Errors FieldErrors `json:"errors"`
}

// parseID parses an identifier field; invalid text is reported as an invalid choice.
func parseID(errs FieldErrors, field string, raw RawValue) int64 {
	if errs.Has(field) {
		return 0
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw.String()), 10, 64)
	if err != nil {
		errs.Add(field, InvalidChoiceMessage(raw.String()))
		return 0
	}
	return id
}

// parseAmount parses a non-negative money amount that fits NUMERIC(12,2).
// Digits are counted before anything rescales or formats the amount.
func parseAmount(errs FieldErrors, field string, raw RawValue) decimal.Decimal {
	if errs.Has(field) {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(raw.String()))
	if err != nil {
		errs.Add(field, MsgEnterNumber)
		return decimal.Zero
	}
	digits, decimals := utils.MoneyDigits(amount)
	if digits > domain.MoneyMaxDigits {
		errs.Add(field, MsgTooManyDigits)
		return decimal.Zero
	}
	if digits-decimals > domain.MoneyMaxDigits-domain.MoneyDecimalPlaces {
		errs.Add(field, MsgTooManyWhole)
		return decimal.Zero
	}
	if amount.IsNegative() {
		errs.Add(field, MsgNegativeValue)
		return decimal.Zero
	}
	if !utils.HasMoneyPrecision(amount) {
		errs.Add(field, MsgTooManyDecimals)
		return decimal.Zero
	}
	return amount
}
