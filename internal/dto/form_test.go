package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawValue_UnmarshalJSON(t *testing.T) {
	var body struct {
		A dto.RawValue `json:"a"`
		B dto.RawValue `json:"b"`
		C dto.RawValue `json:"c"`
	}
	err := json.Unmarshal([]byte(`{"a": "12.50", "b": 12.50, "c": null}`), &body)

	require.NoError(t, err)
	assert.Equal(t, dto.RawValue("12.50"), body.A)
	assert.Equal(t, dto.RawValue("12.50"), body.B)
	assert.Equal(t, dto.RawValue(""), body.C)
}

func TestDepositForm_ToRequest(t *testing.T) {
	errs := dto.FieldErrors{}
	req := dto.DepositForm{Name: "d1", ToAccount: "3", Currency: "1", Value: "50.00"}.ToRequest(errs)

	assert.Empty(t, errs)
	assert.Equal(t, "d1", req.Name)
	assert.Equal(t, int64(3), req.ToAccountID)
	assert.Equal(t, int64(1), req.CurrencyID)
	assert.True(t, decimal.RequireFromString("50").Equal(req.Value))
}

func TestDepositForm_ToRequest_InvalidValue(t *testing.T) {
	tests := []struct {
		value dto.RawValue
		want  string
	}{
		{value: "-1", want: dto.MsgNegativeValue},
		{value: "abc", want: dto.MsgEnterNumber},
		{value: "1.001", want: dto.MsgTooManyDecimals},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			errs := dto.FieldErrors{}
			dto.DepositForm{Name: "d1", ToAccount: "1", Currency: "1", Value: tt.value}.ToRequest(errs)

			assert.Equal(t, dto.FieldErrors{"value": {tt.want}}, errs)
		})
	}
}

func TestTransferForm_ToRequest_InvalidIDs(t *testing.T) {
	errs := dto.FieldErrors{}
	dto.TransferForm{Name: "t", FromAccount: "x", ToAccount: "2", Currency: "1.5", Value: "1"}.ToRequest(errs)

	assert.Equal(t, dto.FieldErrors{
		"from_account": {"Select a valid choice. x is not one of the available choices."},
		"currency":     {"Select a valid choice. 1.5 is not one of the available choices."},
	}, errs)
}

func TestParse_SkipsFieldsWithBindingErrors(t *testing.T) {
	errs := dto.FieldErrors{"value": {dto.MsgRequired}}
	dto.WithdrawForm{Name: "w", FromAccount: "1", Currency: "1"}.ToRequest(errs)

	assert.Equal(t, dto.FieldErrors{"value": {dto.MsgRequired}}, errs)
}

func TestCreateAccountForm_ToRequest_Funds(t *testing.T) {
	errs := dto.FieldErrors{}
	omitted := dto.CreateAccountForm{Name: "A", Currency: "1"}.ToRequest(errs)
	assert.Nil(t, omitted.Funds)

	given := dto.CreateAccountForm{Name: "A", Currency: "1", Funds: "100"}.ToRequest(errs)
	require.NotNil(t, given.Funds)
	assert.True(t, decimal.NewFromInt(100).Equal(*given.Funds))
	assert.Empty(t, errs)

	dto.CreateAccountForm{Name: "A", Currency: "1", Funds: "-1"}.ToRequest(errs)
	assert.Equal(t, dto.FieldErrors{"funds": {"Value cannot be less than 0"}}, errs)
}

func TestCreateCurrencyForm_UpperCases(t *testing.T) {
	req := dto.CreateCurrencyForm{Symbol: "usd"}.ToRequest(dto.FieldErrors{})
	assert.Equal(t, "USD", req.Symbol)
}

func TestHistoryFilterForm(t *testing.T) {
	errs := dto.FieldErrors{}
	assert.Nil(t, dto.HistoryFilterForm{}.ToAccountID(errs))

	id := dto.HistoryFilterForm{ByAccount: "4"}.ToAccountID(errs)
	require.NotNil(t, id)
	assert.Equal(t, int64(4), *id)
	assert.Empty(t, errs)
}

func TestLengthMessages(t *testing.T) {
	assert.Equal(t, "Ensure this value has at most 3 characters (it has 4).", dto.MaxLengthMessage("3", 4))
	assert.Equal(t, "Ensure this value has at least 3 characters (it has 2).", dto.MinLengthMessage("3", 2))
}

func TestDepositForm_ToRequest_DigitLimits(t *testing.T) {
	tests := []struct {
		value dto.RawValue
		want  string
	}{
		{value: "1e50000000", want: dto.MsgTooManyDigits},
		{value: "1e-50000000", want: dto.MsgTooManyDigits},
		{value: "123456789012345", want: dto.MsgTooManyDigits},
		{value: "12345678901", want: dto.MsgTooManyWhole},
		{value: "12345678901.0", want: dto.MsgTooManyWhole},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			errs := dto.FieldErrors{}
			req := dto.DepositForm{Name: "d1", ToAccount: "1", Currency: "1", Value: tt.value}.ToRequest(errs)

			assert.Equal(t, dto.FieldErrors{"value": {tt.want}}, errs)
			assert.True(t, req.Value.IsZero())
		})
	}
}

func TestDepositForm_ToRequest_LargestAmount(t *testing.T) {
	errs := dto.FieldErrors{}
	req := dto.DepositForm{Name: "d1", ToAccount: "1", Currency: "1", Value: "9999999999.99"}.ToRequest(errs)

	assert.Empty(t, errs)
	assert.True(t, decimal.RequireFromString("9999999999.99").Equal(req.Value))
}

func TestCreateAccountForm_ToRequest_FundsTooLarge(t *testing.T) {
	errs := dto.FieldErrors{}
	dto.CreateAccountForm{Name: "A", Currency: "1", Funds: "1e20"}.ToRequest(errs)

	assert.Equal(t, dto.FieldErrors{"funds": {dto.MsgTooManyDigits}}, errs)
}

func TestRawValue_TrimsWhitespace(t *testing.T) {
	var body struct {
		Name dto.RawValue `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"name": "  Main  "}`), &body))
	assert.Equal(t, dto.RawValue("Main"), body.Name)

	var param dto.RawValue
	require.NoError(t, param.UnmarshalParam("   "))
	assert.Equal(t, dto.RawValue(""), param)
}
