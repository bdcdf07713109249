package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/core/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockTx   *MockLedgerTx
	mockRepo *MockTransferRepository
	service  portssvc.LedgerSvcFacade
	usd      *domain.Currency
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockTx = new(MockLedgerTx)
	suite.mockRepo = &MockTransferRepository{mockTxManager: mockTxManager{Tx: suite.mockTx}}
	suite.service = services.NewLedgerService(suite.mockRepo)
	suite.usd = &domain.Currency{ID: 1, Symbol: "USD"}
}

func account(id, currencyID int64, funds string) domain.Account {
	return domain.Account{ID: id, Name: "acc", CurrencyID: currencyID, Funds: decimal.RequireFromString(funds)}
}

func amount(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func (suite *LedgerServiceTestSuite) assertNoWrites() {
	suite.mockTx.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything)
	suite.mockTx.AssertNotCalled(suite.T(), "UpdateAccountBalances", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) assertLedgerError(err error, kind error, message string) {
	suite.Require().Error(err)
	suite.ErrorIs(err, kind)
	suite.EqualError(err, message)
}

// --- Deposit ---

func (suite *LedgerServiceTestSuite) TestDeposit_Success() {
	suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{4}).
		Return(map[int64]domain.Account{4: account(4, 1, "10.00")}, nil).Once()
	suite.mockTx.On("FindCurrencyByID", suite.ctx, int64(1)).Return(suite.usd, nil).Once()
	suite.mockTx.On("SaveTransfer", suite.ctx, mock.MatchedBy(func(t *domain.Transfer) bool {
		return t.FromAccountID == nil && *t.ToAccountID == 4 && t.Value.Equal(amount("50.00")) && t.Name == "d1"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Transfer).ID = 11
	}).Return(nil).Once()
	suite.mockTx.On("UpdateAccountBalances", suite.ctx, mock.MatchedBy(func(changes map[int64]decimal.Decimal) bool {
		return len(changes) == 1 && changes[4].Equal(amount("50.00"))
	})).Return(nil).Once()

	transfer, err := suite.service.Deposit(suite.ctx, dto.DepositRequest{Name: "d1", ToAccountID: 4, CurrencyID: 1, Value: amount("50.00")})

	suite.Require().NoError(err)
	suite.Equal(int64(11), transfer.ID)
	suite.Equal(domain.KindDeposit, transfer.Kind())
	suite.mockTx.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeposit_UnknownAccount() {
	suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{4}).Return(map[int64]domain.Account{}, nil).Once()

	_, err := suite.service.Deposit(suite.ctx, dto.DepositRequest{ToAccountID: 4, CurrencyID: 1, Value: amount("1")})

	var ledgerErr *apperrors.LedgerError
	suite.Require().ErrorAs(err, &ledgerErr)
	suite.Equal("to_account", ledgerErr.Field)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTx.AssertNotCalled(suite.T(), "FindCurrencyByID", mock.Anything, mock.Anything)
	suite.assertNoWrites()
}

func (suite *LedgerServiceTestSuite) TestDeposit_UnknownCurrency() {
	suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{4}).
		Return(map[int64]domain.Account{4: account(4, 1, "0")}, nil).Once()
	suite.mockTx.On("FindCurrencyByID", suite.ctx, int64(8)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Deposit(suite.ctx, dto.DepositRequest{ToAccountID: 4, CurrencyID: 8, Value: amount("1")})

	var ledgerErr *apperrors.LedgerError
	suite.Require().ErrorAs(err, &ledgerErr)
	suite.Equal("currency", ledgerErr.Field)
	suite.assertNoWrites()
}

func (suite *LedgerServiceTestSuite) TestDeposit_CurrencyMismatchBeforeAmount() {
	suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{4}).
		Return(map[int64]domain.Account{4: account(4, 2, "0")}, nil).Once()
	suite.mockTx.On("FindCurrencyByID", suite.ctx, int64(1)).Return(suite.usd, nil).Once()

	_, err := suite.service.Deposit(suite.ctx, dto.DepositRequest{ToAccountID: 4, CurrencyID: 1, Value: amount("0")})

	suite.assertLedgerError(err, apperrors.ErrInvalidTransferCurrency, "Account currency does not match deposit currency")
	suite.assertNoWrites()
}

func (suite *LedgerServiceTestSuite) TestDeposit_NonPositive() {
	for _, v := range []string{"0", "-5"} {
		suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{4}).
			Return(map[int64]domain.Account{4: account(4, 1, "0")}, nil).Once()
		suite.mockTx.On("FindCurrencyByID", suite.ctx, int64(1)).Return(suite.usd, nil).Once()

		_, err := suite.service.Deposit(suite.ctx, dto.DepositRequest{ToAccountID: 4, CurrencyID: 1, Value: amount(v)})

		suite.assertLedgerError(err, apperrors.ErrInvalidDepositAmount, "Deposit amount must be higher than 0")
	}
	suite.assertNoWrites()
}

func (suite *LedgerServiceTestSuite) TestDeposit_FundsCeiling() {
	suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{4}).
		Return(map[int64]domain.Account{4: account(4, 1, "9999999999.00")}, nil).Once()
	suite.mockTx.On("FindCurrencyByID", suite.ctx, int64(1)).Return(suite.usd, nil).Once()

	_, err := suite.service.Deposit(suite.ctx, dto.DepositRequest{ToAccountID: 4, CurrencyID: 1, Value: amount("1.00")})

	suite.assertLedgerError(err, apperrors.ErrInvalidDepositAmount, "Deposit amount would bring account funds above 9999999999.99")
	suite.assertNoWrites()
}

func (suite *LedgerServiceTestSuite) TestDeposit_StoreFailurePropagates() {
	suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{4}).Return(nil, assert.AnError).Once()

	transfer, err := suite.service.Deposit(suite.ctx, dto.DepositRequest{ToAccountID: 4, CurrencyID: 1, Value: amount("1")})

	suite.Nil(transfer)
	suite.ErrorIs(err, assert.AnError)
}

// --- Withdraw ---

func (suite *LedgerServiceTestSuite) TestWithdraw_ExactFunds() {
	suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{4}).
		Return(map[int64]domain.Account{4: account(4, 1, "25.50")}, nil).Once()
	suite.mockTx.On("FindCurrencyByID", suite.ctx, int64(1)).Return(suite.usd, nil).Once()
	suite.mockTx.On("SaveTransfer", suite.ctx, mock.MatchedBy(func(t *domain.Transfer) bool {
		return *t.FromAccountID == 4 && t.ToAccountID == nil
	})).Return(nil).Once()
	suite.mockTx.On("UpdateAccountBalances", suite.ctx, mock.MatchedBy(func(changes map[int64]decimal.Decimal) bool {
		return changes[4].Equal(amount("-25.50"))
	})).Return(nil).Once()

	transfer, err := suite.service.Withdraw(suite.ctx, dto.WithdrawRequest{FromAccountID: 4, CurrencyID: 1, Value: amount("25.50")})

	suite.Require().NoError(err)
	suite.Equal(domain.KindWithdrawal, transfer.Kind())
	suite.mockTx.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestWithdraw_Rules() {
	tests := []struct {
		name     string
		account  domain.Account
		value    string
		kind     error
		expected string
	}{
		{"currency mismatch", account(4, 2, "100"), "1", apperrors.ErrInvalidTransferCurrency, "Account currency does not match withdrawal currency"},
		{"zero", account(4, 1, "100"), "0", apperrors.ErrInvalidWithdrawAmount, "Withdraw amount must be higher than 0"},
		{"negative", account(4, 1, "100"), "-1", apperrors.ErrInvalidWithdrawAmount, "Withdraw amount must be higher than 0"},
		{"overdraft", account(4, 1, "100"), "100.01", apperrors.ErrInvalidWithdrawAmount, "Withdraw amount cannot be higher than available funds"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{4}).
				Return(map[int64]domain.Account{4: tt.account}, nil).Once()
			suite.mockTx.On("FindCurrencyByID", suite.ctx, int64(1)).Return(suite.usd, nil).Once()

			_, err := suite.service.Withdraw(suite.ctx, dto.WithdrawRequest{FromAccountID: 4, CurrencyID: 1, Value: amount(tt.value)})

			suite.assertLedgerError(err, tt.kind, tt.expected)
			suite.assertNoWrites()
		})
	}
}

func (suite *LedgerServiceTestSuite) TestWithdraw_UnknownAccount() {
	suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{9}).Return(map[int64]domain.Account{}, nil).Once()

	_, err := suite.service.Withdraw(suite.ctx, dto.WithdrawRequest{FromAccountID: 9, CurrencyID: 1, Value: amount("1")})

	var ledgerErr *apperrors.LedgerError
	suite.Require().ErrorAs(err, &ledgerErr)
	suite.Equal("from_account", ledgerErr.Field)
	suite.Equal("Select a valid choice. 9 is not one of the available choices.", ledgerErr.Message)
}

// --- Transfer ---

func (suite *LedgerServiceTestSuite) TestTransfer_LocksLowerIDFirst() {
	suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{2, 5}).
		Return(map[int64]domain.Account{2: account(2, 1, "0"), 5: account(5, 1, "30")}, nil).Once()
	suite.mockTx.On("FindCurrencyByID", suite.ctx, int64(1)).Return(suite.usd, nil).Once()
	suite.mockTx.On("SaveTransfer", suite.ctx, mock.AnythingOfType("*domain.Transfer")).Return(nil).Once()
	suite.mockTx.On("UpdateAccountBalances", suite.ctx, mock.MatchedBy(func(changes map[int64]decimal.Decimal) bool {
		return changes[5].Equal(amount("-30")) && changes[2].Equal(amount("30"))
	})).Return(nil).Once()

	transfer, err := suite.service.Transfer(suite.ctx, dto.TransferRequest{FromAccountID: 5, ToAccountID: 2, CurrencyID: 1, Value: amount("30")})

	suite.Require().NoError(err)
	suite.Equal(domain.KindTransfer, transfer.Kind())
	suite.mockTx.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_SameAccount() {
	suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{3}).
		Return(map[int64]domain.Account{3: account(3, 1, "100")}, nil).Once()
	suite.mockTx.On("FindCurrencyByID", suite.ctx, int64(1)).Return(suite.usd, nil).Once()

	_, err := suite.service.Transfer(suite.ctx, dto.TransferRequest{FromAccountID: 3, ToAccountID: 3, CurrencyID: 1, Value: amount("1")})

	suite.assertLedgerError(err, apperrors.ErrSameAccountTransfer, "Source account is same as target account, its not allowed.")
	suite.assertNoWrites()
}

func (suite *LedgerServiceTestSuite) TestTransfer_Rules() {
	tests := []struct {
		name     string
		from, to domain.Account
		value    string
		kind     error
		expected string
	}{
		{"source currency", account(1, 2, "100"), account(2, 1, "0"), "1", apperrors.ErrInvalidTransferCurrency, "Source account currency does not match transfer currency"},
		{"target currency", account(1, 1, "100"), account(2, 2, "0"), "1", apperrors.ErrInvalidTransferCurrency, "Target account currency does not match transfer currency"},
		{"zero", account(1, 1, "100"), account(2, 1, "0"), "0", apperrors.ErrInvalidWithdrawAmount, "Transfer amount must be higher than 0"},
		{"overdraft", account(1, 1, "1000"), account(2, 1, "1000"), "1000.01", apperrors.ErrInvalidWithdrawAmount, "Transfer amount cannot be higher than available funds on source account"},
		{"target ceiling", account(1, 1, "10"), account(2, 1, "9999999999.99"), "0.01", apperrors.ErrInvalidWithdrawAmount, "Transfer amount would bring target account funds above 9999999999.99"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{1, 2}).
				Return(map[int64]domain.Account{1: tt.from, 2: tt.to}, nil).Once()
			suite.mockTx.On("FindCurrencyByID", suite.ctx, int64(1)).Return(suite.usd, nil).Once()

			_, err := suite.service.Transfer(suite.ctx, dto.TransferRequest{FromAccountID: 1, ToAccountID: 2, CurrencyID: 1, Value: amount(tt.value)})

			suite.assertLedgerError(err, tt.kind, tt.expected)
			suite.assertNoWrites()
		})
	}
}

func (suite *LedgerServiceTestSuite) TestTransfer_MissingTargetAttributed() {
	suite.mockTx.On("LockAccountsForUpdate", suite.ctx, []int64{1, 2}).
		Return(map[int64]domain.Account{1: account(1, 1, "10")}, nil).Once()

	_, err := suite.service.Transfer(suite.ctx, dto.TransferRequest{FromAccountID: 1, ToAccountID: 2, CurrencyID: 1, Value: amount("1")})

	var ledgerErr *apperrors.LedgerError
	suite.Require().ErrorAs(err, &ledgerErr)
	suite.Equal("to_account", ledgerErr.Field)
}

// --- History ---

func (suite *LedgerServiceTestSuite) TestListTransfersByAccount_EmptyIsNotNil() {
	suite.mockRepo.On("ListTransfersByAccount", suite.ctx, int64(42)).Return(nil, nil).Once()

	transfers, err := suite.service.ListTransfersByAccount(suite.ctx, 42)

	suite.Require().NoError(err)
	suite.NotNil(transfers)
	suite.Empty(transfers)
}

func (suite *LedgerServiceTestSuite) TestGetTransferByID_NotFound() {
	suite.mockRepo.On("FindTransferByID", suite.ctx, int64(1)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetTransferByID(suite.ctx, 1)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestCountTransfers() {
	suite.mockRepo.On("CountTransfers", suite.ctx).Return(int64(4), nil).Once()

	count, err := suite.service.CountTransfers(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(4), count)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
