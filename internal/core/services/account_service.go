package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

const msgDuplicateAccountFmt = "Cannot add account, '%s' already in database"

// accountService implements portssvc.AccountSvcFacade
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount resolves the currency and inserts the account with its opening funds.
// Absent funds open the account at zero.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	funds := decimal.Zero
	if req.Funds != nil {
		funds = *req.Funds
	}

	account := domain.Account{
		Name:        req.Name,
		Description: req.Description,
		CurrencyID:  req.CurrencyID,
		Funds:       funds,
	}

	err := s.accountRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if _, err := resolveCurrency(ctx, tx, req.CurrencyID); err != nil {
			return err
		}
		if funds.IsNegative() {
			return apperrors.NewFieldError(apperrors.ErrValidation, "funds", dto.MsgNegativeValue)
		}
		return tx.SaveAccount(ctx, &account)
	})
	if err != nil {
		err = translateDuplicate(err, msgDuplicateAccountFmt, req.Name)
		s.LogFailure(ctx, err, "Failed to create account", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.Int64("account_id", account.ID),
		slog.String("name", account.Name),
		slog.String("funds", account.Funds.StringFixed(domain.MoneyDecimalPlaces)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account by ID in service: %w", err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts in service: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) CountAccounts(ctx context.Context) (int64, error) {
	count, err := s.accountRepo.CountAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts in service: %w", err)
	}
	return count, nil
}

// resolveCurrency loads the currency inside the unit of work, attributing a miss to the currency field.
func resolveCurrency(ctx context.Context, tx portsrepo.LedgerTx, currencyID int64) (*domain.Currency, error) {
	currency, err := tx.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, notFoundChoice("currency", currencyID)
		}
		return nil, err
	}
	return currency, nil
}
