package services

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
)

const (
	msgInvalidCurrencySymbol = "Currency symbol must be exactly 3 characters long"
	msgDuplicateCurrencyFmt  = "Cannot add currency, '%s' already in database"
)

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryWithTx
}

// NewCurrencyService creates a currency service backed by the given repository.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryWithTx) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	if utf8.RuneCountInString(req.Symbol) != domain.CurrencySymbolLength {
		err := apperrors.NewLedgerError(apperrors.ErrInvalidCurrency, msgInvalidCurrencySymbol)
		s.LogFailure(ctx, err, "Currency rejected", slog.String("symbol", req.Symbol))
		return nil, err
	}

	currency := domain.Currency{Symbol: req.Symbol}
	err := s.currencyRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return tx.SaveCurrency(ctx, &currency)
	})
	if err != nil {
		err = translateDuplicate(err, msgDuplicateCurrencyFmt, req.Symbol)
		s.LogFailure(ctx, err, "Failed to create currency", slog.String("symbol", req.Symbol))
		return nil, err
	}

	s.LogInfo(ctx, "Currency created", slog.Int64("currency_id", currency.ID), slog.String("symbol", currency.Symbol))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by ID in service: %w", err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *currencyService) CountCurrencies(ctx context.Context) (int64, error) {
	count, err := s.currencyRepo.CountCurrencies(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count currencies in service: %w", err)
	}
	return count, nil
}
