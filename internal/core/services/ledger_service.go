package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/utils/accounting"
)

// Messages returned verbatim to callers.
const (
	msgDepositCurrencyMismatch   = "Account currency does not match deposit currency"
	msgDepositNotPositive        = "Deposit amount must be higher than 0"
	msgWithdrawCurrencyMismatch  = "Account currency does not match withdrawal currency"
	msgWithdrawNotPositive       = "Withdraw amount must be higher than 0"
	msgWithdrawInsufficientFunds = "Withdraw amount cannot be higher than available funds"
	msgSameAccountTransfer       = "Source account is same as target account, its not allowed."
	msgSourceCurrencyMismatch    = "Source account currency does not match transfer currency"
	msgTargetCurrencyMismatch    = "Target account currency does not match transfer currency"
	msgTransferNotPositive       = "Transfer amount must be higher than 0"
	msgTransferInsufficientFunds = "Transfer amount cannot be higher than available funds on source account"
	msgDepositFundsLimit         = "Deposit amount would bring account funds above 9999999999.99"
	msgTransferFundsLimit        = "Transfer amount would bring target account funds above 9999999999.99"
)

// Input fields that reference accounts.
const (
	fieldToAccount   = "to_account"
	fieldFromAccount = "from_account"
)

type ledgerService struct {
	BaseService
	transferRepo portsrepo.TransferRepositoryWithTx
}

// NewLedgerService creates the service that moves money and reads the transfer log.
func NewLedgerService(transferRepo portsrepo.TransferRepositoryWithTx) portssvc.LedgerSvcFacade {
	return &ledgerService{transferRepo: transferRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Deposit credits an account. Rules are checked after the account row is locked,
// so the funds seen are the ones the update applies to.
func (s *ledgerService) Deposit(ctx context.Context, req dto.DepositRequest) (*domain.Transfer, error) {
	toID := req.ToAccountID
	transfer := domain.Transfer{
		Name:        req.Name,
		ToAccountID: &toID,
		CurrencyID:  req.CurrencyID,
		Value:       req.Value,
	}

	var symbol string
	err := s.transferRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		accounts, err := tx.LockAccountsForUpdate(ctx, []int64{toID})
		if err != nil {
			return err
		}
		account, ok := accounts[toID]
		if !ok {
			return notFoundChoice(fieldToAccount, toID)
		}
		currency, err := resolveCurrency(ctx, tx, req.CurrencyID)
		if err != nil {
			return err
		}
		symbol = currency.Symbol

		if !account.HasCurrency(req.CurrencyID) {
			return apperrors.NewLedgerError(apperrors.ErrInvalidTransferCurrency, msgDepositCurrencyMismatch)
		}
		if !req.Value.IsPositive() {
			return apperrors.NewLedgerError(apperrors.ErrInvalidDepositAmount, msgDepositNotPositive)
		}
		if !account.CanReceive(req.Value) {
			return apperrors.NewLedgerError(apperrors.ErrInvalidDepositAmount, msgDepositFundsLimit)
		}

		return s.record(ctx, tx, &transfer)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Deposit failed", slog.Int64("to_account_id", toID))
		return nil, err
	}

	s.LogInfo(ctx, "Deposit recorded", slog.Int64("transfer_id", transfer.ID), slog.String("transfer", transfer.Describe(symbol)))
	return &transfer, nil
}

// Withdraw debits an account. A withdrawal may bring funds to exactly zero.
func (s *ledgerService) Withdraw(ctx context.Context, req dto.WithdrawRequest) (*domain.Transfer, error) {
	fromID := req.FromAccountID
	transfer := domain.Transfer{
		Name:          req.Name,
		FromAccountID: &fromID,
		CurrencyID:    req.CurrencyID,
		Value:         req.Value,
	}

	var symbol string
	err := s.transferRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		accounts, err := tx.LockAccountsForUpdate(ctx, []int64{fromID})
		if err != nil {
			return err
		}
		account, ok := accounts[fromID]
		if !ok {
			return notFoundChoice(fieldFromAccount, fromID)
		}
		currency, err := resolveCurrency(ctx, tx, req.CurrencyID)
		if err != nil {
			return err
		}
		symbol = currency.Symbol

		if !account.HasCurrency(req.CurrencyID) {
			return apperrors.NewLedgerError(apperrors.ErrInvalidTransferCurrency, msgWithdrawCurrencyMismatch)
		}
		if !req.Value.IsPositive() {
			return apperrors.NewLedgerError(apperrors.ErrInvalidWithdrawAmount, msgWithdrawNotPositive)
		}
		if !account.CanCover(req.Value) {
			return apperrors.NewLedgerError(apperrors.ErrInvalidWithdrawAmount, msgWithdrawInsufficientFunds)
		}

		return s.record(ctx, tx, &transfer)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Withdrawal failed", slog.Int64("from_account_id", fromID))
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal recorded", slog.Int64("transfer_id", transfer.ID), slog.String("transfer", transfer.Describe(symbol)))
	return &transfer, nil
}

// Transfer moves funds between two accounts of the same currency.
// Both rows are locked lower id first.
func (s *ledgerService) Transfer(ctx context.Context, req dto.TransferRequest) (*domain.Transfer, error) {
	fromID, toID := req.FromAccountID, req.ToAccountID
	transfer := domain.Transfer{
		Name:          req.Name,
		FromAccountID: &fromID,
		ToAccountID:   &toID,
		CurrencyID:    req.CurrencyID,
		Value:         req.Value,
	}

	var symbol string
	err := s.transferRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		lockIDs := []int64{fromID, toID}
		slices.Sort(lockIDs)
		accounts, err := tx.LockAccountsForUpdate(ctx, slices.Compact(lockIDs))
		if err != nil {
			return err
		}
		from, ok := accounts[fromID]
		if !ok {
			return notFoundChoice(fieldFromAccount, fromID)
		}
		to, ok := accounts[toID]
		if !ok {
			return notFoundChoice(fieldToAccount, toID)
		}
		currency, err := resolveCurrency(ctx, tx, req.CurrencyID)
		if err != nil {
			return err
		}
		symbol = currency.Symbol

		if fromID == toID {
			return apperrors.NewLedgerError(apperrors.ErrSameAccountTransfer, msgSameAccountTransfer)
		}
		if !from.HasCurrency(req.CurrencyID) {
			return apperrors.NewLedgerError(apperrors.ErrInvalidTransferCurrency, msgSourceCurrencyMismatch)
		}
		if !to.HasCurrency(req.CurrencyID) {
			return apperrors.NewLedgerError(apperrors.ErrInvalidTransferCurrency, msgTargetCurrencyMismatch)
		}
		if !req.Value.IsPositive() {
			return apperrors.NewLedgerError(apperrors.ErrInvalidWithdrawAmount, msgTransferNotPositive)
		}
		if !from.CanCover(req.Value) {
			return apperrors.NewLedgerError(apperrors.ErrInvalidWithdrawAmount, msgTransferInsufficientFunds)
		}
		if !to.CanReceive(req.Value) {
			return apperrors.NewLedgerError(apperrors.ErrInvalidWithdrawAmount, msgTransferFundsLimit)
		}

		return s.record(ctx, tx, &transfer)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Transfer failed", slog.Int64("from_account_id", fromID), slog.Int64("to_account_id", toID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer recorded", slog.Int64("transfer_id", transfer.ID), slog.String("transfer", transfer.Describe(symbol)))
	return &transfer, nil
}

// record appends the transfer and applies its balance changes in the open unit of work.
func (s *ledgerService) record(ctx context.Context, tx portsrepo.LedgerTx, transfer *domain.Transfer) error {
	changes := accounting.BalanceChanges(*transfer)
	s.LogDebug(ctx, "Applying balance changes", slog.String("kind", string(transfer.Kind())), slog.Any("changes", changes))
	if transfer.Kind() == domain.KindTransfer {
		if err := accounting.ValidateBalanced(changes); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	if err := tx.SaveTransfer(ctx, transfer); err != nil {
		return fmt.Errorf("failed to save transfer: %w", err)
	}
	if err := tx.UpdateAccountBalances(ctx, changes); err != nil {
		return fmt.Errorf("failed to update account funds: %w", err)
	}
	return nil
}

func (s *ledgerService) GetTransferByID(ctx context.Context, transferID int64) (*domain.Transfer, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer by ID in service: %w", err)
	}
	return transfer, nil
}

func (s *ledgerService) ListTransfers(ctx context.Context) ([]domain.Transfer, error) {
	transfers, err := s.transferRepo.ListTransfers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transfers")
		return nil, fmt.Errorf("failed to list transfers in service: %w", err)
	}
	if transfers == nil {
		return []domain.Transfer{}, nil
	}
	return transfers, nil
}

// ListTransfersByAccount returns the history of one account. An unknown account has an empty history.
func (s *ledgerService) ListTransfersByAccount(ctx context.Context, accountID int64) ([]domain.Transfer, error) {
	transfers, err := s.transferRepo.ListTransfersByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transfers by account", slog.Int64("account_id", accountID))
		return nil, fmt.Errorf("failed to list transfers for account %d in service: %w", accountID, err)
	}
	if transfers == nil {
		return []domain.Transfer{}, nil
	}
	return transfers, nil
}

func (s *ledgerService) CountTransfers(ctx context.Context) (int64, error) {
	count, err := s.transferRepo.CountTransfers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count transfers in service: %w", err)
	}
	return count, nil
}
