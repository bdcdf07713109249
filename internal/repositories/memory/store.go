// Package memory is an in-process ledger store. A single store-wide lock is held for
// the whole unit of work, so units of work are serialized; writes are staged and
// only become visible on commit.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Store keeps currencies, accounts and transfers in maps guarded by one RWMutex.
type Store struct {
	mu         sync.RWMutex
	currencies map[int64]domain.Currency
	accounts   map[int64]domain.Account
	transfers  []domain.Transfer

	lastCurrencyID int64
	lastAccountID  int64
	lastTransferID int64

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		currencies: make(map[int64]domain.Currency),
		accounts:   make(map[int64]domain.Account),
		now:        time.Now,
	}
}

// NewRepositoryProvider exposes one shared store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo: store,
		AccountRepo:  store,
		TransferRepo: store,
	}
}

var (
	_ portsrepo.CurrencyRepositoryWithTx = (*Store)(nil)
	_ portsrepo.AccountRepositoryWithTx  = (*Store)(nil)
	_ portsrepo.TransferRepositoryWithTx = (*Store)(nil)
)

// WithinTx runs fn while holding the store lock. Staged writes are applied only
// when fn returns nil; an error or panic discards them.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newStagedTx(s)
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return tx.commit()
}

func (s *Store) FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	currency, ok := s.currencies[currencyID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &currency, nil
}

func (s *Store) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.currencies), nil
}

func (s *Store) CountCurrencies(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.currencies)), nil
}

func (s *Store) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.accounts), nil
}

func (s *Store) CountAccounts(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.accounts)), nil
}

func (s *Store) FindTransferByID(ctx context.Context, transferID int64) (*domain.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// transfers are appended with increasing ids
	i, found := slices.BinarySearchFunc(s.transfers, transferID, func(t domain.Transfer, id int64) int {
		return cmp.Compare(t.ID, id)
	})
	if !found {
		return nil, apperrors.ErrNotFound
	}
	transfer := s.transfers[i]
	return &transfer, nil
}

func (s *Store) ListTransfers(ctx context.Context) ([]domain.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.transfers), nil
}

func (s *Store) ListTransfersByAccount(ctx context.Context, accountID int64) ([]domain.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]domain.Transfer, 0)
	for _, t := range s.transfers {
		if t.Involves(accountID) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (s *Store) CountTransfers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.transfers)), nil
}

// stagedTx collects the writes of one unit of work. It is only used while the
// store lock is held.
type stagedTx struct {
	store      *Store
	currencies []domain.Currency
	accounts   []domain.Account
	transfers  []domain.Transfer
	deltas     map[int64]decimal.Decimal

	lastCurrencyID int64
	lastAccountID  int64
	lastTransferID int64
}

func newStagedTx(s *Store) *stagedTx {
	return &stagedTx{
		store:          s,
		deltas:         make(map[int64]decimal.Decimal),
		lastCurrencyID: s.lastCurrencyID,
		lastAccountID:  s.lastAccountID,
		lastTransferID: s.lastTransferID,
	}
}

var _ portsrepo.LedgerTx = (*stagedTx)(nil)

func (t *stagedTx) FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	if currency, ok := t.store.currencies[currencyID]; ok {
		return &currency, nil
	}
	for _, currency := range t.currencies {
		if currency.ID == currencyID {
			return &currency, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// LockAccountsForUpdate returns the accounts as this unit of work sees them,
// staged balance changes included.
func (t *stagedTx) LockAccountsForUpdate(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	accountsMap := make(map[int64]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		account, ok := t.findAccount(id)
		if !ok {
			continue
		}
		account.Funds = account.Funds.Add(t.deltas[id])
		accountsMap[id] = account
	}
	return accountsMap, nil
}

func (t *stagedTx) SaveCurrency(ctx context.Context, currency *domain.Currency) error {
	for _, existing := range t.store.currencies {
		if existing.Symbol == currency.Symbol {
			return fmt.Errorf("%w: currency symbol %s", apperrors.ErrDuplicate, currency.Symbol)
		}
	}
	for _, staged := range t.currencies {
		if staged.Symbol == currency.Symbol {
			return fmt.Errorf("%w: currency symbol %s", apperrors.ErrDuplicate, currency.Symbol)
		}
	}

	t.lastCurrencyID++
	currency.ID = t.lastCurrencyID
	t.currencies = append(t.currencies, *currency)
	return nil
}

func (t *stagedTx) SaveAccount(ctx context.Context, account *domain.Account) error {
	for _, existing := range t.store.accounts {
		if existing.Name == account.Name {
			return fmt.Errorf("%w: account name %s", apperrors.ErrDuplicate, account.Name)
		}
	}
	for _, staged := range t.accounts {
		if staged.Name == account.Name {
			return fmt.Errorf("%w: account name %s", apperrors.ErrDuplicate, account.Name)
		}
	}
	if _, err := t.FindCurrencyByID(ctx, account.CurrencyID); err != nil {
		return fmt.Errorf("account currency %d: %w", account.CurrencyID, err)
	}
	if account.Funds.IsNegative() {
		return fmt.Errorf("%w: account funds cannot be negative", apperrors.ErrValidation)
	}

	t.lastAccountID++
	account.ID = t.lastAccountID
	account.CreatedAt = t.store.now()
	t.accounts = append(t.accounts, *account)
	return nil
}

func (t *stagedTx) SaveTransfer(ctx context.Context, transfer *domain.Transfer) error {
	if err := transfer.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	for _, ref := range []*int64{transfer.FromAccountID, transfer.ToAccountID} {
		if ref == nil {
			continue
		}
		if _, ok := t.findAccount(*ref); !ok {
			return fmt.Errorf("transfer account %d: %w", *ref, apperrors.ErrNotFound)
		}
	}
	if _, err := t.FindCurrencyByID(ctx, transfer.CurrencyID); err != nil {
		return fmt.Errorf("transfer currency %d: %w", transfer.CurrencyID, err)
	}

	t.lastTransferID++
	transfer.ID = t.lastTransferID
	transfer.TransferDate = t.store.now()
	t.transfers = append(t.transfers, *transfer)
	return nil
}

func (t *stagedTx) UpdateAccountBalances(ctx context.Context, balanceChanges map[int64]decimal.Decimal) error {
	for id, delta := range balanceChanges {
		account, ok := t.findAccount(id)
		if !ok {
			return fmt.Errorf("%w: account %d not found during funds update", apperrors.ErrNotFound, id)
		}
		if account.Funds.Add(t.deltas[id]).Add(delta).IsNegative() {
			return fmt.Errorf("%w: funds of account %d would become negative", apperrors.ErrValidation, id)
		}
	}
	for id, delta := range balanceChanges {
		t.deltas[id] = t.deltas[id].Add(delta)
	}
	return nil
}

func (t *stagedTx) findAccount(id int64) (domain.Account, bool) {
	if account, ok := t.store.accounts[id]; ok {
		return account, true
	}
	for _, account := range t.accounts {
		if account.ID == id {
			return account, true
		}
	}
	return domain.Account{}, false
}

func (t *stagedTx) commit() error {
	s := t.store
	for _, currency := range t.currencies {
		s.currencies[currency.ID] = currency
	}
	for _, account := range t.accounts {
		s.accounts[account.ID] = account
	}
	for id, delta := range t.deltas {
		account := s.accounts[id]
		account.Funds = account.Funds.Add(delta)
		s.accounts[id] = account
	}
	s.transfers = append(s.transfers, t.transfers...)

	s.lastCurrencyID = t.lastCurrencyID
	s.lastAccountID = t.lastAccountID
	s.lastTransferID = t.lastTransferID
	return nil
}

func sortedValues[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	values := make([]T, 0, len(ids))
	for _, id := range ids {
		values = append(values, m[id])
	}
	return values
}
