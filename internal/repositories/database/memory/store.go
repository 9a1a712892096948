// Package memory is an embedded, transactional implementation of the
// repository ports. It backs the memory storage driver and the service tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
)

// companyState is everything owned by one company. A committed state is never
// mutated; a transaction works on a clone and swaps it in on commit.
type companyState struct {
	accounts   map[string]domain.Account
	journals   map[string]domain.JournalEntry
	ledger     *ledgerIndex
	journalSeq int64
	invoices   map[string]domain.Invoice
	payments   map[string][]domain.InvoicePayment
	invoiceSeq int64
}

func newCompanyState() *companyState {
	return &companyState{
		accounts: make(map[string]domain.Account),
		journals: make(map[string]domain.JournalEntry),
		ledger:   &ledgerIndex{},
		invoices: make(map[string]domain.Invoice),
		payments: make(map[string][]domain.InvoicePayment),
	}
}

func (s *companyState) clone() *companyState {
	c := &companyState{
		accounts:   make(map[string]domain.Account, len(s.accounts)),
		journals:   make(map[string]domain.JournalEntry, len(s.journals)),
		ledger:     s.ledger,
		journalSeq: s.journalSeq,
		invoices:   make(map[string]domain.Invoice, len(s.invoices)),
		payments:   make(map[string][]domain.InvoicePayment, len(s.payments)),
		invoiceSeq: s.invoiceSeq,
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	// Stored entries and invoices are replaced, never edited, so sharing the
	// values is safe.
	for k, v := range s.journals {
		c.journals[k] = v
	}
	for k, v := range s.invoices {
		c.invoices[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = append([]domain.InvoicePayment(nil), v...)
	}
	return c
}

type txKey struct{}

type memTx struct {
	companyID string
	state     *companyState
	hooks     []func()
}

func txFrom(ctx context.Context) *memTx {
	tx, _ := ctx.Value(txKey{}).(*memTx)
	return tx
}

// Store holds all data in process memory.
type Store struct {
	mu         sync.RWMutex
	companies  map[string]domain.Company
	currencies map[string]domain.Currency
	rates      []domain.ExchangeRate
	states     map[string]*companyState

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewStore returns an empty store with the standard currencies registered.
func NewStore() *Store {
	s := &Store{
		companies:  make(map[string]domain.Company),
		currencies: make(map[string]domain.Currency),
		states:     make(map[string]*companyState),
		locks:      make(map[string]*sync.Mutex),
	}
	for _, c := range SeedCurrencies {
		s.currencies[c.CurrencyCode] = c
	}
	return s
}

// SeedCurrencies matches the rows inserted by the initial migration.
var SeedCurrencies = []domain.Currency{
	{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2},
	{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2},
	{CurrencyCode: "GBP", Symbol: "£", Name: "British Pound", Precision: 2},
	{CurrencyCode: "NGN", Symbol: "₦", Name: "Nigerian Naira", Precision: 2},
	{CurrencyCode: "GHS", Symbol: "₵", Name: "Ghanaian Cedi", Precision: 2},
	{CurrencyCode: "CNY", Symbol: "¥", Name: "Chinese Yuan", Precision: 2},
	{CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Precision: 0},
	{CurrencyCode: "KWD", Symbol: "KD", Name: "Kuwaiti Dinar", Precision: 3},
}

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        s,
		CompanyRepo:      s,
		CurrencyRepo:     s,
		AccountRepo:      s,
		JournalRepo:      s,
		ExchangeRateRepo: s,
		InvoiceRepo:      s,
	}
}

var _ portsrepo.TransactionManager = (*Store)(nil)

func (s *Store) companyLock(companyID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[companyID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[companyID] = l
	}
	return l
}

// WithinCompanyTx runs fn against a private copy of the company's state and
// publishes the copy only if fn succeeds.
func (s *Store) WithinCompanyTx(ctx context.Context, companyID string, fn func(ctx context.Context) error) error {
	if tx := txFrom(ctx); tx != nil {
		if tx.companyID != companyID {
			return fmt.Errorf("transaction for company %s cannot join company %s", tx.companyID, companyID)
		}
		return fn(ctx)
	}

	lock := s.companyLock(companyID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	base, ok := s.states[companyID]
	s.mu.RUnlock()
	if !ok {
		base = newCompanyState()
	}

	tx := &memTx{companyID: companyID, state: base.clone()}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	s.mu.Lock()
	s.states[companyID] = tx.state
	s.mu.Unlock()

	for _, h := range tx.hooks {
		h()
	}
	return nil
}

func (s *Store) AfterCommit(ctx context.Context, fn func()) {
	if tx := txFrom(ctx); tx != nil {
		tx.hooks = append(tx.hooks, fn)
		return
	}
	fn()
}

// read returns the state visible to ctx. Callers must not modify it.
func (s *Store) read(ctx context.Context, companyID string) *companyState {
	if tx := txFrom(ctx); tx != nil && tx.companyID == companyID {
		return tx.state
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.states[companyID]; ok {
		return st
	}
	return newCompanyState()
}

// write applies fn to the transaction's working state, opening an implicit
// transaction when ctx carries none.
func (s *Store) write(ctx context.Context, companyID string, fn func(st *companyState) error) error {
	if tx := txFrom(ctx); tx != nil && tx.companyID == companyID {
		return fn(tx.state)
	}
	return s.WithinCompanyTx(ctx, companyID, func(ctx context.Context) error {
		return fn(txFrom(ctx).state)
	})
}
