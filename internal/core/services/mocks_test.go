package services_test

import (
	"context"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// passthroughTx runs fn directly and hooks immediately.
type passthroughTx struct{}

var _ portsrepo.TransactionManager = passthroughTx{}

func (passthroughTx) WithinCompanyTx(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) AfterCommit(_ context.Context, fn func()) { fn() }

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) AccountHasPostings(ctx context.Context, companyID, code string) (bool, error) {
	args := m.Called(ctx, companyID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// --- Mock LedgerLineReader ---
type MockLedgerLineReader struct {
	mock.Mock
}

var _ portsrepo.LedgerLineReader = (*MockLedgerLineReader)(nil)

func (m *MockLedgerLineReader) ListPostedLines(ctx context.Context, companyID string, from *time.Time, to time.Time, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	args := m.Called(ctx, companyID, from, to, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerLine), returnedNextToken, args.Error(2)
}

// --- Mock LedgerSvc (as used by the reporting service) ---
type MockLedgerSvc struct {
	mock.Mock
}

var _ portssvc.LedgerSvc = (*MockLedgerSvc)(nil)

func (m *MockLedgerSvc) TrialBalanceAsOf(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockLedgerSvc) AccountBalancesAsOf(ctx context.Context, companyID string, asOf time.Time) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockLedgerSvc) AccountActivity(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}
