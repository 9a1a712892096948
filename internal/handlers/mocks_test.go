package handlers_test

import (
	"context"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CompanyService ---
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}
func (m *MockCompanyService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}
func (m *MockCompanyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}
func (m *MockCompanyService) UpdatePostingAccounts(ctx context.Context, companyID string, req dto.PostingAccountsRequest, userID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

var _ portssvc.CompanySvcFacade = (*MockCompanyService)(nil)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetRate(ctx context.Context, from, to string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (*domain.Conversion, error) {
	args := m.Called(ctx, amount, from, to, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}
func (m *MockExchangeRateService) ListRates(ctx context.Context, from, to string, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) SetRate(ctx context.Context, req dto.SetExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, companyID, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, companyID, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, companyID, code string, userID string) error {
	return m.Called(ctx, companyID, code, userID).Error(0)
}
func (m *MockAccountService) ActivateAccount(ctx context.Context, companyID, code string, userID string) error {
	return m.Called(ctx, companyID, code, userID).Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournal(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListJournals(ctx context.Context, companyID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}
func (m *MockJournalService) CreateDraft(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) UpdateDraft(ctx context.Context, companyID, entryID string, req dto.UpdateJournalRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) PostJournal(ctx context.Context, companyID, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ReverseJournal(ctx context.Context, companyID, entryID, reason string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, reason, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) CreateAndPost(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) TrialBalanceAsOf(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}
func (m *MockLedgerService) AccountBalancesAsOf(ctx context.Context, companyID string, asOf time.Time) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}
func (m *MockLedgerService) AccountActivity(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

var _ portssvc.LedgerSvc = (*MockLedgerService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ProfitAndLoss(ctx context.Context, companyID string, fromDate, toDate time.Time) (*domain.PAndLReport, error) {
	args := m.Called(ctx, companyID, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PAndLReport), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GetInvoice(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, companyID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) ListPayments(ctx context.Context, companyID, invoiceID string) ([]domain.InvoicePayment, error) {
	args := m.Called(ctx, companyID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoicePayment), args.Error(1)
}
func (m *MockInvoiceService) CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) SendInvoice(ctx context.Context, companyID, invoiceID string, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, companyID, invoiceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) RecordPayment(ctx context.Context, companyID, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, companyID, invoiceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) CancelInvoice(ctx context.Context, companyID, invoiceID string, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, companyID, invoiceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)
