package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/clock"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/config"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/events"
	"github.com/Adams-ibr/Commodity-sub000/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testUser = "user-1"

var defaultPosting = domain.PostingAccounts{
	Cash:       "1000",
	Receivable: "1200",
	Payable:    "2000",
	Revenue:    "4000",
	Expense:    "5000",
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ledgerFixture wires the full service container over the in-memory store
// with one company and a small chart of accounts.
type ledgerFixture struct {
	ctx       context.Context
	store     *memory.Store
	bus       *events.Bus
	clock     *clock.Manual
	svc       *portssvc.ServiceContainer
	companyID string

	mu     sync.Mutex
	events []domain.Event
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	f := &ledgerFixture{
		ctx:   context.Background(),
		store: memory.NewStore(),
		bus:   events.NewBus(),
		clock: clock.NewManual(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)),
	}
	f.bus.Subscribe(func(ctx context.Context, e domain.Event) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.events = append(f.events, e)
		return nil
	})

	cfg := &config.Config{
		LedgerPageSize:         2,
		TrialBalanceCacheSize:  16,
		BalanceSheetTolerance:  decimal.Zero,
		DefaultFunctionalCcy:   "USD",
		DefaultPostingAccounts: defaultPosting,
	}
	container, err := services.NewServiceContainer(cfg, memory.NewRepositoryProvider(f.store), f.bus, f.clock)
	require.NoError(t, err)
	f.svc = container

	company, err := f.svc.Company.CreateCompany(f.ctx, dto.CreateCompanyRequest{Name: "Acme Commodities"}, testUser)
	require.NoError(t, err)
	f.companyID = company.CompanyID

	for _, a := range []dto.CreateAccountRequest{
		{Code: "1000", Name: "Cash", AccountType: domain.Asset},
		{Code: "1200", Name: "Accounts Receivable", AccountType: domain.Asset},
		{Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability},
		{Code: "3000", Name: "Owner Equity", AccountType: domain.Equity},
		{Code: "4000", Name: "Sales Revenue", AccountType: domain.Revenue},
		{Code: "5000", Name: "Purchases", AccountType: domain.Expense},
	} {
		_, err := f.svc.Account.CreateAccount(f.ctx, f.companyID, a, testUser)
		require.NoError(t, err)
	}
	return f
}

func line(code string, side domain.Side, amount string) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountCode: code, Side: side, Amount: dec(amount)}
}

func (f *ledgerFixture) post(t *testing.T, on time.Time, lines ...dto.JournalLineRequest) *domain.JournalEntry {
	t.Helper()
	entry, err := f.svc.Journal.CreateAndPost(f.ctx, f.companyID, dto.CreateJournalRequest{
		EntryDate:   on,
		Description: "test posting",
		Lines:       lines,
	}, testUser)
	require.NoError(t, err)
	return entry
}

// engine returns a journal service over the fixture's store with the invoice
// bridge entry points exposed.
func (f *ledgerFixture) engine() portssvc.JournalEngine {
	repos := memory.NewRepositoryProvider(f.store)
	return services.NewJournalService(repos.TxManager, repos.JournalRepo, repos.AccountRepo, repos.CompanyRepo, repos.CurrencyRepo,
		services.WithClock(f.clock), services.WithEventPublisher(f.bus))
}

func (f *ledgerFixture) eventsOf(t domain.EventType) []domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Event
	for _, e := range f.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (f *ledgerFixture) setRate(t *testing.T, from, to, rate string, on time.Time) {
	t.Helper()
	_, err := f.svc.ExchangeRate.SetRate(f.ctx, dto.SetExchangeRateRequest{
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             dec(rate),
		RateDate:         on,
	}, testUser)
	require.NoError(t, err)
}

// balances indexes a trial balance by account code.
func balances(tb *domain.TrialBalance) map[string]domain.TrialBalanceRow {
	out := make(map[string]domain.TrialBalanceRow, len(tb.Rows))
	for _, r := range tb.Rows {
		out[r.AccountCode] = r
	}
	return out
}
