package services

import (
	"fmt"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/clock"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/config"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/events"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. The ledger's cache invalidator is subscribed to bus.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, bus *events.Bus, clk clock.Clock) (*portssvc.ServiceContainer, error) {
	if clk == nil {
		clk = clock.System{}
	}
	opts := []ServiceOption{WithClock(clk)}
	if bus != nil {
		opts = append(opts, WithEventPublisher(bus))
	}

	container := &portssvc.ServiceContainer{Clock: clk}

	container.Currency = NewCurrencyService(repos.CurrencyRepo, opts...)
	container.Company = NewCompanyService(repos.CompanyRepo, repos.CurrencyRepo, CompanyDefaults{
		FunctionalCurrency: cfg.DefaultFunctionalCcy,
		PostingAccounts:    cfg.DefaultPostingAccounts,
	}, opts...)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, repos.CurrencyRepo, opts...)
	container.Account = NewAccountService(repos.TxManager, repos.AccountRepo, repos.CompanyRepo, opts...)
	journal := NewJournalService(repos.TxManager, repos.JournalRepo, repos.AccountRepo, repos.CompanyRepo, repos.CurrencyRepo, opts...)
	container.Journal = journal

	ledger, err := NewLedgerService(repos.JournalRepo, repos.AccountRepo, LedgerConfig{
		PageSize:  cfg.LedgerPageSize,
		CacheSize: cfg.TrialBalanceCacheSize,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger service: %w", err)
	}
	if bus != nil {
		bus.Subscribe(ledger.HandleEvent, domain.EventJournalPosted, domain.EventJournalReversed)
	}
	container.Ledger = ledger

	container.Reporting = NewReportingService(ledger, cfg.BalanceSheetTolerance, opts...)
	container.Invoice = NewInvoiceService(
		repos.TxManager,
		repos.InvoiceRepo,
		repos.CompanyRepo,
		repos.CurrencyRepo,
		journal,
		container.ExchangeRate,
		opts...,
	)

	return container, nil
}
