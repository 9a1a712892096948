package services

import (
	"context"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/clock"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Company      CompanySvcFacade
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Account      AccountSvcFacade
	Journal      JournalSvcFacade
	Ledger       LedgerSvc
	Reporting    ReportingService
	Invoice      InvoiceSvcFacade

	// Clock is the source of "today" for request defaults.
	Clock clock.Clock
}

// EventPublisher delivers domain events to in-process subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
}
