package services

import (
	"context"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// ExchangeRateReaderSvc defines point-in-time rate lookups
type ExchangeRateReaderSvc interface {
	// GetRate returns the direct rate in force on date. Same-currency pairs return 1.
	GetRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error)

	// Convert falls back to the inverse pair when no direct rate exists.
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.Conversion, error)

	ListRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string, limit int) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	SetRate(ctx context.Context, req dto.SetExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
