package repositories

import (
	"context"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRateOnOrBefore returns the active rate for the pair with the latest
	// rate date not after date, or apperrors.ErrNotFound.
	FindRateOnOrBefore(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error)

	// ListRates returns the pair's observations newest first, inactive ones included.
	ListRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string, limit int) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate appends the observation and, in the same atomic step,
	// marks any active observation for the same pair and date inactive.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
