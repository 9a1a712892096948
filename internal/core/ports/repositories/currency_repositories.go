package repositories

import (
	"context"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode returns apperrors.ErrNotFound for unknown codes.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency returns apperrors.ErrDuplicate if the code is taken.
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
