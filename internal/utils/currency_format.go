package utils

import (
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with JPY (precision 0) returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.StringFixed(int32(currency.Precision))
}

// RoundToPrecision rounds half away from zero to the given number of minor-unit digits.
func RoundToPrecision(amount decimal.Decimal, precision int) decimal.Decimal {
	return amount.Round(int32(precision))
}

// FitsPrecision reports whether amount has no more fractional digits than precision allows.
func FitsPrecision(amount decimal.Decimal, precision int) bool {
	return amount.Equal(amount.Round(int32(precision)))
}
