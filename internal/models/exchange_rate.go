package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies for a specific date.
type ExchangeRate struct {
	ExchangeRateID   string          `db:"exchange_rate_id"`
	FromCurrencyCode string          `db:"from_currency_code"`
	ToCurrencyCode   string          `db:"to_currency_code"`
	Rate             decimal.Decimal `db:"rate"`
	RateDate         time.Time       `db:"rate_date"`
	Source           string          `db:"source"`
	IsActive         bool            `db:"is_active"`
	AuditFields
}
