package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource tags where an exchange rate observation came from.
type RateSource string

const (
	RateSourceManual   RateSource = "MANUAL"
	RateSourceExternal RateSource = "EXTERNAL"
)

// ExchangeRate is a directional rate observation: ToCurrency units per one FromCurrency unit.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	RateDate         time.Time       `json:"rateDate"`
	Source           RateSource      `json:"source"`
	IsActive         bool            `json:"isActive"`
	AuditFields
}

// Conversion is the outcome of converting an amount between two currencies.
type Conversion struct {
	Amount       decimal.Decimal `json:"amount"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	Date         time.Time       `json:"date"`
	Rate         decimal.Decimal `json:"rate"` // Effective From->To rate applied
	RateDate     time.Time       `json:"rateDate"`
	UsedInverse  bool            `json:"usedInverse"`
	Converted    decimal.Decimal `json:"converted"`
	SourceRateID string          `json:"sourceRateID,omitempty"`
}
