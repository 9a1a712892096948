package dto

import (
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetExchangeRateRequest defines the structure for recording a new rate observation.
type SetExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currencycode"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currencycode,nefield=FromCurrencyCode"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	RateDate         time.Time       `json:"rateDate" binding:"required"`
	Source           string          `json:"source" binding:"omitempty,oneof=MANUAL EXTERNAL"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	RateDate         string          `json:"rateDate"`
	Source           string          `json:"source"`
	IsActive         bool            `json:"isActive"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ConversionResponse is returned by the convert endpoint.
type ConversionResponse struct {
	Amount      decimal.Decimal `json:"amount"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Date        string          `json:"date"`
	Rate        decimal.Decimal `json:"rate"`
	RateDate    string          `json:"rateDate"`
	UsedInverse bool            `json:"usedInverse"`
	Converted   decimal.Decimal `json:"converted"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		RateDate:         rate.RateDate.Format(domain.DateLayout),
		Source:           string(rate.Source),
		IsActive:         rate.IsActive,
		CreatedAt:        rate.CreatedAt,
		CreatedBy:        rate.CreatedBy,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to a slice of ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// ToConversionResponse converts a domain.Conversion.
func ToConversionResponse(c *domain.Conversion) ConversionResponse {
	return ConversionResponse{
		Amount:      c.Amount,
		From:        c.From,
		To:          c.To,
		Date:        c.Date.Format(domain.DateLayout),
		Rate:        c.Rate,
		RateDate:    c.RateDate.Format(domain.DateLayout),
		UsedInverse: c.UsedInverse,
		Converted:   c.Converted,
	}
}
