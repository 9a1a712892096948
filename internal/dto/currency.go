package dto

import (
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to register a currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currencycode"`
	Symbol       string `json:"symbol" binding:"required,max=8"`
	Name         string `json:"name" binding:"required,max=64"`
	Precision    *int   `json:"precision" binding:"required,min=0,max=8"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string    `json:"currencyCode"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Precision     int       `json:"precision"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  curr.CurrencyCode,
		Symbol:        curr.Symbol,
		Name:          curr.Name,
		Precision:     curr.Precision,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}
