package dto

import (
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
)

// PostingAccountsRequest overrides the account codes used for generated postings.
type PostingAccountsRequest struct {
	Cash       string `json:"cash" binding:"omitempty,accountcode"`
	Receivable string `json:"receivable" binding:"omitempty,accountcode"`
	Payable    string `json:"payable" binding:"omitempty,accountcode"`
	Revenue    string `json:"revenue" binding:"omitempty,accountcode"`
	Expense    string `json:"expense" binding:"omitempty,accountcode"`
}

// ToDomain maps the request onto domain.PostingAccounts.
func (r PostingAccountsRequest) ToDomain() domain.PostingAccounts {
	return domain.PostingAccounts{
		Cash:       r.Cash,
		Receivable: r.Receivable,
		Payable:    r.Payable,
		Revenue:    r.Revenue,
		Expense:    r.Expense,
	}
}

// CreateCompanyRequest defines the data needed to create a company.
type CreateCompanyRequest struct {
	Name               string                  `json:"name" binding:"required,max=255"`
	FunctionalCurrency string                  `json:"functionalCurrency" binding:"omitempty,currencycode"`
	PostingAccounts    *PostingAccountsRequest `json:"postingAccounts"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID          string                 `json:"companyID"`
	Name               string                 `json:"name"`
	FunctionalCurrency string                 `json:"functionalCurrency"`
	PostingAccounts    domain.PostingAccounts `json:"postingAccounts"`
	CreatedAt          time.Time              `json:"createdAt"`
	CreatedBy          string                 `json:"createdBy"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:          c.CompanyID,
		Name:               c.Name,
		FunctionalCurrency: c.FunctionalCurrency,
		PostingAccounts:    c.PostingAccounts,
		CreatedAt:          c.CreatedAt,
		CreatedBy:          c.CreatedBy,
	}
}

// ToListCompanyResponse converts a slice of companies.
func ToListCompanyResponse(companies []domain.Company) []CompanyResponse {
	res := make([]CompanyResponse, len(companies))
	for i := range companies {
		res[i] = ToCompanyResponse(&companies[i])
	}
	return res
}
