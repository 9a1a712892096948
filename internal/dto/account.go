package dto

import (
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code        string             `json:"code" binding:"required,accountcode"`
	Name        string             `json:"name" binding:"required,max=255"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Subtype     string             `json:"subtype" binding:"max=64"`
	ParentCode  string             `json:"parentCode" binding:"omitempty,accountcode"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string             `json:"name" binding:"omitempty,max=255"`
	Subtype     *string             `json:"subtype" binding:"omitempty,max=64"`
	AccountType *domain.AccountType `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	NormalSide    domain.Side        `json:"normalSide"`
	Subtype       string             `json:"subtype,omitempty"`
	ParentCode    string             `json:"parentCode,omitempty"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		NormalSide:    acc.AccountType.NormalSide(),
		Subtype:       acc.Subtype,
		ParentCode:    acc.ParentCode,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a ListAccountsResponse.
func ToListAccountResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}
