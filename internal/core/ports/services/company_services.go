package services

import (
	"context"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
)

// CompanySvcFacade manages the tenants of the ledger.
type CompanySvcFacade interface {
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	UpdatePostingAccounts(ctx context.Context, companyID string, req dto.PostingAccountsRequest, userID string) (*domain.Company, error)
}
