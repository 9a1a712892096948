package repositories

import (
	"context"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
)

// CompanyReader defines read operations for companies
type CompanyReader interface {
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}

// CompanyWriter defines write operations for companies
type CompanyWriter interface {
	SaveCompany(ctx context.Context, company domain.Company) error
	UpdateCompany(ctx context.Context, company domain.Company) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
