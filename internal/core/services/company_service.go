package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/google/uuid"
)

type companyService struct {
	BaseService
	companyRepo     portsrepo.CompanyRepositoryFacade
	currencyRepo    portsrepo.CurrencyReader
	defaultCurrency string
	defaultPosting  domain.PostingAccounts
}

// CompanyDefaults are applied when a create request omits the functional
// currency or any posting account.
type CompanyDefaults struct {
	FunctionalCurrency string
	PostingAccounts    domain.PostingAccounts
}

// NewCompanyService creates the tenant service.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, currencyRepo portsrepo.CurrencyReader, defaults CompanyDefaults, options ...ServiceOption) portssvc.CompanySvcFacade {
	svc := &companyService{
		companyRepo:     companyRepo,
		currencyRepo:    currencyRepo,
		defaultCurrency: strings.ToUpper(defaults.FunctionalCurrency),
		defaultPosting:  defaults.PostingAccounts,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", apperrors.ErrValidation)
	}

	functional := strings.ToUpper(req.FunctionalCurrency)
	if functional == "" {
		functional = s.defaultCurrency
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, functional); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: functional currency %s is not registered", apperrors.ErrValidation, functional)
		}
		return nil, fmt.Errorf("failed to validate functional currency: %w", err)
	}

	var posting domain.PostingAccounts
	if req.PostingAccounts != nil {
		posting = req.PostingAccounts.ToDomain()
	}
	posting = posting.WithDefaults(s.defaultPosting)
	if err := validatePostingAccounts(posting); err != nil {
		return nil, err
	}

	company := domain.Company{
		CompanyID:          uuid.NewString(),
		Name:               name,
		FunctionalCurrency: functional,
		PostingAccounts:    posting,
		AuditFields:        s.newAuditFields(creatorUserID),
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("company_id", company.CompanyID))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.LogInfo(ctx, "Company created",
		slog.String("company_id", company.CompanyID),
		slog.String("functional_currency", functional))
	return &company, nil
}

func (s *companyService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company %s: %w", companyID, err)
	}
	return company, nil
}

func (s *companyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompanies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies")
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// UpdatePostingAccounts replaces the codes present in req and keeps the rest.
func (s *companyService) UpdatePostingAccounts(ctx context.Context, companyID string, req dto.PostingAccountsRequest, userID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company %s: %w", companyID, err)
	}

	posting := req.ToDomain().WithDefaults(company.PostingAccounts)
	if err := validatePostingAccounts(posting); err != nil {
		return nil, err
	}
	company.PostingAccounts = posting
	s.touch(&company.AuditFields, userID)

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update posting accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

func validatePostingAccounts(p domain.PostingAccounts) error {
	for role, code := range map[string]string{
		"cash":       p.Cash,
		"receivable": p.Receivable,
		"payable":    p.Payable,
		"revenue":    p.Revenue,
		"expense":    p.Expense,
	} {
		if !domain.IsValidAccountCode(code) {
			return fmt.Errorf("%w: %s posting account %q is not a valid account code", apperrors.ErrValidation, role, code)
		}
	}
	return nil
}
