package memory

import (
	"context"
	"sort"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
)

var _ portsrepo.CompanyRepositoryFacade = (*Store)(nil)

func (s *Store) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.companies[companyID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *Store) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) SaveCompany(ctx context.Context, company domain.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[company.CompanyID]; ok {
		return apperrors.NewDuplicateError("company " + company.CompanyID + " already exists")
	}
	s.companies[company.CompanyID] = company
	return nil
}

func (s *Store) UpdateCompany(ctx context.Context, company domain.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[company.CompanyID]; !ok {
		return apperrors.ErrNotFound
	}
	s.companies[company.CompanyID] = company
	return nil
}
