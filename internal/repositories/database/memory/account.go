package memory

import (
	"context"
	"sort"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
)

var _ portsrepo.AccountRepositoryFacade = (*Store)(nil)

func (s *Store) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	a, ok := s.read(ctx, companyID).accounts[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (s *Store) FindAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error) {
	st := s.read(ctx, companyID)
	out := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		if a, ok := st.accounts[code]; ok {
			out[code] = a
		}
	}
	return out, nil
}

func (s *Store) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	st := s.read(ctx, companyID)
	out := make([]domain.Account, 0, len(st.accounts))
	for _, a := range st.accounts {
		if a.IsActive || includeInactive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) AccountHasPostings(ctx context.Context, companyID, code string) (bool, error) {
	for _, e := range s.read(ctx, companyID).journals {
		if e.Status == domain.Draft {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountCode == code {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	return s.write(ctx, account.CompanyID, func(st *companyState) error {
		if _, ok := st.accounts[account.Code]; ok {
			return apperrors.NewDuplicateError("account code " + account.Code + " already exists")
		}
		st.accounts[account.Code] = account
		return nil
	})
}

func (s *Store) UpdateAccount(ctx context.Context, account domain.Account) error {
	return s.write(ctx, account.CompanyID, func(st *companyState) error {
		if _, ok := st.accounts[account.Code]; !ok {
			return apperrors.ErrNotFound
		}
		st.accounts[account.Code] = account
		return nil
	})
}
