package memory

import (
	"context"
	"sort"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
)

var _ portsrepo.CurrencyRepositoryFacade = (*Store)(nil)

func (s *Store) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.currencies[currencyCode]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *Store) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Currency, 0, len(s.currencies))
	for _, c := range s.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out, nil
}

func (s *Store) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.currencies[currency.CurrencyCode]; ok {
		return apperrors.NewDuplicateError("currency " + currency.CurrencyCode + " already exists")
	}
	s.currencies[currency.CurrencyCode] = currency
	return nil
}
