package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
)

var _ portsrepo.ExchangeRateRepositoryFacade = (*Store)(nil)

func (s *Store) FindRateOnOrBefore(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	date = domain.NormalizeDate(date)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *domain.ExchangeRate
	for i := range s.rates {
		r := &s.rates[i]
		if !r.IsActive || r.FromCurrencyCode != fromCurrencyCode || r.ToCurrencyCode != toCurrencyCode {
			continue
		}
		if r.RateDate.After(date) {
			continue
		}
		if best == nil || r.RateDate.After(best.RateDate) {
			best = r
		}
	}
	if best == nil {
		return nil, apperrors.ErrNotFound
	}
	found := *best
	return &found, nil
}

func (s *Store) ListRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string, limit int) ([]domain.ExchangeRate, error) {
	s.mu.RLock()
	out := make([]domain.ExchangeRate, 0)
	for _, r := range s.rates {
		if r.FromCurrencyCode == fromCurrencyCode && r.ToCurrencyCode == toCurrencyCode {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].RateDate.Equal(out[j].RateDate) {
			return out[i].RateDate.After(out[j].RateDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rates {
		r := &s.rates[i]
		if r.IsActive && r.FromCurrencyCode == rate.FromCurrencyCode &&
			r.ToCurrencyCode == rate.ToCurrencyCode && r.RateDate.Equal(rate.RateDate) {
			r.IsActive = false
			r.LastUpdatedAt = rate.CreatedAt
			r.LastUpdatedBy = rate.CreatedBy
		}
	}
	s.rates = append(s.rates, rate)
	return nil
}
