package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/Adams-ibr/Commodity-sub000/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// inverseRateDigits is the scale kept when reporting 1/rate for an inverse lookup.
const inverseRateDigits = 12

// exchangeRateService keeps the global, append-only rate history and answers
// point-in-time lookups against it.
type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// NewExchangeRateService creates the FX rate store service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyRepo portsrepo.CurrencyReader, options ...ServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// SetRate appends an observation. An active observation for the same pair and
// date is superseded, earlier dates are never touched.
func (s *exchangeRateService) SetRate(ctx context.Context, req dto.SetExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(req.FromCurrencyCode)
	to := strings.ToUpper(req.ToCurrencyCode)

	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	if req.RateDate.IsZero() {
		return nil, fmt.Errorf("%w: rate date is required", apperrors.ErrValidation)
	}
	source := domain.RateSource(strings.ToUpper(req.Source))
	if source == "" {
		source = domain.RateSourceManual
	}
	if source != domain.RateSourceManual && source != domain.RateSourceExternal {
		return nil, fmt.Errorf("%w: unknown rate source %q", apperrors.ErrValidation, req.Source)
	}

	for _, code := range []string{from, to} {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
		}
	}

	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		RateDate:         domain.NormalizeDate(req.RateDate),
		Source:           source,
		IsActive:         true,
		AuditFields:      s.newAuditFields(creatorUserID),
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate",
			slog.String("from", from),
			slog.String("to", to),
			slog.String("rate_date", rate.RateDate.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate recorded",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("rate", rate.Rate.String()),
		slog.String("rate_date", rate.RateDate.Format(domain.DateLayout)))
	return &rate, nil
}

// GetRate returns the direct rate in force on date. It never consults the
// inverse pair and never interpolates.
func (s *exchangeRateService) GetRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(fromCurrencyCode)
	to := strings.ToUpper(toCurrencyCode)
	day := domain.NormalizeDate(date)

	if from == to {
		return &domain.ExchangeRate{
			FromCurrencyCode: from,
			ToCurrencyCode:   to,
			Rate:             decimal.NewFromInt(1),
			RateDate:         day,
			Source:           domain.RateSourceManual,
			IsActive:         true,
		}, nil
	}

	rate, err := s.findRate(ctx, from, to, day)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, &apperrors.NoRateAvailableError{From: from, To: to, Date: day}
	}
	return rate, nil
}

// Convert applies the rate in force on date. Without a direct rate the inverse
// pair is divided through. The result is rounded to the target currency's
// precision. Identical currencies return amount untouched.
func (s *exchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.Conversion, error) {
	from := strings.ToUpper(fromCurrencyCode)
	to := strings.ToUpper(toCurrencyCode)
	day := domain.NormalizeDate(date)

	conv := &domain.Conversion{
		Amount: amount,
		From:   from,
		To:     to,
		Date:   day,
	}

	if from == to {
		conv.Rate = decimal.NewFromInt(1)
		conv.RateDate = day
		conv.Converted = amount
		return conv, nil
	}

	target, err := s.currencyRepo.FindCurrencyByCode(ctx, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load currency %s: %w", to, err)
	}

	direct, err := s.findRate(ctx, from, to, day)
	if err != nil {
		return nil, err
	}
	if direct != nil {
		conv.Rate = direct.Rate
		conv.RateDate = direct.RateDate
		conv.SourceRateID = direct.ExchangeRateID
		conv.Converted = utils.RoundToPrecision(amount.Mul(direct.Rate), target.Precision)
		return conv, nil
	}

	inverse, err := s.findRate(ctx, to, from, day)
	if err != nil {
		return nil, err
	}
	if inverse == nil {
		return nil, &apperrors.NoRateAvailableError{From: from, To: to, Date: day}
	}

	conv.Rate = decimal.NewFromInt(1).DivRound(inverse.Rate, inverseRateDigits)
	conv.RateDate = inverse.RateDate
	conv.UsedInverse = true
	conv.SourceRateID = inverse.ExchangeRateID
	// Divide the amount directly rather than multiplying by the rounded reciprocal.
	conv.Converted = amount.DivRound(inverse.Rate, int32(target.Precision))
	s.LogDebug(ctx, "Converted through inverse rate",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("inverse_rate_id", inverse.ExchangeRateID))
	return conv, nil
}

func (s *exchangeRateService) ListRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string, limit int) ([]domain.ExchangeRate, error) {
	if limit <= 0 {
		limit = 100
	}
	rates, err := s.rateRepo.ListRates(ctx, strings.ToUpper(fromCurrencyCode), strings.ToUpper(toCurrencyCode), limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates",
			slog.String("from", fromCurrencyCode),
			slog.String("to", toCurrencyCode))
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, nil
}

// findRate returns nil without error when the pair has no usable rate.
func (s *exchangeRateService) findRate(ctx context.Context, from, to string, day time.Time) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindRateOnOrBefore(ctx, from, to, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to look up exchange rate",
			slog.String("from", from),
			slog.String("to", to))
		return nil, fmt.Errorf("failed to look up rate %s/%s: %w", from, to, err)
	}
	return rate, nil
}
