package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
)

const maxCurrencyPrecision = 8

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates the currency registry service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, options ...ServiceOption) portssvc.CurrencySvcFacade {
	svc := &currencyService{currencyRepo: currencyRepo}
	applyOptions(&svc.BaseService, options)
	return svc
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if len(code) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}
	precision := 2
	if req.Precision != nil {
		precision = *req.Precision
	}
	if precision < 0 || precision > maxCurrencyPrecision {
		return nil, fmt.Errorf("%w: precision must be between 0 and %d", apperrors.ErrValidation, maxCurrencyPrecision)
	}

	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    precision,
		AuditFields:  s.newAuditFields(creatorUserID),
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_code", code))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %s: %w", currencyCode, err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}
