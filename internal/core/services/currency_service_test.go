package services_test

import (
	"context"
	"testing"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCurrencyService_CreateCurrency(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockCurrencyRepository)
		svc := services.NewCurrencyService(repo)
		repo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
			return c.CurrencyCode == "KES" && c.Precision == 2 && c.CreatedBy == testUser
		})).Return(nil).Once()

		currency, err := svc.CreateCurrency(ctx, dto.CreateCurrencyRequest{
			CurrencyCode: "kes", Symbol: "KSh", Name: "Kenyan Shilling", Precision: intPtr(2),
		}, testUser)

		require.NoError(t, err)
		assert.Equal(t, "KES", currency.CurrencyCode)
		repo.AssertExpectations(t)
	})

	t.Run("ZeroPrecision", func(t *testing.T) {
		repo := new(MockCurrencyRepository)
		svc := services.NewCurrencyService(repo)
		repo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(nil).Once()

		currency, err := svc.CreateCurrency(ctx, dto.CreateCurrencyRequest{
			CurrencyCode: "KRW", Symbol: "₩", Name: "Won", Precision: intPtr(0),
		}, testUser)

		require.NoError(t, err)
		assert.Equal(t, 0, currency.Precision)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		repo := new(MockCurrencyRepository)
		svc := services.NewCurrencyService(repo)

		_, err := svc.CreateCurrency(ctx, dto.CreateCurrencyRequest{CurrencyCode: "DOLLAR", Precision: intPtr(2)}, testUser)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		_, err = svc.CreateCurrency(ctx, dto.CreateCurrencyRequest{CurrencyCode: "BTC", Precision: intPtr(9)}, testUser)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		repo.AssertNotCalled(t, "SaveCurrency", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate", func(t *testing.T) {
		repo := new(MockCurrencyRepository)
		svc := services.NewCurrencyService(repo)
		repo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).
			Return(apperrors.NewDuplicateError("currency USD already exists")).Once()

		_, err := svc.CreateCurrency(ctx, dto.CreateCurrencyRequest{CurrencyCode: "USD", Precision: intPtr(2)}, testUser)
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	})
}

func TestCurrencyService_GetCurrencyByCode(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCurrencyRepository)
	svc := services.NewCurrencyService(repo)

	repo.On("FindCurrencyByCode", ctx, "JPY").Return(&domain.Currency{CurrencyCode: "JPY", Precision: 0}, nil).Once()
	repo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	jpy, err := svc.GetCurrencyByCode(ctx, "jpy")
	require.NoError(t, err)
	assert.Equal(t, 0, jpy.Precision)

	_, err = svc.GetCurrencyByCode(ctx, "XXX")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertExpectations(t)
}
