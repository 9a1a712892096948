package handlers_test

import (
	"encoding/json"
	"net/http"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCreateCompany() {
	suite.companies.On("CreateCompany", mock.Anything, mock.MatchedBy(func(req dto.CreateCompanyRequest) bool {
		return req.Name == "Kano Grains" && req.FunctionalCurrency == "NGN"
	}), testUserID).Return(&domain.Company{
		CompanyID:          suite.companyID,
		Name:               "Kano Grains",
		FunctionalCurrency: "NGN",
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/companies", map[string]any{
		"name": "Kano Grains", "functionalCurrency": "NGN",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CompanyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(suite.companyID, resp.CompanyID)
}

func (suite *HandlerTestSuite) TestGetCompany_NotFound() {
	suite.companies.On("GetCompany", mock.Anything, suite.companyID).
		Return(nil, apperrors.NewNotFoundError("company not found")).Once()

	w := suite.do(http.MethodGet, suite.companyPath(""), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(suite.errorBody(w), "company not found")
}

func (suite *HandlerTestSuite) TestUpdatePostingAccounts_RejectsMalformedCode() {
	w := suite.do(http.MethodPut, suite.companyPath("/posting-accounts"), map[string]any{"revenue": "sales revenue"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.companies.AssertNotCalled(suite.T(), "UpdatePostingAccounts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateCurrency() {
	suite.Run("Success", func() {
		suite.currency.On("CreateCurrency", mock.Anything, mock.MatchedBy(func(req dto.CreateCurrencyRequest) bool {
			return req.CurrencyCode == "KES" && req.Precision != nil && *req.Precision == 2
		}), testUserID).Return(&domain.Currency{CurrencyCode: "KES", Precision: 2}, nil).Once()

		w := suite.do(http.MethodPost, "/api/v1/currencies", map[string]any{
			"currencyCode": "KES", "symbol": "KSh", "name": "Kenyan Shilling", "precision": 2,
		})
		suite.Equal(http.StatusCreated, w.Code)
	})

	suite.Run("MalformedCode", func() {
		w := suite.do(http.MethodPost, "/api/v1/currencies", map[string]any{
			"currencyCode": "DOLLAR", "symbol": "$", "name": "Dollar", "precision": 2,
		})
		suite.Equal(http.StatusBadRequest, w.Code)
	})

	suite.Run("Duplicate", func() {
		suite.currency.On("CreateCurrency", mock.Anything, mock.AnythingOfType("dto.CreateCurrencyRequest"), testUserID).
			Return(nil, apperrors.NewDuplicateError("currency USD already exists")).Once()

		w := suite.do(http.MethodPost, "/api/v1/currencies", map[string]any{
			"currencyCode": "USD", "symbol": "$", "name": "US Dollar", "precision": 2,
		})
		suite.Equal(http.StatusConflict, w.Code)
	})
}

func (suite *HandlerTestSuite) TestSetExchangeRate_SamePairRejectedByBinding() {
	w := suite.do(http.MethodPost, "/api/v1/exchange-rates", map[string]any{
		"fromCurrencyCode": "USD", "toCurrencyCode": "USD", "rate": "1", "rateDate": "2024-01-01T00:00:00Z",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.fx.AssertNotCalled(suite.T(), "SetRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestConvert() {
	suite.fx.On("Convert", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(dec("100")) }), "USD", "NGN", day(2024, 1, 31)).Return(&domain.Conversion{
		Amount: dec("100"), From: "USD", To: "NGN", Date: day(2024, 1, 31),
		Rate: dec("1500"), RateDate: day(2024, 1, 1), Converted: dec("150000"),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?amount=100&from=USD&to=NGN&date=2024-01-31", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(dec("150000").Equal(resp.Converted))
	suite.Equal("2024-01-01", resp.RateDate)
}

func (suite *HandlerTestSuite) TestConvert_BadInput() {
	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?amount=lots&from=USD&to=NGN", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?amount=1&from=USD&to=NGN&date=31-01-2024", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?amount=1&from=USD", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetRate_NoRateAvailable() {
	suite.fx.On("GetRate", mock.Anything, "USD", "NGN", day(2023, 12, 31)).
		Return(nil, &apperrors.NoRateAvailableError{From: "USD", To: "NGN", Date: day(2023, 12, 31)}).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/rate?from=USD&to=NGN&date=2023-12-31", nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(suite.errorBody(w), "no exchange rate available")
}

func (suite *HandlerTestSuite) TestGetRate_DefaultsToClockDate() {
	suite.fx.On("GetRate", mock.Anything, "USD", "NGN", day(2024, 3, 15)).Return(&domain.ExchangeRate{
		ExchangeRateID: "rate-1", FromCurrencyCode: "USD", ToCurrencyCode: "NGN",
		Rate: decimal.RequireFromString("1500"), RateDate: day(2024, 3, 14), IsActive: true,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/rate?from=USD&to=NGN", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-03-14", resp.RateDate)
}
