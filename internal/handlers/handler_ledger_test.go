package handlers_test

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCreateAccount() {
	suite.accounts.On("CreateAccount", mock.Anything, suite.companyID, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.Code == "1000" && req.AccountType == domain.Asset
	}), testUserID).Return(&domain.Account{
		CompanyID: suite.companyID, Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true,
	}, nil).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/accounts"), map[string]any{
		"code": "1000", "name": "Cash", "accountType": "ASSET",
	})

	suite.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Debit, resp.NormalSide)
}

func (suite *HandlerTestSuite) TestCreateAccount_InvalidInput() {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"malformed code", map[string]any{"code": "cash account", "name": "Cash", "accountType": "ASSET"}},
		{"unknown type", map[string]any{"code": "1000", "name": "Cash", "accountType": "CONTRA"}},
		{"missing name", map[string]any{"code": "1000", "accountType": "ASSET"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, suite.companyPath("/accounts"), tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.accounts.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_Duplicate() {
	suite.accounts.On("CreateAccount", mock.Anything, suite.companyID, mock.AnythingOfType("dto.CreateAccountRequest"), testUserID).
		Return(nil, apperrors.NewDuplicateError("account code 1000 already exists")).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/accounts"), map[string]any{
		"code": "1000", "name": "Cash", "accountType": "ASSET",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestListAccounts_IncludeInactive() {
	suite.accounts.On("ListAccounts", mock.Anything, suite.companyID, true).Return([]domain.Account{
		{Code: "1000", AccountType: domain.Asset, IsActive: true},
		{Code: "1100", AccountType: domain.Asset, IsActive: false},
	}, nil).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/accounts?includeInactive=true"), nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)
}

func (suite *HandlerTestSuite) TestDeactivateAccount() {
	suite.accounts.On("DeactivateAccount", mock.Anything, suite.companyID, "1100", testUserID).Return(nil).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/accounts/1100/deactivate"), nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestTrialBalance() {
	suite.ledger.On("TrialBalanceAsOf", mock.Anything, suite.companyID, day(2024, 3, 31)).Return(&domain.TrialBalance{
		CompanyID: suite.companyID,
		AsOf:      day(2024, 3, 31),
		Rows: []domain.TrialBalanceRow{
			{AccountCode: "1000", AccountName: "Cash", AccountType: domain.Asset, DebitBalance: dec("500")},
			{AccountCode: "4000", AccountName: "Sales", AccountType: domain.Revenue, CreditBalance: dec("500")},
		},
		TotalDebits:  dec("500"),
		TotalCredits: dec("500"),
	}, nil).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/ledger/trial-balance?asOf=2024-03-31"), nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-03-31", resp.AsOf)
	suite.Len(resp.Rows, 2)
	suite.True(resp.Totals.Debit.Equal(resp.Totals.Credit))
}

func (suite *HandlerTestSuite) TestTrialBalance_LedgerImbalanceIsServerError() {
	suite.ledger.On("TrialBalanceAsOf", mock.Anything, suite.companyID, day(2024, 3, 31)).
		Return(nil, &apperrors.LedgerImbalanceError{CompanyID: suite.companyID, AsOf: day(2024, 3, 31), Debits: dec("10"), Credits: dec("9")}).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/ledger/trial-balance?asOf=2024-03-31"), nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(suite.errorBody(w), "ledger is out of balance")
}

func (suite *HandlerTestSuite) TestTrialBalance_BadDate() {
	w := suite.do(http.MethodGet, suite.companyPath("/ledger/trial-balance?asOf=yesterday"), nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestAccountActivity() {
	suite.ledger.On("AccountActivity", mock.Anything, suite.companyID, day(2024, 2, 1), day(2024, 2, 29)).Return([]domain.AccountBalance{
		{Account: domain.Account{Code: "4000", Name: "Sales", AccountType: domain.Revenue}, TotalDebits: dec("50"), TotalCredits: dec("700")},
	}, nil).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/ledger/activity?fromDate=2024-02-01&toDate=2024-02-29"), nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.AccountActivityResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Rows, 1)
	suite.True(dec("650").Equal(resp.Rows[0].Net))
}

func (suite *HandlerTestSuite) TestProfitAndLoss_InvertedRange() {
	w := suite.do(http.MethodGet, suite.companyPath("/reports/profit-and-loss?fromDate=2024-04-01&toDate=2024-03-31"), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.reporting.AssertNotCalled(suite.T(), "ProfitAndLoss", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestBalanceSheet_CarriesWarning() {
	suite.reporting.On("BalanceSheet", mock.Anything, suite.companyID, day(2024, 3, 31)).Return(&domain.BalanceSheetReport{
		AsOf:                      day(2024, 3, 31),
		Assets:                    []domain.AccountAmount{{AccountCode: "1000", Name: "Cash", NetAmount: dec("100.01")}},
		Equity:                    []domain.AccountAmount{{AccountCode: "3000", Name: "Capital", NetAmount: dec("100")}},
		TotalAssets:               dec("100.01"),
		TotalEquity:               dec("100"),
		TotalLiabilitiesAndEquity: dec("100"),
		Warning:                   &domain.BalanceSheetWarning{Message: "out by 0.01", Delta: dec("0.01")},
	}, nil).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/reports/balance-sheet?asOf=2024-03-31"), nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.BalanceSheetResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.Warning)
	suite.True(dec("0.01").Equal(resp.Warning.Delta))
}

func (suite *HandlerTestSuite) TestTrialBalance_DefaultsToClockDate() {
	suite.ledger.On("TrialBalanceAsOf", mock.Anything, suite.companyID, day(2024, 3, 15)).
		Return(&domain.TrialBalance{AsOf: day(2024, 3, 15)}, nil).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/ledger/trial-balance"), nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-03-15", resp.AsOf)
}

func (suite *HandlerTestSuite) TestProfitAndLoss_DefaultsToMonthToDate() {
	suite.clock.Set(time.Date(2024, time.February, 20, 23, 10, 0, 0, time.UTC))
	suite.reporting.On("ProfitAndLoss", mock.Anything, suite.companyID, day(2024, 2, 1), day(2024, 2, 20)).
		Return(&domain.PAndLReport{FromDate: day(2024, 2, 1), ToDate: day(2024, 2, 20)}, nil).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/reports/profit-and-loss"), nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ProfitAndLossResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-02-01", resp.FromDate)
	suite.Equal("2024-02-20", resp.ToDate)
}
