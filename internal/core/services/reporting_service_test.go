package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func balanceOf(code, name string, accountType domain.AccountType, debits, credits string) domain.AccountBalance {
	return domain.AccountBalance{
		Account:      domain.Account{Code: code, Name: name, AccountType: accountType, IsActive: true},
		TotalDebits:  dec(debits),
		TotalCredits: dec(credits),
	}
}

func TestProfitAndLoss(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockLedgerSvc)
	svc := services.NewReportingService(ledger, decimal.Zero)

	ledger.On("AccountActivity", ctx, companyA, date(2024, 1, 1), date(2024, 3, 31)).Return([]domain.AccountBalance{
		balanceOf("1000", "Cash", domain.Asset, "900", "100"),
		balanceOf("4000", "Sales", domain.Revenue, "50", "1050"),
		balanceOf("4100", "Other income", domain.Revenue, "0", "25"),
		balanceOf("5000", "Purchases", domain.Expense, "400", "0"),
		balanceOf("5100", "Freight", domain.Expense, "80", "5"),
	}, nil).Once()

	report, err := svc.ProfitAndLoss(ctx, companyA, date(2024, 1, 1), date(2024, 3, 31))

	require.NoError(t, err)
	require.Len(t, report.Revenue, 2)
	require.Len(t, report.Expenses, 2)
	assert.True(t, dec("1000").Equal(report.Revenue[0].NetAmount))
	assert.True(t, dec("1025").Equal(report.TotalRevenue))
	assert.True(t, dec("475").Equal(report.TotalExpenses))
	assert.True(t, dec("550").Equal(report.NetProfit))
	ledger.AssertExpectations(t)
}

func TestProfitAndLoss_InvertedPeriod(t *testing.T) {
	ledger := new(MockLedgerSvc)
	svc := services.NewReportingService(ledger, decimal.Zero)

	_, err := svc.ProfitAndLoss(context.Background(), companyA, date(2024, 4, 1), date(2024, 3, 31))

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	ledger.AssertNotCalled(t, "AccountActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBalanceSheet_CurrentEarnings(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockLedgerSvc)
	svc := services.NewReportingService(ledger, decimal.Zero)

	ledger.On("AccountBalancesAsOf", ctx, companyA, date(2024, 3, 31)).Return([]domain.AccountBalance{
		balanceOf("1000", "Cash", domain.Asset, "1600", "0"),
		balanceOf("2000", "Payables", domain.Liability, "0", "300"),
		balanceOf("3000", "Capital", domain.Equity, "0", "1000"),
		balanceOf("4000", "Sales", domain.Revenue, "0", "500"),
		balanceOf("5000", "Purchases", domain.Expense, "200", "0"),
	}, nil).Once()

	report, err := svc.BalanceSheet(ctx, companyA, date(2024, 3, 31))

	require.NoError(t, err)
	assert.Nil(t, report.Warning)
	assert.True(t, dec("1600").Equal(report.TotalAssets))
	require.Len(t, report.Equity, 2)
	earnings := report.Equity[1]
	assert.Equal(t, domain.CurrentEarningsCode, earnings.AccountCode)
	assert.True(t, dec("300").Equal(earnings.NetAmount))
	assert.True(t, dec("1300").Equal(report.TotalEquity))
	assert.True(t, dec("1600").Equal(report.TotalLiabilitiesAndEquity))
}

func TestBalanceSheet_Warning(t *testing.T) {
	ctx := context.Background()
	unbalanced := []domain.AccountBalance{
		balanceOf("1000", "Cash", domain.Asset, "100.01", "0"),
		balanceOf("3000", "Capital", domain.Equity, "0", "100"),
	}

	t.Run("beyond tolerance", func(t *testing.T) {
		ledger := new(MockLedgerSvc)
		svc := services.NewReportingService(ledger, decimal.Zero)
		ledger.On("AccountBalancesAsOf", ctx, companyA, date(2024, 3, 31)).Return(unbalanced, nil).Once()

		report, err := svc.BalanceSheet(ctx, companyA, date(2024, 3, 31))

		require.NoError(t, err)
		require.NotNil(t, report.Warning)
		assert.True(t, dec("0.01").Equal(report.Warning.Delta))
		assert.Contains(t, report.Warning.Message, "0.01")
	})

	t.Run("within tolerance", func(t *testing.T) {
		ledger := new(MockLedgerSvc)
		svc := services.NewReportingService(ledger, dec("0.01"))
		ledger.On("AccountBalancesAsOf", ctx, companyA, date(2024, 3, 31)).Return(unbalanced, nil).Once()

		report, err := svc.BalanceSheet(ctx, companyA, date(2024, 3, 31))

		require.NoError(t, err)
		assert.Nil(t, report.Warning)
	})
}

func TestBalanceSheet_LedgerError(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockLedgerSvc)
	svc := services.NewReportingService(ledger, decimal.Zero)
	boom := errors.New("ledger offline")
	ledger.On("AccountBalancesAsOf", ctx, companyA, mock.Anything).Return(nil, boom).Once()

	_, err := svc.BalanceSheet(ctx, companyA, date(2024, 3, 31))

	assert.ErrorIs(t, err, boom)
}

func TestReports_EndToEnd(t *testing.T) {
	f := newLedgerFixture(t)
	f.post(t, date(2024, 1, 2), line("1000", domain.Debit, "1000"), line("3000", domain.Credit, "1000"))
	f.post(t, date(2024, 2, 5), line("1200", domain.Debit, "700"), line("4000", domain.Credit, "700"))
	f.post(t, date(2024, 2, 9), line("5000", domain.Debit, "250"), line("2000", domain.Credit, "250"))

	pnl, err := f.svc.Reporting.ProfitAndLoss(f.ctx, f.companyID, date(2024, 2, 1), date(2024, 2, 29))
	require.NoError(t, err)
	assert.True(t, dec("450").Equal(pnl.NetProfit))

	bs, err := f.svc.Reporting.BalanceSheet(f.ctx, f.companyID, date(2024, 2, 29))
	require.NoError(t, err)
	assert.Nil(t, bs.Warning)
	assert.True(t, dec("1700").Equal(bs.TotalAssets))
	assert.True(t, dec("250").Equal(bs.TotalLiabilities))
	assert.True(t, dec("1450").Equal(bs.TotalEquity))
}
