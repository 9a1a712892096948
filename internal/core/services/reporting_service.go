package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	ledger    portssvc.LedgerSvc
	tolerance decimal.Decimal
}

// NewReportingService creates the financial statement generator. A balance
// sheet whose sides differ by more than tolerance carries a warning.
func NewReportingService(ledger portssvc.LedgerSvc, tolerance decimal.Decimal, options ...ServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		ledger:    ledger,
		tolerance: tolerance.Abs(),
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// ProfitAndLoss generates a profit and loss report for a specific period
func (s *reportingService) ProfitAndLoss(ctx context.Context, companyID string, fromDate, toDate time.Time) (*domain.PAndLReport, error) {
	fromDate, toDate = domain.NormalizeDate(fromDate), domain.NormalizeDate(toDate)
	if fromDate.After(toDate) {
		return nil, fmt.Errorf("%w: fromDate must not be after toDate", apperrors.ErrValidation)
	}

	activity, err := s.ledger.AccountActivity(ctx, companyID, fromDate, toDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve account activity",
			slog.String("company_id", companyID),
			slog.String("from", fromDate.Format(domain.DateLayout)),
			slog.String("to", toDate.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	report := &domain.PAndLReport{
		FromDate:      fromDate,
		ToDate:        toDate,
		Revenue:       []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, b := range activity {
		switch b.Account.AccountType {
		case domain.Revenue:
			net := b.Net()
			report.Revenue = append(report.Revenue, toAccountAmount(b, net))
			report.TotalRevenue = report.TotalRevenue.Add(net)
		case domain.Expense:
			net := b.Net()
			report.Expenses = append(report.Expenses, toAccountAmount(b, net))
			report.TotalExpenses = report.TotalExpenses.Add(net)
		}
	}
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Profit and loss report generated",
		slog.String("company_id", companyID),
		slog.String("net_profit", report.NetProfit.String()))
	return report, nil
}

// BalanceSheet generates a balance sheet as of a date. Revenue and expense
// balances up to asOf fold into a current earnings equity line.
func (s *reportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	asOf = domain.NormalizeDate(asOf)

	balances, err := s.ledger.AccountBalancesAsOf(ctx, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve account balances",
			slog.String("company_id", companyID),
			slog.String("as_of", asOf.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	earnings := decimal.Zero
	for _, b := range balances {
		net := b.Net()
		switch b.Account.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, toAccountAmount(b, net))
			report.TotalAssets = report.TotalAssets.Add(net)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, toAccountAmount(b, net))
			report.TotalLiabilities = report.TotalLiabilities.Add(net)
		case domain.Equity:
			report.Equity = append(report.Equity, toAccountAmount(b, net))
			report.TotalEquity = report.TotalEquity.Add(net)
		case domain.Revenue:
			earnings = earnings.Add(net)
		case domain.Expense:
			earnings = earnings.Sub(net)
		}
	}

	if !earnings.IsZero() {
		report.Equity = append(report.Equity, domain.AccountAmount{
			AccountCode: domain.CurrentEarningsCode,
			Name:        "Current Earnings",
			NetAmount:   earnings,
		})
		report.TotalEquity = report.TotalEquity.Add(earnings)
	}
	report.TotalLiabilitiesAndEquity = report.TotalLiabilities.Add(report.TotalEquity)

	delta := report.TotalAssets.Sub(report.TotalLiabilitiesAndEquity)
	if delta.Abs().GreaterThan(s.tolerance) {
		report.Warning = &domain.BalanceSheetWarning{
			Message: fmt.Sprintf("balance sheet is out of balance by %s", delta.String()),
			Delta:   delta,
		}
		s.LogInfo(ctx, "Balance sheet out of balance",
			slog.String("company_id", companyID),
			slog.String("as_of", asOf.Format(domain.DateLayout)),
			slog.String("delta", delta.String()))
	}
	return report, nil
}

func toAccountAmount(b domain.AccountBalance, net decimal.Decimal) domain.AccountAmount {
	return domain.AccountAmount{
		AccountCode: b.Account.Code,
		Name:        b.Account.Name,
		NetAmount:   net,
	}
}
