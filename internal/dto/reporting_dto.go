package dto

import (
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	Anomalous     bool            `json:"anomalous"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetProfit     decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
}

// BalanceSheetWarningResponse is present when the two sides of the balance sheet disagree.
type BalanceSheetWarningResponse struct {
	Message string          `json:"message"`
	Delta   decimal.Decimal `json:"delta"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets               decimal.Decimal `json:"totalAssets"`
		TotalLiabilities          decimal.Decimal `json:"totalLiabilities"`
		TotalEquity               decimal.Decimal `json:"totalEquity"`
		TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
	} `json:"summary"`
	Warning *BalanceSheetWarningResponse `json:"warning,omitempty"`
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: tb.AsOf.Format(domain.DateLayout),
		Rows: make([]TrialBalanceRowResponse, len(tb.Rows)),
	}
	for i, row := range tb.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountCode:   row.AccountCode,
			AccountName:   row.AccountName,
			AccountType:   string(row.AccountType),
			DebitBalance:  row.DebitBalance,
			CreditBalance: row.CreditBalance,
			Anomalous:     row.Anomalous,
		}
	}
	response.Totals.Debit = tb.TotalDebits
	response.Totals.Credit = tb.TotalCredits
	return response
}

func toAccountAmountResponses(amounts []domain.AccountAmount) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(amounts))
	for i, a := range amounts {
		res[i] = AccountAmountResponse{AccountCode: a.AccountCode, Name: a.Name, Amount: a.NetAmount}
	}
	return res
}

// ToProfitAndLossResponse converts a domain P&L report to a DTO response
func ToProfitAndLossResponse(report *domain.PAndLReport) ProfitAndLossResponse {
	response := ProfitAndLossResponse{
		FromDate: report.FromDate.Format(domain.DateLayout),
		ToDate:   report.ToDate.Format(domain.DateLayout),
		Revenue:  toAccountAmountResponses(report.Revenue),
		Expenses: toAccountAmountResponses(report.Expenses),
	}
	response.Summary.TotalRevenue = report.TotalRevenue
	response.Summary.TotalExpenses = report.TotalExpenses
	response.Summary.NetProfit = report.NetProfit
	return response
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        report.AsOf.Format(domain.DateLayout),
		Assets:      toAccountAmountResponses(report.Assets),
		Liabilities: toAccountAmountResponses(report.Liabilities),
		Equity:      toAccountAmountResponses(report.Equity),
	}
	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.TotalEquity = report.TotalEquity
	response.Summary.TotalLiabilitiesAndEquity = report.TotalLiabilitiesAndEquity
	if report.Warning != nil {
		response.Warning = &BalanceSheetWarningResponse{Message: report.Warning.Message, Delta: report.Warning.Delta}
	}
	return response
}

// AccountActivityRowResponse is the movement on one account within a period.
type AccountActivityRowResponse struct {
	AccountCode  string          `json:"accountCode"`
	AccountName  string          `json:"accountName"`
	AccountType  string          `json:"accountType"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	Net          decimal.Decimal `json:"net"`
}

// AccountActivityResponse represents the account activity report response
type AccountActivityResponse struct {
	FromDate string                       `json:"fromDate"`
	ToDate   string                       `json:"toDate"`
	Rows     []AccountActivityRowResponse `json:"rows"`
}

// ToAccountActivityResponse converts per-account period totals to a DTO response
func ToAccountActivityResponse(balances []domain.AccountBalance, from, to time.Time) AccountActivityResponse {
	response := AccountActivityResponse{
		FromDate: from.Format(domain.DateLayout),
		ToDate:   to.Format(domain.DateLayout),
		Rows:     make([]AccountActivityRowResponse, len(balances)),
	}
	for i, b := range balances {
		response.Rows[i] = AccountActivityRowResponse{
			AccountCode:  b.Account.Code,
			AccountName:  b.Account.Name,
			AccountType:  string(b.Account.AccountType),
			TotalDebits:  b.TotalDebits,
			TotalCredits: b.TotalCredits,
			Net:          b.Net(),
		}
	}
	return response
}
