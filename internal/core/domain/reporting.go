package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance holds the raw debit and credit totals posted to an account.
type AccountBalance struct {
	Account      Account
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

// Net returns the balance signed by the account's normal side.
func (b AccountBalance) Net() decimal.Decimal {
	if b.Account.AccountType.NormalSide() == Debit {
		return b.TotalDebits.Sub(b.TotalCredits)
	}
	return b.TotalCredits.Sub(b.TotalDebits)
}

// TrialBalanceRow represents a single row in a trial balance report.
// Exactly one of DebitBalance and CreditBalance is non-zero unless the account nets to zero.
type TrialBalanceRow struct {
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	TotalDebits   decimal.Decimal `json:"totalDebits"`
	TotalCredits  decimal.Decimal `json:"totalCredits"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	Anomalous     bool            `json:"anomalous"` // Balance sits on the side opposite the normal one
}

// TrialBalance is the verified set of rows as of a date.
type TrialBalance struct {
	CompanyID    string            `json:"companyID"`
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
}

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report
type PAndLReport struct {
	FromDate      time.Time       `json:"fromDate"`
	ToDate        time.Time       `json:"toDate"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// BalanceSheetWarning flags a balance sheet whose two sides disagree.
type BalanceSheetWarning struct {
	Message string          `json:"message"`
	Delta   decimal.Decimal `json:"delta"` // totalAssets - totalLiabilitiesAndEquity
}

// CurrentEarningsCode labels the computed equity line for undistributed profit.
const CurrentEarningsCode = "CURRENT-EARNINGS"

// BalanceSheetReport represents a balance sheet report
type BalanceSheetReport struct {
	AsOf                      time.Time            `json:"asOf"`
	Assets                    []AccountAmount      `json:"assets"`
	Liabilities               []AccountAmount      `json:"liabilities"`
	Equity                    []AccountAmount      `json:"equity"`
	TotalAssets               decimal.Decimal      `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal      `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal      `json:"totalEquity"`
	TotalLiabilitiesAndEquity decimal.Decimal      `json:"totalLiabilitiesAndEquity"`
	Warning                   *BalanceSheetWarning `json:"warning,omitempty"`
}
