package domain

import "regexp"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalSide is the side an account of this type carries a positive balance on.
func (t AccountType) NormalSide() Side {
	switch t {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}

var accountCodePattern = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z.\-]{0,31}$`)

// IsValidAccountCode reports whether code is a well formed, sortable account code.
func IsValidAccountCode(code string) bool {
	return accountCodePattern.MatchString(code)
}

// Account represents a ledger account within a company's chart of accounts.
type Account struct {
	CompanyID   string      `json:"companyID"`
	Code        string      `json:"code"` // Unique within the company, e.g. "1000"
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Subtype     string      `json:"subtype,omitempty"`
	ParentCode  string      `json:"parentCode,omitempty"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}
