package domain

// PostingAccounts names the account codes a company uses for postings that the
// system generates on its own (invoice recognition and payments).
type PostingAccounts struct {
	Cash       string `json:"cash"`
	Receivable string `json:"receivable"`
	Payable    string `json:"payable"`
	Revenue    string `json:"revenue"`
	Expense    string `json:"expense"`
}

// WithDefaults fills any empty code from defaults.
func (p PostingAccounts) WithDefaults(defaults PostingAccounts) PostingAccounts {
	if p.Cash == "" {
		p.Cash = defaults.Cash
	}
	if p.Receivable == "" {
		p.Receivable = defaults.Receivable
	}
	if p.Payable == "" {
		p.Payable = defaults.Payable
	}
	if p.Revenue == "" {
		p.Revenue = defaults.Revenue
	}
	if p.Expense == "" {
		p.Expense = defaults.Expense
	}
	return p
}

// Company is the tenant every ledger record belongs to.
type Company struct {
	CompanyID          string          `json:"companyID"`
	Name               string          `json:"name"`
	FunctionalCurrency string          `json:"functionalCurrency"` // Currency the ledger balances are expressed in
	PostingAccounts    PostingAccounts `json:"postingAccounts"`
	AuditFields
}
