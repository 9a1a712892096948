package models

// Company is a row of the companies table. Posting account codes are stored flat.
type Company struct {
	CompanyID          string `db:"company_id"`
	Name               string `db:"name"`
	FunctionalCurrency string `db:"functional_currency"`
	CashAccount        string `db:"cash_account"`
	ReceivableAccount  string `db:"receivable_account"`
	PayableAccount     string `db:"payable_account"`
	RevenueAccount     string `db:"revenue_account"`
	ExpenseAccount     string `db:"expense_account"`
	AuditFields
}
