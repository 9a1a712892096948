package models

import "database/sql"

// Account is a row of the accounts table.
type Account struct {
	CompanyID   string         `db:"company_id"`
	Code        string         `db:"code"`
	Name        string         `db:"name"`
	AccountType string         `db:"account_type"`
	Subtype     sql.NullString `db:"subtype"`
	ParentCode  sql.NullString `db:"parent_code"` // Nullable
	IsActive    bool           `db:"is_active"`
	AuditFields
}
