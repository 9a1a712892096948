package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID         string         `db:"entry_id"`
	CompanyID       string         `db:"company_id"`
	Sequence        int64          `db:"sequence"`
	EntryNumber     string         `db:"entry_number"`
	EntryDate       time.Time      `db:"entry_date"`
	Description     string         `db:"description"`
	CurrencyCode    string         `db:"currency_code"`
	Status          string         `db:"status"`
	PostedAt        sql.NullTime   `db:"posted_at"`
	ReversalOf      sql.NullString `db:"reversal_of"`
	ReversedBy      sql.NullString `db:"reversed_by"`
	SourceInvoiceID sql.NullString `db:"source_invoice_id"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	EntryID     string          `db:"entry_id"`
	LineNo      int             `db:"line_no"`
	AccountCode string          `db:"account_code"`
	Amount      decimal.Decimal `db:"amount"` // Positive; NUMERIC(20,6)
	Side        string          `db:"side"`   // DEBIT or CREDIT
	Memo        string          `db:"memo"`
}
