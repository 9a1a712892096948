package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table.
type Invoice struct {
	InvoiceID          string          `db:"invoice_id"`
	CompanyID          string          `db:"company_id"`
	InvoiceNumber      string          `db:"invoice_number"`
	Kind               string          `db:"kind"`
	CounterpartyName   string          `db:"counterparty_name"`
	CurrencyCode       string          `db:"currency_code"`
	Subtotal           decimal.Decimal `db:"subtotal"`
	TaxRate            decimal.Decimal `db:"tax_rate"`
	TaxAmount          decimal.Decimal `db:"tax_amount"`
	Discount           decimal.Decimal `db:"discount"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	AmountPaid         decimal.Decimal `db:"amount_paid"`
	BalanceDue         decimal.Decimal `db:"balance_due"`
	Status             string          `db:"status"`
	IssueDate          time.Time       `db:"issue_date"`
	DueDate            time.Time       `db:"due_date"`
	RecognitionEntryID sql.NullString  `db:"recognition_entry_id"`
	AuditFields
}

// InvoiceLineItem is a row of the invoice_line_items table.
type InvoiceLineItem struct {
	InvoiceID   string          `db:"invoice_id"`
	LineNo      int             `db:"line_no"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Amount      decimal.Decimal `db:"amount"`
}

// InvoicePayment is a row of the invoice_payments table.
type InvoicePayment struct {
	PaymentID        string          `db:"payment_id"`
	InvoiceID        string          `db:"invoice_id"`
	CompanyID        string          `db:"company_id"`
	Amount           decimal.Decimal `db:"amount"`
	PaymentDate      time.Time       `db:"payment_date"`
	FunctionalAmount decimal.Decimal `db:"functional_amount"`
	ExchangeRate     decimal.Decimal `db:"exchange_rate"`
	JournalEntryID   string          `db:"journal_entry_id"`
	Reference        string          `db:"reference"`
	AuditFields
}
