package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE" // Projected at read time, never stored
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// InvoiceKind distinguishes documents we issue from documents we receive.
type InvoiceKind string

const (
	Receivable InvoiceKind = "RECEIVABLE"
	Payable    InvoiceKind = "PAYABLE"
)

func (k InvoiceKind) IsValid() bool {
	return k == Receivable || k == Payable
}

// InvoiceLineItem is a priced line on an invoice.
type InvoiceLineItem struct {
	LineNo      int             `json:"lineNo"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice is a receivable or payable document.
type Invoice struct {
	InvoiceID          string            `json:"invoiceID"`
	CompanyID          string            `json:"companyID"`
	InvoiceNumber      string            `json:"invoiceNumber"`
	Kind               InvoiceKind       `json:"kind"`
	CounterpartyName   string            `json:"counterpartyName"`
	CurrencyCode       string            `json:"currencyCode"`
	LineItems          []InvoiceLineItem `json:"lineItems"`
	Subtotal           decimal.Decimal   `json:"subtotal"`
	TaxRate            decimal.Decimal   `json:"taxRate"`
	TaxAmount          decimal.Decimal   `json:"taxAmount"`
	Discount           decimal.Decimal   `json:"discount"`
	TotalAmount        decimal.Decimal   `json:"totalAmount"`
	AmountPaid         decimal.Decimal   `json:"amountPaid"`
	BalanceDue         decimal.Decimal   `json:"balanceDue"`
	Status             InvoiceStatus     `json:"status"` // Stored status, never OVERDUE
	IssueDate          time.Time         `json:"issueDate"`
	DueDate            time.Time         `json:"dueDate"`
	RecognitionEntryID *string           `json:"recognitionEntryID,omitempty"`
	AuditFields
}

// EffectiveStatus projects the stored status onto today. A Sent invoice with an
// outstanding balance past its due date reads as Overdue.
func (i Invoice) EffectiveStatus(today time.Time) InvoiceStatus {
	if i.Status == InvoiceSent && i.BalanceDue.IsPositive() && i.DueDate.Before(NormalizeDate(today)) {
		return InvoiceOverdue
	}
	return i.Status
}

// CanTransition reports whether the stored status may move to next.
// Overdue is not a stored state so it never appears on either side.
func (s InvoiceStatus) CanTransition(next InvoiceStatus) bool {
	switch s {
	case InvoiceDraft:
		return next == InvoiceSent || next == InvoiceCancelled
	case InvoiceSent:
		return next == InvoicePaid || next == InvoiceCancelled
	default:
		return false
	}
}

// InvoicePayment records one application of cash against an invoice.
type InvoicePayment struct {
	PaymentID        string          `json:"paymentID"`
	InvoiceID        string          `json:"invoiceID"`
	CompanyID        string          `json:"companyID"`
	Amount           decimal.Decimal `json:"amount"` // In invoice currency
	PaymentDate      time.Time       `json:"paymentDate"`
	FunctionalAmount decimal.Decimal `json:"functionalAmount"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	JournalEntryID   string          `json:"journalEntryID"`
	Reference        string          `json:"reference,omitempty"`
	AuditFields
}
