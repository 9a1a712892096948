package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType names a domain event.
type EventType string

const (
	EventJournalPosted          EventType = "journal.posted"
	EventJournalReversed        EventType = "journal.reversed"
	EventInvoicePaymentRecorded EventType = "invoice.payment_recorded"
	EventInvoicePaid            EventType = "invoice.paid"
)

// Event is published after the transaction that produced it commits.
type Event struct {
	Type       EventType
	CompanyID  string
	OccurredAt time.Time
	Payload    any
}

// JournalPostedPayload accompanies EventJournalPosted.
type JournalPostedPayload struct {
	EntryID     string
	EntryNumber string
	EntryDate   time.Time
	Total       decimal.Decimal
}

// JournalReversedPayload accompanies EventJournalReversed.
type JournalReversedPayload struct {
	OriginalEntryID string
	ReversalEntryID string
	Reason          string
}

// InvoicePaymentPayload accompanies the invoice payment events.
type InvoicePaymentPayload struct {
	InvoiceID      string
	InvoiceNumber  string
	PaymentID      string
	Amount         decimal.Decimal
	BalanceDue     decimal.Decimal
	JournalEntryID string
}
