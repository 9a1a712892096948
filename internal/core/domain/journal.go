package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Side indicates whether a line is a Debit or a Credit.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

func (s Side) IsValid() bool {
	return s == Debit || s == Credit
}

// JournalLine is one side of a posting. Amount is always positive.
type JournalLine struct {
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	Side        Side            `json:"side"`
	Memo        string          `json:"memo,omitempty"`
}

// JournalEntry is a single double-entry transaction.
type JournalEntry struct {
	EntryID         string        `json:"entryID"`
	CompanyID       string        `json:"companyID"`
	Sequence        int64         `json:"sequence"`
	EntryNumber     string        `json:"entryNumber"` // JE-000001
	EntryDate       time.Time     `json:"entryDate"`
	Description     string        `json:"description"`
	CurrencyCode    string        `json:"currencyCode"`
	Status          JournalStatus `json:"status"`
	PostedAt        *time.Time    `json:"postedAt,omitempty"`
	ReversalOf      *string       `json:"reversalOf,omitempty"`      // Set on the mirror entry
	ReversedBy      *string       `json:"reversedBy,omitempty"`      // Set on the original once reversed
	SourceInvoiceID *string       `json:"sourceInvoiceID,omitempty"` // Invoice that posted the entry; only its bridge may reverse it
	Lines           []JournalLine `json:"lines"`
	AuditFields
}

// Totals sums the debit and credit sides of the entry.
func (e JournalEntry) Totals() (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		if l.Side == Debit {
			debits = debits.Add(l.Amount)
		} else {
			credits = credits.Add(l.Amount)
		}
	}
	return debits, credits
}

// IsReversal reports whether this entry mirrors another one.
func (e JournalEntry) IsReversal() bool {
	return e.ReversalOf != nil
}

// Clone returns a deep copy so callers may mutate lines freely.
func (e JournalEntry) Clone() JournalEntry {
	c := e
	c.Lines = append([]JournalLine(nil), e.Lines...)
	if e.PostedAt != nil {
		t := *e.PostedAt
		c.PostedAt = &t
	}
	if e.ReversalOf != nil {
		s := *e.ReversalOf
		c.ReversalOf = &s
	}
	if e.ReversedBy != nil {
		s := *e.ReversedBy
		c.ReversedBy = &s
	}
	if e.SourceInvoiceID != nil {
		s := *e.SourceInvoiceID
		c.SourceInvoiceID = &s
	}
	return c
}

// LedgerLine is a posted line joined with its entry header, the unit the
// ledger aggregator replays.
type LedgerLine struct {
	EntryID     string
	Sequence    int64
	EntryDate   time.Time
	LineNo      int
	AccountCode string
	Side        Side
	Amount      decimal.Decimal
}
