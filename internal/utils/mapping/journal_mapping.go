package mapping

import (
	"database/sql"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:         d.EntryID,
		CompanyID:       d.CompanyID,
		Sequence:        d.Sequence,
		EntryNumber:     d.EntryNumber,
		EntryDate:       d.EntryDate,
		Description:     d.Description,
		CurrencyCode:    d.CurrencyCode,
		Status:          string(d.Status),
		ReversalOf:      toNullStringPtr(d.ReversalOf),
		ReversedBy:      toNullStringPtr(d.ReversedBy),
		SourceInvoiceID: toNullStringPtr(d.SourceInvoiceID),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.PostedAt != nil {
		m.PostedAt = sql.NullTime{Time: *d.PostedAt, Valid: true}
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:         m.EntryID,
		CompanyID:       m.CompanyID,
		Sequence:        m.Sequence,
		EntryNumber:     m.EntryNumber,
		EntryDate:       domain.NormalizeDate(m.EntryDate),
		Description:     m.Description,
		CurrencyCode:    m.CurrencyCode,
		Status:          domain.JournalStatus(m.Status),
		ReversalOf:      fromNullStringPtr(m.ReversalOf),
		ReversedBy:      fromNullStringPtr(m.ReversedBy),
		SourceInvoiceID: fromNullStringPtr(m.SourceInvoiceID),
		Lines:           ToDomainJournalLineSlice(lines),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.PostedAt.Valid {
		t := m.PostedAt.Time
		d.PostedAt = &t
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(entryID string, d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		EntryID:     entryID,
		LineNo:      d.LineNo,
		AccountCode: d.AccountCode,
		Amount:      d.Amount,
		Side:        string(d.Side),
		Memo:        d.Memo,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to a slice of domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = domain.JournalLine{
			LineNo:      m.LineNo,
			AccountCode: m.AccountCode,
			Amount:      m.Amount,
			Side:        domain.Side(m.Side),
			Memo:        m.Memo,
		}
	}
	return ds
}
