package dto

import (
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit or credit line of a journal request.
type JournalLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required,accountcode"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Side        domain.Side     `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Memo        string          `json:"memo" binding:"max=255"`
}

// CreateJournalRequest defines the data needed to create a draft journal entry.
type CreateJournalRequest struct {
	EntryDate   time.Time            `json:"entryDate" binding:"required"`
	Description string               `json:"description" binding:"max=500"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalRequest edits a draft. Omitted fields keep their value.
type UpdateJournalRequest struct {
	EntryDate   *time.Time           `json:"entryDate"`
	Description *string              `json:"description" binding:"omitempty,max=500"`
	Lines       []JournalLineRequest `json:"lines" binding:"omitempty,min=2,dive"`
}

// ReverseJournalRequest carries the reason recorded on the mirror entry.
type ReverseJournalRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Status    string `form:"status" binding:"omitempty,oneof=DRAFT POSTED REVERSED"`
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	Side        domain.Side     `json:"side"`
	Memo        string          `json:"memo,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	EntryID         string                `json:"entryID"`
	EntryNumber     string                `json:"entryNumber"`
	EntryDate       string                `json:"entryDate"`
	Description     string                `json:"description"`
	CurrencyCode    string                `json:"currencyCode"`
	Status          domain.JournalStatus  `json:"status"`
	PostedAt        *time.Time            `json:"postedAt,omitempty"`
	ReversalOf      *string               `json:"reversalOf,omitempty"`
	ReversedBy      *string               `json:"reversedBy,omitempty"`
	SourceInvoiceID *string               `json:"sourceInvoiceID,omitempty"`
	TotalDebits     decimal.Decimal       `json:"totalDebits"`
	TotalCredits    decimal.Decimal       `json:"totalCredits"`
	Lines           []JournalLineResponse `json:"lines"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ListJournalsResponse wraps a page of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJournalResponse converts a domain.JournalEntry to JournalResponse DTO.
func ToJournalResponse(j *domain.JournalEntry) JournalResponse {
	debits, credits := j.Totals()
	lines := make([]JournalLineResponse, len(j.Lines))
	for i, l := range j.Lines {
		lines[i] = JournalLineResponse{
			LineNo:      l.LineNo,
			AccountCode: l.AccountCode,
			Amount:      l.Amount,
			Side:        l.Side,
			Memo:        l.Memo,
		}
	}
	return JournalResponse{
		EntryID:         j.EntryID,
		EntryNumber:     j.EntryNumber,
		EntryDate:       j.EntryDate.Format(domain.DateLayout),
		Description:     j.Description,
		CurrencyCode:    j.CurrencyCode,
		Status:          j.Status,
		PostedAt:        j.PostedAt,
		ReversalOf:      j.ReversalOf,
		ReversedBy:      j.ReversedBy,
		SourceInvoiceID: j.SourceInvoiceID,
		TotalDebits:     debits,
		TotalCredits:    credits,
		Lines:           lines,
		CreatedAt:       j.CreatedAt,
		CreatedBy:       j.CreatedBy,
	}
}

// ToListJournalsResponse converts a page of journals to the list response.
func ToListJournalsResponse(journals []domain.JournalEntry, nextToken *string) ListJournalsResponse {
	res := make([]JournalResponse, len(journals))
	for i := range journals {
		res[i] = ToJournalResponse(&journals[i])
	}
	return ListJournalsResponse{Journals: res, NextToken: nextToken}
}
