package services

import (
	"context"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	GetJournal(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)
	ListJournals(ctx context.Context, companyID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateDraft validates lines and accounts but not balance.
	CreateDraft(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error)

	UpdateDraft(ctx context.Context, companyID, entryID string, req dto.UpdateJournalRequest, userID string) (*domain.JournalEntry, error)

	// PostJournal fails with apperrors.ErrImbalancedEntry or apperrors.ErrAlreadyPosted.
	PostJournal(ctx context.Context, companyID, entryID string, userID string) (*domain.JournalEntry, error)

	// ReverseJournal returns the auto-posted mirror entry. Entries posted by the
	// invoice bridge are rejected with apperrors.ErrInvalidStateTransition.
	ReverseJournal(ctx context.Context, companyID, entryID, reason string, userID string) (*domain.JournalEntry, error)

	// CreateAndPost creates and posts an entry in one transaction. Called with
	// a transaction context it joins that transaction.
	CreateAndPost(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// InvoiceJournalSvc is the journal engine as the invoice bridge sees it.
// Entries it posts are tagged with the invoice and can only be reversed here.
type InvoiceJournalSvc interface {
	GetJournal(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)
	PostInvoiceEntry(ctx context.Context, companyID, invoiceID string, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error)
	ReverseInvoiceEntry(ctx context.Context, companyID, invoiceID, entryID, reason string, userID string) (*domain.JournalEntry, error)
}

// JournalEngine is the full journal service: the public facade plus the
// invoice bridge entry points.
type JournalEngine interface {
	JournalSvcFacade
	InvoiceJournalSvc
}
