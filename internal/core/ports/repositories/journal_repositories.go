package repositories

import (
	"context"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal entry with its lines in line order.
	FindJournalByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// ListJournals retrieves a page of entries, newest first, using token-based pagination.
	ListJournals(ctx context.Context, companyID string, status *domain.JournalStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// NextJournalSequence allocates the next entry sequence for the company.
	NextJournalSequence(ctx context.Context, companyID string) (int64, error)

	// SaveJournal persists a new entry and its lines.
	SaveJournal(ctx context.Context, entry domain.JournalEntry) error

	// UpdateJournalHeader persists date, description, status, posting and reversal links.
	UpdateJournalHeader(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceJournalLines swaps the lines of a draft entry.
	ReplaceJournalLines(ctx context.Context, companyID, entryID string, lines []domain.JournalLine) error
}

// LedgerLineReader streams posted lines for the ledger aggregator.
type LedgerLineReader interface {
	// ListPostedLines returns lines of POSTED and REVERSED entries whose entry
	// date is within [from, to] (from nil means the beginning of time),
	// ordered by entry date, sequence and line number. A nil next token
	// means the window is exhausted.
	ListPostedLines(ctx context.Context, companyID string, from *time.Time, to time.Time, limit int, nextToken *string) ([]domain.LedgerLine, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LedgerLineReader
}
