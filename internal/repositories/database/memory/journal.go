package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	"github.com/Adams-ibr/Commodity-sub000/internal/utils/pagination"
)

var _ portsrepo.JournalRepositoryFacade = (*Store)(nil)

func (s *Store) FindJournalByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	e, ok := s.read(ctx, companyID).journals[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	found := e.Clone()
	return &found, nil
}

func (s *Store) ListJournals(ctx context.Context, companyID string, status *domain.JournalStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	var before int64 = -1
	if nextToken != nil && *nextToken != "" {
		seq, err := pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", apperrors.ErrValidation)
		}
		before = seq
	}

	st := s.read(ctx, companyID)
	all := make([]domain.JournalEntry, 0, len(st.journals))
	for _, e := range st.journals {
		if status != nil && e.Status != *status {
			continue
		}
		if before >= 0 && e.Sequence >= before {
			continue
		}
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Sequence > all[j].Sequence })

	var next *string
	if len(all) > limit {
		all = all[:limit]
		token := pagination.EncodeSequenceToken(all[limit-1].Sequence)
		next = &token
	}
	out := make([]domain.JournalEntry, len(all))
	for i, e := range all {
		out[i] = e.Clone()
	}
	return out, next, nil
}

// ListPostedLines pages through the company's posted history in replay order.
// Each page is a binary search into the state's ledger index.
func (s *Store) ListPostedLines(ctx context.Context, companyID string, from *time.Time, to time.Time, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	if limit <= 0 {
		limit = 500
	}
	lines := s.read(ctx, companyID).postedLines()

	start := 0
	if from != nil {
		fromDate := domain.NormalizeDate(*from)
		start = sort.Search(len(lines), func(i int) bool { return !lines[i].EntryDate.Before(fromDate) })
	}
	if nextToken != nil && *nextToken != "" {
		cursorDate, cursorSeq, cursorLine, err := pagination.DecodeLineCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", apperrors.ErrValidation)
		}
		cursor := domain.LedgerLine{EntryDate: cursorDate, Sequence: cursorSeq, LineNo: cursorLine}
		start = max(start, sort.Search(len(lines), func(i int) bool { return lineBefore(cursor, lines[i]) }))
	}
	toDate := domain.NormalizeDate(to)
	end := sort.Search(len(lines), func(i int) bool { return lines[i].EntryDate.After(toDate) })
	if start >= end {
		return []domain.LedgerLine{}, nil, nil
	}

	var next *string
	if end-start > limit {
		end = start + limit
		last := lines[end-1]
		token := pagination.EncodeLineCursor(last.EntryDate, last.Sequence, last.LineNo)
		next = &token
	}
	return append([]domain.LedgerLine(nil), lines[start:end]...), next, nil
}

// ledgerIndex holds a state's posted and reversed lines in replay order. It is
// built on first read; any journal write installs a fresh index.
type ledgerIndex struct {
	once  sync.Once
	lines []domain.LedgerLine
}

func (st *companyState) postedLines() []domain.LedgerLine {
	idx := st.ledger
	idx.once.Do(func() {
		lines := make([]domain.LedgerLine, 0)
		for _, e := range st.journals {
			if e.Status == domain.Draft {
				continue
			}
			for _, l := range e.Lines {
				lines = append(lines, domain.LedgerLine{
					EntryID:     e.EntryID,
					Sequence:    e.Sequence,
					EntryDate:   e.EntryDate,
					LineNo:      l.LineNo,
					AccountCode: l.AccountCode,
					Side:        l.Side,
					Amount:      l.Amount,
				})
			}
		}
		sort.Slice(lines, func(i, j int) bool { return lineBefore(lines[i], lines[j]) })
		idx.lines = lines
	})
	return idx.lines
}

func lineBefore(a, b domain.LedgerLine) bool {
	if !a.EntryDate.Equal(b.EntryDate) {
		return a.EntryDate.Before(b.EntryDate)
	}
	if a.Sequence != b.Sequence {
		return a.Sequence < b.Sequence
	}
	return a.LineNo < b.LineNo
}

func (s *Store) NextJournalSequence(ctx context.Context, companyID string) (int64, error) {
	var seq int64
	err := s.write(ctx, companyID, func(st *companyState) error {
		st.journalSeq++
		seq = st.journalSeq
		return nil
	})
	return seq, err
}

func (s *Store) SaveJournal(ctx context.Context, entry domain.JournalEntry) error {
	return s.write(ctx, entry.CompanyID, func(st *companyState) error {
		if _, ok := st.journals[entry.EntryID]; ok {
			return apperrors.NewDuplicateError("journal entry " + entry.EntryID + " already exists")
		}
		st.journals[entry.EntryID] = entry.Clone()
		st.ledger = &ledgerIndex{}
		return nil
	})
}

func (s *Store) UpdateJournalHeader(ctx context.Context, entry domain.JournalEntry) error {
	return s.write(ctx, entry.CompanyID, func(st *companyState) error {
		cur, ok := st.journals[entry.EntryID]
		if !ok {
			return apperrors.ErrNotFound
		}
		updated := entry.Clone()
		updated.Lines = cur.Lines
		st.journals[entry.EntryID] = updated
		st.ledger = &ledgerIndex{}
		return nil
	})
}

func (s *Store) ReplaceJournalLines(ctx context.Context, companyID, entryID string, lines []domain.JournalLine) error {
	return s.write(ctx, companyID, func(st *companyState) error {
		cur, ok := st.journals[entryID]
		if !ok {
			return apperrors.ErrNotFound
		}
		cur.Lines = append([]domain.JournalLine(nil), lines...)
		st.journals[entryID] = cur
		st.ledger = &ledgerIndex{}
		return nil
	})
}
