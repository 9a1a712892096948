package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	"github.com/Adams-ibr/Commodity-sub000/internal/models"
	"github.com/Adams-ibr/Commodity-sub000/internal/utils/mapping"
	"github.com/Adams-ibr/Commodity-sub000/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `entry_id, company_id, sequence, entry_number, entry_date, description, currency_code, status,
	posted_at, reversal_of, reversed_by, source_invoice_id, created_at, created_by, last_updated_at, last_updated_by`

func scanJournal(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.CompanyID, &m.Sequence, &m.EntryNumber, &m.EntryDate, &m.Description, &m.CurrencyCode, &m.Status,
		&m.PostedAt, &m.ReversalOf, &m.ReversedBy, &m.SourceInvoiceID, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveJournal inserts the entry header and queues all lines in a single batch.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	db := r.db(ctx)

	_, err := db.Exec(ctx, `
		INSERT INTO journal_entries (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`,
		m.EntryID, m.CompanyID, m.Sequence, m.EntryNumber, m.EntryDate, m.Description, m.CurrencyCode, m.Status,
		m.PostedAt, m.ReversalOf, m.ReversedBy, m.SourceInvoiceID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("journal entry " + m.EntryNumber + " already exists")
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}
	return r.insertLines(ctx, db, entry.EntryID, entry.Lines)
}

func (r *PgxJournalRepository) insertLines(ctx context.Context, db querier, entryID string, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (entry_id, line_no, account_code, amount, side, memo)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, l := range lines {
		ml := mapping.ToModelJournalLine(entryID, l)
		batch.Queue(lineQuery, ml.EntryID, ml.LineNo, ml.AccountCode, ml.Amount, ml.Side, ml.Memo)
	}

	br := db.SendBatch(ctx, batch)
	// Close surfaces the first failing statement of the batch.
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for journal entry "+entryID, err)
	}
	return nil
}

// FindJournalByID retrieves a journal entry and its lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE company_id = $1 AND entry_id = $2;`
	m, err := scanJournal(r.db(ctx).QueryRow(ctx, query, companyID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}

	lines, err := r.findLines(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, lines)
	return &entry, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, entryID string) ([]models.JournalLine, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT entry_id, line_no, account_code, amount, side, memo
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_no;
	`, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.EntryID, &l.LineNo, &l.AccountCode, &l.Amount, &l.Side, &l.Memo); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line for journal entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating lines for journal entry "+entryID, err)
	}
	return lines, nil
}

// ListJournals returns entries newest first. The token carries the sequence
// of the last entry on the previous page.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, companyID string, status *domain.JournalStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE company_id = $1`
	args := []any{companyID}
	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		seq, err := pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, seq)
		query += ` AND sequence < $` + strconv.Itoa(len(args))
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY sequence DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries for company "+companyID, err)
	}
	headers := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			rows.Close()
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		headers = append(headers, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var next *string
	if len(headers) > limit {
		headers = headers[:limit]
		token := pagination.EncodeSequenceToken(headers[limit-1].Sequence)
		next = &token
	}

	entries := make([]domain.JournalEntry, 0, len(headers))
	for _, h := range headers {
		lines, err := r.findLines(ctx, h.EntryID)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, mapping.ToDomainJournalEntry(h, lines))
	}
	return entries, next, nil
}

// ListPostedLines streams ledger lines using a keyset cursor on
// (entry_date, sequence, line_no).
func (r *PgxJournalRepository) ListPostedLines(ctx context.Context, companyID string, from *time.Time, to time.Time, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	if limit <= 0 {
		limit = 500
	}
	fetchLimit := limit + 1

	query := `
		SELECT e.entry_id, e.sequence, e.entry_date, l.line_no, l.account_code, l.side, l.amount
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.company_id = $1 AND e.status IN ('POSTED', 'REVERSED') AND e.entry_date <= $2`
	args := []any{companyID, domain.NormalizeDate(to)}
	if from != nil {
		args = append(args, domain.NormalizeDate(*from))
		query += ` AND e.entry_date >= $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastSeq, lastLine, err := pagination.DecodeLineCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", apperrors.ErrValidation)
		}
		// Tuple comparison keeps the cursor on the ordering index
		args = append(args, lastDate, lastSeq, lastLine)
		n := len(args)
		query += ` AND (e.entry_date, e.sequence, l.line_no) > ($` + strconv.Itoa(n-2) + `, $` + strconv.Itoa(n-1) + `, $` + strconv.Itoa(n) + `)`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY e.entry_date, e.sequence, l.line_no LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query posted lines for company "+companyID, err)
	}
	defer rows.Close()

	lines := make([]domain.LedgerLine, 0, fetchLimit)
	for rows.Next() {
		var (
			l    domain.LedgerLine
			side string
		)
		if err := rows.Scan(&l.EntryID, &l.Sequence, &l.EntryDate, &l.LineNo, &l.AccountCode, &side, &l.Amount); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan posted line", err)
		}
		l.Side = domain.Side(side)
		l.EntryDate = domain.NormalizeDate(l.EntryDate)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating posted lines", err)
	}

	var next *string
	if len(lines) > limit {
		lines = lines[:limit]
		last := lines[limit-1]
		token := pagination.EncodeLineCursor(last.EntryDate, last.Sequence, last.LineNo)
		next = &token
	}
	return lines, next, nil
}

func (r *PgxJournalRepository) NextJournalSequence(ctx context.Context, companyID string) (int64, error) {
	return r.nextSequence(ctx, companyID, "journal")
}

func (r *PgxJournalRepository) UpdateJournalHeader(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE journal_entries
		SET entry_date = $3, description = $4, status = $5, posted_at = $6, reversal_of = $7, reversed_by = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE company_id = $1 AND entry_id = $2;
	`,
		m.CompanyID, m.EntryID, m.EntryDate, m.Description, m.Status, m.PostedAt, m.ReversalOf, m.ReversedBy,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxJournalRepository) ReplaceJournalLines(ctx context.Context, companyID, entryID string, lines []domain.JournalLine) error {
	db := r.db(ctx)
	_, err := db.Exec(ctx, `
		DELETE FROM journal_lines
		WHERE entry_id = (SELECT entry_id FROM journal_entries WHERE company_id = $1 AND entry_id = $2);
	`, companyID, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to clear lines for journal entry "+entryID, err)
	}
	return r.insertLines(ctx, db, entryID, lines)
}
