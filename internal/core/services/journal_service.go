package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/Adams-ibr/Commodity-sub000/internal/utils"
	"github.com/Adams-ibr/Commodity-sub000/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrJournalMinLines     = fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	ErrJournalDateMissing  = fmt.Errorf("%w: journal entry date is required", apperrors.ErrValidation)
	ErrReversalReasonBlank = fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
)

const defaultJournalPageSize = 20

// journalService is the journal engine: drafts, posting and reversal.
type journalService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountReader
	companyRepo  portsrepo.CompanyReader
	currencyRepo portsrepo.CurrencyReader
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	txManager portsrepo.TransactionManager,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	companyRepo portsrepo.CompanyReader,
	currencyRepo portsrepo.CurrencyReader,
	options ...ServiceOption,
) portssvc.JournalEngine {
	svc := &journalService{
		txManager:    txManager,
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		companyRepo:  companyRepo,
		currencyRepo: currencyRepo,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

// Ensure journalService implements the portssvc.JournalEngine interface
var _ portssvc.JournalEngine = (*journalService)(nil)

func (s *journalService) GetJournal(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalByID(ctx, companyID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal %s: %w", entryID, err)
	}
	return entry, nil
}

func (s *journalService) ListJournals(ctx context.Context, companyID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalPageSize
	}

	var status *domain.JournalStatus
	if params.Status != "" {
		st := domain.JournalStatus(strings.ToUpper(params.Status))
		switch st {
		case domain.Draft, domain.Posted, domain.Reversed:
			status = &st
		default:
			return nil, fmt.Errorf("%w: unknown journal status %q", apperrors.ErrValidation, params.Status)
		}
	}

	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	journals, next, err := s.journalRepo.ListJournals(ctx, companyID, status, limit, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}

	resp := dto.ToListJournalsResponse(journals, next)
	return &resp, nil
}

// CreateDraft stores an unposted entry. Lines and accounts are validated, the
// balance is not.
func (s *journalService) CreateDraft(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txManager.WithinCompanyTx(ctx, companyID, func(ctx context.Context) error {
		var err error
		entry, err = s.createDraftInTx(ctx, companyID, req, nil, userID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create journal draft", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	s.LogInfo(ctx, "Journal draft created",
		slog.String("company_id", companyID),
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// UpdateDraft edits a draft in place. Posted and reversed entries are immutable.
func (s *journalService) UpdateDraft(ctx context.Context, companyID, entryID string, req dto.UpdateJournalRequest, userID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txManager.WithinCompanyTx(ctx, companyID, func(ctx context.Context) error {
		var err error
		entry, err = s.journalRepo.FindJournalByID(ctx, companyID, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return &apperrors.InvalidStateTransitionError{
				Entity: "journal entry", ID: entryID, From: string(entry.Status), To: string(domain.Draft),
			}
		}

		if req.EntryDate != nil {
			if req.EntryDate.IsZero() {
				return ErrJournalDateMissing
			}
			entry.EntryDate = domain.NormalizeDate(*req.EntryDate)
		}
		if req.Description != nil {
			entry.Description = strings.TrimSpace(*req.Description)
		}
		if req.Lines != nil {
			precision, err := s.currencyPrecision(ctx, entry.CurrencyCode)
			if err != nil {
				return err
			}
			lines, err := s.buildLines(ctx, companyID, precision, req.Lines)
			if err != nil {
				return err
			}
			if err := s.journalRepo.ReplaceJournalLines(ctx, companyID, entryID, lines); err != nil {
				return err
			}
			entry.Lines = lines
		}

		s.touch(&entry.AuditFields, userID)
		return s.journalRepo.UpdateJournalHeader(ctx, *entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update journal draft",
			slog.String("company_id", companyID),
			slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal %s: %w", entryID, err)
	}
	return entry, nil
}

// PostJournal moves a draft to Posted once its debits equal its credits exactly.
func (s *journalService) PostJournal(ctx context.Context, companyID, entryID string, userID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txManager.WithinCompanyTx(ctx, companyID, func(ctx context.Context) error {
		var err error
		entry, err = s.journalRepo.FindJournalByID(ctx, companyID, entryID)
		if err != nil {
			return err
		}
		return s.postInTx(ctx, entry, userID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal",
			slog.String("company_id", companyID),
			slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post journal %s: %w", entryID, err)
	}
	return entry, nil
}

// CreateAndPost creates and posts in one transaction, joining the caller's
// transaction when ctx carries one.
func (s *journalService) CreateAndPost(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.createAndPost(ctx, companyID, req, nil, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to create and post journal", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create and post journal: %w", err)
	}
	return entry, nil
}

// PostInvoiceEntry is CreateAndPost for the invoice bridge. The entry is
// tagged with invoiceID.
func (s *journalService) PostInvoiceEntry(ctx context.Context, companyID, invoiceID string, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error) {
	if invoiceID == "" {
		return nil, fmt.Errorf("%w: invoice id is required", apperrors.ErrValidation)
	}
	entry, err := s.createAndPost(ctx, companyID, req, &invoiceID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to post invoice entry",
			slog.String("company_id", companyID),
			slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to post entry for invoice %s: %w", invoiceID, err)
	}
	return entry, nil
}

func (s *journalService) createAndPost(ctx context.Context, companyID string, req dto.CreateJournalRequest, sourceInvoiceID *string, userID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txManager.WithinCompanyTx(ctx, companyID, func(ctx context.Context) error {
		var err error
		entry, err = s.createDraftInTx(ctx, companyID, req, sourceInvoiceID, userID)
		if err != nil {
			return err
		}
		return s.postInTx(ctx, entry, userID)
	})
	return entry, err
}

// ReverseJournal posts a mirror of a posted entry, dated on the original's
// entry date, and marks the original Reversed. Invoice entries are left to
// the invoice bridge.
func (s *journalService) ReverseJournal(ctx context.Context, companyID, entryID, reason string, userID string) (*domain.JournalEntry, error) {
	return s.reverse(ctx, companyID, entryID, reason, "", userID)
}

// ReverseInvoiceEntry reverses an entry that invoiceID posted.
func (s *journalService) ReverseInvoiceEntry(ctx context.Context, companyID, invoiceID, entryID, reason string, userID string) (*domain.JournalEntry, error) {
	if invoiceID == "" {
		return nil, fmt.Errorf("%w: invoice id is required", apperrors.ErrValidation)
	}
	return s.reverse(ctx, companyID, entryID, reason, invoiceID, userID)
}

// reverse is shared by both reversal paths. invoiceID must match the entry's
// source invoice; an empty invoiceID only reverses untagged entries.
func (s *journalService) reverse(ctx context.Context, companyID, entryID, reason, invoiceID string, userID string) (*domain.JournalEntry, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReversalReasonBlank
	}

	var reversal domain.JournalEntry
	err := s.txManager.WithinCompanyTx(ctx, companyID, func(ctx context.Context) error {
		original, err := s.journalRepo.FindJournalByID(ctx, companyID, entryID)
		if err != nil {
			return err
		}
		if original.IsReversal() {
			return &apperrors.InvalidStateTransitionError{
				Entity: "journal entry", ID: entryID, From: "REVERSAL", To: string(domain.Reversed),
			}
		}
		if !sourceMatches(original.SourceInvoiceID, invoiceID) {
			return &apperrors.InvalidStateTransitionError{
				Entity: "journal entry", ID: entryID, From: sourceLabel(original.SourceInvoiceID), To: string(domain.Reversed),
			}
		}
		if original.Status != domain.Posted {
			return &apperrors.InvalidStateTransitionError{
				Entity: "journal entry", ID: entryID, From: string(original.Status), To: string(domain.Reversed),
			}
		}

		lines := make([]domain.JournalLine, len(original.Lines))
		for i, l := range original.Lines {
			lines[i] = domain.JournalLine{
				LineNo:      i + 1,
				AccountCode: l.AccountCode,
				Amount:      l.Amount,
				Side:        l.Side.Opposite(),
				Memo:        l.Memo,
			}
		}
		// The mirror is a posted entry like any other.
		if err := s.checkAccountsPostable(ctx, companyID, lines); err != nil {
			return err
		}

		seq, err := s.journalRepo.NextJournalSequence(ctx, companyID)
		if err != nil {
			return err
		}

		postedAt := s.Now()
		originalID := original.EntryID
		reversal = domain.JournalEntry{
			EntryID:         uuid.NewString(),
			CompanyID:       companyID,
			Sequence:        seq,
			EntryNumber:     entryNumber(seq),
			EntryDate:       original.EntryDate,
			Description:     fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, reason),
			CurrencyCode:    original.CurrencyCode,
			Status:          domain.Posted,
			PostedAt:        &postedAt,
			ReversalOf:      &originalID,
			SourceInvoiceID: original.SourceInvoiceID,
			Lines:           lines,
			AuditFields:     s.newAuditFields(userID),
		}
		if err := s.journalRepo.SaveJournal(ctx, reversal); err != nil {
			return err
		}

		original.Status = domain.Reversed
		original.ReversedBy = &reversal.EntryID
		s.touch(&original.AuditFields, userID)
		if err := s.journalRepo.UpdateJournalHeader(ctx, *original); err != nil {
			return err
		}

		event := domain.Event{
			Type:      domain.EventJournalReversed,
			CompanyID: companyID,
			Payload: domain.JournalReversedPayload{
				OriginalEntryID: original.EntryID,
				ReversalEntryID: reversal.EntryID,
				Reason:          reason,
			},
		}
		s.txManager.AfterCommit(ctx, func() { s.publish(ctx, event) })
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse journal",
			slog.String("company_id", companyID),
			slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to reverse journal %s: %w", entryID, err)
	}

	s.LogInfo(ctx, "Journal reversed",
		slog.String("company_id", companyID),
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID))
	return &reversal, nil
}

func sourceMatches(source *string, invoiceID string) bool {
	if source == nil {
		return invoiceID == ""
	}
	return *source == invoiceID
}

func sourceLabel(invoiceID *string) string {
	if invoiceID == nil {
		return "MANUAL"
	}
	return "INVOICE " + *invoiceID
}

func (s *journalService) createDraftInTx(ctx context.Context, companyID string, req dto.CreateJournalRequest, sourceInvoiceID *string, userID string) (*domain.JournalEntry, error) {
	if req.EntryDate.IsZero() {
		return nil, ErrJournalDateMissing
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	precision, err := s.currencyPrecision(ctx, company.FunctionalCurrency)
	if err != nil {
		return nil, err
	}
	lines, err := s.buildLines(ctx, companyID, precision, req.Lines)
	if err != nil {
		return nil, err
	}

	seq, err := s.journalRepo.NextJournalSequence(ctx, companyID)
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		CompanyID:       companyID,
		Sequence:        seq,
		EntryNumber:     entryNumber(seq),
		EntryDate:       domain.NormalizeDate(req.EntryDate),
		Description:     strings.TrimSpace(req.Description),
		CurrencyCode:    company.FunctionalCurrency,
		Status:          domain.Draft,
		SourceInvoiceID: sourceInvoiceID,
		Lines:           lines,
		AuditFields:     s.newAuditFields(userID),
	}
	if err := s.journalRepo.SaveJournal(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// postInTx re-checks status, accounts and balance against the state seen by
// the transaction, then marks the entry Posted.
func (s *journalService) postInTx(ctx context.Context, entry *domain.JournalEntry, userID string) error {
	if entry.Status != domain.Draft {
		return fmt.Errorf("%w: %w", apperrors.ErrAlreadyPosted, &apperrors.InvalidStateTransitionError{
			Entity: "journal entry", ID: entry.EntryID, From: string(entry.Status), To: string(domain.Posted),
		})
	}
	if len(entry.Lines) < 2 {
		return ErrJournalMinLines
	}
	if err := s.checkAccountsPostable(ctx, entry.CompanyID, entry.Lines); err != nil {
		return err
	}

	debits, credits := accounting.SumSides(entry.Lines)
	if !debits.Equal(credits) {
		return &apperrors.ImbalancedEntryError{EntryID: entry.EntryID, Debits: debits, Credits: credits}
	}

	postedAt := s.Now()
	entry.Status = domain.Posted
	entry.PostedAt = &postedAt
	s.touch(&entry.AuditFields, userID)
	if err := s.journalRepo.UpdateJournalHeader(ctx, *entry); err != nil {
		return err
	}

	event := domain.Event{
		Type:      domain.EventJournalPosted,
		CompanyID: entry.CompanyID,
		Payload: domain.JournalPostedPayload{
			EntryID:     entry.EntryID,
			EntryNumber: entry.EntryNumber,
			EntryDate:   entry.EntryDate,
			Total:       debits,
		},
	}
	s.txManager.AfterCommit(ctx, func() { s.publish(ctx, event) })
	s.LogInfo(ctx, "Journal posted",
		slog.String("company_id", entry.CompanyID),
		slog.String("entry_id", entry.EntryID),
		slog.String("total", debits.String()))
	return nil
}

// buildLines validates request lines and the accounts they reference.
func (s *journalService) buildLines(ctx context.Context, companyID string, precision int, reqLines []dto.JournalLineRequest) ([]domain.JournalLine, error) {
	if len(reqLines) < 2 {
		return nil, ErrJournalMinLines
	}

	lines := make([]domain.JournalLine, len(reqLines))
	for i, l := range reqLines {
		if !l.Side.IsValid() {
			return nil, fmt.Errorf("%w: line %d has unknown side %q", apperrors.ErrValidation, i+1, l.Side)
		}
		if !l.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: line %d amount must be positive", apperrors.ErrValidation, i+1)
		}
		if !utils.FitsPrecision(l.Amount, precision) {
			return nil, fmt.Errorf("%w: line %d amount %s has more than %d decimal places",
				apperrors.ErrValidation, i+1, l.Amount.String(), precision)
		}
		lines[i] = domain.JournalLine{
			LineNo:      i + 1,
			AccountCode: l.AccountCode,
			Amount:      l.Amount,
			Side:        l.Side,
			Memo:        l.Memo,
		}
	}

	if err := s.checkAccountsPostable(ctx, companyID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// checkAccountsPostable fails unless every referenced account exists and is active.
func (s *journalService) checkAccountsPostable(ctx context.Context, companyID string, lines []domain.JournalLine) error {
	codes := make([]string, 0, len(lines))
	for _, l := range lines {
		codes = append(codes, l.AccountCode)
	}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, companyID, codes)
	if err != nil {
		return err
	}
	if missing := missingCodes(accounts, codes); len(missing) > 0 {
		return fmt.Errorf("%w: accounts %s do not exist", apperrors.ErrValidation, strings.Join(missing, ", "))
	}
	for _, code := range codes {
		if !accounts[code].IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, code)
		}
	}
	return nil
}

func (s *journalService) currencyPrecision(ctx context.Context, code string) (int, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return 0, fmt.Errorf("failed to load currency %s: %w", code, err)
	}
	return currency.Precision, nil
}

func entryNumber(seq int64) string {
	return fmt.Sprintf("JE-%06d", seq)
}

// journalLines is a shorthand used by services that post generated entries.
func journalLines(amount decimal.Decimal, debitCode, creditCode, memo string) []dto.JournalLineRequest {
	return []dto.JournalLineRequest{
		{AccountCode: debitCode, Amount: amount, Side: domain.Debit, Memo: memo},
		{AccountCode: creditCode, Amount: amount, Side: domain.Credit, Memo: memo},
	}
}
