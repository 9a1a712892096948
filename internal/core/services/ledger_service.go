package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const (
	defaultLedgerPageSize        = 500
	defaultTrialBalanceCacheSize = 256
)

// LedgerConfig sizes the replay window and the trial balance cache.
type LedgerConfig struct {
	PageSize  int
	CacheSize int
}

type trialBalanceKey struct {
	companyID string
	asOf      time.Time
}

// LedgerService replays posted journal lines into balances. Trial balances are
// cached per company and date until the next posting or reversal for that
// company.
type LedgerService struct {
	BaseService
	lineReader  portsrepo.LedgerLineReader
	accountRepo portsrepo.AccountReader
	pageSize    int

	cache *lru.Cache[trialBalanceKey, domain.TrialBalance]
	group singleflight.Group

	genMu       sync.Mutex
	generations map[string]uint64
}

// NewLedgerService creates the ledger aggregator.
func NewLedgerService(lineReader portsrepo.LedgerLineReader, accountRepo portsrepo.AccountReader, cfg LedgerConfig, options ...ServiceOption) (*LedgerService, error) {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultLedgerPageSize
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultTrialBalanceCacheSize
	}
	cache, err := lru.New[trialBalanceKey, domain.TrialBalance](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create trial balance cache: %w", err)
	}

	svc := &LedgerService{
		lineReader:  lineReader,
		accountRepo: accountRepo,
		pageSize:    cfg.PageSize,
		cache:       cache,
		generations: make(map[string]uint64),
	}
	applyOptions(&svc.BaseService, options)
	return svc, nil
}

var _ portssvc.LedgerSvc = (*LedgerService)(nil)

// TrialBalanceAsOf nets every account with activity up to asOf and verifies
// that the debit and credit columns agree.
func (s *LedgerService) TrialBalanceAsOf(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalance, error) {
	key := trialBalanceKey{companyID: companyID, asOf: domain.NormalizeDate(asOf)}
	if tb, ok := s.cache.Get(key); ok {
		return copyTrialBalance(tb), nil
	}

	gen := s.generation(companyID)
	flightKey := fmt.Sprintf("%s|%s|%d", companyID, key.asOf.Format(domain.DateLayout), gen)
	// Joined callers share this replay, so it must outlive the caller that started it.
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(flightKey, func() (any, error) {
		tb, err := s.computeTrialBalance(flightCtx, companyID, key.asOf)
		if err != nil {
			return nil, err
		}
		// A posting that committed while we replayed bumps the generation.
		if s.generation(companyID) == gen {
			s.cache.Add(key, *tb)
		}
		return *tb, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.LogDebug(ctx, "Trial balance computation shared", slog.String("company_id", companyID))
	}
	return copyTrialBalance(v.(domain.TrialBalance)), nil
}

// AccountBalancesAsOf returns raw totals per account for entries dated on or
// before asOf, without checking that the ledger balances.
func (s *LedgerService) AccountBalancesAsOf(ctx context.Context, companyID string, asOf time.Time) ([]domain.AccountBalance, error) {
	return s.aggregate(ctx, companyID, nil, domain.NormalizeDate(asOf))
}

// AccountActivity returns totals per account for entries dated within [from, to].
func (s *LedgerService) AccountActivity(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountBalance, error) {
	from, to = domain.NormalizeDate(from), domain.NormalizeDate(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: from date %s is after to date %s",
			apperrors.ErrValidation, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	}
	return s.aggregate(ctx, companyID, &from, to)
}

// Invalidate drops every cached trial balance of the company.
func (s *LedgerService) Invalidate(companyID string) {
	s.genMu.Lock()
	s.generations[companyID]++
	s.genMu.Unlock()

	for _, key := range s.cache.Keys() {
		if key.companyID == companyID {
			s.cache.Remove(key)
		}
	}
}

// HandleEvent invalidates the cache of the company a journal event belongs to.
// It is subscribed to the event bus.
func (s *LedgerService) HandleEvent(ctx context.Context, event domain.Event) error {
	switch event.Type {
	case domain.EventJournalPosted, domain.EventJournalReversed:
		s.Invalidate(event.CompanyID)
		s.LogDebug(ctx, "Trial balance cache invalidated",
			slog.String("company_id", event.CompanyID),
			slog.String("event_type", string(event.Type)))
	}
	return nil
}

func (s *LedgerService) generation(companyID string) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generations[companyID]
}

func (s *LedgerService) computeTrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalance, error) {
	balances, err := s.aggregate(ctx, companyID, nil, asOf)
	if err != nil {
		return nil, err
	}

	tb := &domain.TrialBalance{
		CompanyID:    companyID,
		AsOf:         asOf,
		Rows:         make([]domain.TrialBalanceRow, 0, len(balances)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, b := range balances {
		debitBal, creditBal, anomalous := accounting.SplitBalance(b.TotalDebits, b.TotalCredits, b.Account.AccountType.NormalSide())
		tb.Rows = append(tb.Rows, domain.TrialBalanceRow{
			AccountCode:   b.Account.Code,
			AccountName:   b.Account.Name,
			AccountType:   b.Account.AccountType,
			TotalDebits:   b.TotalDebits,
			TotalCredits:  b.TotalCredits,
			DebitBalance:  debitBal,
			CreditBalance: creditBal,
			Anomalous:     anomalous,
		})
		tb.TotalDebits = tb.TotalDebits.Add(debitBal)
		tb.TotalCredits = tb.TotalCredits.Add(creditBal)
	}

	if !tb.TotalDebits.Equal(tb.TotalCredits) {
		err := &apperrors.LedgerImbalanceError{
			CompanyID: companyID,
			AsOf:      asOf,
			Debits:    tb.TotalDebits,
			Credits:   tb.TotalCredits,
		}
		s.LogError(ctx, err, "Trial balance does not balance", slog.String("company_id", companyID))
		return nil, err
	}
	return tb, nil
}

type sideTotals struct {
	debits  decimal.Decimal
	credits decimal.Decimal
}

// aggregate replays posted lines page by page so the full history is never
// held in memory at once.
func (s *LedgerService) aggregate(ctx context.Context, companyID string, from *time.Time, to time.Time) ([]domain.AccountBalance, error) {
	totals := make(map[string]*sideTotals)
	var token *string
	pages := 0
	for {
		lines, next, err := s.lineReader.ListPostedLines(ctx, companyID, from, to, s.pageSize, token)
		if err != nil {
			s.LogError(ctx, err, "Failed to read posted lines", slog.String("company_id", companyID))
			return nil, fmt.Errorf("failed to read ledger: %w", err)
		}
		pages++
		for _, l := range lines {
			t, ok := totals[l.AccountCode]
			if !ok {
				t = &sideTotals{debits: decimal.Zero, credits: decimal.Zero}
				totals[l.AccountCode] = t
			}
			if l.Side == domain.Debit {
				t.debits = t.debits.Add(l.Amount)
			} else {
				t.credits = t.credits.Add(l.Amount)
			}
		}
		if next == nil {
			break
		}
		token = next
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	codes := make([]string, 0, len(totals))
	for code := range totals {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, companyID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger accounts: %w", err)
	}
	if missing := missingCodes(accounts, codes); len(missing) > 0 {
		return nil, fmt.Errorf("%w: posted lines reference unknown accounts %v", apperrors.ErrNotFound, missing)
	}

	balances := make([]domain.AccountBalance, 0, len(codes))
	for _, code := range codes {
		balances = append(balances, domain.AccountBalance{
			Account:      accounts[code],
			TotalDebits:  totals[code].debits,
			TotalCredits: totals[code].credits,
		})
	}

	s.LogDebug(ctx, "Ledger replayed",
		slog.String("company_id", companyID),
		slog.Int("pages", pages),
		slog.Int("accounts", len(balances)))
	return balances, nil
}

func copyTrialBalance(tb domain.TrialBalance) *domain.TrialBalance {
	rows := make([]domain.TrialBalanceRow, len(tb.Rows))
	copy(rows, tb.Rows)
	tb.Rows = rows
	return &tb
}
