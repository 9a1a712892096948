package services

import (
	"context"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
)

// LedgerSvc replays posted journal lines into account balances.
type LedgerSvc interface {
	// TrialBalanceAsOf fails with apperrors.ErrLedgerImbalance if debits and credits differ.
	TrialBalanceAsOf(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalance, error)

	// AccountBalancesAsOf returns raw totals per account without the balance check.
	AccountBalancesAsOf(ctx context.Context, companyID string, asOf time.Time) ([]domain.AccountBalance, error)

	// AccountActivity returns totals per account for entries dated within [from, to].
	AccountActivity(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountBalance, error)
}
