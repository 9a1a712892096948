package services

import (
	"context"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
)

// ReportingService derives financial statements from the ledger.
type ReportingService interface {
	// ProfitAndLoss generates a profit and loss report for the closed period [fromDate, toDate].
	ProfitAndLoss(ctx context.Context, companyID string, fromDate, toDate time.Time) (*domain.PAndLReport, error)

	// BalanceSheet generates a balance sheet as of a date. Disagreeing sides
	// yield a warning on the report, not an error.
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error)
}
