package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/Adams-ibr/Commodity-sub000/internal/middleware"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/clock"
	"github.com/gin-gonic/gin"
)

// ledgerHandler exposes balances replayed from posted journal lines.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
	clock         clock.Clock
}

func newLedgerHandler(ls portssvc.LedgerSvc, clk clock.Clock) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, clock: clk}
}

// registerLedgerRoutes registers ledger routes under a company group.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc, clk clock.Clock) {
	h := newLedgerHandler(ledgerService, clk)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/trial-balance", h.getTrialBalance)
		ledger.GET("/activity", h.getAccountActivity)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance
// @Description Replays every posted line dated on or before asOf. Fails if total debits and credits disagree.
// @Tags ledger
// @Produce json
// @Param company_id path string true "Company ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Ledger out of balance or failed to generate report"
// @Security BearerAuth
// @Router /companies/{company_id}/ledger/trial-balance [get]
func (h *ledgerHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	asOf, ok := dateQuery(c, logger, "asOf", h.clock.Now())
	if !ok {
		return
	}

	logger = logger.With(
		slog.String("company_id", companyID),
		slog.String("asOf", asOf.Format("2006-01-02")),
	)
	logger.Info("Received request to generate trial balance")

	tb, err := h.ledgerService.TrialBalanceAsOf(c.Request.Context(), companyID, asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate trial balance")
		return
	}

	logger.Info("Trial balance generated successfully", slog.Int("row_count", len(tb.Rows)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getAccountActivity godoc
// @Summary Account activity for a period
// @Description Debit and credit totals per account for posted entries dated within [fromDate, toDate]
// @Tags ledger
// @Produce json
// @Param company_id path string true "Company ID"
// @Param fromDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param toDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.AccountActivityResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /companies/{company_id}/ledger/activity [get]
func (h *ledgerHandler) getAccountActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	from, to, ok := periodQuery(c, logger, h.clock.Now())
	if !ok {
		return
	}
	logger = logger.With(slog.String("company_id", companyID))

	balances, err := h.ledgerService.AccountActivity(c.Request.Context(), companyID, from, to)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate account activity")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountActivityResponse(balances, from, to))
}
