package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/Adams-ibr/Commodity-sub000/internal/middleware"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/clock"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	clock            clock.Clock
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, clk clock.Clock) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		clock:            clk,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, clk clock.Clock) {
	h := newReportingHandler(reportingService, clk)

	// Routes for reports are nested under a specific company
	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
	}
}

// periodQuery reads fromDate and toDate, defaulting to the month to date of now.
func periodQuery(c *gin.Context, logger *slog.Logger, now time.Time) (time.Time, time.Time, bool) {
	firstDayOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	from, ok := dateQuery(c, logger, "fromDate", firstDayOfMonth)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	to, ok := dateQuery(c, logger, "toDate", now)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if from.After(to) {
		logger.Warn("Invalid date range", slog.Time("fromDate", from), slog.Time("toDate", to))
		c.JSON(http.StatusBadRequest, gin.H{"error": "fromDate must be before or equal to toDate"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss report
// @Description Generates a profit and loss report for a specific period
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param fromDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param toDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	from, to, ok := periodQuery(c, logger, h.clock.Now())
	if !ok {
		return
	}

	logger = logger.With(
		slog.String("company_id", companyID),
		slog.String("fromDate", from.Format("2006-01-02")),
		slog.String("toDate", to.Format("2006-01-02")),
	)
	logger.Info("Received request to generate profit and loss report")

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), companyID, from, to)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate profit and loss report")
		return
	}

	logger.Info("Profit and loss report generated successfully",
		slog.Int("revenue_accounts", len(report.Revenue)),
		slog.Int("expense_accounts", len(report.Expenses)))
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Generates a balance sheet as of a date. Current earnings are shown as a synthetic equity line. A warning is attached when the two sides disagree.
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
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
	logger.Info("Received request to generate balance sheet report")

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate balance sheet report")
		return
	}

	if report.Warning != nil {
		logger.Warn("Balance sheet does not balance", slog.String("delta", report.Warning.Delta.String()))
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}
