package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/Adams-ibr/Commodity-sub000/internal/middleware"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/clock"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	clock               clock.Clock
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade, clk clock.Clock) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
		clock:               clk,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, clk clock.Clock) {
	h := newExchangeRateHandler(exchangeRateService, clk)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.POST("", h.setExchangeRate)
		exchangeRates.GET("/rate", h.getExchangeRate)
		exchangeRates.GET("/history", h.listExchangeRates)
		exchangeRates.GET("/convert", h.convert)
	}
}

// setExchangeRate godoc
// @Summary Record an exchange rate
// @Description Records the rate for a currency pair effective from a date. A second rate for the same pair and date supersedes the first.
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.SetExchangeRateRequest true "Exchange Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) setExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to record exchange rate",
		slog.String("from", req.FromCurrencyCode),
		slog.String("to", req.ToCurrencyCode),
		slog.String("rate", req.Rate.String()),
		slog.Time("rate_date", req.RateDate),
	)

	rate, err := h.exchangeRateService.SetRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record exchange rate")
		return
	}

	logger.Info("Exchange rate recorded", slog.String("exchange_rate_id", rate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate godoc
// @Summary Get the rate in force on a date
// @Description Returns the direct rate with the latest effective date on or before the given date
// @Tags exchange rates
// @Produce  json
// @Param   from query string true "Source currency code"
// @Param   to query string true "Target currency code"
// @Param   date query string false "Date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "No rate available"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Security BearerAuth
// @Router /exchange-rates/rate [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})
		return
	}
	date, ok := dateQuery(c, logger, "date", h.clock.Now())
	if !ok {
		return
	}
	logger = logger.With(slog.String("from", from), slog.String("to", to))

	rate, err := h.exchangeRateService.GetRate(c.Request.Context(), from, to, date)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List rate history for a pair
// @Description Lists recorded rates for a pair, newest effective date first, including superseded ones
// @Tags exchange rates
// @Produce  json
// @Param   from query string true "Source currency code"
// @Param   to query string true "Target currency code"
// @Param   limit query int false "Maximum number of rates" default(50)
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Security BearerAuth
// @Router /exchange-rates/history [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	rates, err := h.exchangeRateService.ListRates(c.Request.Context(), from, to, limit)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts using the rate in force on the date, falling back to the inverse of the reverse pair. The result is rounded to the target currency precision.
// @Tags exchange rates
// @Produce  json
// @Param   amount query string true "Amount to convert"
// @Param   from query string true "Source currency code"
// @Param   to query string true "Target currency code"
// @Param   date query string false "Date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "No rate available"
// @Failure 500 {object} map[string]string "Failed to convert amount"
// @Security BearerAuth
// @Router /exchange-rates/convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})
		return
	}
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		logger.Warn("Invalid amount", slog.String("amount", c.Query("amount")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a decimal number"})
		return
	}
	date, ok := dateQuery(c, logger, "date", h.clock.Now())
	if !ok {
		return
	}
	logger = logger.With(slog.String("from", from), slog.String("to", to), slog.String("date", date.Format("2006-01-02")))

	conversion, err := h.exchangeRateService.Convert(c.Request.Context(), amount, from, to, date)
	if err != nil {
		respondWithError(c, logger, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ToConversionResponse(conversion))
}
