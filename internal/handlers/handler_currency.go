package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/Adams-ibr/Commodity-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:currencyCode", h.getCurrency)
	}
}

// createCurrency godoc
// @Summary Register a currency
// @Description Adds an ISO 4217 currency with its minor unit precision
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Currency already exists"
// @Failure 500 {object} map[string]string "Failed to create currency"
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("currency_code", req.CurrencyCode))
	logger.Info("Received request to create currency")

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create currency")
		return
	}

	logger.Info("Currency created successfully")
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List currencies
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list currencies"
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list currencies")
		return
	}

	logger.Debug("Currencies listed", slog.Int("count", len(currencies)))
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// getCurrency godoc
// @Summary Get a currency by code
// @Tags currencies
// @Produce  json
// @Param   currencyCode path string true "ISO 4217 code"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 500 {object} map[string]string "Failed to retrieve currency"
// @Security BearerAuth
// @Router /currencies/{currencyCode} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("currencyCode")

	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), code)
	if err != nil {
		respondWithError(c, logger.With(slog.String("currency_code", code)), err, "Failed to retrieve currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}
