package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/Adams-ibr/Commodity-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts under a company group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:code", h.getAccount)
		accounts.PUT("/:code", h.updateAccount)
		accounts.POST("/:code/deactivate", h.deactivateAccount)
		accounts.POST("/:code/activate", h.activateAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the company's chart of accounts
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company or parent account not found"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /companies/{company_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("account_code", req.Code))
	logger.Info("Received request to create account", slog.String("account_type", string(req.AccountType)))

	account, err := h.accountService.CreateAccount(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully")
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Description Lists accounts ordered by code. Inactive accounts are hidden unless requested.
// @Tags accounts
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   includeInactive query bool false "Include inactive accounts"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /companies/{company_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), companyID, params.IncludeInactive)
	if err != nil {
		respondWithError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getAccount godoc
// @Summary Get an account by code
// @Tags accounts
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   code path string true "Account code"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /companies/{company_id}/accounts/{code} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, code := c.Param("company_id"), c.Param("code")

	account, err := h.accountService.GetAccount(c.Request.Context(), companyID, code)
	if err != nil {
		respondWithError(c, logger.With(slog.String("company_id", companyID), slog.String("account_code", code)), err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Renames an account or changes its subtype. The type can only change while no posted line references the account.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   code path string true "Account code"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account type is locked by posted activity"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /companies/{company_id}/accounts/{code} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, code := c.Param("company_id"), c.Param("code")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("company_id", companyID), slog.String("account_code", code))

	account, err := h.accountService.UpdateAccount(c.Request.Context(), companyID, code, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update account")
		return
	}

	logger.Info("Account updated successfully")
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Inactive accounts reject new journal lines. Historical postings are unaffected.
// @Tags accounts
// @Param   company_id path string true "Company ID"
// @Param   code path string true "Account code"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to deactivate account"
// @Security BearerAuth
// @Router /companies/{company_id}/accounts/{code}/deactivate [post]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	h.setActive(c, false)
}

// activateAccount godoc
// @Summary Reactivate an account
// @Tags accounts
// @Param   company_id path string true "Company ID"
// @Param   code path string true "Account code"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to activate account"
// @Security BearerAuth
// @Router /companies/{company_id}/accounts/{code}/activate [post]
func (h *accountHandler) activateAccount(c *gin.Context) {
	h.setActive(c, true)
}

func (h *accountHandler) setActive(c *gin.Context, active bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, code := c.Param("company_id"), c.Param("code")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("company_id", companyID), slog.String("account_code", code), slog.Bool("active", active))

	var err error
	if active {
		err = h.accountService.ActivateAccount(c.Request.Context(), companyID, code, userID)
	} else {
		err = h.accountService.DeactivateAccount(c.Request.Context(), companyID, code, userID)
	}
	if err != nil {
		respondWithError(c, logger, err, "Failed to change account status")
		return
	}

	logger.Info("Account status changed")
	c.Status(http.StatusNoContent)
}
