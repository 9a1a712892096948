package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/Adams-ibr/Commodity-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests related to companies.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: cs}
}

// registerCompanyRoutes registers the company routes and returns the group
// that company scoped resources hang off.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) *gin.RouterGroup {
	h := newCompanyHandler(companyService)

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("", h.listCompanies)
	}

	company := companies.Group("/:company_id")
	{
		company.GET("", h.getCompany)
		company.PUT("/posting-accounts", h.updatePostingAccounts)
	}
	return company
}

// createCompany godoc
// @Summary Create a company
// @Description Creates a company with its own chart of accounts and journal sequence
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create company"
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create company")
		return
	}

	logger.Info("Company created successfully", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// listCompanies godoc
// @Summary List companies
// @Tags companies
// @Produce  json
// @Success 200 {array} dto.CompanyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list companies"
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list companies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCompanyResponse(companies))
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to retrieve company"
// @Security BearerAuth
// @Router /companies/{company_id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	company, err := h.companyService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// updatePostingAccounts godoc
// @Summary Override posting accounts
// @Description Changes the account codes used for postings generated from invoices. Omitted codes keep their value.
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   accounts body dto.PostingAccountsRequest true "Posting account codes"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to update company"
// @Security BearerAuth
// @Router /companies/{company_id}/posting-accounts [put]
func (h *companyHandler) updatePostingAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.PostingAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePostingAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("company_id", companyID))

	company, err := h.companyService.UpdatePostingAccounts(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update company")
		return
	}

	logger.Info("Posting accounts updated")
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}
