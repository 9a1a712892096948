package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/Adams-ibr/Commodity-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// registerJournalRoutes registers routes related to journals under a company group.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:entry_id", h.getJournal)
		journals.PUT("/:entry_id", h.updateJournal)
		journals.POST("/:entry_id/post", h.postJournal)
		journals.POST("/:entry_id/reverse", h.reverseJournal)
	}
}

// createJournal godoc
// @Summary Create a journal entry
// @Description Creates a draft entry. With post=true the entry is created and posted in one transaction, and nothing is stored if posting fails.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   post query bool false "Post immediately"
// @Param   journal body dto.CreateJournalRequest true "Journal entry"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company or account not found"
// @Failure 422 {object} map[string]string "Entry is not balanced"
// @Failure 500 {object} map[string]string "Failed to create journal"
// @Security BearerAuth
// @Router /companies/{company_id}/journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	postNow, err := strconv.ParseBool(c.DefaultQuery("post", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "post must be true or false"})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("company_id", companyID))
	logger.Info("Received request to create journal", slog.Int("line_count", len(req.Lines)), slog.Bool("post", postNow))

	create := h.journalService.CreateDraft
	if postNow {
		create = h.journalService.CreateAndPost
	}
	journal, err := create(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create journal")
		return
	}

	logger.Info("Journal created successfully", slog.String("entry_id", journal.EntryID), slog.String("status", string(journal.Status)))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journal entries
// @Description Lists entries newest first using token based pagination
// @Tags journals
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   status query string false "Filter by status" Enums(DRAFT, POSTED, REVERSED)
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Security BearerAuth
// @Router /companies/{company_id}/journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	response, err := h.journalService.ListJournals(c.Request.Context(), companyID, params)
	if err != nil {
		respondWithError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to list journals")
		return
	}

	c.JSON(http.StatusOK, response)
}

// getJournal godoc
// @Summary Get a journal entry
// @Tags journals
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Security BearerAuth
// @Router /companies/{company_id}/journals/{entry_id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, entryID := c.Param("company_id"), c.Param("entry_id")

	journal, err := h.journalService.GetJournal(c.Request.Context(), companyID, entryID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to retrieve journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// updateJournal godoc
// @Summary Edit a draft journal entry
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Entry ID"
// @Param   journal body dto.UpdateJournalRequest true "Fields to update"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not a draft"
// @Failure 500 {object} map[string]string "Failed to update journal"
// @Security BearerAuth
// @Router /companies/{company_id}/journals/{entry_id} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, entryID := c.Param("company_id"), c.Param("entry_id")

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("company_id", companyID), slog.String("entry_id", entryID))

	journal, err := h.journalService.UpdateDraft(c.Request.Context(), companyID, entryID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update journal")
		return
	}

	logger.Info("Journal draft updated")
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// postJournal godoc
// @Summary Post a draft journal entry
// @Description Posting assigns the entry number and makes the entry immutable
// @Tags journals
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal already posted"
// @Failure 422 {object} map[string]string "Entry is not balanced"
// @Failure 500 {object} map[string]string "Failed to post journal"
// @Security BearerAuth
// @Router /companies/{company_id}/journals/{entry_id}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, entryID := c.Param("company_id"), c.Param("entry_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("company_id", companyID), slog.String("entry_id", entryID))

	journal, err := h.journalService.PostJournal(c.Request.Context(), companyID, entryID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to post journal")
		return
	}

	logger.Info("Journal posted", slog.String("entry_number", journal.EntryNumber))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// reverseJournal godoc
// @Summary Reverse a posted journal entry
// @Description Posts a mirror entry with every side flipped and marks the original as reversed
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Entry ID"
// @Param   reversal body dto.ReverseJournalRequest true "Reversal reason"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not posted or already reversed"
// @Failure 500 {object} map[string]string "Failed to reverse journal"
// @Security BearerAuth
// @Router /companies/{company_id}/journals/{entry_id}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, entryID := c.Param("company_id"), c.Param("entry_id")

	var req dto.ReverseJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("company_id", companyID), slog.String("entry_id", entryID))

	reversal, err := h.journalService.ReverseJournal(c.Request.Context(), companyID, entryID, req.Reason, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reverse journal")
		return
	}

	logger.Info("Journal reversed", slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal))
}
