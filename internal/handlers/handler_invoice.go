package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/Adams-ibr/Commodity-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// registerInvoiceRoutes registers invoice routes under a company group.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoice_id", h.getInvoice)
		invoices.POST("/:invoice_id/send", h.sendInvoice)
		invoices.POST("/:invoice_id/cancel", h.cancelInvoice)
		invoices.POST("/:invoice_id/payments", h.recordPayment)
		invoices.GET("/:invoice_id/payments", h.listPayments)
	}
}

// createInvoice godoc
// @Summary Create a draft invoice
// @Description Creates a receivable or payable invoice. Totals are computed from the line items, tax rate and discount.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company or currency not found"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Security BearerAuth
// @Router /companies/{company_id}/invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("company_id", companyID))

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create invoice")
		return
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("total", invoice.TotalAmount.String()))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists invoices with their status projected onto today, so unpaid invoices past due show as OVERDUE
// @Tags invoices
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   status query string false "Filter by projected status" Enums(DRAFT, SENT, PAID, OVERDUE, CANCELLED)
// @Success 200 {array} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Security BearerAuth
// @Router /companies/{company_id}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), companyID, params)
	if err != nil {
		respondWithError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Security BearerAuth
// @Router /companies/{company_id}/invoices/{invoice_id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, invoiceID := c.Param("company_id"), c.Param("invoice_id")

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("invoice_id", invoiceID)), err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// sendInvoice godoc
// @Summary Send an invoice
// @Description Moves a draft to SENT and posts the recognition entry in the company's functional currency
// @Tags invoices
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice is not a draft"
// @Failure 422 {object} map[string]string "No exchange rate available"
// @Failure 500 {object} map[string]string "Failed to send invoice"
// @Security BearerAuth
// @Router /companies/{company_id}/invoices/{invoice_id}/send [post]
func (h *invoiceHandler) sendInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, invoiceID := c.Param("company_id"), c.Param("invoice_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("company_id", companyID), slog.String("invoice_id", invoiceID))

	invoice, err := h.invoiceService.SendInvoice(c.Request.Context(), companyID, invoiceID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to send invoice")
		return
	}

	logger.Info("Invoice sent", slog.String("invoice_number", invoice.InvoiceNumber))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// cancelInvoice godoc
// @Summary Cancel an invoice
// @Description Cancels a draft or sent invoice. A sent invoice has its recognition entry reversed.
// @Tags invoices
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice is paid or already cancelled"
// @Failure 500 {object} map[string]string "Failed to cancel invoice"
// @Security BearerAuth
// @Router /companies/{company_id}/invoices/{invoice_id}/cancel [post]
func (h *invoiceHandler) cancelInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, invoiceID := c.Param("company_id"), c.Param("invoice_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("company_id", companyID), slog.String("invoice_id", invoiceID))

	invoice, err := h.invoiceService.CancelInvoice(c.Request.Context(), companyID, invoiceID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to cancel invoice")
		return
	}

	logger.Info("Invoice cancelled")
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// recordPayment godoc
// @Summary Record a payment
// @Description Applies a payment to a sent or overdue invoice and posts the settlement entry. The invoice becomes PAID once the balance reaches zero.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   invoice_id path string true "Invoice ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice does not accept payments"
// @Failure 422 {object} map[string]string "Invalid payment amount"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /companies/{company_id}/invoices/{invoice_id}/payments [post]
func (h *invoiceHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, invoiceID := c.Param("company_id"), c.Param("invoice_id")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("company_id", companyID), slog.String("invoice_id", invoiceID))

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), companyID, invoiceID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("amount", req.Amount.String()), slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listPayments godoc
// @Summary List payments on an invoice
// @Tags invoices
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   invoice_id path string true "Invoice ID"
// @Success 200 {array} dto.InvoicePaymentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Security BearerAuth
// @Router /companies/{company_id}/invoices/{invoice_id}/payments [get]
func (h *invoiceHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, invoiceID := c.Param("company_id"), c.Param("invoice_id")

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("invoice_id", invoiceID)), err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoicePaymentResponses(payments))
}
