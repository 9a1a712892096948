package handlers_test

import (
	"encoding/json"
	"net/http"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) sampleInvoice(status domain.InvoiceStatus) *domain.Invoice {
	return &domain.Invoice{
		InvoiceID:        "inv-1",
		CompanyID:        suite.companyID,
		InvoiceNumber:    "INV-000001",
		Kind:             domain.Receivable,
		CounterpartyName: "Dangote Mills",
		CurrencyCode:     "NGN",
		Subtotal:         dec("100.00"),
		TaxRate:          dec("0.075"),
		TaxAmount:        dec("7.50"),
		TotalAmount:      dec("107.50"),
		BalanceDue:       dec("107.50"),
		Status:           status,
		IssueDate:        day(2024, 1, 1),
		DueDate:          day(2024, 1, 31),
	}
}

func (suite *HandlerTestSuite) TestCreateInvoice() {
	suite.invoices.On("CreateInvoice", mock.Anything, suite.companyID, mock.MatchedBy(func(req dto.CreateInvoiceRequest) bool {
		return req.CounterpartyName == "Dangote Mills" && len(req.LineItems) == 1 && req.TaxRate.Equal(dec("0.075"))
	}), testUserID).Return(suite.sampleInvoice(domain.InvoiceDraft), nil).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/invoices"), map[string]any{
		"counterpartyName": "Dangote Mills",
		"currencyCode":     "NGN",
		"taxRate":          "0.075",
		"issueDate":        "2024-01-01T00:00:00Z",
		"dueDate":          "2024-01-31T00:00:00Z",
		"lineItems": []map[string]any{
			{"description": "Maize, 1t", "quantity": "1", "unitPrice": "100.00"},
		},
	})

	suite.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(dec("107.50").Equal(resp.TotalAmount))
	suite.Equal("2024-01-31", resp.DueDate)
}

func (suite *HandlerTestSuite) TestCreateInvoice_RequiresLineItems() {
	w := suite.do(http.MethodPost, suite.companyPath("/invoices"), map[string]any{
		"counterpartyName": "Dangote Mills",
		"currencyCode":     "NGN",
		"issueDate":        "2024-01-01T00:00:00Z",
		"dueDate":          "2024-01-31T00:00:00Z",
		"lineItems":        []map[string]any{},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestSendInvoice_NoRate() {
	suite.invoices.On("SendInvoice", mock.Anything, suite.companyID, "inv-1", testUserID).
		Return(nil, &apperrors.NoRateAvailableError{From: "GBP", To: "NGN", Date: day(2024, 1, 1)}).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/invoices/inv-1/send"), nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestRecordPayment() {
	paid := suite.sampleInvoice(domain.InvoicePaid)
	paid.AmountPaid = dec("107.50")
	paid.BalanceDue = dec("0")
	suite.invoices.On("RecordPayment", mock.Anything, suite.companyID, "inv-1", mock.MatchedBy(func(req dto.RecordPaymentRequest) bool {
		return req.Amount.Equal(dec("107.50")) && req.Reference == "TRF-991"
	}), testUserID).Return(paid, nil).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/invoices/inv-1/payments"), map[string]any{
		"amount": "107.50", "reference": "TRF-991",
	})

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.InvoicePaid, resp.Status)
}

func (suite *HandlerTestSuite) TestRecordPayment_Rejected() {
	suite.invoices.On("RecordPayment", mock.Anything, suite.companyID, "inv-1", mock.AnythingOfType("dto.RecordPaymentRequest"), testUserID).
		Return(nil, &apperrors.InvalidPaymentError{InvoiceID: "inv-1", Amount: dec("500"), BalanceDue: dec("107.50"), Reason: "overpayment"}).Once()
	suite.invoices.On("RecordPayment", mock.Anything, suite.companyID, "inv-2", mock.AnythingOfType("dto.RecordPaymentRequest"), testUserID).
		Return(nil, &apperrors.InvalidStateTransitionError{Entity: "invoice", ID: "inv-2", From: "DRAFT", To: "PAYMENT"}).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/invoices/inv-1/payments"), map[string]any{"amount": "500"})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(suite.errorBody(w), "overpayment")

	w = suite.do(http.MethodPost, suite.companyPath("/invoices/inv-2/payments"), map[string]any{"amount": "10"})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestListInvoices_StatusFilter() {
	suite.invoices.On("ListInvoices", mock.Anything, suite.companyID, dto.ListInvoicesParams{Status: "OVERDUE"}).
		Return([]domain.Invoice{*suite.sampleInvoice(domain.InvoiceOverdue)}, nil).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/invoices?status=OVERDUE"), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var resp []dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal(domain.InvoiceOverdue, resp[0].Status)

	w = suite.do(http.MethodGet, suite.companyPath("/invoices?status=LOST"), nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCancelInvoice_Paid() {
	suite.invoices.On("CancelInvoice", mock.Anything, suite.companyID, "inv-1", testUserID).
		Return(nil, &apperrors.InvalidStateTransitionError{Entity: "invoice", ID: "inv-1", From: "PAID", To: "CANCELLED"}).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/invoices/inv-1/cancel"), nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestListPayments() {
	suite.invoices.On("ListPayments", mock.Anything, suite.companyID, "inv-1").Return([]domain.InvoicePayment{
		{PaymentID: "pay-1", InvoiceID: "inv-1", Amount: dec("50"), PaymentDate: day(2024, 1, 10), FunctionalAmount: dec("50"), ExchangeRate: dec("1"), JournalEntryID: "entry-9"},
	}, nil).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/invoices/inv-1/payments"), nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp []dto.InvoicePaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("2024-01-10", resp[0].PaymentDate)
}
