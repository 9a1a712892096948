package dto

import (
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceLineItemRequest is a priced line on a new invoice.
type InvoiceLineItemRequest struct {
	Description string          `json:"description" binding:"required,max=255"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateInvoiceRequest defines the data needed to create a draft invoice.
type CreateInvoiceRequest struct {
	Kind             domain.InvoiceKind       `json:"kind" binding:"omitempty,oneof=RECEIVABLE PAYABLE"`
	CounterpartyName string                   `json:"counterpartyName" binding:"required,max=255"`
	CurrencyCode     string                   `json:"currencyCode" binding:"required,currencycode"`
	LineItems        []InvoiceLineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
	TaxRate          decimal.Decimal          `json:"taxRate"`
	Discount         decimal.Decimal          `json:"discount"`
	IssueDate        time.Time                `json:"issueDate" binding:"required"`
	DueDate          time.Time                `json:"dueDate" binding:"required"`
}

// RecordPaymentRequest applies a payment to an invoice.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate *time.Time      `json:"paymentDate"`
	Reference   string          `json:"reference" binding:"max=128"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status string `form:"status" binding:"omitempty,oneof=DRAFT SENT PAID OVERDUE CANCELLED"`
}

// InvoiceLineItemResponse defines the data returned for an invoice line.
type InvoiceLineItemResponse struct {
	LineNo      int             `json:"lineNo"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse defines the data returned for an invoice. Status is the projected status.
type InvoiceResponse struct {
	InvoiceID          string                    `json:"invoiceID"`
	InvoiceNumber      string                    `json:"invoiceNumber"`
	Kind               domain.InvoiceKind        `json:"kind"`
	CounterpartyName   string                    `json:"counterpartyName"`
	CurrencyCode       string                    `json:"currencyCode"`
	LineItems          []InvoiceLineItemResponse `json:"lineItems"`
	Subtotal           decimal.Decimal           `json:"subtotal"`
	TaxRate            decimal.Decimal           `json:"taxRate"`
	TaxAmount          decimal.Decimal           `json:"taxAmount"`
	Discount           decimal.Decimal           `json:"discount"`
	TotalAmount        decimal.Decimal           `json:"totalAmount"`
	AmountPaid         decimal.Decimal           `json:"amountPaid"`
	BalanceDue         decimal.Decimal           `json:"balanceDue"`
	Status             domain.InvoiceStatus      `json:"status"`
	IssueDate          string                    `json:"issueDate"`
	DueDate            string                    `json:"dueDate"`
	RecognitionEntryID *string                   `json:"recognitionEntryID,omitempty"`
	CreatedAt          time.Time                 `json:"createdAt"`
	CreatedBy          string                    `json:"createdBy"`
}

// InvoicePaymentResponse defines the data returned for a payment.
type InvoicePaymentResponse struct {
	PaymentID        string          `json:"paymentID"`
	InvoiceID        string          `json:"invoiceID"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentDate      string          `json:"paymentDate"`
	FunctionalAmount decimal.Decimal `json:"functionalAmount"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	JournalEntryID   string          `json:"journalEntryID"`
	Reference        string          `json:"reference,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceLineItemResponse, len(inv.LineItems))
	for i, li := range inv.LineItems {
		items[i] = InvoiceLineItemResponse{
			LineNo:      li.LineNo,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
		}
	}
	return InvoiceResponse{
		InvoiceID:          inv.InvoiceID,
		InvoiceNumber:      inv.InvoiceNumber,
		Kind:               inv.Kind,
		CounterpartyName:   inv.CounterpartyName,
		CurrencyCode:       inv.CurrencyCode,
		LineItems:          items,
		Subtotal:           inv.Subtotal,
		TaxRate:            inv.TaxRate,
		TaxAmount:          inv.TaxAmount,
		Discount:           inv.Discount,
		TotalAmount:        inv.TotalAmount,
		AmountPaid:         inv.AmountPaid,
		BalanceDue:         inv.BalanceDue,
		Status:             inv.Status,
		IssueDate:          inv.IssueDate.Format(domain.DateLayout),
		DueDate:            inv.DueDate.Format(domain.DateLayout),
		RecognitionEntryID: inv.RecognitionEntryID,
		CreatedAt:          inv.CreatedAt,
		CreatedBy:          inv.CreatedBy,
	}
}

// ToListInvoiceResponse converts a slice of invoices.
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}

// ToInvoicePaymentResponses converts a slice of payments.
func ToInvoicePaymentResponses(payments []domain.InvoicePayment) []InvoicePaymentResponse {
	res := make([]InvoicePaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = InvoicePaymentResponse{
			PaymentID:        p.PaymentID,
			InvoiceID:        p.InvoiceID,
			Amount:           p.Amount,
			PaymentDate:      p.PaymentDate.Format(domain.DateLayout),
			FunctionalAmount: p.FunctionalAmount,
			ExchangeRate:     p.ExchangeRate,
			JournalEntryID:   p.JournalEntryID,
			Reference:        p.Reference,
		}
	}
	return res
}
