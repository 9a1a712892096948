package services

import (
	"context"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices. Returned invoices
// carry the status projected onto today.
type InvoiceReaderSvc interface {
	GetInvoice(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) ([]domain.Invoice, error)
	ListPayments(ctx context.Context, companyID, invoiceID string) ([]domain.InvoicePayment, error)
}

// InvoiceWriterSvc defines the invoice lifecycle
type InvoiceWriterSvc interface {
	CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)
	SendInvoice(ctx context.Context, companyID, invoiceID string, userID string) (*domain.Invoice, error)
	RecordPayment(ctx context.Context, companyID, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error)
	CancelInvoice(ctx context.Context, companyID, invoiceID string, userID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
