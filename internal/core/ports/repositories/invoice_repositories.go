package repositories

import (
	"context"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
)

// InvoiceReader defines read operations for invoices
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error)

	// ListInvoices returns invoices ordered by invoice number. A nil status lists all.
	ListInvoices(ctx context.Context, companyID string, status *domain.InvoiceStatus) ([]domain.Invoice, error)

	ListPayments(ctx context.Context, companyID, invoiceID string) ([]domain.InvoicePayment, error)
}

// InvoiceWriter defines write operations for invoices
type InvoiceWriter interface {
	NextInvoiceSequence(ctx context.Context, companyID string) (int64, error)
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice persists status, paid amounts and the recognition link.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	SavePayment(ctx context.Context, payment domain.InvoicePayment) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
