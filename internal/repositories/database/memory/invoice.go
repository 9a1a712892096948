package memory

import (
	"context"
	"sort"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
)

var _ portsrepo.InvoiceRepositoryFacade = (*Store)(nil)

func cloneInvoice(inv domain.Invoice) domain.Invoice {
	c := inv
	c.LineItems = append([]domain.InvoiceLineItem(nil), inv.LineItems...)
	if inv.RecognitionEntryID != nil {
		id := *inv.RecognitionEntryID
		c.RecognitionEntryID = &id
	}
	return c
}

func (s *Store) FindInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	inv, ok := s.read(ctx, companyID).invoices[invoiceID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	found := cloneInvoice(inv)
	return &found, nil
}

func (s *Store) ListInvoices(ctx context.Context, companyID string, status *domain.InvoiceStatus) ([]domain.Invoice, error) {
	st := s.read(ctx, companyID)
	out := make([]domain.Invoice, 0, len(st.invoices))
	for _, inv := range st.invoices {
		if status != nil && inv.Status != *status {
			continue
		}
		out = append(out, cloneInvoice(inv))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNumber < out[j].InvoiceNumber })
	return out, nil
}

func (s *Store) ListPayments(ctx context.Context, companyID, invoiceID string) ([]domain.InvoicePayment, error) {
	return append([]domain.InvoicePayment{}, s.read(ctx, companyID).payments[invoiceID]...), nil
}

func (s *Store) NextInvoiceSequence(ctx context.Context, companyID string) (int64, error) {
	var seq int64
	err := s.write(ctx, companyID, func(st *companyState) error {
		st.invoiceSeq++
		seq = st.invoiceSeq
		return nil
	})
	return seq, err
}

func (s *Store) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	return s.write(ctx, invoice.CompanyID, func(st *companyState) error {
		if _, ok := st.invoices[invoice.InvoiceID]; ok {
			return apperrors.NewDuplicateError("invoice " + invoice.InvoiceID + " already exists")
		}
		st.invoices[invoice.InvoiceID] = cloneInvoice(invoice)
		return nil
	})
}

func (s *Store) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	return s.write(ctx, invoice.CompanyID, func(st *companyState) error {
		cur, ok := st.invoices[invoice.InvoiceID]
		if !ok {
			return apperrors.ErrNotFound
		}
		updated := cloneInvoice(invoice)
		updated.LineItems = cur.LineItems
		st.invoices[invoice.InvoiceID] = updated
		return nil
	})
}

func (s *Store) SavePayment(ctx context.Context, payment domain.InvoicePayment) error {
	return s.write(ctx, payment.CompanyID, func(st *companyState) error {
		if _, ok := st.invoices[payment.InvoiceID]; !ok {
			return apperrors.ErrNotFound
		}
		st.payments[payment.InvoiceID] = append(st.payments[payment.InvoiceID], payment)
		return nil
	})
}
