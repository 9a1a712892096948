package mapping

import (
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/models"
)

// ToModelInvoice converts a domain Invoice header to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:          d.InvoiceID,
		CompanyID:          d.CompanyID,
		InvoiceNumber:      d.InvoiceNumber,
		Kind:               string(d.Kind),
		CounterpartyName:   d.CounterpartyName,
		CurrencyCode:       d.CurrencyCode,
		Subtotal:           d.Subtotal,
		TaxRate:            d.TaxRate,
		TaxAmount:          d.TaxAmount,
		Discount:           d.Discount,
		TotalAmount:        d.TotalAmount,
		AmountPaid:         d.AmountPaid,
		BalanceDue:         d.BalanceDue,
		Status:             string(d.Status),
		IssueDate:          d.IssueDate,
		DueDate:            d.DueDate,
		RecognitionEntryID: toNullStringPtr(d.RecognitionEntryID),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice and its line items to a domain Invoice
func ToDomainInvoice(m models.Invoice, items []models.InvoiceLineItem) domain.Invoice {
	lineItems := make([]domain.InvoiceLineItem, len(items))
	for i, it := range items {
		lineItems[i] = domain.InvoiceLineItem{
			LineNo:      it.LineNo,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount,
		}
	}
	return domain.Invoice{
		InvoiceID:          m.InvoiceID,
		CompanyID:          m.CompanyID,
		InvoiceNumber:      m.InvoiceNumber,
		Kind:               domain.InvoiceKind(m.Kind),
		CounterpartyName:   m.CounterpartyName,
		CurrencyCode:       m.CurrencyCode,
		LineItems:          lineItems,
		Subtotal:           m.Subtotal,
		TaxRate:            m.TaxRate,
		TaxAmount:          m.TaxAmount,
		Discount:           m.Discount,
		TotalAmount:        m.TotalAmount,
		AmountPaid:         m.AmountPaid,
		BalanceDue:         m.BalanceDue,
		Status:             domain.InvoiceStatus(m.Status),
		IssueDate:          domain.NormalizeDate(m.IssueDate),
		DueDate:            domain.NormalizeDate(m.DueDate),
		RecognitionEntryID: fromNullStringPtr(m.RecognitionEntryID),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoiceLineItem converts a domain line item to its row
func ToModelInvoiceLineItem(invoiceID string, d domain.InvoiceLineItem) models.InvoiceLineItem {
	return models.InvoiceLineItem{
		InvoiceID:   invoiceID,
		LineNo:      d.LineNo,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Amount:      d.Amount,
	}
}

// ToModelInvoicePayment converts a domain InvoicePayment to a model InvoicePayment
func ToModelInvoicePayment(d domain.InvoicePayment) models.InvoicePayment {
	return models.InvoicePayment{
		PaymentID:        d.PaymentID,
		InvoiceID:        d.InvoiceID,
		CompanyID:        d.CompanyID,
		Amount:           d.Amount,
		PaymentDate:      d.PaymentDate,
		FunctionalAmount: d.FunctionalAmount,
		ExchangeRate:     d.ExchangeRate,
		JournalEntryID:   d.JournalEntryID,
		Reference:        d.Reference,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoicePayment converts a model InvoicePayment to a domain InvoicePayment
func ToDomainInvoicePayment(m models.InvoicePayment) domain.InvoicePayment {
	return domain.InvoicePayment{
		PaymentID:        m.PaymentID,
		InvoiceID:        m.InvoiceID,
		CompanyID:        m.CompanyID,
		Amount:           m.Amount,
		PaymentDate:      domain.NormalizeDate(m.PaymentDate),
		FunctionalAmount: m.FunctionalAmount,
		ExchangeRate:     m.ExchangeRate,
		JournalEntryID:   m.JournalEntryID,
		Reference:        m.Reference,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
