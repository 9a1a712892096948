package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/Adams-ibr/Commodity-sub000/internal/utils"
)

// invoiceService bridges invoices into the ledger: sending recognises the
// receivable or payable, payments settle it through cash.
type invoiceService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	companyRepo  portsrepo.CompanyReader
	currencyRepo portsrepo.CurrencyReader
	journalSvc   portssvc.InvoiceJournalSvc
	fxSvc        portssvc.ExchangeRateReaderSvc
}

// NewInvoiceService creates the invoice ledger bridge.
func NewInvoiceService(
	txManager portsrepo.TransactionManager,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	companyRepo portsrepo.CompanyReader,
	currencyRepo portsrepo.CurrencyReader,
	journalSvc portssvc.InvoiceJournalSvc,
	fxSvc portssvc.ExchangeRateReaderSvc,
	options ...ServiceOption,
) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		txManager:    txManager,
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		currencyRepo: currencyRepo,
		journalSvc:   journalSvc,
		fxSvc:        fxSvc,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) GetInvoice(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", invoiceID, err)
	}
	return s.project(inv), nil
}

// ListInvoices filters on the projected status, so OVERDUE and SENT are
// derived from the stored SENT invoices and today's date.
func (s *invoiceService) ListInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	var want *domain.InvoiceStatus
	var stored *domain.InvoiceStatus
	if params.Status != "" {
		st := domain.InvoiceStatus(strings.ToUpper(params.Status))
		switch st {
		case domain.InvoiceDraft, domain.InvoiceSent, domain.InvoicePaid, domain.InvoiceCancelled:
			stored = &st
		case domain.InvoiceOverdue:
			sent := domain.InvoiceSent
			stored = &sent
		default:
			return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, params.Status)
		}
		want = &st
	}

	invoices, err := s.invoiceRepo.ListInvoices(ctx, companyID, stored)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	today := s.Today()
	result := make([]domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		inv.Status = inv.EffectiveStatus(today)
		if want != nil && inv.Status != *want {
			continue
		}
		result = append(result, inv)
	}
	return result, nil
}

func (s *invoiceService) ListPayments(ctx context.Context, companyID, invoiceID string) ([]domain.InvoicePayment, error) {
	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID); err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", invoiceID, err)
	}
	payments, err := s.invoiceRepo.ListPayments(ctx, companyID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	kind := req.Kind
	if kind == "" {
		kind = domain.Receivable
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown invoice kind %q", apperrors.ErrValidation, req.Kind)
	}
	if strings.TrimSpace(req.CounterpartyName) == "" {
		return nil, fmt.Errorf("%w: counterparty name is required", apperrors.ErrValidation)
	}
	if len(req.LineItems) == 0 {
		return nil, fmt.Errorf("%w: invoice needs at least one line item", apperrors.ErrValidation)
	}
	if req.IssueDate.IsZero() || req.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: issue and due dates are required", apperrors.ErrValidation)
	}
	issue, due := domain.NormalizeDate(req.IssueDate), domain.NormalizeDate(req.DueDate)
	if due.Before(issue) {
		return nil, fmt.Errorf("%w: due date is before issue date", apperrors.ErrValidation)
	}
	if req.TaxRate.IsNegative() || req.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: tax rate must be between 0 and 1", apperrors.ErrValidation)
	}
	if req.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount cannot be negative", apperrors.ErrValidation)
	}

	currencyCode := strings.ToUpper(req.CurrencyCode)
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load currency %s: %w", currencyCode, err)
	}
	if !utils.FitsPrecision(req.Discount, currency.Precision) {
		return nil, fmt.Errorf("%w: discount has more than %d decimal places", apperrors.ErrValidation, currency.Precision)
	}

	items := make([]domain.InvoiceLineItem, len(req.LineItems))
	subtotal := decimal.Zero
	for i, li := range req.LineItems {
		if !li.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: line item %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if li.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line item %d unit price cannot be negative", apperrors.ErrValidation, i+1)
		}
		amount := utils.RoundToPrecision(li.Quantity.Mul(li.UnitPrice), currency.Precision)
		items[i] = domain.InvoiceLineItem{
			LineNo:      i + 1,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      amount,
		}
		subtotal = subtotal.Add(amount)
	}
	tax := utils.RoundToPrecision(subtotal.Mul(req.TaxRate), currency.Precision)
	total := subtotal.Add(tax).Sub(req.Discount)
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: invoice total must be positive", apperrors.ErrValidation)
	}

	inv := domain.Invoice{
		InvoiceID:        uuid.NewString(),
		CompanyID:        companyID,
		Kind:             kind,
		CounterpartyName: strings.TrimSpace(req.CounterpartyName),
		CurrencyCode:     currencyCode,
		LineItems:        items,
		Subtotal:         subtotal,
		TaxRate:          req.TaxRate,
		TaxAmount:        tax,
		Discount:         req.Discount,
		TotalAmount:      total,
		AmountPaid:       decimal.Zero,
		BalanceDue:       total,
		Status:           domain.InvoiceDraft,
		IssueDate:        issue,
		DueDate:          due,
		AuditFields:      s.newAuditFields(userID),
	}

	err = s.txManager.WithinCompanyTx(ctx, companyID, func(ctx context.Context) error {
		if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
			return err
		}
		seq, err := s.invoiceRepo.NextInvoiceSequence(ctx, companyID)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = fmt.Sprintf("INV-%06d", seq)
		return s.invoiceRepo.SaveInvoice(ctx, inv)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create invoice", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("company_id", companyID),
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("invoice_number", inv.InvoiceNumber),
		slog.String("total", inv.TotalAmount.String()))
	return &inv, nil
}

// SendInvoice moves a draft to Sent and posts its recognition entry, converted
// to the functional currency at the issue date.
func (s *invoiceService) SendInvoice(ctx context.Context, companyID, invoiceID string, userID string) (*domain.Invoice, error) {
	var inv *domain.Invoice
	err := s.txManager.WithinCompanyTx(ctx, companyID, func(ctx context.Context) error {
		var err error
		inv, err = s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
		if err != nil {
			return err
		}
		if !inv.Status.CanTransition(domain.InvoiceSent) {
			return s.transitionError(inv, "SEND")
		}
		company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
		if err != nil {
			return err
		}

		conv, err := s.fxSvc.Convert(ctx, inv.TotalAmount, inv.CurrencyCode, company.FunctionalCurrency, inv.IssueDate)
		if err != nil {
			return err
		}

		debit, credit := company.PostingAccounts.Receivable, company.PostingAccounts.Revenue
		if inv.Kind == domain.Payable {
			debit, credit = company.PostingAccounts.Expense, company.PostingAccounts.Payable
		}
		entry, err := s.journalSvc.PostInvoiceEntry(ctx, companyID, inv.InvoiceID, dto.CreateJournalRequest{
			EntryDate:   inv.IssueDate,
			Description: fmt.Sprintf("Invoice %s: %s", inv.InvoiceNumber, inv.CounterpartyName),
			Lines:       journalLines(conv.Converted, debit, credit, inv.InvoiceNumber),
		}, userID)
		if err != nil {
			return err
		}

		inv.Status = domain.InvoiceSent
		inv.RecognitionEntryID = &entry.EntryID
		s.touch(&inv.AuditFields, userID)
		return s.invoiceRepo.UpdateInvoice(ctx, *inv)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to send invoice",
			slog.String("company_id", companyID),
			slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to send invoice %s: %w", invoiceID, err)
	}

	s.LogInfo(ctx, "Invoice sent",
		slog.String("company_id", companyID),
		slog.String("invoice_id", invoiceID))
	return s.project(inv), nil
}

// RecordPayment applies cash to a sent invoice. The payment entry and the
// invoice update commit together.
func (s *invoiceService) RecordPayment(ctx context.Context, companyID, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error) {
	if !req.Amount.IsPositive() {
		return nil, &apperrors.InvalidPaymentError{
			InvoiceID: invoiceID,
			Amount:    req.Amount,
			Reason:    "amount must be positive",
		}
	}
	paymentDate := s.Today()
	if req.PaymentDate != nil && !req.PaymentDate.IsZero() {
		paymentDate = domain.NormalizeDate(*req.PaymentDate)
	}

	var inv *domain.Invoice
	var payment domain.InvoicePayment
	err := s.txManager.WithinCompanyTx(ctx, companyID, func(ctx context.Context) error {
		var err error
		inv, err = s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
		if err != nil {
			return err
		}
		if !inv.Status.CanTransition(domain.InvoicePaid) {
			return s.transitionError(inv, "PAYMENT")
		}
		if req.Amount.GreaterThan(inv.BalanceDue) {
			return &apperrors.InvalidPaymentError{
				InvoiceID:  invoiceID,
				Amount:     req.Amount,
				BalanceDue: inv.BalanceDue,
				Reason:     "amount exceeds balance due",
			}
		}

		currency, err := s.currencyRepo.FindCurrencyByCode(ctx, inv.CurrencyCode)
		if err != nil {
			return err
		}
		if !utils.FitsPrecision(req.Amount, currency.Precision) {
			return fmt.Errorf("%w: payment amount has more than %d decimal places", apperrors.ErrValidation, currency.Precision)
		}

		company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
		if err != nil {
			return err
		}
		conv, err := s.fxSvc.Convert(ctx, req.Amount, inv.CurrencyCode, company.FunctionalCurrency, paymentDate)
		if err != nil {
			return err
		}

		debit, credit := company.PostingAccounts.Cash, company.PostingAccounts.Receivable
		if inv.Kind == domain.Payable {
			debit, credit = company.PostingAccounts.Payable, company.PostingAccounts.Cash
		}
		entry, err := s.journalSvc.PostInvoiceEntry(ctx, companyID, inv.InvoiceID, dto.CreateJournalRequest{
			EntryDate:   paymentDate,
			Description: fmt.Sprintf("Payment of %s %s on invoice %s",
				utils.FormatWithCurrencyPrecision(req.Amount, *currency), currency.CurrencyCode, inv.InvoiceNumber),
			Lines:       journalLines(conv.Converted, debit, credit, req.Reference),
		}, userID)
		if err != nil {
			return err
		}

		inv.AmountPaid = inv.AmountPaid.Add(req.Amount)
		inv.BalanceDue = inv.TotalAmount.Sub(inv.AmountPaid)
		if inv.BalanceDue.IsZero() {
			inv.Status = domain.InvoicePaid
		}
		s.touch(&inv.AuditFields, userID)
		if err := s.invoiceRepo.UpdateInvoice(ctx, *inv); err != nil {
			return err
		}

		payment = domain.InvoicePayment{
			PaymentID:        uuid.NewString(),
			InvoiceID:        invoiceID,
			CompanyID:        companyID,
			Amount:           req.Amount,
			PaymentDate:      paymentDate,
			FunctionalAmount: conv.Converted,
			ExchangeRate:     conv.Rate,
			JournalEntryID:   entry.EntryID,
			Reference:        req.Reference,
			AuditFields:      s.newAuditFields(userID),
		}
		if err := s.invoiceRepo.SavePayment(ctx, payment); err != nil {
			return err
		}

		s.afterPayment(ctx, *inv, payment)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record invoice payment",
			slog.String("company_id", companyID),
			slog.String("invoice_id", invoiceID),
			slog.String("amount", req.Amount.String()))
		return nil, fmt.Errorf("failed to record payment on invoice %s: %w", invoiceID, err)
	}

	s.LogInfo(ctx, "Invoice payment recorded",
		slog.String("company_id", companyID),
		slog.String("invoice_id", invoiceID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("balance_due", inv.BalanceDue.String()))
	return s.project(inv), nil
}

// CancelInvoice is allowed from any state but Paid and Cancelled. A posted
// recognition entry is reversed, amounts paid are left as they are.
func (s *invoiceService) CancelInvoice(ctx context.Context, companyID, invoiceID string, userID string) (*domain.Invoice, error) {
	var inv *domain.Invoice
	err := s.txManager.WithinCompanyTx(ctx, companyID, func(ctx context.Context) error {
		var err error
		inv, err = s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
		if err != nil {
			return err
		}
		if !inv.Status.CanTransition(domain.InvoiceCancelled) {
			return s.transitionError(inv, string(domain.InvoiceCancelled))
		}

		if inv.RecognitionEntryID != nil {
			if err := s.reverseRecognition(ctx, inv, userID); err != nil {
				return err
			}
		}

		inv.Status = domain.InvoiceCancelled
		s.touch(&inv.AuditFields, userID)
		return s.invoiceRepo.UpdateInvoice(ctx, *inv)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel invoice",
			slog.String("company_id", companyID),
			slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to cancel invoice %s: %w", invoiceID, err)
	}

	s.LogInfo(ctx, "Invoice cancelled",
		slog.String("company_id", companyID),
		slog.String("invoice_id", invoiceID))
	return inv, nil
}

func (s *invoiceService) afterPayment(ctx context.Context, inv domain.Invoice, payment domain.InvoicePayment) {
	payload := domain.InvoicePaymentPayload{
		InvoiceID:      inv.InvoiceID,
		InvoiceNumber:  inv.InvoiceNumber,
		PaymentID:      payment.PaymentID,
		Amount:         payment.Amount,
		BalanceDue:     inv.BalanceDue,
		JournalEntryID: payment.JournalEntryID,
	}
	paid := inv.Status == domain.InvoicePaid
	s.txManager.AfterCommit(ctx, func() {
		s.publish(ctx, domain.Event{Type: domain.EventInvoicePaymentRecorded, CompanyID: inv.CompanyID, Payload: payload})
		if paid {
			s.publish(ctx, domain.Event{Type: domain.EventInvoicePaid, CompanyID: inv.CompanyID, Payload: payload})
		}
	})
}

// reverseRecognition undoes the entry posted by SendInvoice. An entry that is
// already reversed needs nothing more.
func (s *invoiceService) reverseRecognition(ctx context.Context, inv *domain.Invoice, userID string) error {
	entry, err := s.journalSvc.GetJournal(ctx, inv.CompanyID, *inv.RecognitionEntryID)
	if err != nil {
		return err
	}
	if entry.Status == domain.Reversed {
		s.LogInfo(ctx, "Recognition entry already reversed",
			slog.String("invoice_id", inv.InvoiceID),
			slog.String("entry_id", entry.EntryID))
		return nil
	}
	reason := fmt.Sprintf("invoice %s cancelled", inv.InvoiceNumber)
	_, err = s.journalSvc.ReverseInvoiceEntry(ctx, inv.CompanyID, inv.InvoiceID, entry.EntryID, reason, userID)
	return err
}

// transitionError names the attempted operation, e.g. PAYMENT on a PAID invoice.
func (s *invoiceService) transitionError(inv *domain.Invoice, attempted string) error {
	return &apperrors.InvalidStateTransitionError{
		Entity: "invoice",
		ID:     inv.InvoiceID,
		From:   string(inv.EffectiveStatus(s.Today())),
		To:     attempted,
	}
}

// project reports the status as of today without persisting it.
func (s *invoiceService) project(inv *domain.Invoice) *domain.Invoice {
	projected := *inv
	projected.Status = inv.EffectiveStatus(s.Today())
	return &projected
}
