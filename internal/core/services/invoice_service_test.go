package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceRequest(kind domain.InvoiceKind, currency, amount string) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		Kind:             kind,
		CounterpartyName: "Kano Cocoa Cooperative",
		CurrencyCode:     currency,
		LineItems: []dto.InvoiceLineItemRequest{
			{Description: "Cocoa beans, grade A", Quantity: dec("1"), UnitPrice: dec(amount)},
		},
		IssueDate: date(2024, 3, 1),
		DueDate:   date(2024, 3, 31),
	}
}

func (f *ledgerFixture) sentInvoice(t *testing.T, req dto.CreateInvoiceRequest) *domain.Invoice {
	t.Helper()
	inv, err := f.svc.Invoice.CreateInvoice(f.ctx, f.companyID, req, testUser)
	require.NoError(t, err)
	sent, err := f.svc.Invoice.SendInvoice(f.ctx, f.companyID, inv.InvoiceID, testUser)
	require.NoError(t, err)
	return sent
}

func (f *ledgerFixture) pay(amount string, invoiceID string) (*domain.Invoice, error) {
	on := date(2024, 3, 20)
	return f.svc.Invoice.RecordPayment(f.ctx, f.companyID, invoiceID, dto.RecordPaymentRequest{
		Amount:      dec(amount),
		PaymentDate: &on,
	}, testUser)
}

func (f *ledgerFixture) trialBalance(t *testing.T) map[string]domain.TrialBalanceRow {
	t.Helper()
	tb, err := f.svc.Ledger.TrialBalanceAsOf(f.ctx, f.companyID, date(2024, 12, 31))
	require.NoError(t, err)
	return balances(tb)
}

func TestInvoice_Totals(t *testing.T) {
	f := newLedgerFixture(t)
	req := invoiceRequest(domain.Receivable, "USD", "0")
	req.LineItems = []dto.InvoiceLineItemRequest{
		{Description: "Sesame", Quantity: dec("3"), UnitPrice: dec("19.99")},
		{Description: "Freight", Quantity: dec("1"), UnitPrice: dec("40.03")},
	}
	req.TaxRate = dec("0.075")
	req.Discount = dec("2.50")

	inv, err := f.svc.Invoice.CreateInvoice(f.ctx, f.companyID, req, testUser)
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", inv.InvoiceNumber)
	assert.Equal(t, domain.InvoiceDraft, inv.Status)
	assert.True(t, dec("59.97").Equal(inv.LineItems[0].Amount))
	assert.True(t, dec("100.00").Equal(inv.Subtotal))
	assert.True(t, dec("7.50").Equal(inv.TaxAmount))
	assert.True(t, dec("105.00").Equal(inv.TotalAmount))
	assert.True(t, inv.TotalAmount.Equal(inv.BalanceDue))
	assert.True(t, inv.AmountPaid.IsZero())
}

func TestInvoice_CreateValidation(t *testing.T) {
	f := newLedgerFixture(t)
	tests := []struct {
		name   string
		modify func(r *dto.CreateInvoiceRequest)
	}{
		{"no counterparty", func(r *dto.CreateInvoiceRequest) { r.CounterpartyName = " " }},
		{"no items", func(r *dto.CreateInvoiceRequest) { r.LineItems = nil }},
		{"due before issue", func(r *dto.CreateInvoiceRequest) { r.DueDate = date(2024, 2, 1) }},
		{"tax above one", func(r *dto.CreateInvoiceRequest) { r.TaxRate = dec("1.5") }},
		{"negative discount", func(r *dto.CreateInvoiceRequest) { r.Discount = dec("-1") }},
		{"discount precision", func(r *dto.CreateInvoiceRequest) { r.Discount = dec("0.001") }},
		{"zero quantity", func(r *dto.CreateInvoiceRequest) { r.LineItems[0].Quantity = dec("0") }},
		{"negative price", func(r *dto.CreateInvoiceRequest) { r.LineItems[0].UnitPrice = dec("-3") }},
		{"discount wipes total", func(r *dto.CreateInvoiceRequest) { r.Discount = dec("1000") }},
		{"unknown kind", func(r *dto.CreateInvoiceRequest) { r.Kind = "CREDIT_NOTE" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := invoiceRequest(domain.Receivable, "USD", "1000")
			tt.modify(&req)
			_, err := f.svc.Invoice.CreateInvoice(f.ctx, f.companyID, req, testUser)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestInvoice_SendPostsRecognition(t *testing.T) {
	f := newLedgerFixture(t)
	inv := f.sentInvoice(t, invoiceRequest("", "USD", "1000.00"))

	assert.Equal(t, domain.Receivable, inv.Kind)
	assert.Equal(t, domain.InvoiceSent, inv.Status)
	require.NotNil(t, inv.RecognitionEntryID)

	entry, err := f.svc.Journal.GetJournal(f.ctx, f.companyID, *inv.RecognitionEntryID)
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, entry.Status)
	assert.Equal(t, date(2024, 3, 1), entry.EntryDate)

	rows := f.trialBalance(t)
	assert.True(t, dec("1000").Equal(rows["1200"].DebitBalance))
	assert.True(t, dec("1000").Equal(rows["4000"].CreditBalance))

	_, err = f.svc.Invoice.SendInvoice(f.ctx, f.companyID, inv.InvoiceID, testUser)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
}

func TestInvoice_PartialThenFullPayment(t *testing.T) {
	f := newLedgerFixture(t)
	inv := f.sentInvoice(t, invoiceRequest(domain.Receivable, "USD", "1000.00"))

	partial, err := f.pay("600.00", inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceSent, partial.Status)
	assert.True(t, dec("400").Equal(partial.BalanceDue))
	assert.True(t, dec("600").Equal(partial.AmountPaid))
	assert.Len(t, f.eventsOf(domain.EventInvoicePaymentRecorded), 1)
	assert.Empty(t, f.eventsOf(domain.EventInvoicePaid))

	full, err := f.pay("400.00", inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, full.Status)
	assert.True(t, full.BalanceDue.IsZero())

	paid := f.eventsOf(domain.EventInvoicePaid)
	require.Len(t, paid, 1)
	assert.Equal(t, inv.InvoiceID, paid[0].Payload.(domain.InvoicePaymentPayload).InvoiceID)

	_, err = f.pay("1.00", inv.InvoiceID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)

	payments, err := f.svc.Invoice.ListPayments(f.ctx, f.companyID, inv.InvoiceID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.True(t, dec("600").Equal(payments[0].FunctionalAmount))
	assert.Equal(t, date(2024, 3, 20), payments[0].PaymentDate)

	rows := f.trialBalance(t)
	assert.True(t, rows["1200"].DebitBalance.IsZero())
	assert.True(t, rows["1200"].CreditBalance.IsZero())
	assert.True(t, dec("1000").Equal(rows["1000"].DebitBalance))
}

func TestInvoice_InvalidPayments(t *testing.T) {
	f := newLedgerFixture(t)
	inv := f.sentInvoice(t, invoiceRequest(domain.Receivable, "USD", "1000.00"))

	_, err := f.pay("0", inv.InvoiceID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPayment)

	_, err = f.pay("1000.01", inv.InvoiceID)
	var invalid *apperrors.InvalidPaymentError
	require.True(t, errors.As(err, &invalid))
	assert.True(t, dec("1000").Equal(invalid.BalanceDue))

	_, err = f.pay("10.005", inv.InvoiceID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	stored, err := f.svc.Invoice.GetInvoice(f.ctx, f.companyID, inv.InvoiceID)
	require.NoError(t, err)
	assert.True(t, dec("1000").Equal(stored.BalanceDue))
	assert.Empty(t, f.eventsOf(domain.EventInvoicePaymentRecorded))
}

func TestInvoice_PaymentOnDraftRejected(t *testing.T) {
	f := newLedgerFixture(t)
	inv, err := f.svc.Invoice.CreateInvoice(f.ctx, f.companyID, invoiceRequest(domain.Receivable, "USD", "50"), testUser)
	require.NoError(t, err)

	_, err = f.pay("10", inv.InvoiceID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
}

func TestInvoice_OverdueProjection(t *testing.T) {
	f := newLedgerFixture(t)
	req := invoiceRequest(domain.Receivable, "USD", "80")
	req.DueDate = date(2024, 3, 10)
	inv := f.sentInvoice(t, req)

	// The fixture clock reads 2024-03-15.
	assert.Equal(t, domain.InvoiceOverdue, inv.Status)

	overdue, err := f.svc.Invoice.ListInvoices(f.ctx, f.companyID, dto.ListInvoicesParams{Status: "OVERDUE"})
	require.NoError(t, err)
	require.Len(t, overdue, 1)

	sent, err := f.svc.Invoice.ListInvoices(f.ctx, f.companyID, dto.ListInvoicesParams{Status: "SENT"})
	require.NoError(t, err)
	assert.Empty(t, sent)

	f.clock.Set(time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC))
	got, err := f.svc.Invoice.GetInvoice(f.ctx, f.companyID, inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceSent, got.Status, "due today is not overdue")

	f.clock.Set(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	paid, err := f.pay("80", inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, paid.Status)

	_, err = f.svc.Invoice.ListInvoices(f.ctx, f.companyID, dto.ListInvoicesParams{Status: "LATE"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestInvoice_CancelReversesRecognition(t *testing.T) {
	f := newLedgerFixture(t)
	inv := f.sentInvoice(t, invoiceRequest(domain.Receivable, "USD", "300"))

	cancelled, err := f.svc.Invoice.CancelInvoice(f.ctx, f.companyID, inv.InvoiceID, testUser)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceCancelled, cancelled.Status)

	recognition, err := f.svc.Journal.GetJournal(f.ctx, f.companyID, *inv.RecognitionEntryID)
	require.NoError(t, err)
	assert.Equal(t, domain.Reversed, recognition.Status)

	rows := f.trialBalance(t)
	assert.True(t, rows["1200"].DebitBalance.IsZero())
	assert.True(t, rows["4000"].CreditBalance.IsZero())

	_, err = f.svc.Invoice.CancelInvoice(f.ctx, f.companyID, inv.InvoiceID, testUser)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
}

func TestInvoice_CancelWithRecognitionAlreadyReversed(t *testing.T) {
	f := newLedgerFixture(t)
	inv := f.sentInvoice(t, invoiceRequest(domain.Receivable, "USD", "300"))
	_, err := f.engine().ReverseInvoiceEntry(f.ctx, f.companyID, inv.InvoiceID, *inv.RecognitionEntryID, "issued in error", testUser)
	require.NoError(t, err)
	require.Len(t, f.eventsOf(domain.EventJournalReversed), 1)

	cancelled, err := f.svc.Invoice.CancelInvoice(f.ctx, f.companyID, inv.InvoiceID, testUser)

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceCancelled, cancelled.Status)
	assert.Len(t, f.eventsOf(domain.EventJournalReversed), 1)
	rows := f.trialBalance(t)
	assert.True(t, rows["1200"].DebitBalance.IsZero())
	assert.True(t, rows["1200"].CreditBalance.IsZero())
}

func TestInvoice_EntriesNotReversibleThroughJournal(t *testing.T) {
	f := newLedgerFixture(t)
	inv := f.sentInvoice(t, invoiceRequest(domain.Receivable, "USD", "300"))
	_, err := f.pay("300", inv.InvoiceID)
	require.NoError(t, err)
	payments, err := f.svc.Invoice.ListPayments(f.ctx, f.companyID, inv.InvoiceID)
	require.NoError(t, err)
	require.Len(t, payments, 1)

	for _, entryID := range []string{payments[0].JournalEntryID, *inv.RecognitionEntryID} {
		entry, err := f.svc.Journal.GetJournal(f.ctx, f.companyID, entryID)
		require.NoError(t, err)
		require.NotNil(t, entry.SourceInvoiceID)
		assert.Equal(t, inv.InvoiceID, *entry.SourceInvoiceID)

		_, err = f.svc.Journal.ReverseJournal(f.ctx, f.companyID, entryID, "bank error", testUser)
		assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
	}

	paid, err := f.svc.Invoice.GetInvoice(f.ctx, f.companyID, inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, paid.Status)
	assert.True(t, paid.BalanceDue.IsZero())
	rows := f.trialBalance(t)
	assert.True(t, rows["1200"].DebitBalance.IsZero())
	assert.True(t, dec("300").Equal(rows["1000"].DebitBalance))
}

func TestInvoice_PaymentOnPaidNamesOperation(t *testing.T) {
	f := newLedgerFixture(t)
	inv := f.sentInvoice(t, invoiceRequest(domain.Receivable, "USD", "50"))
	_, err := f.pay("50", inv.InvoiceID)
	require.NoError(t, err)

	_, err = f.pay("1", inv.InvoiceID)

	var transition *apperrors.InvalidStateTransitionError
	require.True(t, errors.As(err, &transition))
	assert.Equal(t, "PAID", transition.From)
	assert.Equal(t, "PAYMENT", transition.To)
	assert.ErrorContains(t, err, "cannot move from PAID to PAYMENT")
}

func TestInvoice_CancelDraftAndPaid(t *testing.T) {
	f := newLedgerFixture(t)
	draft, err := f.svc.Invoice.CreateInvoice(f.ctx, f.companyID, invoiceRequest(domain.Receivable, "USD", "20"), testUser)
	require.NoError(t, err)

	cancelled, err := f.svc.Invoice.CancelInvoice(f.ctx, f.companyID, draft.InvoiceID, testUser)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceCancelled, cancelled.Status)

	paid := f.sentInvoice(t, invoiceRequest(domain.Receivable, "USD", "20"))
	_, err = f.pay("20", paid.InvoiceID)
	require.NoError(t, err)

	_, err = f.svc.Invoice.CancelInvoice(f.ctx, f.companyID, paid.InvoiceID, testUser)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
}

func TestInvoice_ForeignCurrency(t *testing.T) {
	f := newLedgerFixture(t)
	f.setRate(t, "EUR", "USD", "1.1", date(2024, 3, 1))
	f.setRate(t, "EUR", "USD", "1.2", date(2024, 3, 20))

	inv := f.sentInvoice(t, invoiceRequest(domain.Receivable, "EUR", "1000.00"))
	rows := f.trialBalance(t)
	assert.True(t, dec("1100").Equal(rows["1200"].DebitBalance))

	_, err := f.pay("600", inv.InvoiceID)
	require.NoError(t, err)

	payments, err := f.svc.Invoice.ListPayments(f.ctx, f.companyID, inv.InvoiceID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.True(t, dec("720").Equal(payments[0].FunctionalAmount))
	assert.True(t, dec("1.2").Equal(payments[0].ExchangeRate))

	rows = f.trialBalance(t)
	assert.True(t, dec("720").Equal(rows["1000"].DebitBalance))
	assert.True(t, dec("380").Equal(rows["1200"].DebitBalance))
}

func TestInvoice_MissingRateRollsBack(t *testing.T) {
	f := newLedgerFixture(t)
	inv, err := f.svc.Invoice.CreateInvoice(f.ctx, f.companyID, invoiceRequest(domain.Receivable, "GBP", "10"), testUser)
	require.NoError(t, err)

	_, err = f.svc.Invoice.SendInvoice(f.ctx, f.companyID, inv.InvoiceID, testUser)
	assert.ErrorIs(t, err, apperrors.ErrNoRateAvailable)

	stored, err := f.svc.Invoice.GetInvoice(f.ctx, f.companyID, inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceDraft, stored.Status)
	assert.Nil(t, stored.RecognitionEntryID)

	journals, err := f.svc.Journal.ListJournals(f.ctx, f.companyID, dto.ListJournalsParams{})
	require.NoError(t, err)
	assert.Empty(t, journals.Journals)
	assert.Empty(t, f.eventsOf(domain.EventJournalPosted))
}

func TestInvoice_PayablePostings(t *testing.T) {
	f := newLedgerFixture(t)
	inv := f.sentInvoice(t, invoiceRequest(domain.Payable, "USD", "250"))

	rows := f.trialBalance(t)
	assert.True(t, dec("250").Equal(rows["5000"].DebitBalance))
	assert.True(t, dec("250").Equal(rows["2000"].CreditBalance))

	_, err := f.pay("250", inv.InvoiceID)
	require.NoError(t, err)

	rows = f.trialBalance(t)
	assert.True(t, rows["2000"].CreditBalance.IsZero())
	assert.True(t, dec("250").Equal(rows["1000"].CreditBalance))
	assert.True(t, rows["1000"].Anomalous)
}
