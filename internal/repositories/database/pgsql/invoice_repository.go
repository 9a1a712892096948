package pgsql

import (
	"context"
	"errors"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	"github.com/Adams-ibr/Commodity-sub000/internal/models"
	"github.com/Adams-ibr/Commodity-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, company_id, invoice_number, kind, counterparty_name, currency_code,
	subtotal, tax_rate, tax_amount, discount, total_amount, amount_paid, balance_due, status,
	issue_date, due_date, recognition_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID, &m.CompanyID, &m.InvoiceNumber, &m.Kind, &m.CounterpartyName, &m.CurrencyCode,
		&m.Subtotal, &m.TaxRate, &m.TaxAmount, &m.Discount, &m.TotalAmount, &m.AmountPaid, &m.BalanceDue, &m.Status,
		&m.IssueDate, &m.DueDate, &m.RecognitionEntryID, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1 AND invoice_id = $2;`
	m, err := scanInvoice(r.db(ctx).QueryRow(ctx, query, companyID, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice "+invoiceID, err)
	}
	items, err := r.findLineItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	inv := mapping.ToDomainInvoice(m, items)
	return &inv, nil
}

func (r *PgxInvoiceRepository) findLineItems(ctx context.Context, invoiceID string) ([]models.InvoiceLineItem, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT invoice_id, line_no, description, quantity, unit_price, amount
		FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY line_no;
	`, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for invoice "+invoiceID, err)
	}
	defer rows.Close()

	items := []models.InvoiceLineItem{}
	for rows.Next() {
		var it models.InvoiceLineItem
		if err := rows.Scan(&it.InvoiceID, &it.LineNo, &it.Description, &it.Quantity, &it.UnitPrice, &it.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item for invoice "+invoiceID, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line items for invoice "+invoiceID, err)
	}
	return items, nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, companyID string, status *domain.InvoiceStatus) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1`
	args := []any{companyID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY invoice_number;`

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list invoices for company "+companyID, err)
	}
	headers := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		headers = append(headers, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	invoices := make([]domain.Invoice, 0, len(headers))
	for _, h := range headers {
		items, err := r.findLineItems(ctx, h.InvoiceID)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, mapping.ToDomainInvoice(h, items))
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) ListPayments(ctx context.Context, companyID, invoiceID string) ([]domain.InvoicePayment, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT payment_id, invoice_id, company_id, amount, payment_date, functional_amount, exchange_rate,
		       journal_entry_id, reference, created_at, created_by, last_updated_at, last_updated_by
		FROM invoice_payments
		WHERE company_id = $1 AND invoice_id = $2
		ORDER BY created_at;
	`, companyID, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payments for invoice "+invoiceID, err)
	}
	defer rows.Close()

	payments := []domain.InvoicePayment{}
	for rows.Next() {
		var m models.InvoicePayment
		if err := rows.Scan(
			&m.PaymentID, &m.InvoiceID, &m.CompanyID, &m.Amount, &m.PaymentDate, &m.FunctionalAmount, &m.ExchangeRate,
			&m.JournalEntryID, &m.Reference, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, mapping.ToDomainInvoicePayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}
	return payments, nil
}

func (r *PgxInvoiceRepository) NextInvoiceSequence(ctx context.Context, companyID string) (int64, error) {
	return r.nextSequence(ctx, companyID, "invoice")
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	db := r.db(ctx)
	_, err := db.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`,
		m.InvoiceID, m.CompanyID, m.InvoiceNumber, m.Kind, m.CounterpartyName, m.CurrencyCode,
		m.Subtotal, m.TaxRate, m.TaxAmount, m.Discount, m.TotalAmount, m.AmountPaid, m.BalanceDue, m.Status,
		m.IssueDate, m.DueDate, m.RecognitionEntryID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("invoice " + m.InvoiceNumber + " already exists")
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	for _, it := range invoice.LineItems {
		mi := mapping.ToModelInvoiceLineItem(invoice.InvoiceID, it)
		batch.Queue(`
			INSERT INTO invoice_line_items (invoice_id, line_no, description, quantity, unit_price, amount)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, mi.InvoiceID, mi.LineNo, mi.Description, mi.Quantity, mi.UnitPrice, mi.Amount)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert line items for invoice "+m.InvoiceID, err)
	}
	return nil
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE invoices
		SET amount_paid = $3, balance_due = $4, status = $5, recognition_entry_id = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE company_id = $1 AND invoice_id = $2;
	`,
		m.CompanyID, m.InvoiceID, m.AmountPaid, m.BalanceDue, m.Status, m.RecognitionEntryID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxInvoiceRepository) SavePayment(ctx context.Context, payment domain.InvoicePayment) error {
	m := mapping.ToModelInvoicePayment(payment)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO invoice_payments (
			payment_id, invoice_id, company_id, amount, payment_date, functional_amount, exchange_rate,
			journal_entry_id, reference, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		m.PaymentID, m.InvoiceID, m.CompanyID, m.Amount, m.PaymentDate, m.FunctionalAmount, m.ExchangeRate,
		m.JournalEntryID, m.Reference, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save payment for invoice "+m.InvoiceID, err)
	}
	return nil
}
