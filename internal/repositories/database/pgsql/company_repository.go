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

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(pool *pgxpool.Pool) *PgxCompanyRepository {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companyColumns = `company_id, name, functional_currency, cash_account, receivable_account,
	payable_account, revenue_account, expense_account, created_at, created_by, last_updated_at, last_updated_by`

func scanCompany(row pgx.Row) (domain.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID, &m.Name, &m.FunctionalCurrency, &m.CashAccount, &m.ReceivableAccount,
		&m.PayableAccount, &m.RevenueAccount, &m.ExpenseAccount,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Company{}, err
	}
	return mapping.ToDomainCompany(m), nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	c, err := scanCompany(r.db(ctx).QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE company_id = $1;`, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company "+companyID, err)
	}
	return &c, nil
}

func (r *PgxCompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list companies", err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company row", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating company rows", err)
	}
	return companies, nil
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO companies (`+companyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`,
		m.CompanyID, m.Name, m.FunctionalCurrency, m.CashAccount, m.ReceivableAccount,
		m.PayableAccount, m.RevenueAccount, m.ExpenseAccount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("company " + m.CompanyID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save company", err)
	}
	return nil
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE companies
		SET name = $2, cash_account = $3, receivable_account = $4, payable_account = $5,
		    revenue_account = $6, expense_account = $7, last_updated_at = $8, last_updated_by = $9
		WHERE company_id = $1;
	`,
		m.CompanyID, m.Name, m.CashAccount, m.ReceivableAccount, m.PayableAccount,
		m.RevenueAccount, m.ExpenseAccount, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update company "+m.CompanyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
