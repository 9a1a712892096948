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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `company_id, code, name, account_type, subtype, parent_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.CompanyID, &m.Code, &m.Name, &m.AccountType, &m.Subtype, &m.ParentCode, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND code = $2;`
	a, err := scanAccount(r.db(ctx).QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+code, err)
	}
	return &a, nil
}

func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(codes))
	if len(codes) == 0 {
		return accounts, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND code = ANY($2);`
	rows, err := r.db(ctx).Query(ctx, query, companyID, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by codes", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts[a.Code] = a
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND (is_active OR $2) ORDER BY code;`
	rows, err := r.db(ctx).Query(ctx, query, companyID, includeInactive)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) AccountHasPostings(ctx context.Context, companyID, code string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM journal_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.company_id = $1 AND l.account_code = $2 AND e.status <> 'DRAFT'
		);
	`, companyID, code).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check postings for account "+code, err)
	}
	return exists, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		m.CompanyID, m.Code, m.Name, m.AccountType, m.Subtype, m.ParentCode, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("account code " + m.Code + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save account "+m.Code, err)
	}
	return nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE accounts
		SET name = $3, account_type = $4, subtype = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE company_id = $1 AND code = $2;
	`,
		m.CompanyID, m.Code, m.Name, m.AccountType, m.Subtype, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+m.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
