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

type PgxCurrencyRepository struct {
	BaseRepository
}

func newPgxCurrencyRepository(pool *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := `
		SELECT currency_code, symbol, name, precision, created_at, created_by, last_updated_at, last_updated_by
		FROM currencies
		WHERE currency_code = $1;
	`
	var m models.Currency
	err := r.db(ctx).QueryRow(ctx, query, currencyCode).Scan(
		&m.CurrencyCode, &m.Symbol, &m.Name, &m.Precision,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find currency "+currencyCode, err)
	}
	c := mapping.ToDomainCurrency(m)
	return &c, nil
}

func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
		SELECT currency_code, symbol, name, precision, created_at, created_by, last_updated_at, last_updated_by
		FROM currencies
		ORDER BY currency_code;
	`
	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list currencies", err)
	}
	defer rows.Close()

	currencies := []domain.Currency{}
	for rows.Next() {
		var m models.Currency
		if err := rows.Scan(
			&m.CurrencyCode, &m.Symbol, &m.Name, &m.Precision,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency row", err)
		}
		currencies = append(currencies, mapping.ToDomainCurrency(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating currency rows", err)
	}
	return currencies, nil
}

func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO currencies (currency_code, symbol, name, precision, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, m.CurrencyCode, m.Symbol, m.Name, m.Precision, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("currency " + m.CurrencyCode + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save currency", err)
	}
	return nil
}
