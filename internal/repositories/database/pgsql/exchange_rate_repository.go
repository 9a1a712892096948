package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	"github.com/Adams-ibr/Commodity-sub000/internal/models"
	"github.com/Adams-ibr/Commodity-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository implements the exchange rate ports using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const rateColumns = `exchange_rate_id, from_currency_code, to_currency_code, rate, rate_date, source, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanRate(row pgx.Row) (domain.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID, &m.FromCurrencyCode, &m.ToCurrencyCode, &m.Rate, &m.RateDate, &m.Source, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	return mapping.ToDomainExchangeRate(m), nil
}

// FindRateOnOrBefore picks the active observation in force on date.
func (r *PgxExchangeRateRepository) FindRateOnOrBefore(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND is_active AND rate_date <= $3
		ORDER BY rate_date DESC
		LIMIT 1;
	`
	rate, err := scanRate(r.db(ctx).QueryRow(ctx, query, fromCurrencyCode, toCurrencyCode, domain.NormalizeDate(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}
	return &rate, nil
}

func (r *PgxExchangeRateRepository) ListRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string, limit int) ([]domain.ExchangeRate, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT ` + rateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY rate_date DESC, created_at DESC
		LIMIT $3;
	`
	rows, err := r.db(ctx).Query(ctx, query, fromCurrencyCode, toCurrencyCode, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	defer rows.Close()

	rates := []domain.ExchangeRate{}
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exchange rate", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exchange rate rows", err)
	}
	return rates, nil
}

// SaveExchangeRate deactivates the current same-date observation and inserts
// the new one in one transaction. The partial unique index on active rows
// rejects a concurrent writer that lost the race.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)

	save := func(db querier) error {
		_, err := db.Exec(ctx, `
			UPDATE exchange_rates
			SET is_active = FALSE, last_updated_at = $4, last_updated_by = $5
			WHERE from_currency_code = $1 AND to_currency_code = $2 AND rate_date = $3 AND is_active;
		`, m.FromCurrencyCode, m.ToCurrencyCode, m.RateDate, m.CreatedAt, m.CreatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to supersede exchange rate", err)
		}
		_, err = db.Exec(ctx, `
			INSERT INTO exchange_rates (`+rateColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`,
			m.ExchangeRateID, m.FromCurrencyCode, m.ToCurrencyCode, m.Rate, m.RateDate, m.Source, m.IsActive,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewAppError(409, "a concurrent rate was saved for the same pair and date", apperrors.ErrConflict)
			}
			return apperrors.NewAppError(500, "failed to save exchange rate", err)
		}
		return nil
	}

	if tx := txFrom(ctx); tx != nil {
		return save(tx.tx)
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)
	if err := save(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
