package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgxpool.Pool and pgx.Tx used by the repositories.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type txKey struct{}

type pgTx struct {
	companyID string
	tx        pgx.Tx
	hooks     []func()
}

func txFrom(ctx context.Context) *pgTx {
	tx, _ := ctx.Value(txKey{}).(*pgTx)
	return tx
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

// db returns the transaction carried by ctx, or the pool.
func (r *BaseRepository) db(ctx context.Context) querier {
	if tx := txFrom(ctx); tx != nil {
		return tx.tx
	}
	return r.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// WithinCompanyTx opens a transaction, takes the company's advisory lock for
// the lifetime of the transaction and runs fn with the transaction in ctx.
func (r *BaseRepository) WithinCompanyTx(ctx context.Context, companyID string, fn func(ctx context.Context) error) error {
	if outer := txFrom(ctx); outer != nil {
		if outer.companyID != companyID {
			return apperrors.NewAppError(500, fmt.Sprintf("transaction for company %s cannot join company %s", outer.companyID, companyID), nil)
		}
		return fn(ctx)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, companyID); err != nil {
		return apperrors.NewAppError(500, "failed to lock company "+companyID, err)
	}

	state := &pgTx{companyID: companyID, tx: tx}
	if err := fn(context.WithValue(ctx, txKey{}, state)); err != nil {
		return err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return err
	}
	for _, h := range state.hooks {
		h()
	}
	return nil
}

func (r *BaseRepository) AfterCommit(ctx context.Context, fn func()) {
	if tx := txFrom(ctx); tx != nil {
		tx.hooks = append(tx.hooks, fn)
		return
	}
	fn()
}

// isUniqueViolation reports a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// nextSequence bumps the named per-company counter in the sequences table.
// The row lock it takes is released with the surrounding transaction.
func (r *BaseRepository) nextSequence(ctx context.Context, companyID, name string) (int64, error) {
	var seq int64
	err := r.db(ctx).QueryRow(ctx, `
		INSERT INTO sequences (company_id, name, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, name) DO UPDATE SET last_value = sequences.last_value + 1
		RETURNING last_value;
	`, companyID, name).Scan(&seq)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate "+name+" sequence for company "+companyID, err)
	}
	return seq, nil
}
