// Package postgres implements the store interfaces on PostgreSQL through pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool the stores use. pgxmock pools satisfy it too.
type DBTX interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxFn is a function executed within a transaction.
type TxFn func(tx pgx.Tx) error

// WithTx runs fn in a transaction. It commits when fn succeeds and rolls back otherwise,
// returning fn's error unchanged.
func WithTx(ctx context.Context, db DBTX, fn TxFn) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.GetLogger().Errorw("Failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
