package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes handled by the repositories.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// TxOptions controls how ledger transactions are opened.
type TxOptions struct {
	IsoLevel pgx.TxIsoLevel
	// Timeout bounds a whole unit of work. Zero means no extra deadline.
	Timeout time.Duration
}

// ParseIsolationLevel maps a config value like "repeatable read" to a pgx isolation level.
func ParseIsolationLevel(level string) (pgx.TxIsoLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "repeatable read", "repeatable_read":
		return pgx.RepeatableRead, nil
	case "read committed", "read_committed":
		return pgx.ReadCommitted, nil
	case "serializable":
		return pgx.Serializable, nil
	default:
		return "", fmt.Errorf("unsupported transaction isolation level %q", level)
	}
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool   *pgxpool.Pool
	TxOpts TxOptions
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: r.TxOpts.IsoLevel})
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return translateError(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// WithinTx implements portsrepo.TransactionManager.
func (r *BaseRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) (err error) {
	if r.TxOpts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.TxOpts.Timeout)
		defer cancel()
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = r.Rollback(context.WithoutCancel(ctx), tx)
			panic(p)
		}
		if err != nil {
			if rbErr := r.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
				slog.WarnContext(ctx, "Rollback after failed unit of work also failed", "error", rbErr)
			}
		}
	}()

	if err = fn(ctx, &pgxLedgerTx{tx: tx}); err != nil {
		return translateError(err, "")
	}

	return r.Commit(ctx, tx)
}

// translateError maps PostgreSQL failures onto the shared error kinds.
// Errors that are not *pgconn.PgError pass through unchanged when msg is empty.
func translateError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
		case pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, pgErr.Message)
		}
	}
	if msg == "" {
		return err
	}
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}
