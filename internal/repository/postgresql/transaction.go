package postgresql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type txKey struct{}

type afterCommitKey struct{}

// AfterCommit schedules fn to run once the outermost enclosing
// transaction commits; a rollback discards it. Outside a transaction fn
// runs immediately. Side effects that must not fire on a rolled-back
// transaction (queued notifications) go through here.
func AfterCommit(ctx context.Context, fn func()) {
	if hooks, ok := ctx.Value(afterCommitKey{}).(*[]func()); ok {
		*hooks = append(*hooks, fn)
		return
	}
	fn()
}

// TxFromContext returns the transaction carried by ctx, if any.
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// WithTransaction executes fn inside a database transaction. The
// transaction rides in the context so every repository call made by fn
// joins it. Nested calls reuse the enclosing transaction instead of
// opening a new one.
func WithTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	return runInTx(ctx, tx, fn)
}

// WithSnapshotTransaction is WithTransaction at REPEATABLE READ, for
// batch aggregation that needs a stable view of attendance.
func WithSnapshotTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}
	tx, err := db.BeginSnapshotTx(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	return runInTx(ctx, tx, fn)
}

func runInTx(ctx context.Context, tx pgx.Tx, fn func(ctx context.Context) error) error {
	txCtx := context.WithValue(ctx, txKey{}, tx)

	hooks := &[]func(){}
	txCtx = context.WithValue(txCtx, afterCommitKey{}, hooks)

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				slog.Error("rollback failed during panic recovery", "error", rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	for _, hook := range *hooks {
		hook()
	}

	return nil
}

// GetQuerier returns either transaction or pool
// Used in repositories to support both transactional and non-transactional operations
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}

// AcquireEmployeeLock takes a transaction-scoped advisory lock keyed on
// the employee, serializing check-in/check-out per employee. Must run
// inside a transaction; the lock releases at commit or rollback.
func AcquireEmployeeLock(ctx context.Context, db *database.DB, employeeID string) error {
	q := GetQuerier(ctx, db)
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, employeeID); err != nil {
		return fmt.Errorf("failed to acquire employee lock: %w", err)
	}
	return nil
}
