package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/cocoon/internal/db"
)

// FailOnNthExecUoW is a test UoW that injects an error on the Nth ExecContext
// call within a transaction, so multi-write operations can be checked for
// rollback.
//
// ExecContext calls are counted starting at 1. Reads pass through.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

// FailOnNthExecDB wraps a plain connection the same way, for code paths that
// write without a transaction.
func FailOnNthExecDB(conn db.DBTX, failOn int32, err error) db.DBTX {
	return &failOnNthExec{DBTX: conn, failOn: failOn, err: err}
}

// FailOnMatchDB fails every ExecContext whose query contains substr.
func FailOnMatchDB(conn db.DBTX, substr string, err error) db.DBTX {
	return &failOnMatch{DBTX: conn, substr: substr, err: err}
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

type failOnMatch struct {
	db.DBTX
	substr string
	err    error
}

func (f *failOnMatch) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(strings.ToLower(query), strings.ToLower(f.substr)) {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
