package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Mode declares the intent of a statement.
type Mode int

const (
	// Read returns normalized rows and never commits.
	Read Mode = iota
	// Write runs the statement in a transaction and commits on success.
	Write
)

// Result is the normalized outcome of a statement.
type Result struct {
	// Rows holds the result set of a Read: one map per row, every row
	// exposing the same column-name key set. Column order is not
	// semantically significant.
	Rows []map[string]any

	// LastInsertID is the generated id of a Write insert, when the
	// statement produced one. Zero otherwise.
	LastInsertID int64

	// RowsAffected is the affected-row count of a Write.
	RowsAffected int64
}

// Executor runs parameterized statements against the configured dialect.
// It is a thin, predictable primitive: one connection per call, commit or
// rollback on writes, no internal retries. Retry policy belongs to the
// caller.
type Executor struct {
	src     ConnSource
	adapter Adapter
	timeout time.Duration
	log     *zap.Logger
}

// NewExecutor builds an Executor on top of the given connection source
// and adapter. timeout bounds each statement round-trip; zero means the
// default of 30 seconds.
func NewExecutor(src ConnSource, adapter Adapter, timeout time.Duration, log *zap.Logger) *Executor {
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	return &Executor{src: src, adapter: adapter, timeout: timeout, log: log}
}

// Dialect returns the dialect the executor is bound to.
func (e *Executor) Dialect() string { return e.src.Dialect() }

// Adapter returns the dialect adapter, for callers that need the
// insert-ignore idiom.
func (e *Executor) Adapter() Adapter { return e.adapter }

// Execute runs one statement. The query uses canonical '?' placeholders;
// values are always bound, never interpolated. On Read the result rows
// are returned and nothing is committed. On Write the statement runs in
// its own transaction: commit on success, rollback on any failure.
func (e *Executor) Execute(ctx context.Context, query string, args []any, mode Mode) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	c, release, err := e.src.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = release() }()

	if mode == Read {
		res, err := e.query(ctx, c, query, args)
		if err != nil {
			return nil, e.queryErr("read", err)
		}
		return res, nil
	}

	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		return nil, e.queryErr("write", err)
	}
	res, err := e.write(ctx, tx, query, args)
	if err != nil {
		if rberr := tx.Rollback(); rberr != nil && !errors.Is(rberr, sql.ErrTxDone) {
			e.log.Warn("rollback failed",
				zap.String("dialect", e.Dialect()),
				zap.Error(rberr),
			)
		}
		return nil, e.queryErr("write", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, e.queryErr("write", err)
	}
	return res, nil
}

// Tx starts a multi-statement write unit on a single connection. The
// caller must finish it with Commit or Rollback; the connection is
// released when either runs.
func (e *Executor) Tx(ctx context.Context) (*Tx, error) {
	c, release, err := e.src.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		_ = release()
		return nil, e.queryErr("tx", err)
	}
	return &Tx{exec: e, tx: tx, release: release}, nil
}

// query runs a read statement and normalizes the result set.
func (e *Executor) query(ctx context.Context, c execQuerier, query string, args []any) (*Result, error) {
	rows, err := c.QueryContext(ctx, e.adapter.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := e.scanRows(rows)
	if err != nil {
		return nil, err
	}
	return &Result{Rows: out}, nil
}

// write runs a write statement on the given transaction handle and
// retrieves the generated id the way the dialect supports.
func (e *Executor) write(ctx context.Context, c execQuerier, query string, args []any) (*Result, error) {
	if stmt, ok := e.adapter.ReturningID(query); ok && isInsert(query) {
		// The dialect has no LastInsertId; read the id back instead.
		var id any
		err := c.QueryRowContext(ctx, e.adapter.Rebind(stmt), args...).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// Insert-ignore hit an existing row: nothing was written.
			return &Result{}, nil
		case err != nil:
			return nil, err
		}
		res := &Result{RowsAffected: 1}
		if n, ok := id.(int64); ok {
			res.LastInsertID = n
		}
		return res, nil
	}
	sr, err := c.ExecContext(ctx, e.adapter.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	if n, err := sr.RowsAffected(); err == nil {
		res.RowsAffected = n
	}
	if isInsert(query) {
		if id, err := sr.LastInsertId(); err == nil {
			res.LastInsertID = id
		}
	}
	return res, nil
}

// scanRows converts a result set into the uniform row representation.
func (e *Executor) scanRows(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			row[col] = e.adapter.NormalizeValue(vals[i])
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (e *Executor) queryErr(op string, err error) error {
	kind := e.adapter.ClassifyError(err)
	e.log.Error("statement failed",
		zap.String("dialect", e.Dialect()),
		zap.String("op", op),
		zap.String("kind", kind.String()),
		zap.Error(err),
	)
	return &QueryError{Dialect: e.Dialect(), Op: op, Kind: kind, Err: err}
}

// execQuerier is the statement surface shared by *sql.Tx and per-call
// connections.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// isInsert reports whether the statement is an INSERT, i.e. may produce
// a generated id.
func isInsert(query string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimLeft(query, " \t\r\n")), "INSERT")
}

// Tx is an in-progress multi-statement write unit. Statements run with
// the same Execute contract as the Executor, minus the per-statement
// commit.
type Tx struct {
	exec    *Executor
	tx      *sql.Tx
	release func() error
	done    bool
}

// Execute runs one statement inside the transaction.
func (t *Tx) Execute(ctx context.Context, query string, args []any, mode Mode) (*Result, error) {
	if t.done {
		return nil, ErrTxDone
	}
	ctx, cancel := context.WithTimeout(ctx, t.exec.timeout)
	defer cancel()
	if mode == Read {
		res, err := t.exec.query(ctx, t.tx, query, args)
		if err != nil {
			return nil, t.exec.queryErr("tx", err)
		}
		return res, nil
	}
	res, err := t.exec.write(ctx, t.tx, query, args)
	if err != nil {
		return nil, t.exec.queryErr("tx", err)
	}
	return res, nil
}

// Commit commits the unit and releases the connection.
func (t *Tx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	err := t.tx.Commit()
	if rerr := t.release(); rerr != nil && err == nil {
		err = rerr
	}
	if err != nil {
		return t.exec.queryErr("tx", err)
	}
	return nil
}

// Rollback aborts the unit and releases the connection. Calling it after
// Commit is a no-op, so it is safe to defer.
func (t *Tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	err := t.tx.Rollback()
	if rerr := t.release(); rerr != nil && err == nil {
		err = rerr
	}
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return t.exec.queryErr("tx", err)
	}
	return nil
}
