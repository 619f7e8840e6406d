// Package schema provisions the persisted state layout of the portal:
// nine tables plus their indexes and foreign keys, created idempotently
// for whichever dialect is configured. The column layout is a contract
// other tooling (reporting, migrations) depends on and must not drift
// between dialects.
package schema

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nimoenergia/portal-backend/internal/db"
)

// ProvisionError reports a failed DDL statement. Schema provisioning is
// all-or-nothing at process start: a partially created schema is fatal.
type ProvisionError struct {
	Dialect   string
	Statement int // position in the provisioning sequence
	Err       error
}

// Error returns the error string.
func (e *ProvisionError) Error() string {
	return fmt.Sprintf("schema: %s statement %d failed: %v", e.Dialect, e.Statement, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProvisionError) Unwrap() error { return e.Err }

// IsProvisionError reports whether err is a ProvisionError.
func IsProvisionError(err error) bool {
	var e *ProvisionError
	return errors.As(err, &e)
}

// Provisioner creates the schema through the query executor.
type Provisioner struct {
	exec *db.Executor
	log  *zap.Logger
}

// NewProvisioner returns a Provisioner bound to the given executor.
func NewProvisioner(exec *db.Executor, log *zap.Logger) *Provisioner {
	return &Provisioner{exec: exec, log: log}
}

// EnsureSchema creates every table, index and foreign key if absent.
// Safe to run on every startup: existing objects are no-ops. The first
// failing statement is logged and returned; nothing after it runs.
func (p *Provisioner) EnsureSchema(ctx context.Context) error {
	dialect := p.exec.Dialect()
	stmts, err := Statements(dialect)
	if err != nil {
		return err
	}
	p.log.Info("provisioning schema",
		zap.String("dialect", dialect),
		zap.Int("statements", len(stmts)),
	)
	for i, stmt := range stmts {
		if _, err := p.exec.Execute(ctx, stmt, nil, db.Write); err != nil {
			p.log.Error("schema statement failed",
				zap.String("dialect", dialect),
				zap.Int("statement", i),
				zap.Error(err),
			)
			return &ProvisionError{Dialect: dialect, Statement: i, Err: err}
		}
	}
	return nil
}

// Statements returns the ordered provisioning sequence for a dialect.
// Tables come first, in dependency order, then the separate index
// statements for the dialects that do not support inline INDEX clauses.
func Statements(dialect string) ([]string, error) {
	switch dialect {
	case db.MySQL:
		return mysqlTables, nil
	case db.Postgres:
		return append(append([]string{}, postgresTables...), indexStatements...), nil
	case db.SQLite:
		return append(append([]string{}, sqliteTables...), indexStatements...), nil
	default:
		return nil, &db.ConnectionError{Dialect: dialect, Err: db.ErrUnsupportedDialect}
	}
}
