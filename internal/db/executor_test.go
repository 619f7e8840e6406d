package db

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockSource hands the executor a sqlmock-backed handle, standing in for
// the real provider.
type mockSource struct {
	db       *sql.DB
	dialect  string
	released int
}

func (m *mockSource) Acquire(context.Context) (conn, func() error, error) {
	return m.db, func() error { m.released++; return nil }, nil
}

func (m *mockSource) Dialect() string { return m.dialect }
func (m *mockSource) Close() error    { return m.db.Close() }

func newMockExecutor(t *testing.T, dialect string) (*Executor, sqlmock.Sqlmock, *mockSource) {
	t.Helper()
	mdb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mdb.Close() })
	adapter, err := AdapterFor(dialect)
	require.NoError(t, err)
	src := &mockSource{db: mdb, dialect: dialect}
	return NewExecutor(src, adapter, 0, zap.NewNop()), mock, src
}

func TestExecuteRead(t *testing.T) {
	exec, mock, src := newMockExecutor(t, MySQL)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nome FROM transportadoras WHERE ativo = ?")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome"}).
			AddRow(int64(1), []byte("Silva Transportes")).
			AddRow(int64(2), []byte("Costa Logística")))

	res, err := exec.Execute(context.Background(),
		"SELECT id, nome FROM transportadoras WHERE ativo = ?", []any{true}, Read)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	// []byte values are normalized so rows look the same on every dialect.
	assert.Equal(t, "Silva Transportes", res.Rows[0]["nome"])
	assert.Equal(t, int64(2), res.Rows[1]["id"])
	assert.Equal(t, 1, src.released)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteReadEmpty(t *testing.T) {
	exec, mock, _ := newMockExecutor(t, MySQL)
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	res, err := exec.Execute(context.Background(), "SELECT id FROM documentos", nil, Read)
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteWriteCommits(t *testing.T) {
	exec, mock, src := newMockExecutor(t, MySQL)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO configuracoes (chave, valor) VALUES (?, ?)")).
		WithArgs("k", "v").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	res, err := exec.Execute(context.Background(),
		"INSERT INTO configuracoes (chave, valor) VALUES (?, ?)", []any{"k", "v"}, Write)
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.LastInsertID)
	assert.Equal(t, int64(1), res.RowsAffected)
	assert.Equal(t, 1, src.released)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteWriteRollsBackOnFailure(t *testing.T) {
	exec, mock, src := newMockExecutor(t, MySQL)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO usuarios").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	_, err := exec.Execute(context.Background(),
		"INSERT INTO usuarios (email) VALUES (?)", []any{"dup@x.com"}, Write)
	require.Error(t, err)
	assert.True(t, IsQueryError(err))
	assert.True(t, IsConstraint(err))
	assert.Equal(t, 1, src.released)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteWritePostgresReturning(t *testing.T) {
	exec, mock, _ := newMockExecutor(t, Postgres)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO documentos (numero_protocolo) VALUES ($1) RETURNING id")).
		WithArgs("DOC-20260831-AB12CD").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	res, err := exec.Execute(context.Background(),
		"INSERT INTO documentos (numero_protocolo) VALUES (?)", []any{"DOC-20260831-AB12CD"}, Write)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.LastInsertID)
	assert.Equal(t, int64(1), res.RowsAffected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteWritePostgresReturningConflict(t *testing.T) {
	exec, mock, _ := newMockExecutor(t, Postgres)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO configuracoes").
		WillReturnRows(sqlmock.NewRows([]string{"id"})) // conflict: no row back
	mock.ExpectCommit()

	res, err := exec.Execute(context.Background(),
		"INSERT INTO configuracoes (chave) VALUES (?) ON CONFLICT (chave) DO NOTHING",
		[]any{"sistema_nome"}, Write)
	require.NoError(t, err)
	assert.Zero(t, res.LastInsertID)
	assert.Zero(t, res.RowsAffected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTxCommit(t *testing.T) {
	exec, mock, src := newMockExecutor(t, MySQL)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE documentos").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO historico_documentos").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	tx, err := exec.Tx(context.Background())
	require.NoError(t, err)

	res, err := tx.Execute(context.Background(),
		"UPDATE documentos SET status = ? WHERE id = ? AND status = ?",
		[]any{"aprovado", int64(1), "pendente"}, Write)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.RowsAffected)

	_, err = tx.Execute(context.Background(),
		"INSERT INTO historico_documentos (documento_id) VALUES (?)", []any{int64(1)}, Write)
	require.NoError(t, err)

	require.NoError(t, tx.Commit())
	assert.Equal(t, 1, src.released)
	require.NoError(t, mock.ExpectationsWereMet())

	// The unit is finished; further use must fail.
	_, err = tx.Execute(context.Background(), "SELECT 1", nil, Read)
	assert.ErrorIs(t, err, ErrTxDone)
	assert.ErrorIs(t, tx.Commit(), ErrTxDone)
}

func TestTxRollback(t *testing.T) {
	exec, mock, src := newMockExecutor(t, MySQL)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE documentos").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := exec.Tx(context.Background())
	require.NoError(t, err)

	res, err := tx.Execute(context.Background(),
		"UPDATE documentos SET status = ? WHERE id = ? AND status = ?",
		[]any{"aprovado", int64(1), "pendente"}, Write)
	require.NoError(t, err)
	assert.Zero(t, res.RowsAffected)

	require.NoError(t, tx.Rollback())
	assert.Equal(t, 1, src.released)
	// Rollback after the unit finished is a no-op, safe to defer.
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}
