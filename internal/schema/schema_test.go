package schema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nimoenergia/portal-backend/internal/db"
	"github.com/nimoenergia/portal-backend/internal/dbtest"
	"github.com/nimoenergia/portal-backend/internal/model"
	"github.com/nimoenergia/portal-backend/internal/schema"
)

func TestStatementsPerDialect(t *testing.T) {
	for _, dialect := range []string{db.MySQL, db.Postgres, db.SQLite} {
		stmts, err := schema.Statements(dialect)
		require.NoError(t, err)
		assert.NotEmpty(t, stmts)
	}

	_, err := schema.Statements("oracle")
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrUnsupportedDialect)
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	exec := dbtest.NewExecutor(t)
	ctx := context.Background()
	prov := schema.NewProvisioner(exec, zap.NewNop())

	require.NoError(t, prov.EnsureSchema(ctx))
	// A second run must be a no-op, not a failure.
	require.NoError(t, prov.EnsureSchema(ctx))

	res, err := exec.Execute(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`,
		nil, db.Read)
	require.NoError(t, err)

	got := make(map[string]bool, len(res.Rows))
	for _, row := range res.Rows {
		got[model.String(row["name"])] = true
	}
	for _, table := range []string{
		"configuracoes", "tipos_documento", "transportadoras", "usuarios",
		"documentos", "historico_documentos", "notificacoes",
		"auditoria_sistema", "sessoes_usuario",
	} {
		assert.True(t, got[table], "missing table %s", table)
	}
}

func TestSchemaRoundTrip(t *testing.T) {
	exec := dbtest.NewExecutor(t)
	ctx := context.Background()
	require.NoError(t, schema.NewProvisioner(exec, zap.NewNop()).EnsureSchema(ctx))

	res, err := exec.Execute(ctx,
		`INSERT INTO transportadoras (
			cnpj, razao_social, nome_fantasia, email_corporativo,
			status_cadastro, limite_credito, data_cadastro
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		[]any{"12.345.678/0001-90", "Silva Transportes Ltda", "Silva", "contato@silva.com.br",
			model.CadastroAprovado, 50000.00, "2026-08-31 10:00:00"}, db.Write)
	require.NoError(t, err)
	require.NotZero(t, res.LastInsertID)

	res, err = exec.Execute(ctx,
		`SELECT * FROM transportadoras WHERE cnpj = ?`, []any{"12.345.678/0001-90"}, db.Read)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	carrier := model.CarrierFromRow(res.Rows[0])
	assert.Equal(t, "Silva Transportes Ltda", carrier.RazaoSocial)
	assert.Equal(t, model.CadastroAprovado, carrier.StatusCadastro)
	assert.InDelta(t, 50000.00, carrier.LimiteCredito, 0.001)
	assert.True(t, carrier.Ativo)
	assert.Equal(t, 2026, carrier.DataCadastro.Year())
}

func TestSchemaEnforcesUniqueCNPJ(t *testing.T) {
	exec := dbtest.NewExecutor(t)
	ctx := context.Background()
	require.NoError(t, schema.NewProvisioner(exec, zap.NewNop()).EnsureSchema(ctx))

	insert := `INSERT INTO transportadoras (cnpj, razao_social, data_cadastro) VALUES (?, ?, ?)`
	args := []any{"11.111.111/0001-11", "Costa Logística", "2026-08-31 10:00:00"}
	_, err := exec.Execute(ctx, insert, args, db.Write)
	require.NoError(t, err)

	_, err = exec.Execute(ctx, insert, args, db.Write)
	require.Error(t, err)
	assert.True(t, db.IsConstraint(err))
}
