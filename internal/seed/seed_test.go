package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nimoenergia/portal-backend/internal/auth"
	"github.com/nimoenergia/portal-backend/internal/db"
	"github.com/nimoenergia/portal-backend/internal/dbtest"
	"github.com/nimoenergia/portal-backend/internal/model"
	"github.com/nimoenergia/portal-backend/internal/schema"
	"github.com/nimoenergia/portal-backend/internal/seed"
)

func count(t *testing.T, exec *db.Executor, table string) int64 {
	t.Helper()
	res, err := exec.Execute(context.Background(), "SELECT COUNT(*) AS n FROM "+table, nil, db.Read)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	return model.Int64(res.Rows[0]["n"])
}

func TestLoadDefaultsIdempotent(t *testing.T) {
	exec := dbtest.NewExecutor(t)
	ctx := context.Background()
	require.NoError(t, schema.NewProvisioner(exec, zap.NewNop()).EnsureSchema(ctx))

	loader := seed.NewLoader(exec, auth.NewBcryptHasher(), zap.NewNop())
	require.NoError(t, loader.LoadDefaults(ctx))
	// Startups repeat; the reference rows must not duplicate.
	require.NoError(t, loader.LoadDefaults(ctx))

	assert.EqualValues(t, 8, count(t, exec, "configuracoes"))
	assert.EqualValues(t, 10, count(t, exec, "tipos_documento"))
	assert.EqualValues(t, 1, count(t, exec, "usuarios"))
}

func TestLoadDefaultsAdminAccount(t *testing.T) {
	exec := dbtest.NewExecutor(t)
	ctx := context.Background()
	require.NoError(t, schema.NewProvisioner(exec, zap.NewNop()).EnsureSchema(ctx))

	hasher := auth.NewBcryptHasher()
	require.NoError(t, seed.NewLoader(exec, hasher, zap.NewNop()).LoadDefaults(ctx))

	res, err := exec.Execute(ctx,
		`SELECT * FROM usuarios WHERE email = ?`, []any{seed.AdminEmail}, db.Read)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	admin := model.UserFromRow(res.Rows[0])
	assert.Equal(t, seed.AdminName, admin.Nome)
	assert.Equal(t, model.TipoAdmin, admin.Tipo)
	assert.True(t, admin.Ativo)
	// The stored credential is a hash, never the password itself.
	assert.NotEqual(t, "admin123", admin.SenhaHash)
	assert.True(t, hasher.Verify("admin123", admin.SenhaHash))
	assert.False(t, hasher.Verify("wrong", admin.SenhaHash))
}

func TestLoadDefaultsDocumentTypes(t *testing.T) {
	exec := dbtest.NewExecutor(t)
	ctx := context.Background()
	require.NoError(t, schema.NewProvisioner(exec, zap.NewNop()).EnsureSchema(ctx))
	require.NoError(t, seed.NewLoader(exec, auth.NewBcryptHasher(), zap.NewNop()).LoadDefaults(ctx))

	res, err := exec.Execute(ctx,
		`SELECT * FROM tipos_documento WHERE codigo = ?`, []any{"SEGURO_RC"}, db.Read)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	dt := model.DocumentTypeFromRow(res.Rows[0])
	assert.Equal(t, "Seguro de Responsabilidade Civil", dt.Nome)
	assert.Equal(t, "SEGUROS", dt.Categoria)
	assert.True(t, dt.Obrigatorio)
	assert.True(t, dt.TemVencimento)
	assert.True(t, dt.TemGarantia)
	assert.True(t, dt.Ativo)
}

func TestLoadDefaultsRequiresHasher(t *testing.T) {
	exec := dbtest.NewExecutor(t)
	ctx := context.Background()
	require.NoError(t, schema.NewProvisioner(exec, zap.NewNop()).EnsureSchema(ctx))

	err := seed.NewLoader(exec, nil, zap.NewNop()).LoadDefaults(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, seed.ErrNoHasher)
	// Nothing may be written when the loader refuses to run.
	assert.Zero(t, count(t, exec, "configuracoes"))
	assert.Zero(t, count(t, exec, "usuarios"))
}
