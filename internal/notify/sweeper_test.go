package notify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nimoenergia/portal-backend/internal/auth"
	"github.com/nimoenergia/portal-backend/internal/db"
	"github.com/nimoenergia/portal-backend/internal/dbtest"
	"github.com/nimoenergia/portal-backend/internal/document"
	"github.com/nimoenergia/portal-backend/internal/model"
	"github.com/nimoenergia/portal-backend/internal/notify"
	"github.com/nimoenergia/portal-backend/internal/schema"
	"github.com/nimoenergia/portal-backend/internal/seed"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type sweepFixture struct {
	exec      *db.Executor
	svc       *document.Service
	sweeper   *notify.Sweeper
	clock     *fakeClock
	carrierID int64
	userID    int64
	adminID   int64
	typeID    int64
}

func newSweepFixture(t *testing.T) *sweepFixture {
	t.Helper()
	exec := dbtest.NewExecutor(t)
	ctx := context.Background()
	require.NoError(t, schema.NewProvisioner(exec, zap.NewNop()).EnsureSchema(ctx))
	require.NoError(t, seed.NewLoader(exec, auth.NewBcryptHasher(), zap.NewNop()).LoadDefaults(ctx))

	f := &sweepFixture{
		exec:  exec,
		clock: &fakeClock{now: time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC)},
	}
	f.svc = document.NewService(exec, f.clock.Now, zap.NewNop())
	f.sweeper = notify.NewSweeper(exec, f.svc, f.clock.Now, zap.NewNop())

	res, err := exec.Execute(ctx,
		`INSERT INTO transportadoras (cnpj, razao_social, status_cadastro, data_cadastro)
		 VALUES (?, ?, ?, ?)`,
		[]any{"98.765.432/0001-10", "Costa Logística Ltda", model.CadastroAprovado, "2026-01-05 08:00:00"},
		db.Write)
	require.NoError(t, err)
	f.carrierID = res.LastInsertID

	res, err = exec.Execute(ctx,
		`INSERT INTO usuarios (transportadora_id, nome, email, senha, tipo, status_ativo)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		[]any{f.carrierID, "Maria Costa", "maria@costa.com.br", "x", model.TipoTransportadora, true},
		db.Write)
	require.NoError(t, err)
	f.userID = res.LastInsertID

	res, err = exec.Execute(ctx,
		`SELECT id FROM usuarios WHERE email = ?`, []any{seed.AdminEmail}, db.Read)
	require.NoError(t, err)
	f.adminID = model.Int64(res.Rows[0]["id"])

	res, err = exec.Execute(ctx,
		`SELECT id FROM tipos_documento WHERE codigo = ?`, []any{"SEGURO_RC"}, db.Read)
	require.NoError(t, err)
	f.typeID = model.Int64(res.Rows[0]["id"])
	return f
}

func (f *sweepFixture) approvedDoc(t *testing.T, vencimento time.Time) *model.Document {
	t.Helper()
	ctx := context.Background()
	doc, err := f.svc.Upload(ctx, document.UploadInput{
		TransportadoraID:    f.carrierID,
		TipoDocumentoID:     f.typeID,
		UsuarioID:           f.userID,
		NomeArquivoOriginal: "apolice.pdf",
		NomeArquivoSistema:  "s_apolice.pdf",
		CaminhoArquivo:      "/uploads/apolice.pdf",
		TamanhoArquivo:      1024,
		HashArquivo:         "60303ae22b998861bce3b28f33eec1be758a213c86c93c076dbe9f558c11c752",
		DataVencimento:      vencimento,
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(ctx, doc.ID, document.Meta{ActorID: f.adminID}))
	return doc
}

func (f *sweepFixture) notifications(t *testing.T, docID int64) []*model.Notification {
	t.Helper()
	res, err := f.exec.Execute(context.Background(),
		`SELECT * FROM notificacoes WHERE documento_id = ? ORDER BY id`, []any{docID}, db.Read)
	require.NoError(t, err)
	out := make([]*model.Notification, 0, len(res.Rows))
	for _, row := range res.Rows {
		out = append(out, model.NotificationFromRow(row))
	}
	return out
}

func TestSweepExpiresOverdue(t *testing.T) {
	f := newSweepFixture(t)
	ctx := context.Background()
	doc := f.approvedDoc(t, time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC))

	// Not yet due: the sweep must leave the document alone.
	require.NoError(t, f.sweeper.SweepOnce(ctx))
	got, err := f.svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAprovado, got.Status)

	f.clock.Set(time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC))
	require.NoError(t, f.sweeper.SweepOnce(ctx))

	got, err = f.svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusVencido, got.Status)

	hist, err := f.svc.History(ctx, doc.ID)
	require.NoError(t, err)
	last := hist[len(hist)-1]
	assert.Equal(t, model.AcaoVencimento, last.Acao)
	assert.Equal(t, f.adminID, last.UsuarioID)

	notes := f.notifications(t, doc.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, f.userID, notes[0].UsuarioID)
	assert.Equal(t, "vencimento", notes[0].Tipo)
	assert.Equal(t, "alta", notes[0].Prioridade)
	assert.Equal(t, "pendente", notes[0].StatusEnvio)
	assert.Contains(t, notes[0].Titulo, doc.NumeroProtocolo)

	// A second sweep finds nothing approved and queues nothing new.
	require.NoError(t, f.sweeper.SweepOnce(ctx))
	assert.Len(t, f.notifications(t, doc.ID), 1)
}

func TestSweepWarnsUpcoming(t *testing.T) {
	f := newSweepFixture(t)
	ctx := context.Background()
	// Due exactly on a warning-window boundary: today + 7 days.
	doc := f.approvedDoc(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC))

	require.NoError(t, f.sweeper.SweepOnce(ctx))

	got, err := f.svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAprovado, got.Status)

	notes := f.notifications(t, doc.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, "vencimento", notes[0].Tipo)
	assert.Equal(t, "normal", notes[0].Prioridade)
	assert.Contains(t, notes[0].Titulo, "7 dias")

	// Re-sweeping the same day must not stack duplicates.
	require.NoError(t, f.sweeper.SweepOnce(ctx))
	assert.Len(t, f.notifications(t, doc.ID), 1)
}

func TestSweepSkipsNonWindowDates(t *testing.T) {
	f := newSweepFixture(t)
	ctx := context.Background()
	// Due in 12 days: outside every configured warning window.
	doc := f.approvedDoc(t, time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC))

	require.NoError(t, f.sweeper.SweepOnce(ctx))
	assert.Empty(t, f.notifications(t, doc.ID))
}

func TestSweepIgnoresPendingDocuments(t *testing.T) {
	f := newSweepFixture(t)
	ctx := context.Background()
	doc, err := f.svc.Upload(ctx, document.UploadInput{
		TransportadoraID:    f.carrierID,
		TipoDocumentoID:     f.typeID,
		UsuarioID:           f.userID,
		NomeArquivoOriginal: "alvara.pdf",
		NomeArquivoSistema:  "s_alvara.pdf",
		CaminhoArquivo:      "/uploads/alvara.pdf",
		TamanhoArquivo:      2048,
		HashArquivo:         "fd61a03af4f77d870fc21e05e7e80678095c92d808cfb3b5c279ee04c74aca13",
		DataVencimento:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Long overdue but never approved: expiration does not apply.
	require.NoError(t, f.sweeper.SweepOnce(ctx))
	got, err := f.svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendente, got.Status)
	assert.Empty(t, f.notifications(t, doc.ID))
}

func TestSweepSkipsInactiveUsers(t *testing.T) {
	f := newSweepFixture(t)
	ctx := context.Background()
	_, err := f.exec.Execute(ctx,
		`UPDATE usuarios SET status_ativo = ? WHERE id = ?`, []any{false, f.userID}, db.Write)
	require.NoError(t, err)

	doc := f.approvedDoc(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, f.sweeper.SweepOnce(ctx))

	got, err := f.svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusVencido, got.Status)
	assert.Empty(t, f.notifications(t, doc.ID))
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newSweepFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		f.sweeper.Run(ctx, 50*time.Millisecond)
		close(done)
	}()

	time.Sleep(120 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop on cancel")
	}
}
