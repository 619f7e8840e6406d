// Package notify scans for documents reaching their expiration date,
// drives the system-triggered expiration transition and queues
// notificacoes rows for the delivery subsystem. Delivery itself is a
// separate consumer; this package only produces pending rows.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nimoenergia/portal-backend/internal/db"
	"github.com/nimoenergia/portal-backend/internal/document"
	"github.com/nimoenergia/portal-backend/internal/model"
	"github.com/nimoenergia/portal-backend/internal/seed"
)

// sweepConcurrency bounds the per-document fan-out of one sweep.
const sweepConcurrency = 4

// Sweeper runs the periodic expiration scan.
type Sweeper struct {
	exec *db.Executor
	docs *document.Service
	now  document.Clock
	log  *zap.Logger
}

// NewSweeper returns a Sweeper. now may be nil, which means time.Now.
func NewSweeper(exec *db.Executor, docs *document.Service, now document.Clock, log *zap.Logger) *Sweeper {
	if now == nil {
		now = time.Now
	}
	return &Sweeper{exec: exec, docs: docs, now: now, log: log}
}

// Run sweeps immediately and then on every tick until the context is
// canceled. Sweep errors are logged, not fatal: the next tick retries.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := s.SweepOnce(ctx); err != nil {
			s.log.Error("expiration sweep failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// SweepOnce expires overdue approved documents and queues warning
// notifications for documents entering the configured warning windows.
func (s *Sweeper) SweepOnce(ctx context.Context) error {
	actorID, err := s.systemActor(ctx)
	if err != nil {
		return err
	}
	if err := s.expireOverdue(ctx, actorID); err != nil {
		return err
	}
	return s.warnUpcoming(ctx)
}

// systemActor resolves the account system-triggered transitions are
// recorded under.
func (s *Sweeper) systemActor(ctx context.Context) (int64, error) {
	res, err := s.exec.Execute(ctx,
		`SELECT id FROM usuarios WHERE email = ?`, []any{seed.AdminEmail}, db.Read)
	if err != nil {
		return 0, err
	}
	if len(res.Rows) == 0 {
		return 0, db.ErrNotFound
	}
	return model.Int64(res.Rows[0]["id"]), nil
}

// warnDays reads the dias_aviso_vencimento configuration ("30,15,7,1").
func (s *Sweeper) warnDays(ctx context.Context) []int {
	res, err := s.exec.Execute(ctx,
		`SELECT valor FROM configuracoes WHERE chave = ?`,
		[]any{"dias_aviso_vencimento"}, db.Read)
	if err != nil || len(res.Rows) == 0 {
		return []int{30, 15, 7, 1}
	}
	var days []int
	for _, part := range strings.Split(model.String(res.Rows[0]["valor"]), ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && n > 0 {
			days = append(days, n)
		}
	}
	if len(days) == 0 {
		return []int{30, 15, 7, 1}
	}
	return days
}

func (s *Sweeper) expireOverdue(ctx context.Context, actorID int64) error {
	today := s.now().UTC().Format("2006-01-02")
	res, err := s.exec.Execute(ctx,
		`SELECT * FROM documentos WHERE status = ? AND data_vencimento IS NOT NULL AND data_vencimento < ?`,
		[]any{model.StatusAprovado, today}, db.Read)
	if err != nil {
		return err
	}
	if len(res.Rows) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)
	for _, row := range res.Rows {
		doc := model.DocumentFromRow(row)
		g.Go(func() error {
			err := s.docs.Expire(gctx, doc.ID, document.Meta{ActorID: actorID, Notes: "vencimento automático"})
			if document.IsInvalidTransition(err) {
				// A concurrent sweep or analyst got there first.
				return nil
			}
			if err != nil {
				return err
			}
			return s.queueExpiration(gctx, doc, true, 0)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	s.log.Info("expired overdue documents", zap.Int("count", len(res.Rows)))
	return nil
}

func (s *Sweeper) warnUpcoming(ctx context.Context) error {
	for _, days := range s.warnDays(ctx) {
		target := s.now().UTC().AddDate(0, 0, days).Format("2006-01-02")
		res, err := s.exec.Execute(ctx,
			`SELECT * FROM documentos WHERE status = ? AND data_vencimento = ?`,
			[]any{model.StatusAprovado, target}, db.Read)
		if err != nil {
			return err
		}
		for _, row := range res.Rows {
			if err := s.queueExpiration(ctx, model.DocumentFromRow(row), false, days); err != nil {
				return err
			}
		}
	}
	return nil
}

// queueExpiration inserts one pending notification per active user of
// the document's carrier. Warning notifications are deduplicated: a user
// with a pending vencimento notification for the document is skipped.
func (s *Sweeper) queueExpiration(ctx context.Context, doc *model.Document, expired bool, daysLeft int) error {
	users, err := s.exec.Execute(ctx,
		`SELECT id FROM usuarios WHERE transportadora_id = ? AND status_ativo = ?`,
		[]any{doc.TransportadoraID, true}, db.Read)
	if err != nil {
		return err
	}
	titulo := fmt.Sprintf("Documento %s vencido", doc.NumeroProtocolo)
	mensagem := fmt.Sprintf("O documento %s venceu em %s e precisa ser renovado.",
		doc.NumeroProtocolo, doc.DataVencimento.Format("02/01/2006"))
	prioridade := "alta"
	if !expired {
		titulo = fmt.Sprintf("Documento %s vence em %d dias", doc.NumeroProtocolo, daysLeft)
		mensagem = fmt.Sprintf("O documento %s vence em %s. Providencie a renovação.",
			doc.NumeroProtocolo, doc.DataVencimento.Format("02/01/2006"))
		prioridade = "normal"
	}

	for _, row := range users.Rows {
		userID := model.Int64(row["id"])
		dup, err := s.exec.Execute(ctx,
			`SELECT id FROM notificacoes
			 WHERE usuario_id = ? AND documento_id = ? AND tipo = ? AND status_envio = ?`,
			[]any{userID, doc.ID, "vencimento", "pendente"}, db.Read)
		if err != nil {
			return err
		}
		if len(dup.Rows) > 0 {
			continue
		}
		_, err = s.exec.Execute(ctx,
			`INSERT INTO notificacoes (
				usuario_id, transportadora_id, documento_id, tipo,
				titulo, mensagem, canal, status_envio, prioridade, data_criacao
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{
				userID, doc.TransportadoraID, doc.ID, "vencimento",
				titulo, mensagem, "email", "pendente", prioridade,
				s.now().UTC().Format("2006-01-02 15:04:05"),
			}, db.Write)
		if err != nil {
			return err
		}
	}
	return nil
}
