// Package document implements the versioned approval/expiration state
// machine of uploaded documents and its audit trail. Every transition is
// one transactional unit that updates the documentos row with a
// conditional update keyed on the expected current status and appends
// exactly one historico_documentos row, so two concurrent transitions on
// the same document cannot both succeed against stale state.
package document

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/nimoenergia/portal-backend/internal/db"
	"github.com/nimoenergia/portal-backend/internal/model"
)

// Clock supplies the current time. Injected so expiration logic is
// testable without the wall clock.
type Clock func() time.Time

// Meta carries the request provenance recorded on every transition.
type Meta struct {
	ActorID   int64
	Notes     string
	IP        string
	UserAgent string
}

// Service drives document lifecycle transitions through the executor.
type Service struct {
	exec *db.Executor
	now  Clock
	log  *zap.Logger
}

// NewService returns a lifecycle Service. now may be nil, which means
// time.Now.
func NewService(exec *db.Executor, now Clock, log *zap.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{exec: exec, now: now, log: log}
}

// UploadInput describes a new document version.
type UploadInput struct {
	TransportadoraID    int64
	TipoDocumentoID     int64
	UsuarioID           int64
	NomeArquivoOriginal string
	NomeArquivoSistema  string
	CaminhoArquivo      string
	TamanhoArquivo      int64
	HashArquivo         string
	MimeType            string
	DataVencimento      time.Time // zero when the type has no expiration
	ValorGarantia       float64
	NumeroApolice       string
	Seguradora          string
	IP                  string
	UserAgent           string
}

// Upload registers a new document at version 1 with status pendente and
// writes the matching history row in the same unit.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	tx, err := s.exec.Tx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	doc, err := s.insertVersion(ctx, tx, in, 1, 0)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.log.Info("document uploaded",
		zap.String("protocolo", doc.NumeroProtocolo),
		zap.Int64("transportadora", doc.TransportadoraID),
	)
	return doc, nil
}

// Approve moves a pending document to aprovado, recording the approver
// and the approval timestamp.
func (s *Service) Approve(ctx context.Context, docID int64, m Meta) error {
	now := s.now()
	return s.transition(ctx, docID, model.StatusPendente, model.StatusAprovado, m, model.AcaoAprovacao,
		`UPDATE documentos
		 SET status = ?, usuario_aprovacao_id = ?, data_aprovacao = ?, observacoes_analista = ?, data_atualizacao = ?
		 WHERE id = ? AND status = ?`,
		[]any{model.StatusAprovado, m.ActorID, fmtTime(now), nilIfEmpty(m.Notes), fmtTime(now), docID, model.StatusPendente},
	)
}

// Reject moves a pending document to rejeitado. The reason is required:
// rejecting without one is a lifecycle violation, not a storage error.
func (s *Service) Reject(ctx context.Context, docID int64, reason string, m Meta) error {
	if reason == "" {
		return &InvalidTransitionError{DocumentID: docID, To: model.StatusRejeitado, Reason: "rejection requires a non-empty reason"}
	}
	now := s.now()
	m.Notes = reason
	return s.transition(ctx, docID, model.StatusPendente, model.StatusRejeitado, m, model.AcaoRejeicao,
		`UPDATE documentos
		 SET status = ?, motivo_rejeicao = ?, data_atualizacao = ?
		 WHERE id = ? AND status = ?`,
		[]any{model.StatusRejeitado, reason, fmtTime(now), docID, model.StatusPendente},
	)
}

// Expire moves an approved document past its expiration date to vencido.
// It is system-triggered (see internal/notify); m.ActorID identifies the
// system account the action is recorded under.
func (s *Service) Expire(ctx context.Context, docID int64, m Meta) error {
	now := s.now()
	return s.transition(ctx, docID, model.StatusAprovado, model.StatusVencido, m, model.AcaoVencimento,
		`UPDATE documentos SET status = ?, data_atualizacao = ? WHERE id = ? AND status = ?`,
		[]any{model.StatusVencido, fmtTime(now), docID, model.StatusAprovado},
	)
}

// Renew closes the current version (status renovacao) and inserts its
// successor at version+1, linked through documento_anterior_id. The old
// row gets a renovacao history entry and the new row an upload entry,
// all in one transactional unit.
func (s *Service) Renew(ctx context.Context, docID int64, in UploadInput) (*model.Document, error) {
	tx, err := s.exec.Tx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	old, err := s.getTx(ctx, tx, docID)
	if err != nil {
		return nil, err
	}
	if old.Status != model.StatusAprovado && old.Status != model.StatusVencido {
		return nil, &InvalidTransitionError{DocumentID: docID, From: old.Status, To: model.StatusRenovacao}
	}

	now := s.now()
	res, err := tx.Execute(ctx,
		`UPDATE documentos SET status = ?, data_atualizacao = ? WHERE id = ? AND status = ?`,
		[]any{model.StatusRenovacao, fmtTime(now), docID, old.Status}, db.Write)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		// Lost the race to a concurrent transition.
		return nil, &InvalidTransitionError{DocumentID: docID, From: old.Status, To: model.StatusRenovacao}
	}
	if err := s.insertHistory(ctx, tx, docID, in.UsuarioID, model.AcaoRenovacao, old.Status, model.StatusRenovacao, Meta{
		ActorID: in.UsuarioID, IP: in.IP, UserAgent: in.UserAgent,
	}); err != nil {
		return nil, err
	}

	// The successor stays on the same carrier and document type.
	in.TransportadoraID = old.TransportadoraID
	in.TipoDocumentoID = old.TipoDocumentoID
	doc, err := s.insertVersion(ctx, tx, in, old.VersaoDocumento+1, old.ID)
	if err != nil {
		return nil, err
	}
	if err := s.audit(ctx, tx, in.UsuarioID, "documento_renovado", doc.ID,
		map[string]any{"status": old.Status, "versao": old.VersaoDocumento},
		map[string]any{"status": model.StatusPendente, "versao": doc.VersaoDocumento},
		in.IP, in.UserAgent); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.log.Info("document renewed",
		zap.Int64("anterior", docID),
		zap.String("protocolo", doc.NumeroProtocolo),
		zap.Int64("versao", doc.VersaoDocumento),
	)
	return doc, nil
}

// transition runs the conditional update + history + audit unit shared by
// Approve, Reject and Expire. A zero affected-row count means the
// document either does not exist or is not in the expected state; the
// unit is rolled back with no writes either way.
func (s *Service) transition(ctx context.Context, docID int64, from, to string, m Meta, acao, update string, args []any) error {
	tx, err := s.exec.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Execute(ctx, update, args, db.Write)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		cur, err := s.getTx(ctx, tx, docID)
		if err != nil {
			return err
		}
		return &InvalidTransitionError{DocumentID: docID, From: cur.Status, To: to}
	}
	if err := s.insertHistory(ctx, tx, docID, m.ActorID, acao, from, to, m); err != nil {
		return err
	}
	if err := s.audit(ctx, tx, m.ActorID, "documento_"+acao, docID,
		map[string]any{"status": from}, map[string]any{"status": to}, m.IP, m.UserAgent); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Info("document transition",
		zap.Int64("documento", docID),
		zap.String("de", from),
		zap.String("para", to),
	)
	return nil
}

// insertVersion inserts a documentos row plus its upload history entry.
func (s *Service) insertVersion(ctx context.Context, tx *db.Tx, in UploadInput, version, previousID int64) (*model.Document, error) {
	now := s.now()
	protocol := newProtocol(now)
	res, err := tx.Execute(ctx,
		`INSERT INTO documentos (
			numero_protocolo, transportadora_id, tipo_documento_id, usuario_upload_id,
			nome_arquivo_original, nome_arquivo_sistema, caminho_arquivo,
			tamanho_arquivo, hash_arquivo, mime_type,
			data_upload, data_vencimento, valor_garantia, numero_apolice, seguradora,
			status, versao_documento, documento_anterior_id,
			ip_upload, user_agent, data_atualizacao
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{
			protocol, in.TransportadoraID, in.TipoDocumentoID, in.UsuarioID,
			in.NomeArquivoOriginal, in.NomeArquivoSistema, in.CaminhoArquivo,
			in.TamanhoArquivo, in.HashArquivo, nilIfEmpty(in.MimeType),
			fmtTime(now), fmtDate(in.DataVencimento), nilIfZeroF(in.ValorGarantia),
			nilIfEmpty(in.NumeroApolice), nilIfEmpty(in.Seguradora),
			model.StatusPendente, version, nilIfZero(previousID),
			nilIfEmpty(in.IP), nilIfEmpty(in.UserAgent), fmtTime(now),
		}, db.Write)
	if err != nil {
		return nil, err
	}
	id := res.LastInsertID
	if err := s.insertHistory(ctx, tx, id, in.UsuarioID, model.AcaoUpload, "", model.StatusPendente, Meta{
		ActorID: in.UsuarioID, IP: in.IP, UserAgent: in.UserAgent,
	}); err != nil {
		return nil, err
	}
	return &model.Document{
		ID:                  id,
		NumeroProtocolo:     protocol,
		TransportadoraID:    in.TransportadoraID,
		TipoDocumentoID:     in.TipoDocumentoID,
		UsuarioUploadID:     in.UsuarioID,
		NomeArquivoOriginal: in.NomeArquivoOriginal,
		NomeArquivoSistema:  in.NomeArquivoSistema,
		CaminhoArquivo:      in.CaminhoArquivo,
		TamanhoArquivo:      in.TamanhoArquivo,
		HashArquivo:         in.HashArquivo,
		MimeType:            in.MimeType,
		DataVencimento:      in.DataVencimento,
		ValorGarantia:       in.ValorGarantia,
		NumeroApolice:       in.NumeroApolice,
		Seguradora:          in.Seguradora,
		Status:              model.StatusPendente,
		VersaoDocumento:     version,
		DocumentoAnteriorID: previousID,
	}, nil
}

func (s *Service) insertHistory(ctx context.Context, tx *db.Tx, docID, actorID int64, acao, from, to string, m Meta) error {
	_, err := tx.Execute(ctx,
		`INSERT INTO historico_documentos (
			documento_id, usuario_id, acao, status_anterior, status_novo,
			observacoes, ip_origem, user_agent, data_acao
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{
			docID, actorID, acao, nilIfEmpty(from), to,
			nilIfEmpty(m.Notes), nilIfEmpty(m.IP), nilIfEmpty(m.UserAgent), fmtTime(s.now()),
		}, db.Write)
	return err
}

func (s *Service) audit(ctx context.Context, tx *db.Tx, actorID int64, acao string, recordID int64, before, after map[string]any, ip, ua string) error {
	prev, _ := json.Marshal(before)
	next, _ := json.Marshal(after)
	_, err := tx.Execute(ctx,
		`INSERT INTO auditoria_sistema (
			usuario_id, acao, tabela_afetada, registro_id,
			dados_anteriores, dados_novos, ip_origem, user_agent, data_acao
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{
			nilIfZero(actorID), acao, "documentos", recordID,
			string(prev), string(next), nilIfEmpty(ip), nilIfEmpty(ua), fmtTime(s.now()),
		}, db.Write)
	return err
}

// Bind helpers. Timestamps are written as strings so every dialect stores
// the same representation; NULLs are explicit nils.

func fmtTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

func fmtDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format("2006-01-02")
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nilIfZero(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}

func nilIfZeroF(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}
