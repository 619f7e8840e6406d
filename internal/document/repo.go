package document

import (
	"context"

	"github.com/nimoenergia/portal-backend/internal/db"
	"github.com/nimoenergia/portal-backend/internal/model"
)

const selectDocument = `SELECT * FROM documentos WHERE id = ?`

// Get returns a document by id, or db.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*model.Document, error) {
	res, err := s.exec.Execute(ctx, selectDocument, []any{id}, db.Read)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, db.ErrNotFound
	}
	return model.DocumentFromRow(res.Rows[0]), nil
}

// getTx reads a document inside an open transaction so transition
// validation observes the same snapshot the update runs against.
func (s *Service) getTx(ctx context.Context, tx *db.Tx, id int64) (*model.Document, error) {
	res, err := tx.Execute(ctx, selectDocument, []any{id}, db.Read)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, db.ErrNotFound
	}
	return model.DocumentFromRow(res.Rows[0]), nil
}

// ByProtocol returns a document by its protocol number, or db.ErrNotFound.
func (s *Service) ByProtocol(ctx context.Context, protocol string) (*model.Document, error) {
	res, err := s.exec.Execute(ctx, `SELECT * FROM documentos WHERE numero_protocolo = ?`, []any{protocol}, db.Read)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, db.ErrNotFound
	}
	return model.DocumentFromRow(res.Rows[0]), nil
}

// History returns the audit trail of a document, oldest first.
func (s *Service) History(ctx context.Context, docID int64) ([]*model.HistoryEntry, error) {
	res, err := s.exec.Execute(ctx,
		`SELECT * FROM historico_documentos WHERE documento_id = ? ORDER BY data_acao, id`,
		[]any{docID}, db.Read)
	if err != nil {
		return nil, err
	}
	out := make([]*model.HistoryEntry, 0, len(res.Rows))
	for _, row := range res.Rows {
		out = append(out, model.HistoryFromRow(row))
	}
	return out, nil
}

// FindDuplicates returns documents of the carrier with the same content
// hash. Duplicate detection is advisory: the hash carries no unique
// constraint.
func (s *Service) FindDuplicates(ctx context.Context, carrierID int64, hash string) ([]*model.Document, error) {
	res, err := s.exec.Execute(ctx,
		`SELECT * FROM documentos WHERE transportadora_id = ? AND hash_arquivo = ? ORDER BY id`,
		[]any{carrierID, hash}, db.Read)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Document, 0, len(res.Rows))
	for _, row := range res.Rows {
		out = append(out, model.DocumentFromRow(row))
	}
	return out, nil
}

// Versions returns the version chain of a logical document (same carrier
// and type), newest first.
func (s *Service) Versions(ctx context.Context, carrierID, typeID int64) ([]*model.Document, error) {
	res, err := s.exec.Execute(ctx,
		`SELECT * FROM documentos WHERE transportadora_id = ? AND tipo_documento_id = ? ORDER BY versao_documento DESC`,
		[]any{carrierID, typeID}, db.Read)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Document, 0, len(res.Rows))
	for _, row := range res.Rows {
		out = append(out, model.DocumentFromRow(row))
	}
	return out, nil
}
