// Package seed inserts the fixed reference data at startup: system
// configuration keys, the document-type catalog and the bootstrap
// administrator. Every insert uses the dialect's ignore-on-conflict
// idiom, so repeated startups are no-ops and genuine failures still
// surface.
package seed

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/nimoenergia/portal-backend/internal/auth"
	"github.com/nimoenergia/portal-backend/internal/db"
)

// ErrNoHasher is returned when the password hasher is missing at
// startup. Seeding the bootstrap administrator without one would mean
// storing a plaintext password, which is a fatal misconfiguration, never
// a fallback.
var ErrNoHasher = errors.New("seed: password hasher unavailable")

// Bootstrap administrator account.
const (
	AdminEmail    = "admin@nimoenergia.com.br"
	AdminName     = "Administrador Sistema"
	adminPassword = "admin123"
)

type configRow struct {
	chave, valor, descricao, tipo string
}

var defaultConfig = []configRow{
	{"sistema_nome", "Portal NIMOENERGIA", "Nome do sistema", "string"},
	{"sistema_versao", "2.0.0", "Versão atual do sistema", "string"},
	{"email_notificacoes", "noreply@nimoenergia.com.br", "Email para envio de notificações", "string"},
	{"dias_aviso_vencimento", "30,15,7,1", "Dias de antecedência para aviso de vencimento", "string"},
	{"tamanho_maximo_arquivo", "50", "Tamanho máximo de arquivo em MB", "integer"},
	{"backup_automatico", "true", "Ativar backup automático", "boolean"},
	{"compliance_minimo", "80", "Percentual mínimo de compliance exigido", "integer"},
	{"aprovacao_automatica", "false", "Ativar aprovação automática de documentos", "boolean"},
}

type typeRow struct {
	codigo, nome, descricao, categoria, subcategoria string
	obrigatorio, temVencimento, temGarantia          bool
}

var defaultTypes = []typeRow{
	{"DOC_SOCIETARIO", "Contrato Social", "Documento de constituição da empresa", "EMPRESA", "", true, false, false},
	{"ALVARA_FUNCIONAMENTO", "Alvará de Funcionamento", "Autorização para funcionamento da empresa", "EMPRESA", "", true, true, false},
	{"INSCRICAO_ESTADUAL", "Inscrição Estadual", "Documento de inscrição estadual", "EMPRESA", "", true, false, false},
	{"SEGURO_RC", "Seguro de Responsabilidade Civil", "Seguro obrigatório para transportadoras", "SEGUROS", "Responsabilidade Civil", true, true, true},
	{"SEGURO_CARGA", "Seguro de Carga", "Seguro para proteção da carga transportada", "SEGUROS", "Carga", true, true, true},
	{"LICENCA_AMBIENTAL", "Licença Ambiental", "Licença para operação com impacto ambiental", "AMBIENTAL", "", true, true, false},
	{"CERTIFICADO_ISO", "Certificado ISO", "Certificação de qualidade ISO", "EMPRESA", "Qualidade", false, true, false},
	{"ANTT", "Registro ANTT", "Registro na Agência Nacional de Transportes Terrestres", "EMPRESA", "", true, true, false},
	{"NOTA_FISCAL", "Nota Fiscal", "Documento fiscal de transporte", "FISCAL", "", true, false, false},
	{"MANIFESTO_CARGA", "Manifesto de Carga", "Documento de controle de carga", "FISCAL", "", true, false, false},
}

// Loader inserts the reference data.
type Loader struct {
	exec   *db.Executor
	hasher auth.Hasher
	log    *zap.Logger
}

// NewLoader returns a Loader. The hasher is required; LoadDefaults fails
// without it.
func NewLoader(exec *db.Executor, hasher auth.Hasher, log *zap.Logger) *Loader {
	return &Loader{exec: exec, hasher: hasher, log: log}
}

// LoadDefaults inserts all reference data idempotently. A partially
// seeded table self-heals on the next start, since every row is inserted
// with the ignore-on-conflict idiom.
func (l *Loader) LoadDefaults(ctx context.Context) error {
	if l.hasher == nil {
		return ErrNoHasher
	}
	if err := l.loadConfig(ctx); err != nil {
		return err
	}
	if err := l.loadTypes(ctx); err != nil {
		return err
	}
	if err := l.loadAdmin(ctx); err != nil {
		return err
	}
	l.log.Info("reference data loaded",
		zap.Int("configuracoes", len(defaultConfig)),
		zap.Int("tipos_documento", len(defaultTypes)),
	)
	return nil
}

func (l *Loader) loadConfig(ctx context.Context) error {
	stmt := l.exec.Adapter().InsertIgnore("configuracoes",
		[]string{"chave", "valor", "descricao", "tipo_valor"}, "chave")
	for _, c := range defaultConfig {
		if _, err := l.exec.Execute(ctx, stmt, []any{c.chave, c.valor, c.descricao, c.tipo}, db.Write); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadTypes(ctx context.Context) error {
	stmt := l.exec.Adapter().InsertIgnore("tipos_documento",
		[]string{"codigo", "nome", "descricao", "categoria", "subcategoria", "obrigatorio", "tem_vencimento", "tem_garantia", "ativo"},
		"codigo")
	for _, t := range defaultTypes {
		var sub any
		if t.subcategoria != "" {
			sub = t.subcategoria
		}
		args := []any{t.codigo, t.nome, t.descricao, t.categoria, sub, t.obrigatorio, t.temVencimento, t.temGarantia, true}
		if _, err := l.exec.Execute(ctx, stmt, args, db.Write); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadAdmin(ctx context.Context) error {
	hash, err := l.hasher.Hash(adminPassword)
	if err != nil {
		return err
	}
	stmt := l.exec.Adapter().InsertIgnore("usuarios",
		[]string{"nome", "email", "senha", "tipo", "status_ativo"}, "email")
	_, err = l.exec.Execute(ctx, stmt, []any{AdminName, AdminEmail, hash, "admin", true}, db.Write)
	return err
}
