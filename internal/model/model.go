// Package model defines the persisted entities of the portal and the
// coercion helpers that map the executor's normalized rows onto typed
// structs. The access layer returns the same key set for every dialect,
// but scalar representations differ (SQLite stores booleans as integers
// and timestamps as text); the helpers in rows.go absorb that variance.
package model

import "time"

// Document status values.
const (
	StatusPendente  = "pendente"
	StatusAprovado  = "aprovado"
	StatusRejeitado = "rejeitado"
	StatusVencido   = "vencido"
	StatusRenovacao = "renovacao"
)

// History actions.
const (
	AcaoUpload     = "upload"
	AcaoAprovacao  = "aprovacao"
	AcaoRejeicao   = "rejeicao"
	AcaoVencimento = "vencimento"
	AcaoRenovacao  = "renovacao"
	AcaoExclusao   = "exclusao"
)

// Carrier registration status values.
const (
	CadastroPendente = "PENDENTE"
	CadastroAprovado = "APROVADO"
	CadastroSuspenso = "SUSPENSO"
	CadastroInativo  = "INATIVO"
)

// User roles.
const (
	TipoAdmin          = "admin"
	TipoAnalista       = "analista"
	TipoTransportadora = "transportadora"
	TipoFinanceiro     = "financeiro"
)

// Carrier is a transportation company registered in the portal.
type Carrier struct {
	ID             int64
	CNPJ           string
	RazaoSocial    string
	NomeFantasia   string
	StatusCadastro string
	Classificacao  string
	LimiteCredito  float64
	Ativo          bool
	DataCadastro   time.Time
}

// CarrierFromRow maps a transportadoras row.
func CarrierFromRow(row map[string]any) *Carrier {
	return &Carrier{
		ID:             Int64(row["id"]),
		CNPJ:           String(row["cnpj"]),
		RazaoSocial:    String(row["razao_social"]),
		NomeFantasia:   String(row["nome_fantasia"]),
		StatusCadastro: String(row["status_cadastro"]),
		Classificacao:  String(row["classificacao_risco"]),
		LimiteCredito:  Float64(row["limite_credito"]),
		Ativo:          Bool(row["ativo"]),
		DataCadastro:   Time(row["data_cadastro"]),
	}
}

// User is a portal account, optionally tied to a Carrier.
type User struct {
	ID               int64
	TransportadoraID int64 // zero when the account is not carrier-bound
	Nome             string
	Email            string
	SenhaHash        string
	Tipo             string
	Ativo            bool
	TentativasLogin  int64
	BloqueadoAte     time.Time
	UltimoAcesso     time.Time
}

// UserFromRow maps a usuarios row.
func UserFromRow(row map[string]any) *User {
	return &User{
		ID:               Int64(row["id"]),
		TransportadoraID: Int64(row["transportadora_id"]),
		Nome:             String(row["nome"]),
		Email:            String(row["email"]),
		SenhaHash:        String(row["senha"]),
		Tipo:             String(row["tipo"]),
		Ativo:            Bool(row["status_ativo"]),
		TentativasLogin:  Int64(row["tentativas_login"]),
		BloqueadoAte:     Time(row["bloqueado_ate"]),
		UltimoAcesso:     Time(row["ultimo_acesso"]),
	}
}

// DocumentType is a catalog entry describing a document category.
type DocumentType struct {
	ID             int64
	Codigo         string
	Nome           string
	Categoria      string
	Obrigatorio    bool
	TemVencimento  bool
	TemGarantia    bool
	TamanhoMaximoMB int64
	AprovacaoAuto  bool
	DiasAviso      int64
	Ativo          bool
}

// DocumentTypeFromRow maps a tipos_documento row.
func DocumentTypeFromRow(row map[string]any) *DocumentType {
	return &DocumentType{
		ID:              Int64(row["id"]),
		Codigo:          String(row["codigo"]),
		Nome:            String(row["nome"]),
		Categoria:       String(row["categoria"]),
		Obrigatorio:     Bool(row["obrigatorio"]),
		TemVencimento:   Bool(row["tem_vencimento"]),
		TemGarantia:     Bool(row["tem_garantia"]),
		TamanhoMaximoMB: Int64(row["tamanho_maximo_mb"]),
		AprovacaoAuto:   Bool(row["aprovacao_automatica"]),
		DiasAviso:       Int64(row["dias_aviso_vencimento"]),
		Ativo:           Bool(row["ativo"]),
	}
}

// Document is the central entity: an uploaded compliance artifact.
// Rows are immutable once created except for the status/approval fields
// and the update timestamp; renewals create a new row linked through
// DocumentoAnteriorID.
type Document struct {
	ID                  int64
	NumeroProtocolo     string
	TransportadoraID    int64
	TipoDocumentoID     int64
	UsuarioUploadID     int64
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
	Status              string
	DataAprovacao       time.Time
	UsuarioAprovacaoID  int64
	MotivoRejeicao      string
	VersaoDocumento     int64
	DocumentoAnteriorID int64 // zero for version 1
}

// DocumentFromRow maps a documentos row.
func DocumentFromRow(row map[string]any) *Document {
	return &Document{
		ID:                  Int64(row["id"]),
		NumeroProtocolo:     String(row["numero_protocolo"]),
		TransportadoraID:    Int64(row["transportadora_id"]),
		TipoDocumentoID:     Int64(row["tipo_documento_id"]),
		UsuarioUploadID:     Int64(row["usuario_upload_id"]),
		NomeArquivoOriginal: String(row["nome_arquivo_original"]),
		NomeArquivoSistema:  String(row["nome_arquivo_sistema"]),
		CaminhoArquivo:      String(row["caminho_arquivo"]),
		TamanhoArquivo:      Int64(row["tamanho_arquivo"]),
		HashArquivo:         String(row["hash_arquivo"]),
		MimeType:            String(row["mime_type"]),
		DataVencimento:      Time(row["data_vencimento"]),
		ValorGarantia:       Float64(row["valor_garantia"]),
		NumeroApolice:       String(row["numero_apolice"]),
		Seguradora:          String(row["seguradora"]),
		Status:              String(row["status"]),
		DataAprovacao:       Time(row["data_aprovacao"]),
		UsuarioAprovacaoID:  Int64(row["usuario_aprovacao_id"]),
		MotivoRejeicao:      String(row["motivo_rejeicao"]),
		VersaoDocumento:     Int64(row["versao_documento"]),
		DocumentoAnteriorID: Int64(row["documento_anterior_id"]),
	}
}

// HistoryEntry is one immutable audit row for a document action.
type HistoryEntry struct {
	ID             int64
	DocumentoID    int64
	UsuarioID      int64
	Acao           string
	StatusAnterior string
	StatusNovo     string
	Observacoes    string
	IPOrigem       string
	UserAgent      string
	DataAcao       time.Time
}

// HistoryFromRow maps a historico_documentos row.
func HistoryFromRow(row map[string]any) *HistoryEntry {
	return &HistoryEntry{
		ID:             Int64(row["id"]),
		DocumentoID:    Int64(row["documento_id"]),
		UsuarioID:      Int64(row["usuario_id"]),
		Acao:           String(row["acao"]),
		StatusAnterior: String(row["status_anterior"]),
		StatusNovo:     String(row["status_novo"]),
		Observacoes:    String(row["observacoes"]),
		IPOrigem:       String(row["ip_origem"]),
		UserAgent:      String(row["user_agent"]),
		DataAcao:       Time(row["data_acao"]),
	}
}

// Notification is a queued message for the delivery subsystem.
type Notification struct {
	ID               int64
	UsuarioID        int64
	TransportadoraID int64
	DocumentoID      int64
	Tipo             string
	Titulo           string
	Mensagem         string
	Canal            string
	StatusEnvio      string
	Prioridade       string
}

// NotificationFromRow maps a notificacoes row.
func NotificationFromRow(row map[string]any) *Notification {
	return &Notification{
		ID:               Int64(row["id"]),
		UsuarioID:        Int64(row["usuario_id"]),
		TransportadoraID: Int64(row["transportadora_id"]),
		DocumentoID:      Int64(row["documento_id"]),
		Tipo:             String(row["tipo"]),
		Titulo:           String(row["titulo"]),
		Mensagem:         String(row["mensagem"]),
		Canal:            String(row["canal"]),
		StatusEnvio:      String(row["status_envio"]),
		Prioridade:       String(row["prioridade"]),
	}
}

// ConfigEntry is a configuracoes row.
type ConfigEntry struct {
	Chave     string
	Valor     string
	TipoValor string
}

// ConfigFromRow maps a configuracoes row.
func ConfigFromRow(row map[string]any) *ConfigEntry {
	return &ConfigEntry{
		Chave:     String(row["chave"]),
		Valor:     String(row["valor"]),
		TipoValor: String(row["tipo_valor"]),
	}
}
