package schema

// SQLite mirrors the PostgreSQL layout: CHECK constraints instead of
// enumerations, JSON stored as TEXT, application-maintained update
// timestamps. Foreign keys are enforced through the connection pragma.
var sqliteTables = []string{
	`CREATE TABLE IF NOT EXISTS configuracoes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		chave VARCHAR(100) UNIQUE NOT NULL,
		valor TEXT NOT NULL,
		descricao TEXT,
		tipo_valor VARCHAR(10) DEFAULT 'string' CHECK (tipo_valor IN ('string', 'integer', 'boolean', 'json')),
		data_criacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		data_atualizacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS tipos_documento (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		codigo VARCHAR(50) UNIQUE NOT NULL,
		nome VARCHAR(100) NOT NULL,
		descricao TEXT,
		categoria VARCHAR(10) NOT NULL CHECK (categoria IN ('EMPRESA', 'SEGUROS', 'AMBIENTAL', 'FISCAL')),
		subcategoria VARCHAR(50),
		obrigatorio BOOLEAN DEFAULT FALSE,
		tem_vencimento BOOLEAN DEFAULT FALSE,
		tem_garantia BOOLEAN DEFAULT FALSE,
		formatos_aceitos TEXT DEFAULT '["PDF", "DOC", "DOCX", "JPG", "JPEG", "PNG"]',
		tamanho_maximo_mb INTEGER DEFAULT 10,
		aprovacao_automatica BOOLEAN DEFAULT FALSE,
		dias_aviso_vencimento INTEGER DEFAULT 30,
		ordem_exibicao INTEGER DEFAULT 0,
		ativo BOOLEAN DEFAULT TRUE,
		data_criacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS transportadoras (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		cnpj VARCHAR(18) UNIQUE NOT NULL,
		razao_social VARCHAR(200) NOT NULL,
		nome_fantasia VARCHAR(200),
		inscricao_estadual VARCHAR(20),
		inscricao_municipal VARCHAR(20),
		antt VARCHAR(20),
		endereco_logradouro VARCHAR(200),
		endereco_numero VARCHAR(10),
		endereco_complemento VARCHAR(100),
		endereco_bairro VARCHAR(100),
		endereco_cidade VARCHAR(100),
		endereco_estado VARCHAR(2),
		endereco_cep VARCHAR(9),
		endereco_pais VARCHAR(50) DEFAULT 'Brasil',
		telefone_principal VARCHAR(20),
		telefone_secundario VARCHAR(20),
		email_corporativo VARCHAR(100),
		email_financeiro VARCHAR(100),
		site VARCHAR(100),
		responsavel_nome VARCHAR(100),
		responsavel_cpf VARCHAR(14),
		responsavel_cargo VARCHAR(50),
		responsavel_email VARCHAR(100),
		responsavel_telefone VARCHAR(20),
		banco VARCHAR(100),
		agencia VARCHAR(10),
		conta VARCHAR(20),
		pix VARCHAR(100),
		status_cadastro VARCHAR(10) DEFAULT 'PENDENTE' CHECK (status_cadastro IN ('PENDENTE', 'APROVADO', 'SUSPENSO', 'INATIVO')),
		classificacao_risco VARCHAR(5) DEFAULT 'BAIXO' CHECK (classificacao_risco IN ('BAIXO', 'MEDIO', 'ALTO')),
		limite_credito NUMERIC(15,2) DEFAULT 0.00,
		observacoes TEXT,
		data_cadastro TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		data_aprovacao TIMESTAMP NULL,
		data_atualizacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		ativo BOOLEAN DEFAULT TRUE
	)`,

	`CREATE TABLE IF NOT EXISTS usuarios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		transportadora_id INTEGER NULL REFERENCES transportadoras(id) ON DELETE SET NULL,
		nome VARCHAR(100) NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		senha VARCHAR(255) NOT NULL,
		salt VARCHAR(50),
		telefone VARCHAR(20),
		tipo VARCHAR(15) NOT NULL CHECK (tipo IN ('admin', 'analista', 'transportadora', 'financeiro')),
		permissoes TEXT DEFAULT '[]',
		status_ativo BOOLEAN DEFAULT TRUE,
		ultimo_acesso TIMESTAMP NULL,
		ip_ultimo_acesso VARCHAR(45),
		tentativas_login INTEGER DEFAULT 0,
		bloqueado_ate TIMESTAMP NULL,
		token_reset_senha VARCHAR(100),
		token_reset_expira TIMESTAMP NULL,
		preferencias TEXT DEFAULT '{"notificacoes_email": true, "notificacoes_sms": false}',
		timezone VARCHAR(50) DEFAULT 'America/Sao_Paulo',
		idioma VARCHAR(5) DEFAULT 'pt-BR',
		data_criacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		data_atualizacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS documentos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		numero_protocolo VARCHAR(20) UNIQUE NOT NULL,
		transportadora_id INTEGER NOT NULL REFERENCES transportadoras(id) ON DELETE CASCADE,
		tipo_documento_id INTEGER NOT NULL REFERENCES tipos_documento(id) ON DELETE RESTRICT,
		usuario_upload_id INTEGER NOT NULL REFERENCES usuarios(id) ON DELETE RESTRICT,
		nome_arquivo_original VARCHAR(255) NOT NULL,
		nome_arquivo_sistema VARCHAR(255) NOT NULL,
		caminho_arquivo TEXT NOT NULL,
		tamanho_arquivo BIGINT NOT NULL,
		hash_arquivo VARCHAR(64) NOT NULL,
		mime_type VARCHAR(100),
		data_upload TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		data_vencimento DATE NULL,
		valor_garantia NUMERIC(15,2) NULL,
		numero_apolice VARCHAR(50),
		seguradora VARCHAR(100),
		status VARCHAR(10) DEFAULT 'pendente' CHECK (status IN ('pendente', 'aprovado', 'rejeitado', 'vencido', 'renovacao')),
		data_aprovacao TIMESTAMP NULL,
		usuario_aprovacao_id INTEGER NULL REFERENCES usuarios(id) ON DELETE SET NULL,
		observacoes_analista TEXT,
		motivo_rejeicao TEXT,
		versao_documento INTEGER DEFAULT 1,
		documento_anterior_id INTEGER NULL REFERENCES documentos(id) ON DELETE SET NULL,
		ip_upload VARCHAR(45),
		user_agent TEXT,
		metadata TEXT,
		data_atualizacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS historico_documentos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		documento_id INTEGER NOT NULL REFERENCES documentos(id) ON DELETE CASCADE,
		usuario_id INTEGER NOT NULL REFERENCES usuarios(id) ON DELETE RESTRICT,
		acao VARCHAR(10) NOT NULL CHECK (acao IN ('upload', 'aprovacao', 'rejeicao', 'vencimento', 'renovacao', 'exclusao')),
		status_anterior VARCHAR(20),
		status_novo VARCHAR(20),
		observacoes TEXT,
		dados_alteracao TEXT,
		ip_origem VARCHAR(45),
		user_agent TEXT,
		data_acao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS notificacoes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		usuario_id INTEGER NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
		transportadora_id INTEGER NULL REFERENCES transportadoras(id) ON DELETE SET NULL,
		documento_id INTEGER NULL REFERENCES documentos(id) ON DELETE SET NULL,
		tipo VARCHAR(10) NOT NULL CHECK (tipo IN ('vencimento', 'aprovacao', 'rejeicao', 'cadastro', 'sistema', 'compliance')),
		titulo VARCHAR(200) NOT NULL,
		mensagem TEXT NOT NULL,
		canal VARCHAR(10) DEFAULT 'email' CHECK (canal IN ('email', 'sms', 'push', 'sistema')),
		status_envio VARCHAR(10) DEFAULT 'pendente' CHECK (status_envio IN ('pendente', 'enviado', 'erro', 'lido')),
		data_envio TIMESTAMP NULL,
		data_leitura TIMESTAMP NULL,
		tentativas_envio INTEGER DEFAULT 0,
		erro_envio TEXT,
		dados_extras TEXT,
		prioridade VARCHAR(10) DEFAULT 'normal' CHECK (prioridade IN ('baixa', 'normal', 'alta', 'critica')),
		data_criacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS auditoria_sistema (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		usuario_id INTEGER NULL REFERENCES usuarios(id) ON DELETE SET NULL,
		acao VARCHAR(100) NOT NULL,
		tabela_afetada VARCHAR(50),
		registro_id INTEGER,
		dados_anteriores TEXT,
		dados_novos TEXT,
		ip_origem VARCHAR(45),
		user_agent TEXT,
		data_acao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS sessoes_usuario (
		id VARCHAR(128) PRIMARY KEY,
		usuario_id INTEGER NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
		ip_address VARCHAR(45),
		user_agent TEXT,
		data_criacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		data_expiracao TIMESTAMP NOT NULL,
		ativo BOOLEAN DEFAULT TRUE
	)`,
}

// indexStatements complements the PostgreSQL and SQLite table
// definitions; both dialects share the CREATE INDEX IF NOT EXISTS form.
var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_configuracoes_chave ON configuracoes (chave)`,

	`CREATE INDEX IF NOT EXISTS idx_tipos_documento_categoria ON tipos_documento (categoria)`,
	`CREATE INDEX IF NOT EXISTS idx_tipos_documento_ativo ON tipos_documento (ativo)`,
	`CREATE INDEX IF NOT EXISTS idx_tipos_documento_codigo ON tipos_documento (codigo)`,

	`CREATE INDEX IF NOT EXISTS idx_transportadoras_cnpj ON transportadoras (cnpj)`,
	`CREATE INDEX IF NOT EXISTS idx_transportadoras_razao_social ON transportadoras (razao_social)`,
	`CREATE INDEX IF NOT EXISTS idx_transportadoras_status ON transportadoras (status_cadastro)`,
	`CREATE INDEX IF NOT EXISTS idx_transportadoras_ativo ON transportadoras (ativo)`,
	`CREATE INDEX IF NOT EXISTS idx_transportadoras_data_cadastro ON transportadoras (data_cadastro)`,

	`CREATE INDEX IF NOT EXISTS idx_usuarios_email ON usuarios (email)`,
	`CREATE INDEX IF NOT EXISTS idx_usuarios_tipo ON usuarios (tipo)`,
	`CREATE INDEX IF NOT EXISTS idx_usuarios_transportadora ON usuarios (transportadora_id)`,
	`CREATE INDEX IF NOT EXISTS idx_usuarios_ativo ON usuarios (status_ativo)`,
	`CREATE INDEX IF NOT EXISTS idx_usuarios_ultimo_acesso ON usuarios (ultimo_acesso)`,

	`CREATE INDEX IF NOT EXISTS idx_documentos_protocolo ON documentos (numero_protocolo)`,
	`CREATE INDEX IF NOT EXISTS idx_documentos_transportadora ON documentos (transportadora_id)`,
	`CREATE INDEX IF NOT EXISTS idx_documentos_tipo ON documentos (tipo_documento_id)`,
	`CREATE INDEX IF NOT EXISTS idx_documentos_status ON documentos (status)`,
	`CREATE INDEX IF NOT EXISTS idx_documentos_data_upload ON documentos (data_upload)`,
	`CREATE INDEX IF NOT EXISTS idx_documentos_data_vencimento ON documentos (data_vencimento)`,
	`CREATE INDEX IF NOT EXISTS idx_documentos_hash ON documentos (hash_arquivo)`,
	`CREATE INDEX IF NOT EXISTS idx_documentos_usuario_upload ON documentos (usuario_upload_id)`,
	`CREATE INDEX IF NOT EXISTS idx_documentos_transportadora_status ON documentos (transportadora_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_documentos_vencimento_status ON documentos (data_vencimento, status)`,

	`CREATE INDEX IF NOT EXISTS idx_historico_documento ON historico_documentos (documento_id)`,
	`CREATE INDEX IF NOT EXISTS idx_historico_usuario ON historico_documentos (usuario_id)`,
	`CREATE INDEX IF NOT EXISTS idx_historico_data_acao ON historico_documentos (data_acao)`,
	`CREATE INDEX IF NOT EXISTS idx_historico_acao ON historico_documentos (acao)`,
	`CREATE INDEX IF NOT EXISTS idx_historico_documento_data ON historico_documentos (documento_id, data_acao)`,

	`CREATE INDEX IF NOT EXISTS idx_notificacoes_usuario ON notificacoes (usuario_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notificacoes_transportadora ON notificacoes (transportadora_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notificacoes_documento ON notificacoes (documento_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notificacoes_status_envio ON notificacoes (status_envio)`,
	`CREATE INDEX IF NOT EXISTS idx_notificacoes_tipo ON notificacoes (tipo)`,
	`CREATE INDEX IF NOT EXISTS idx_notificacoes_data_criacao ON notificacoes (data_criacao)`,
	`CREATE INDEX IF NOT EXISTS idx_notificacoes_usuario_status ON notificacoes (usuario_id, status_envio)`,

	`CREATE INDEX IF NOT EXISTS idx_auditoria_usuario ON auditoria_sistema (usuario_id)`,
	`CREATE INDEX IF NOT EXISTS idx_auditoria_acao ON auditoria_sistema (acao)`,
	`CREATE INDEX IF NOT EXISTS idx_auditoria_tabela ON auditoria_sistema (tabela_afetada)`,
	`CREATE INDEX IF NOT EXISTS idx_auditoria_data ON auditoria_sistema (data_acao)`,
	`CREATE INDEX IF NOT EXISTS idx_auditoria_registro ON auditoria_sistema (tabela_afetada, registro_id)`,

	`CREATE INDEX IF NOT EXISTS idx_sessoes_usuario ON sessoes_usuario (usuario_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessoes_expiracao ON sessoes_usuario (data_expiracao)`,
	`CREATE INDEX IF NOT EXISTS idx_sessoes_ativo ON sessoes_usuario (ativo)`,
}
