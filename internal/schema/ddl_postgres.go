package schema

// PostgreSQL has no inline INDEX clause and no ON UPDATE column default;
// enumerations become CHECK constraints and the update timestamp is
// maintained by the application. Indexes are created separately (see
// indexStatements in ddl_sqlite.go, shared with SQLite).
var postgresTables = []string{
	`CREATE TABLE IF NOT EXISTS configuracoes (
		id SERIAL PRIMARY KEY,
		chave VARCHAR(100) UNIQUE NOT NULL,
		valor TEXT NOT NULL,
		descricao TEXT,
		tipo_valor VARCHAR(10) DEFAULT 'string' CHECK (tipo_valor IN ('string', 'integer', 'boolean', 'json')),
		data_criacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		data_atualizacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS tipos_documento (
		id SERIAL PRIMARY KEY,
		codigo VARCHAR(50) UNIQUE NOT NULL,
		nome VARCHAR(100) NOT NULL,
		descricao TEXT,
		categoria VARCHAR(10) NOT NULL CHECK (categoria IN ('EMPRESA', 'SEGUROS', 'AMBIENTAL', 'FISCAL')),
		subcategoria VARCHAR(50),
		obrigatorio BOOLEAN DEFAULT FALSE,
		tem_vencimento BOOLEAN DEFAULT FALSE,
		tem_garantia BOOLEAN DEFAULT FALSE,
		formatos_aceitos JSONB DEFAULT '["PDF", "DOC", "DOCX", "JPG", "JPEG", "PNG"]',
		tamanho_maximo_mb INT DEFAULT 10,
		aprovacao_automatica BOOLEAN DEFAULT FALSE,
		dias_aviso_vencimento INT DEFAULT 30,
		ordem_exibicao INT DEFAULT 0,
		ativo BOOLEAN DEFAULT TRUE,
		data_criacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS transportadoras (
		id SERIAL PRIMARY KEY,
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
		limite_credito DECIMAL(15,2) DEFAULT 0.00,
		observacoes TEXT,
		data_cadastro TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		data_aprovacao TIMESTAMP NULL,
		data_atualizacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		ativo BOOLEAN DEFAULT TRUE
	)`,

	`CREATE TABLE IF NOT EXISTS usuarios (
		id SERIAL PRIMARY KEY,
		transportadora_id INT NULL REFERENCES transportadoras(id) ON DELETE SET NULL,
		nome VARCHAR(100) NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		senha VARCHAR(255) NOT NULL,
		salt VARCHAR(50),
		telefone VARCHAR(20),
		tipo VARCHAR(15) NOT NULL CHECK (tipo IN ('admin', 'analista', 'transportadora', 'financeiro')),
		permissoes JSONB DEFAULT '[]',
		status_ativo BOOLEAN DEFAULT TRUE,
		ultimo_acesso TIMESTAMP NULL,
		ip_ultimo_acesso VARCHAR(45),
		tentativas_login INT DEFAULT 0,
		bloqueado_ate TIMESTAMP NULL,
		token_reset_senha VARCHAR(100),
		token_reset_expira TIMESTAMP NULL,
		preferencias JSONB DEFAULT '{"notificacoes_email": true, "notificacoes_sms": false}',
		timezone VARCHAR(50) DEFAULT 'America/Sao_Paulo',
		idioma VARCHAR(5) DEFAULT 'pt-BR',
		data_criacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		data_atualizacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS documentos (
		id SERIAL PRIMARY KEY,
		numero_protocolo VARCHAR(20) UNIQUE NOT NULL,
		transportadora_id INT NOT NULL REFERENCES transportadoras(id) ON DELETE CASCADE,
		tipo_documento_id INT NOT NULL REFERENCES tipos_documento(id) ON DELETE RESTRICT,
		usuario_upload_id INT NOT NULL REFERENCES usuarios(id) ON DELETE RESTRICT,
		nome_arquivo_original VARCHAR(255) NOT NULL,
		nome_arquivo_sistema VARCHAR(255) NOT NULL,
		caminho_arquivo TEXT NOT NULL,
		tamanho_arquivo BIGINT NOT NULL,
		hash_arquivo VARCHAR(64) NOT NULL,
		mime_type VARCHAR(100),
		data_upload TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		data_vencimento DATE NULL,
		valor_garantia DECIMAL(15,2) NULL,
		numero_apolice VARCHAR(50),
		seguradora VARCHAR(100),
		status VARCHAR(10) DEFAULT 'pendente' CHECK (status IN ('pendente', 'aprovado', 'rejeitado', 'vencido', 'renovacao')),
		data_aprovacao TIMESTAMP NULL,
		usuario_aprovacao_id INT NULL REFERENCES usuarios(id) ON DELETE SET NULL,
		observacoes_analista TEXT,
		motivo_rejeicao TEXT,
		versao_documento INT DEFAULT 1,
		documento_anterior_id INT NULL REFERENCES documentos(id) ON DELETE SET NULL,
		ip_upload VARCHAR(45),
		user_agent TEXT,
		metadata JSONB,
		data_atualizacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS historico_documentos (
		id SERIAL PRIMARY KEY,
		documento_id INT NOT NULL REFERENCES documentos(id) ON DELETE CASCADE,
		usuario_id INT NOT NULL REFERENCES usuarios(id) ON DELETE RESTRICT,
		acao VARCHAR(10) NOT NULL CHECK (acao IN ('upload', 'aprovacao', 'rejeicao', 'vencimento', 'renovacao', 'exclusao')),
		status_anterior VARCHAR(20),
		status_novo VARCHAR(20),
		observacoes TEXT,
		dados_alteracao JSONB,
		ip_origem VARCHAR(45),
		user_agent TEXT,
		data_acao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS notificacoes (
		id SERIAL PRIMARY KEY,
		usuario_id INT NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
		transportadora_id INT NULL REFERENCES transportadoras(id) ON DELETE SET NULL,
		documento_id INT NULL REFERENCES documentos(id) ON DELETE SET NULL,
		tipo VARCHAR(10) NOT NULL CHECK (tipo IN ('vencimento', 'aprovacao', 'rejeicao', 'cadastro', 'sistema', 'compliance')),
		titulo VARCHAR(200) NOT NULL,
		mensagem TEXT NOT NULL,
		canal VARCHAR(10) DEFAULT 'email' CHECK (canal IN ('email', 'sms', 'push', 'sistema')),
		status_envio VARCHAR(10) DEFAULT 'pendente' CHECK (status_envio IN ('pendente', 'enviado', 'erro', 'lido')),
		data_envio TIMESTAMP NULL,
		data_leitura TIMESTAMP NULL,
		tentativas_envio INT DEFAULT 0,
		erro_envio TEXT,
		dados_extras JSONB,
		prioridade VARCHAR(10) DEFAULT 'normal' CHECK (prioridade IN ('baixa', 'normal', 'alta', 'critica')),
		data_criacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS auditoria_sistema (
		id SERIAL PRIMARY KEY,
		usuario_id INT NULL REFERENCES usuarios(id) ON DELETE SET NULL,
		acao VARCHAR(100) NOT NULL,
		tabela_afetada VARCHAR(50),
		registro_id INT,
		dados_anteriores JSONB,
		dados_novos JSONB,
		ip_origem VARCHAR(45),
		user_agent TEXT,
		data_acao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS sessoes_usuario (
		id VARCHAR(128) PRIMARY KEY,
		usuario_id INT NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
		ip_address VARCHAR(45),
		user_agent TEXT,
		data_criacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		data_expiracao TIMESTAMP NOT NULL,
		ativo BOOLEAN DEFAULT TRUE
	)`,
}
