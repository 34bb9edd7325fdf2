package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/vfg2006/creative-audit-api/internal/config"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"github.com/vfg2006/creative-audit-api/pkg/utils"
)

// schema cria as tabelas espelhadas e as de auditoria. Idempotente.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS integrations (
		id TEXT PRIMARY KEY,
		platform TEXT NOT NULL,
		external_account_id TEXT NOT NULL,
		account_name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		last_sync TIMESTAMPTZ,
		access_token TEXT,
		UNIQUE (platform, external_account_id)
	)`,
	`CREATE TABLE IF NOT EXISTS campaigns (
		id TEXT PRIMARY KEY,
		external_id TEXT NOT NULL,
		integration_id TEXT NOT NULL REFERENCES integrations (id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		status TEXT,
		objective TEXT,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (integration_id, external_id)
	)`,
	`CREATE TABLE IF NOT EXISTS ad_sets (
		id TEXT PRIMARY KEY,
		external_id TEXT NOT NULL,
		integration_id TEXT NOT NULL REFERENCES integrations (id) ON DELETE CASCADE,
		campaign_id TEXT NOT NULL REFERENCES campaigns (id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		status TEXT,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (integration_id, external_id)
	)`,
	`CREATE TABLE IF NOT EXISTS creatives (
		id TEXT PRIMARY KEY,
		external_id TEXT NOT NULL,
		integration_id TEXT NOT NULL REFERENCES integrations (id) ON DELETE CASCADE,
		campaign_id TEXT NOT NULL REFERENCES campaigns (id) ON DELETE CASCADE,
		ad_set_id TEXT NOT NULL REFERENCES ad_sets (id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		format TEXT NOT NULL,
		thumbnail_url TEXT,
		impressions BIGINT NOT NULL DEFAULT 0,
		clicks BIGINT NOT NULL DEFAULT 0,
		conversions BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (integration_id, external_id)
	)`,
	`CREATE TABLE IF NOT EXISTS policies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		scope TEXT NOT NULL,
		campaign_id TEXT REFERENCES campaigns (id) ON DELETE CASCADE,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		brand_guidelines TEXT[] NOT NULL DEFAULT '{}',
		min_ctr DOUBLE PRECISION NOT NULL DEFAULT 0,
		min_conversions BIGINT NOT NULL DEFAULT 0,
		max_frequency DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS policies_single_default ON policies (scope) WHERE is_default`,
	`CREATE TABLE IF NOT EXISTS audits (
		id TEXT PRIMARY KEY,
		creative_id TEXT NOT NULL REFERENCES creatives (id) ON DELETE CASCADE,
		policy_id TEXT NOT NULL REFERENCES policies (id),
		compliance_score DOUBLE PRECISION NOT NULL,
		performance_score DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL,
		issues JSONB NOT NULL DEFAULT '[]',
		recommendations TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS audits_creative_created ON audits (creative_id, created_at DESC)`,
}

type seedAccount struct {
	ExternalID string
	Name       string
}

func setupLogger() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

func applySchema(ctx context.Context, tx *sql.Tx) {
	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("ERRO ao aplicar comando %d do schema: %v", i+1, err)
		}
	}
	log.Printf("Schema aplicado (%d comandos)", len(schema))
}

// seedDefaultPolicy cria a política global padrão quando ainda não existe nenhuma
func seedDefaultPolicy(ctx context.Context, tx *sql.Tx) {
	var exists bool
	err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM policies WHERE scope = $1 AND is_default)`, domain.PolicyScopeGlobal).Scan(&exists)
	if err != nil {
		log.Fatalf("ERRO ao verificar política padrão: %v", err)
	}
	if exists {
		log.Println("Política padrão já cadastrada")
		return
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO policies (id, name, description, scope, is_default, min_ctr, min_conversions, max_frequency) VALUES ($1, $2, $3, $4, TRUE, $5, $6, $7)`,
		utils.MustGenerateID(), "Padrão", "Política global aplicada quando nenhuma outra é escolhida", domain.PolicyScopeGlobal, 1.0, 1, 3.0,
	)
	if err != nil {
		log.Fatalf("ERRO ao inserir política padrão: %v", err)
	}
	log.Println("Política padrão criada")
}

func insertIntegrations(ctx context.Context, tx *sql.Tx, accounts []seedAccount, token string) {
	if len(accounts) == 0 {
		return
	}

	log.Printf("Iniciando inserção de %d integrações...", len(accounts))
	startTime := time.Now()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO integrations (id, platform, external_account_id, account_name, status, access_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (platform, external_account_id) DO UPDATE SET account_name = EXCLUDED.account_name, access_token = EXCLUDED.access_token`)
	if err != nil {
		log.Fatalf("ERRO ao preparar statement para integrations: %v", err)
	}
	defer stmt.Close()

	successCount := 0
	errorCount := 0
	for i, a := range accounts {
		_, err := stmt.ExecContext(ctx, utils.MustGenerateID(), domain.IntegrationPlatformMeta, a.ExternalID, a.Name, domain.IntegrationStatusActive, token)
		if err != nil {
			log.Printf("ERRO ao inserir integração [%d/%d] %s: %v", i+1, len(accounts), a.Name, err)
			errorCount++
			continue
		}
		successCount++
	}

	log.Printf("Inserção de integrações concluída em %v. Sucesso: %d, Erros: %d", time.Since(startTime), successCount, errorCount)
}

// parseAccounts lê SEED_META_ACCOUNTS no formato "external_id:nome,external_id:nome"
func parseAccounts(raw string) []seedAccount {
	accounts := make([]seedAccount, 0)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		externalID, name, found := strings.Cut(item, ":")
		if !found {
			name = externalID
		}
		accounts = append(accounts, seedAccount{ExternalID: strings.TrimPrefix(externalID, "act_"), Name: name})
	}
	return accounts
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("ERRO ao abrir conexão: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ERRO ao conectar no banco: %v", err)
	}

	startTime := time.Now()
	log.Println("Iniciando transação...")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Fatalf("ERRO ao iniciar transação: %v", err)
	}

	applySchema(ctx, tx)
	seedDefaultPolicy(ctx, tx)
	insertIntegrations(ctx, tx, parseAccounts(os.Getenv("SEED_META_ACCOUNTS")), os.Getenv("SEED_META_TOKEN"))

	if err := tx.Commit(); err != nil {
		log.Printf("ERRO ao confirmar transação: %v", err)
		if err := tx.Rollback(); err != nil {
			log.Fatalf("ERRO ao reverter transação: %v", err)
		}
		log.Println("Transação revertida")
		os.Exit(1)
	}

	log.Printf("Carga inicial concluída em %v!", time.Since(startTime))
}
