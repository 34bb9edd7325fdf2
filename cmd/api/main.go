package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/infrastructure/cache"
	"github.com/vfg2006/creative-audit-api/infrastructure/database/postgres"
	"github.com/vfg2006/creative-audit-api/infrastructure/integrator/analyzer"
	"github.com/vfg2006/creative-audit-api/infrastructure/integrator/analyzer/analyzerclient"
	"github.com/vfg2006/creative-audit-api/infrastructure/integrator/meta"
	"github.com/vfg2006/creative-audit-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/creative-audit-api/infrastructure/repository"
	"github.com/vfg2006/creative-audit-api/internal/api"
	"github.com/vfg2006/creative-audit-api/internal/config"
	"github.com/vfg2006/creative-audit-api/internal/realtime"
	"github.com/vfg2006/creative-audit-api/internal/scheduler"
	"github.com/vfg2006/creative-audit-api/internal/usecases/auditing"
	"github.com/vfg2006/creative-audit-api/internal/usecases/authenticating"
	"github.com/vfg2006/creative-audit-api/internal/usecases/policying"
	"github.com/vfg2006/creative-audit-api/internal/usecases/syncing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	creativeRepo := repository.NewCreativeRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	policyRepo := repository.NewPolicyRepository(pgConn)
	auditRepo := repository.NewAuditRepository(pgConn)
	integrationRepo := repository.NewIntegrationRepository(pgConn)

	auditCache := auditCache(ctx, cfg)

	authenticator := authenticating.NewService(cfg)

	hub := realtime.NewHub()

	analyzerService := analyzer.New(
		analyzerclient.NewClient(cfg.Analyzer),
		creativeRepo,
		policyRepo,
		auditRepo,
	)

	orchestrator := auditing.NewOrchestrator(analyzerService, auditCache, hub)
	reanalysis := auditing.NewReanalysisController(auditRepo, auditRepo, policyRepo, analyzerService, auditCache)
	auditService := auditing.NewService(
		policying.NewResolver(policyRepo),
		creativeRepo,
		auditRepo,
		auditCache,
		orchestrator,
		reanalysis,
	)

	metaSyncer := meta.NewSyncer(metaclient.NewClient(cfg.Meta), integrationRepo, campaignRepo, creativeRepo)
	syncController := syncing.NewController(metaSyncer, integrationRepo, hub, cfg.Sync.CompletedDwell, hub)

	// Inicia o agendador em background
	integrationSyncService := scheduler.NewIntegrationSyncService(syncController, cfg)
	if err := integrationSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de integrações")
	} else {
		logrus.Info("Agendador de sincronização de integrações iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		pgConn,
		auditService,
		integrationRepo,
		syncController,
		hub,
		authenticator,
		integrationSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// auditCache escolhe o cache de auditorias: memória por processo ou redis compartilhado
func auditCache(ctx context.Context, cfg *config.Config) auditing.AuditCache {
	if cfg.AuditCache.Backend != "redis" {
		logrus.Info("Cache de auditorias em memória")
		return cache.NewMemoryAuditCache()
	}

	client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.WithField("addr", cfg.Redis.Addr).Info("Cache de auditorias no Redis")
	return cache.NewRedisAuditCache(client, cfg.AuditCache.TTL)
}
