//go:generate mockgen -source=integration_sync.go -destination=mocks/mock_integration_sync.go -package=mocks

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/config"
	"github.com/vfg2006/creative-audit-api/internal/usecases/syncing"
)

// SyncAllRunner é a operação de sincronizar todas as integrações
type SyncAllRunner interface {
	SyncAll(ctx context.Context) (*syncing.SyncAllSummary, error)
}

// IntegrationSyncConfig representa a configuração do agendador de sincronização
type IntegrationSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// IntegrationSyncService agenda a sincronização de todas as integrações e permite disparo manual
type IntegrationSyncService struct {
	scheduler           *gocron.Scheduler
	config              IntegrationSyncConfig
	runner              SyncAllRunner
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *syncing.SyncAllSummary
	lastError           string
}

func NewIntegrationSyncService(runner SyncAllRunner, appConfig *config.Config) *IntegrationSyncService {
	syncConfig := IntegrationSyncConfig{
		CronSchedule: appConfig.IntegrationSync.CronSchedule,
		SyncEnabled:  appConfig.IntegrationSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de integrações carregada")

	return &IntegrationSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		runner:    runner,
	}
}

// Start inicia o agendador
func (s *IntegrationSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada de integrações desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de integrações")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllIntegrations(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de integrações: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de integrações")
		s.scheduler.Stop()
	}()

	return nil
}

// tryBegin marca a execução como em andamento; false se já havia uma
func (s *IntegrationSyncService) tryBegin() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *IntegrationSyncService) syncAllIntegrations(ctx context.Context) {
	if !s.tryBegin() {
		logrus.Info("Sincronização de integrações já em andamento, ignorando")
		return
	}
	s.run(ctx)
}

func (s *IntegrationSyncService) run(ctx context.Context) {
	startTime := time.Now()
	logrus.Info("Iniciando sincronização de todas as integrações")

	summary, err := s.runner.SyncAll(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro ao sincronizar integrações")
		return
	}

	s.lastError = ""
	s.lastSummary = summary

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"total":     summary.Total,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
		"creatives": summary.Counts.Creatives,
	}).Info("Sincronização de integrações concluída")
}

// TriggerManualSync dispara a sincronização em segundo plano. Devolve false se já havia uma em andamento.
func (s *IntegrationSyncService) TriggerManualSync() bool {
	if !s.tryBegin() {
		logrus.Info("Sincronização de integrações já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual de integrações")
	go s.run(context.Background())
	return true
}

// GetStatus retorna o status atual do agendador
func (s *IntegrationSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
	if s.lastSummary != nil {
		status["last_summary"] = s.lastSummary
	}
	if s.lastError != "" {
		status["last_error"] = s.lastError
	}
	return status
}
