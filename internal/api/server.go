package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/api/handler"
	"github.com/vfg2006/creative-audit-api/internal/api/handler/router"
	"github.com/vfg2006/creative-audit-api/internal/config"
	"github.com/vfg2006/creative-audit-api/internal/realtime"
	"github.com/vfg2006/creative-audit-api/internal/scheduler"
	"github.com/vfg2006/creative-audit-api/internal/usecases/auditing"
	"github.com/vfg2006/creative-audit-api/internal/usecases/authenticating"
	"github.com/vfg2006/creative-audit-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	db handler.Pinger,
	auditService auditing.Service,
	integrations handler.IntegrationLister,
	syncController handler.SyncController,
	hub *realtime.Hub,
	authenticator authenticating.Authenticator,
	integrationSyncService *scheduler.IntegrationSyncService,
) (*Server, error) {
	cronServices := handler.CronJobServices{}
	if integrationSyncService != nil {
		cronServices.IntegrationSyncService = integrationSyncService
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.Audits(auditService)...),
		router.WithRoutes(handler.Integrations(integrations, syncController)...),
		router.WithRoutes(handler.Progress(hub, realtime.NewUpgrader(config.App.AllowedOrigins))...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.App.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Run serve até receber SIGINT/SIGTERM, o contexto ser cancelado ou o listener falhar
func (s Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor de auditoria iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			logrus.WithError(err).Error("Servidor parou de aceitar conexões")
			return err
		}
		return nil
	case <-ctx.Done():
		logrus.Info("Encerrando servidor de auditoria")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

// Shutdown não espera conexões websocket sequestradas; elas caem com o processo
func (s Server) Shutdown(ctx context.Context) error {
	logrus.WithField("timeout", shutdownTimeout.String()).Info("Desligamento gracioso iniciado")
	return s.httpServer.Shutdown(ctx)
}
