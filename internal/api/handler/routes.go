package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/vfg2006/creative-audit-api/internal/api/handler/router"
	"github.com/vfg2006/creative-audit-api/internal/realtime"
	"github.com/vfg2006/creative-audit-api/internal/usecases/auditing"
	"github.com/vfg2006/creative-audit-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Audits(service auditing.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/audits/policy-resolution",
			Method:      http.MethodPost,
			Handler:     ResolvePolicy(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/audit-jobs",
			Method:      http.MethodPost,
			Handler:     StartAuditJob(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/audit-jobs",
			Method:      http.MethodGet,
			Handler:     ActiveAuditJob(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/audit-jobs/:id",
			Method:      http.MethodGet,
			Handler:     GetAuditJob(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/audit-jobs/:id",
			Method:      http.MethodDelete,
			Handler:     DismissAuditJob(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/creatives/:id/audit",
			Method:      http.MethodGet,
			Handler:     CurrentCreativeAudit(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/creatives/:id/audits",
			Method:      http.MethodGet,
			Handler:     ListCreativeAudits(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/creatives/:id/reanalysis",
			Method:      http.MethodPost,
			Handler:     ReanalyzeCreative(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Integrations(integrations IntegrationLister, controller SyncController) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/integrations",
			Method:      http.MethodGet,
			Handler:     ListIntegrations(integrations),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/integrations/:id/sync",
			Method:      http.MethodPost,
			Handler:     StartIntegrationSync(controller),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/integrations/:id/sync/continue",
			Method:      http.MethodPost,
			Handler:     ContinueIntegrationSync(controller),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/integrations/:id/sync",
			Method:      http.MethodGet,
			Handler:     GetIntegrationSync(controller),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/integrations/:id/sync",
			Method:      http.MethodDelete,
			Handler:     CloseIntegrationSync(controller),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/integrations-sync",
			Method:      http.MethodPost,
			Handler:     SyncAllIntegrations(controller),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Progress(hub *realtime.Hub, upgrader websocket.Upgrader) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/ws/progress",
			Method:      http.MethodGet,
			Handler:     ProgressStream(hub, upgrader),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
