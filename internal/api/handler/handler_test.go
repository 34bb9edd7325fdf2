package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creative-audit-api/internal/api/handler/router"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"github.com/vfg2006/creative-audit-api/internal/usecases/auditing"
	"github.com/vfg2006/creative-audit-api/internal/usecases/policying"
	"github.com/vfg2006/creative-audit-api/internal/usecases/syncing"
	"github.com/vfg2006/creative-audit-api/pkg/apiErrors"
	"github.com/vfg2006/creative-audit-api/pkg/middleware"
)

type fakeAuditService struct {
	auditing.Service
	startErr      error
	reanalyzeErr  error
	lastReanalyze auditing.ReanalysisRequest
}

func (f *fakeAuditService) StartAnalysis(context.Context, auditing.StartRequest) (string, error) {
	if f.startErr != nil {
		return "", f.startErr
	}
	return "JOB1", nil
}

func (f *fakeAuditService) Progress(jobID string) (domain.BatchProgress, error) {
	if jobID != "JOB1" {
		return domain.BatchProgress{}, auditing.ErrJobNotFound
	}
	return domain.BatchProgress{JobID: "JOB1", Total: 3}, nil
}

func (f *fakeAuditService) Reanalyze(_ context.Context, req auditing.ReanalysisRequest) (*auditing.ReanalysisOutcome, error) {
	f.lastReanalyze = req
	if f.reanalyzeErr != nil {
		return nil, f.reanalyzeErr
	}
	return &auditing.ReanalysisOutcome{State: auditing.StateSucceeded, PolicyID: "P1"}, nil
}

func (f *fakeAuditService) CurrentAudit(_ context.Context, creativeID string) (*domain.Audit, error) {
	if creativeID != "C9" {
		return nil, domain.ErrAuditNotFound
	}
	return &domain.Audit{ID: "A2", CreativeID: "C9", PolicyID: "P1"}, nil
}

type fakeSyncController struct {
	SyncController
	startErr error
}

func (f *fakeSyncController) StartSync(_ context.Context, integrationID string) (syncing.Session, error) {
	if f.startErr != nil {
		return syncing.Session{}, f.startErr
	}
	return syncing.Session{IntegrationID: integrationID, Phase: syncing.PhaseConnecting}, nil
}

func serve(t *testing.T, routes []router.Route, roleID int, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	rt := router.New(router.WithRoutes(routes...))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.ContextKeyUser, &domain.Claims{UserID: 1, UserRoleID: roleID})
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr.Code
}

func TestAuditRoutes(t *testing.T) {
	tests := []struct {
		name     string
		service  *fakeAuditService
		role     int
		method   string
		target   string
		body     string
		validate func(t *testing.T, rec *httptest.ResponseRecorder, service *fakeAuditService)
	}{
		{
			name:    "Iniciar lote - 202 com job",
			service: &fakeAuditService{},
			role:    middleware.RoleAdmin,
			method:  http.MethodPost,
			target:  "/v1/audit-jobs",
			body:    `{"intent":"all","policy_id":"P1"}`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, _ *fakeAuditService) {
				assert.Equal(t, http.StatusAccepted, rec.Code)
				assert.JSONEq(t, `{"job_id":"JOB1"}`, rec.Body.String())
			},
		},
		{
			name:    "Lote vazio - aviso BAT_001 sem falha",
			service: &fakeAuditService{startErr: auditing.ErrEmptyBatch},
			role:    middleware.RoleAdmin,
			method:  http.MethodPost,
			target:  "/v1/audit-jobs",
			body:    `{"intent":"selected","policy_id":"P1"}`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, _ *fakeAuditService) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, `{"job_id":"","notice":{"code":"BAT_001","message":"Nenhum criativo selecionado"}}`, rec.Body.String())
			},
		},
		{
			name:    "Lote em andamento - BAT_002",
			service: &fakeAuditService{startErr: auditing.ErrBatchInProgress},
			role:    middleware.RoleSupervisor,
			method:  http.MethodPost,
			target:  "/v1/audit-jobs",
			body:    `{"intent":"all","policy_id":"P1"}`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, _ *fakeAuditService) {
				assert.Equal(t, http.StatusConflict, rec.Code)
				assert.Equal(t, apiErrors.ErrBatchInProgress, errorCode(t, rec))
			},
		},
		{
			name:    "Sem política cadastrada - POL_001",
			service: &fakeAuditService{startErr: policying.ErrNoPolicyAvailable},
			role:    middleware.RoleAdmin,
			method:  http.MethodPost,
			target:  "/v1/audit-jobs",
			body:    `{"intent":"all"}`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, _ *fakeAuditService) {
				assert.Equal(t, apiErrors.ErrNoPolicyAvailable, errorCode(t, rec))
			},
		},
		{
			name:    "Corpo inválido - VAL_003",
			service: &fakeAuditService{},
			role:    middleware.RoleAdmin,
			method:  http.MethodPost,
			target:  "/v1/audit-jobs",
			body:    `{`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, _ *fakeAuditService) {
				assert.Equal(t, apiErrors.ErrInvalidFormat, errorCode(t, rec))
			},
		},
		{
			name:    "Cliente não inicia lote",
			service: &fakeAuditService{},
			role:    middleware.RoleClient,
			method:  http.MethodPost,
			target:  "/v1/audit-jobs",
			body:    `{"intent":"all","policy_id":"P1"}`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, _ *fakeAuditService) {
				assert.Equal(t, http.StatusForbidden, rec.Code)
			},
		},
		{
			name:    "Progresso de job inexistente - 404",
			service: &fakeAuditService{},
			role:    middleware.RoleClient,
			method:  http.MethodGet,
			target:  "/v1/audit-jobs/X",
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, _ *fakeAuditService) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
			},
		},
		{
			name:    "Auditoria vigente do criativo",
			service: &fakeAuditService{},
			role:    middleware.RoleClient,
			method:  http.MethodGet,
			target:  "/v1/creatives/C9/audit",
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, _ *fakeAuditService) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"id":"A2"`)
			},
		},
		{
			name:    "Criativo sem auditoria vigente - 404",
			service: &fakeAuditService{},
			role:    middleware.RoleClient,
			method:  http.MethodGet,
			target:  "/v1/creatives/C1/audit",
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, _ *fakeAuditService) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.Equal(t, apiErrors.ErrNotFound, errorCode(t, rec))
			},
		},
		{
			name:    "Reprocessamento - criativo vem da rota e escolha padrão é a mesma política",
			service: &fakeAuditService{},
			role:    middleware.RoleAdmin,
			method:  http.MethodPost,
			target:  "/v1/creatives/C9/reanalysis",
			body:    `{"current_audit_id":"A1","current_policy_id":"P1"}`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, service *fakeAuditService) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "C9", service.lastReanalyze.CreativeID)
				assert.Equal(t, auditing.PolicyChoiceSame, service.lastReanalyze.Choice)
			},
		},
		{
			name: "Reprocessamento falhou após remover - REA_002 com detalhes",
			service: &fakeAuditService{reanalyzeErr: &auditing.ReanalysisError{
				Stage: auditing.StageAnalyze, CreativeID: "C9", Err: errors.New("engine down"),
			}},
			role:   middleware.RoleAdmin,
			method: http.MethodPost,
			target: "/v1/creatives/C9/reanalysis",
			body:   `{"current_audit_id":"A1","current_policy_id":"P1","policy_choice":"same"}`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, _ *fakeAuditService) {
				assert.Equal(t, http.StatusBadGateway, rec.Code)
				assert.Equal(t, apiErrors.ErrReprocessingFailed, errorCode(t, rec))
				assert.Contains(t, rec.Body.String(), `"audit_left_missing":true`)
			},
		},
		{
			name: "Falha ao remover - REA_001",
			service: &fakeAuditService{reanalyzeErr: &auditing.ReanalysisError{
				Stage: auditing.StageDelete, CreativeID: "C9", Err: errors.New("timeout"),
			}},
			role:   middleware.RoleAdmin,
			method: http.MethodPost,
			target: "/v1/creatives/C9/reanalysis",
			body:   `{}`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, _ *fakeAuditService) {
				assert.Equal(t, apiErrors.ErrReanalysisDeleteFailed, errorCode(t, rec))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, Audits(tt.service), tt.role, tt.method, tt.target, tt.body)
			tt.validate(t, rec, tt.service)
		})
	}
}

func TestIntegrationSyncRoutes(t *testing.T) {
	tests := []struct {
		name       string
		controller *fakeSyncController
		status     int
		code       string
	}{
		{name: "Sincronização iniciada", controller: &fakeSyncController{}, status: http.StatusAccepted},
		{name: "Já sincronizando - SYN_001", controller: &fakeSyncController{startErr: syncing.ErrSyncInProgress}, status: http.StatusConflict, code: apiErrors.ErrSyncInProgress},
		{name: "Parcial aguardando decisão - SYN_002", controller: &fakeSyncController{startErr: syncing.ErrSessionAwaitingDecision}, status: http.StatusConflict, code: apiErrors.ErrSyncAwaitingDecision},
		{name: "Erro inesperado - SRV_001", controller: &fakeSyncController{startErr: errors.New("boom")}, status: http.StatusInternalServerError, code: apiErrors.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, Integrations(nil, tt.controller), middleware.RoleAdmin, http.MethodPost, "/v1/integrations/I1/sync", "")

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, errorCode(t, rec))
			} else {
				assert.Contains(t, rec.Body.String(), `"integration_id":"I1"`)
			}
		})
	}
}

type fakeCronJob struct{ triggered int }

func (f *fakeCronJob) TriggerManualSync() bool {
	f.triggered++
	return f.triggered == 1
}

func (f *fakeCronJob) GetStatus() map[string]any { return map[string]any{"sync_enabled": true} }

func TestCronRoutes(t *testing.T) {
	job := &fakeCronJob{}
	routes := CronJobs(CronJobServices{IntegrationSyncService: job})

	rec := serve(t, routes, middleware.RoleAdmin, http.MethodPost, "/v1/cron/run/integrations", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"started":true`)

	rec = serve(t, routes, middleware.RoleAdmin, http.MethodPost, "/v1/cron/run/integrations", "")
	assert.Contains(t, rec.Body.String(), `"started":false`)

	rec = serve(t, routes, middleware.RoleAdmin, http.MethodPost, "/v1/cron/run/insights", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, routes, middleware.RoleSupervisor, http.MethodGet, "/v1/cron/status", "")
	assert.JSONEq(t, `{"integrations":{"sync_enabled":true}}`, rec.Body.String())
}
