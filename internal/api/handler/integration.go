package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"github.com/vfg2006/creative-audit-api/internal/usecases/syncing"
	"github.com/vfg2006/creative-audit-api/pkg/apiErrors"
)

// SyncController é o que as rotas de sincronização usam do syncing.Controller
type SyncController interface {
	StartSync(ctx context.Context, integrationID string) (syncing.Session, error)
	StartContinue(ctx context.Context, integrationID string) (syncing.Session, error)
	Session(integrationID string) (syncing.Session, error)
	Close(ctx context.Context, integrationID string) error
	SyncAll(ctx context.Context) (*syncing.SyncAllSummary, error)
}

type IntegrationLister interface {
	ListIntegrations(ctx context.Context) ([]*domain.Integration, error)
}

func ListIntegrations(integrations IntegrationLister) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, err := integrations.ListIntegrations(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar integrações")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar integrações", nil)
			return
		}

		writeJSON(w, http.StatusOK, list)
	})
}

// StartIntegrationSync responde com a sessão inicial; o andamento segue pelo websocket
func StartIntegrationSync(controller SyncController) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		integrationID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		session, err := controller.StartSync(r.Context(), integrationID)
		if err != nil {
			writeSyncError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, session)
	})
}

func ContinueIntegrationSync(controller SyncController) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		integrationID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		session, err := controller.StartContinue(r.Context(), integrationID)
		if err != nil {
			writeSyncError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, session)
	})
}

func GetIntegrationSync(controller SyncController) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		integrationID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		session, err := controller.Session(integrationID)
		if err != nil {
			writeSyncError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, session)
	})
}

func CloseIntegrationSync(controller SyncController) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		integrationID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := controller.Close(r.Context(), integrationID); err != nil {
			writeSyncError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func SyncAllIntegrations(controller SyncController) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		summary, err := controller.SyncAll(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Erro ao sincronizar todas as integrações")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar integrações", nil)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	})
}
