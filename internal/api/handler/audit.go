package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/usecases/auditing"
	"github.com/vfg2006/creative-audit-api/internal/usecases/policying"
	"github.com/vfg2006/creative-audit-api/pkg/apiErrors"
	"github.com/vfg2006/creative-audit-api/pkg/log"
)

// ResolvePolicy devolve as políticas globais com a padrão pré-selecionada
func ResolvePolicy(service auditing.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req policying.ResolveRequest
		if !decodeBody(w, r, &req) {
			return
		}

		chooser, err := service.PreparePolicy(r.Context(), req)
		if err != nil {
			writeAuditError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, chooser)
	})
}

func StartAuditJob(service auditing.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req auditing.StartRequest
		if !decodeBody(w, r, &req) {
			return
		}

		jobID, err := service.StartAnalysis(r.Context(), req)
		if errors.Is(err, auditing.ErrEmptyBatch) {
			// lote vazio é aviso, não falha: nada foi iniciado
			writeJSON(w, http.StatusOK, map[string]any{
				"job_id": "",
				"notice": apiErrors.APIError{Code: apiErrors.ErrEmptyBatch, Message: "Nenhum criativo selecionado"},
			})
			return
		}
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Análise não iniciada")
			writeAuditError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID})
	})
}

// ActiveAuditJob informa o lote em andamento para o painel se reconectar após recarregar
func ActiveAuditJob(service auditing.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"active_job_id": service.ActiveJobID()})
	})
}

func GetAuditJob(service auditing.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jobID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		progress, err := service.Progress(jobID)
		if err != nil {
			writeAuditError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, progress)
	})
}

func DismissAuditJob(service auditing.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jobID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.Dismiss(jobID); err != nil {
			writeAuditError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func ListCreativeAudits(service auditing.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creativeID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		audits, err := service.ListAudits(r.Context(), creativeID)
		if err != nil {
			logrus.WithField("creative_id", creativeID).WithError(err).Error("Erro ao listar auditorias")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar auditorias", nil)
			return
		}

		writeJSON(w, http.StatusOK, audits)
	})
}

// CurrentCreativeAudit devolve a auditoria vigente, já refletindo lotes e reprocessamentos recém-terminados
func CurrentCreativeAudit(service auditing.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creativeID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		audit, err := service.CurrentAudit(r.Context(), creativeID)
		if err != nil {
			writeAuditError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, audit)
	})
}

func ReanalyzeCreative(service auditing.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req auditing.ReanalysisRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.CreativeID = httprouter.ParamsFromContext(r.Context()).ByName("id")

		if req.Choice == "" {
			req.Choice = auditing.PolicyChoiceSame
		}

		outcome, err := service.Reanalyze(r.Context(), req)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"creative_id": req.CreativeID,
			}).WithError(err).Warn("Reprocessamento falhou")
			writeAuditError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, outcome)
	})
}
