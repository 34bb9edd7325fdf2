package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"github.com/vfg2006/creative-audit-api/internal/usecases/auditing"
	"github.com/vfg2006/creative-audit-api/internal/usecases/policying"
	"github.com/vfg2006/creative-audit-api/internal/usecases/syncing"
	"github.com/vfg2006/creative-audit-api/pkg/apiErrors"
)

type errorMapping struct {
	target  error
	code    string
	message string
}

// Ordem importa: o primeiro alvo que casar com errors.Is define o código
var auditErrorMappings = []errorMapping{
	{policying.ErrNoPolicyAvailable, apiErrors.ErrNoPolicyAvailable, "Nenhuma política global cadastrada"},
	{policying.ErrPolicySelectionRequired, apiErrors.ErrPolicySelectionRequired, "Escolha uma política"},
	{auditing.ErrPolicySelectionRequired, apiErrors.ErrPolicySelectionRequired, "Escolha a nova política"},
	{policying.ErrUnknownPolicy, apiErrors.ErrUnknownPolicy, "A política escolhida não existe mais"},
	{policying.ErrInvalidIntent, apiErrors.ErrInvalidRequest, "Intenção de análise inválida"},
	{auditing.ErrIllegalTransition, apiErrors.ErrInvalidRequest, "Escolha de política inválida"},
	{auditing.ErrEmptyBatch, apiErrors.ErrEmptyBatch, "Nenhum criativo selecionado"},
	{auditing.ErrBatchInProgress, apiErrors.ErrBatchInProgress, "Já existe uma análise em andamento"},
	{auditing.ErrJobNotFound, apiErrors.ErrNotFound, "Análise não encontrada"},
	{auditing.ErrJobRunning, apiErrors.ErrJobStillRunning, "A análise ainda está em andamento"},
	{auditing.ErrReanalysisInProgress, apiErrors.ErrReanalysisInProgress, "O criativo já está sendo reprocessado"},
	{auditing.ErrReanalysisDeleteFailed, apiErrors.ErrReanalysisDeleteFailed, "Não foi possível remover a auditoria anterior, nada foi alterado"},
	{auditing.ErrReprocessingFailed, apiErrors.ErrReprocessingFailed, "A auditoria anterior foi removida e a nova análise falhou"},
	{domain.ErrAuditNotFound, apiErrors.ErrNotFound, "Auditoria não encontrada"},
}

var syncErrorMappings = []errorMapping{
	{syncing.ErrSyncInProgress, apiErrors.ErrSyncInProgress, "A integração já está sincronizando"},
	{syncing.ErrSessionBusy, apiErrors.ErrSyncInProgress, "A sincronização ainda está em andamento"},
	{syncing.ErrSessionAwaitingDecision, apiErrors.ErrSyncAwaitingDecision, "Continue ou feche a sincronização parcial"},
	{syncing.ErrSessionNotResumable, apiErrors.ErrSyncNotResumable, "Reconecte a conta antes de continuar"},
	{syncing.ErrSessionNotFound, apiErrors.ErrSyncSessionNotFound, "Nenhuma sincronização para esta integração"},
}

func writeMappedError(w http.ResponseWriter, err error, mappings []errorMapping, details any) {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			apiErrors.WriteError(w, m.code, m.message, details)
			return
		}
	}

	logrus.WithError(err).Error("Erro não mapeado")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
}

func writeAuditError(w http.ResponseWriter, err error) {
	var details any
	var reanalysisErr *auditing.ReanalysisError
	if errors.As(err, &reanalysisErr) {
		fields := map[string]any{
			"creative_id":        reanalysisErr.CreativeID,
			"stage":              reanalysisErr.Stage,
			"audit_left_missing": reanalysisErr.AuditLeftMissing(),
		}
		if reanalysisErr.Err != nil {
			fields["cause"] = reanalysisErr.Err.Error()
		}
		details = fields
	}
	writeMappedError(w, err, auditErrorMappings, details)
}

func writeSyncError(w http.ResponseWriter, err error) {
	writeMappedError(w, err, syncErrorMappings, nil)
}
