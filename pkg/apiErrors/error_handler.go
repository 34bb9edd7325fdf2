package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro expostos ao painel
const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrNotFound            = "VAL_004" // Recurso não encontrado

	// Erros de política
	ErrNoPolicyAvailable       = "POL_001" // Nenhuma política global cadastrada
	ErrPolicySelectionRequired = "POL_002" // Política não escolhida
	ErrUnknownPolicy           = "POL_003" // Política inexistente

	// Erros de análise em lote
	ErrEmptyBatch      = "BAT_001" // Nenhum criativo selecionado
	ErrBatchInProgress = "BAT_002" // Já existe um lote em andamento
	ErrJobStillRunning = "BAT_003" // Lote ainda em execução, não pode ser dispensado

	// Erros de reprocessamento
	ErrReanalysisDeleteFailed = "REA_001" // Falha ao remover auditoria anterior, nada mudou
	ErrReprocessingFailed     = "REA_002" // Auditoria removida e nova análise falhou
	ErrReanalysisInProgress   = "REA_003" // Reprocessamento já em andamento

	// Erros de sincronização
	ErrSyncInProgress          = "SYN_001" // Sincronização em andamento
	ErrSyncAwaitingDecision    = "SYN_002" // Sessão parcial aguardando continuar/fechar
	ErrSyncNotResumable        = "SYN_003" // Sessão exige reautenticação
	ErrSyncSessionNotFound     = "SYN_004" // Sessão inexistente
	ErrIntegrationUnauthorized = "SYN_005" // Token da integração inválido

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:            http.StatusUnauthorized,
	ErrExpiredToken:            http.StatusUnauthorized,
	ErrInsufficientPrivilege:   http.StatusForbidden,
	ErrInvalidRequest:          http.StatusBadRequest,
	ErrMissingRequiredData:     http.StatusBadRequest,
	ErrInvalidFormat:           http.StatusBadRequest,
	ErrNotFound:                http.StatusNotFound,
	ErrNoPolicyAvailable:       http.StatusUnprocessableEntity,
	ErrPolicySelectionRequired: http.StatusBadRequest,
	ErrUnknownPolicy:           http.StatusBadRequest,
	ErrEmptyBatch:              http.StatusBadRequest,
	ErrBatchInProgress:         http.StatusConflict,
	ErrJobStillRunning:         http.StatusConflict,
	ErrReanalysisDeleteFailed:  http.StatusBadGateway,
	ErrReprocessingFailed:      http.StatusBadGateway,
	ErrReanalysisInProgress:    http.StatusConflict,
	ErrSyncInProgress:          http.StatusConflict,
	ErrSyncAwaitingDecision:    http.StatusConflict,
	ErrSyncNotResumable:        http.StatusConflict,
	ErrSyncSessionNotFound:     http.StatusNotFound,
	ErrIntegrationUnauthorized: http.StatusUnauthorized,
	ErrInternalServer:          http.StatusInternalServerError,
	ErrDatabaseOperation:       http.StatusInternalServerError,
	ErrExternalService:         http.StatusBadGateway,
	ErrCommunication:           http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP de um código, 500 quando desconhecido
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
