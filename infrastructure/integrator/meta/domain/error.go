package metadomain

import (
	"fmt"
	"net/http"
)

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsTokenExpired verifica se o erro é de token expirado ou revogado
func (e ErrorDetails) IsTokenExpired() bool {
	// 190 é token inválido; 460, 463 e 467 são subcódigos de sessão expirada
	return e.Code == 190 ||
		(e.Type == "OAuthException" && (e.ErrorSubcode == 460 || e.ErrorSubcode == 463 || e.ErrorSubcode == 467))
}

// IsRateLimited cobre os limites de app, de usuário, de página e de conta de anúncios
func (e ErrorDetails) IsRateLimited() bool {
	switch e.Code {
	case 4, 17, 32, 613:
		return true
	}
	return e.Code >= 80000 && e.Code <= 80014
}

// APIError é uma resposta não-200 da Graph API
type APIError struct {
	StatusCode int
	Details    ErrorDetails
	Body       string
}

func (e *APIError) Error() string {
	if e.Details.Message != "" {
		return fmt.Sprintf("meta api status %d code %d: %s", e.StatusCode, e.Details.Code, e.Details.Message)
	}
	return fmt.Sprintf("meta api status %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) IsTokenExpired() bool {
	return e.Details.IsTokenExpired() || e.StatusCode == http.StatusUnauthorized
}

func (e *APIError) IsRateLimited() bool {
	return e.Details.IsRateLimited() || e.StatusCode == http.StatusTooManyRequests
}
