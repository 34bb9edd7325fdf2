package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"github.com/vfg2006/creative-audit-api/internal/usecases/authenticating"
	"github.com/vfg2006/creative-audit-api/pkg/apiErrors"
)

type fakeAuthenticator map[string]*domain.Claims

func (f fakeAuthenticator) ValidateToken(token string) (*domain.Claims, error) {
	if claims, ok := f[token]; ok {
		return claims, nil
	}
	if token == "expirado" {
		return nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, "")
	}
	return nil, errors.New("bad token")
}

func TestAuthAndRoleMiddleware(t *testing.T) {
	auth := fakeAuthenticator{
		"admin":   {UserID: 1, UserRoleID: RoleAdmin},
		"cliente": {UserID: 3, UserRoleID: RoleClient},
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	handler := AuthMiddleware(auth)(AdminOrSupervisor()(ok))

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{name: "Healthcheck é público", path: "/healthcheck", status: http.StatusNoContent},
		{name: "Sem token", path: "/v1/integrations", status: http.StatusUnauthorized},
		{name: "Token sem Bearer", path: "/v1/integrations", header: "admin", status: http.StatusUnauthorized},
		{name: "Token expirado", path: "/v1/integrations", header: "Bearer expirado", status: http.StatusUnauthorized},
		{name: "Admin autorizado", path: "/v1/integrations", header: "Bearer admin", status: http.StatusNoContent},
		{name: "Cliente sem permissão", path: "/v1/integrations", header: "Bearer cliente", status: http.StatusForbidden},
		{name: "Websocket com token na query", path: "/v1/ws/progress?token=admin", status: http.StatusNoContent},
		{name: "Token na query fora do websocket", path: "/v1/integrations?token=admin", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/integrations", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/integrations", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingAndPanicMiddleware(t *testing.T) {
	handler := LoggingMiddleware()(LogPanicMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/audit-jobs/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(CorrelationHeader))
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
}
