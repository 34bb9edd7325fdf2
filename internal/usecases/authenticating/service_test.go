package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creative-audit-api/internal/config"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"github.com/vfg2006/creative-audit-api/pkg/apiErrors"
)

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, domain.Claims{
		UserID:     7,
		UserRoleID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService(&config.Config{SecretKey: "segredo"})

	tests := []struct {
		name     string
		token    func(t *testing.T) string
		validate func(t *testing.T, claims *domain.Claims, err error)
	}{
		{
			name: "Token válido",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("segredo"), time.Now().Add(time.Hour))
			},
			validate: func(t *testing.T, claims *domain.Claims, err error) {
				require.NoError(t, err)
				assert.Equal(t, 7, claims.UserID)
				assert.Equal(t, 1, claims.UserRoleID)
			},
		},
		{
			name: "Token expirado",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("segredo"), time.Now().Add(-time.Hour))
			},
			validate: func(t *testing.T, claims *domain.Claims, err error) {
				assert.Nil(t, claims)
				assert.ErrorIs(t, err, ErrExpiredToken)

				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, apiErrors.ErrExpiredToken, authErr.Code)
			},
		},
		{
			name: "Assinado com outra chave",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("outra"), time.Now().Add(time.Hour))
			},
			validate: func(t *testing.T, _ *domain.Claims, err error) {
				assert.ErrorIs(t, err, ErrInvalidToken)
			},
		},
		{
			name:  "Lixo",
			token: func(*testing.T) string { return "abc.def" },
			validate: func(t *testing.T, _ *domain.Claims, err error) {
				assert.ErrorIs(t, err, ErrInvalidToken)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token(t))
			tt.validate(t, claims, err)
		})
	}
}
