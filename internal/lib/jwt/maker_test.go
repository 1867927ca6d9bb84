package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParse(t *testing.T) {
	maker := NewMaker("test-secret-key", 4*time.Hour)

	tokenStr, err := maker.GenerateToken("a@b.com", "A")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := maker.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "A", claims.Name)

	expiresIn := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, expiresIn, 3*time.Hour+59*time.Minute)
	assert.LessOrEqual(t, expiresIn, 4*time.Hour)
}

func TestMaker_ParseToken_Errors(t *testing.T) {
	maker := NewMaker("test-secret-key", 4*time.Hour)

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "истекший токен",
			token: func(t *testing.T) string {
				expired := NewMaker("test-secret-key", -time.Hour)
				tokenStr, err := expired.GenerateToken("a@b.com", "A")
				require.NoError(t, err)
				return tokenStr
			},
			wantErr: ErrTokenExpired,
		},
		{
			name: "токен подписан другим ключом",
			token: func(t *testing.T) string {
				other := NewMaker("other-secret-key", 4*time.Hour)
				tokenStr, err := other.GenerateToken("a@b.com", "A")
				require.NoError(t, err)
				return tokenStr
			},
			wantErr: ErrTokenInvalid,
		},
		{
			name: "испорченный токен",
			token: func(t *testing.T) string {
				tokenStr, err := maker.GenerateToken("a@b.com", "A")
				require.NoError(t, err)
				return tokenStr + "x"
			},
			wantErr: ErrTokenInvalid,
		},
		{
			name: "мусор вместо токена",
			token: func(_ *testing.T) string {
				return "not-a-jwt"
			},
			wantErr: ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}
