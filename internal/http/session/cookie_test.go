package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/billing-gateway/internal/config"
)

func TestWriter_Set(t *testing.T) {
	wr := NewWriter(config.Cookie{Secure: true, SameSite: "lax"}, 4*time.Hour)

	rec := httptest.NewRecorder()
	wr.Set(rec, "token-1")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]

	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "token-1", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, int((4 * time.Hour).Seconds()), c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestWriter_Clear(t *testing.T) {
	wr := NewWriter(config.Cookie{Secure: true, SameSite: "lax"}, 4*time.Hour)

	rec := httptest.NewRecorder()
	wr.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]

	assert.Equal(t, CookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.HttpOnly)
}

func TestParseSameSite(t *testing.T) {
	tests := []struct {
		in   string
		want http.SameSite
	}{
		{"lax", http.SameSiteLaxMode},
		{"Strict", http.SameSiteStrictMode},
		{"none", http.SameSiteNoneMode},
		{"garbage", http.SameSiteLaxMode},
		{"", http.SameSiteLaxMode},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseSameSite(tt.in), tt.in)
	}
}
