package googleoauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/billing-gateway/internal/config"
)

func newTestClient() *Client {
	return NewClient(config.GoogleOAuth{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}, "https://admin.example.com")
}

func TestClient_ConsentURL(t *testing.T) {
	client := newTestClient()

	consentURL, err := url.Parse(client.ConsentURL())
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", consentURL.Host)
	q := consentURL.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "https://admin.example.com/auth/google/callback", q.Get("redirect_uri"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
}

func TestClient_Exchange(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
		wantErr bool
	}{
		{
			name: "успешный обмен кода",
			handler: func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "the-code", r.PostForm.Get("code"))
				assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
				assert.Equal(t, "https://admin.example.com/auth/google/callback", r.PostForm.Get("redirect_uri"))
				_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "access-1"})
			},
			want: "access-1",
		},
		{
			name: "google вернул ошибку",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			wantErr: true,
		},
		{
			name: "пустой access token",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := newTestClient()
			client.tokenURL = srv.URL

			token, err := client.Exchange(context.Background(), "the-code")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestClient_FetchUserInfo(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    *UserInfo
		wantErr bool
	}{
		{
			name: "успешное получение профиля",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
				_ = json.NewEncoder(w).Encode(map[string]string{
					"email": "a@b.com",
					"name":  "A",
				})
			},
			want: &UserInfo{Email: "a@b.com", Name: "A"},
		},
		{
			name: "профиль без email",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{"name": "A"})
			},
			wantErr: true,
		},
		{
			name: "google вернул 401",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := newTestClient()
			client.userinfoURL = srv.URL

			info, err := client.FetchUserInfo(context.Background(), "access-1")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, info)
		})
	}
}
