// Package googleoauth реализует клиент Google OAuth: построение ссылки на
// страницу согласия, обмен authorization code на access token и получение
// профиля пользователя.
package googleoauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magabrotheeeer/billing-gateway/internal/config"
)

const (
	authURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenURL    = "https://oauth2.googleapis.com/token"
	userinfoURL = "https://www.googleapis.com/oauth2/v1/userinfo"
)

// UserInfo — профиль пользователя, полученный от Google.
type UserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Client — клиент Google OAuth.
type Client struct {
	clientID     string
	clientSecret string
	redirectURL  string
	tokenURL     string
	userinfoURL  string
	httpClient   *http.Client
}

// NewClient создаёт клиент. Redirect URI строится от adminBaseURL — базового
// адреса этого сервиса, на который Google вернёт пользователя с кодом.
func NewClient(cfg config.GoogleOAuth, adminBaseURL string) *Client {
	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURL:  adminBaseURL + "/auth/google/callback",
		tokenURL:     tokenURL,
		userinfoURL:  userinfoURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// ConsentURL возвращает адрес страницы согласия Google.
func (c *Client) ConsentURL() string {
	q := url.Values{
		"response_type": {"code"},
		"client_id":     {c.clientID},
		"redirect_uri":  {c.redirectURL},
		"scope":         {"openid email profile"},
	}
	return authURL + "?" + q.Encode()
}

// Exchange обменивает authorization code на access token.
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	const op = "googleoauth.Exchange"

	form := url.Values{
		"code":          {code},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"redirect_uri":  {c.redirectURL},
		"grant_type":    {"authorization_code"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var tokenData struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenData); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if tokenData.AccessToken == "" {
		return "", fmt.Errorf("%s: empty access token", op)
	}
	return tokenData.AccessToken, nil
}

// FetchUserInfo получает email и имя авторизованного пользователя.
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	const op = "googleoauth.FetchUserInfo"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("%s: profile without email", op)
	}
	return &info, nil
}
