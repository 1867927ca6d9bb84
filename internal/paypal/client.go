// Package paypal реализует клиент платёжного провайдера: получение
// access token по client credentials, создание заказа и его подтверждение.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/billing-gateway/internal/config"
)

// ErrUnavailable возвращается, когда провайдер не выдал access token.
// Для вызывающей операции это жёсткий отказ.
var ErrUnavailable = errors.New("payment provider unavailable")

// ErrOrderRejected возвращается, когда провайдер отказал в создании заказа
// или не вернул ссылку подтверждения.
var ErrOrderRejected = errors.New("order rejected by provider")

// Client — клиент платёжного провайдера.
type Client struct {
	clientID   string
	secretKey  string
	apiURL     string
	returnURL  string
	cancelURL  string
	httpClient *http.Client
}

// NewClient создаёт клиент провайдера. adminBaseURL — базовый адрес этого
// сервиса, на него провайдер вернёт покупателя после оплаты или отмены.
func NewClient(cfg config.PayPal, adminBaseURL string) *Client {
	return &Client{
		clientID:   cfg.PayPalClientID,
		secretKey:  cfg.PayPalSecretKey,
		apiURL:     cfg.BaseURL,
		returnURL:  adminBaseURL + "/paypal-callback",
		cancelURL:  adminBaseURL + "/cancel-url",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetAccessToken получает access token по client credentials.
// Любой ответ кроме 200 трактуется как недоступность провайдера.
func (c *Client) GetAccessToken(ctx context.Context) (string, error) {
	const op = "paypal.GetAccessToken"

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.SetBasicAuth(c.clientID, c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, ErrUnavailable)
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	return tokenResp.AccessToken, nil
}

// CreateOrder создаёт заказ с intent CAPTURE на одну покупку в USD и
// возвращает идентификатор заказа со ссылкой подтверждения.
func (c *Client) CreateOrder(ctx context.Context, accessToken string, amountUSD float64) (*Order, error) {
	const op = "paypal.CreateOrder"

	body := createOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{
			{Amount: amount{
				CurrencyCode: "USD",
				Value:        strconv.FormatFloat(amountUSD, 'f', 2, 64),
			}},
		},
		ApplicationContext: applicationContext{
			ReturnURL:   c.returnURL,
			CancelURL:   c.cancelURL,
			LandingPage: "BILLING",
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/v2/checkout/orders/", &buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, ErrOrderRejected)
	}

	var orderResp createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, l := range orderResp.Links {
		if l.Rel == "approve" {
			return &Order{ID: orderResp.ID, ApproveURL: l.Href}, nil
		}
	}
	return nil, fmt.Errorf("%s: no approve link: %w", op, ErrOrderRejected)
}

// CaptureOrder подтверждает заказ. Успех определяется исключительно
// статусом ответа, тело не разбирается. Ошибка возвращается только при
// транспортном сбое.
func (c *Client) CaptureOrder(ctx context.Context, accessToken, orderID string) (bool, error) {
	const op = "paypal.CaptureOrder"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/v2/checkout/orders/"+orderID+"/capture", nil)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusCreated, nil
}
