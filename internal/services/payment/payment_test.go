package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/billing-gateway/internal/lib/workerpool"
	"github.com/magabrotheeeer/billing-gateway/internal/models"
	"github.com/magabrotheeeer/billing-gateway/internal/paypal"
	"github.com/magabrotheeeer/billing-gateway/internal/storage/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) FindInProgressOrderID(ctx context.Context, userEmail string) (string, bool, error) {
	args := m.Called(ctx, userEmail)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockRepository) UpdatePaymentStatus(ctx context.Context, orderID, status string) (int64, error) {
	args := m.Called(ctx, orderID, status)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockRepository) CreatePayment(ctx context.Context, p models.Payment) (int64, error) {
	args := m.Called(ctx, p)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockRepository) CreatePaymentStrict(ctx context.Context, p models.Payment) (int64, error) {
	args := m.Called(ctx, p)
	return int64(args.Int(0)), args.Error(1)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GetAccessToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) CreateOrder(ctx context.Context, accessToken string, amountUSD float64) (*paypal.Order, error) {
	args := m.Called(ctx, accessToken, amountUSD)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paypal.Order), args.Error(1)
}

func (m *MockProvider) CaptureOrder(ctx context.Context, accessToken, orderID string) (bool, error) {
	args := m.Called(ctx, accessToken, orderID)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func testRequest() models.CreatePaymentRequest {
	return models.CreatePaymentRequest{
		UserEmail:           "a@b.com",
		Amount:              49.99,
		TotalBalance:        100,
		BalanceDurationDays: 30,
		Plan:                "basic",
	}
}

func TestService_Create(t *testing.T) {
	order := &paypal.Order{ID: "ORDER-1", ApproveURL: "https://paypal.example.com/approve"}

	tests := []struct {
		name       string
		strict     bool
		setupMocks func(r *MockRepository, p *MockProvider)
		wantURL    string
		wantErr    bool
	}{
		{
			name: "вытеснение прежнего незавершенного платежа",
			setupMocks: func(r *MockRepository, p *MockProvider) {
				r.On("FindInProgressOrderID", mock.Anything, "a@b.com").Return("OLD-1", true, nil).Once()
				r.On("UpdatePaymentStatus", mock.Anything, "OLD-1", models.StatusFailed).Return(1, nil).Once()
				p.On("GetAccessToken", mock.Anything).Return("token", nil).Once()
				p.On("CreateOrder", mock.Anything, "token", 49.99).Return(order, nil).Once()
				r.On("GetUserByEmail", mock.Anything, "a@b.com").
					Return(&models.User{UID: "uid-1", Email: "a@b.com"}, nil).Once()
				r.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
					return p.Status == models.StatusInProgress &&
						p.OrderID == "ORDER-1" && p.UserUID == "uid-1"
				})).Return(7, nil).Once()
			},
			wantURL: "https://paypal.example.com/approve",
		},
		{
			name: "незавершенных платежей нет",
			setupMocks: func(r *MockRepository, p *MockProvider) {
				r.On("FindInProgressOrderID", mock.Anything, "a@b.com").Return("", false, nil).Once()
				p.On("GetAccessToken", mock.Anything).Return("token", nil).Once()
				p.On("CreateOrder", mock.Anything, "token", 49.99).Return(order, nil).Once()
				r.On("GetUserByEmail", mock.Anything, "a@b.com").
					Return(nil, repository.ErrNotFound).Once()
				r.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
					return p.UserUID == ""
				})).Return(7, nil).Once()
			},
			wantURL: "https://paypal.example.com/approve",
		},
		{
			name: "провайдер не выдал access token",
			setupMocks: func(r *MockRepository, p *MockProvider) {
				r.On("FindInProgressOrderID", mock.Anything, "a@b.com").Return("", false, nil).Once()
				p.On("GetAccessToken", mock.Anything).Return("", paypal.ErrUnavailable).Once()
			},
			wantErr: true,
		},
		{
			name: "провайдер отказал в заказе - мягкий редирект",
			setupMocks: func(r *MockRepository, p *MockProvider) {
				r.On("FindInProgressOrderID", mock.Anything, "a@b.com").Return("", false, nil).Once()
				p.On("GetAccessToken", mock.Anything).Return("token", nil).Once()
				p.On("CreateOrder", mock.Anything, "token", 49.99).
					Return(nil, paypal.ErrOrderRejected).Once()
			},
			wantURL: "https://site.example.com/error",
		},
		{
			name: "ошибка вытеснения останавливает операцию",
			setupMocks: func(r *MockRepository, _ *MockProvider) {
				r.On("FindInProgressOrderID", mock.Anything, "a@b.com").
					Return("", false, errors.New("db down")).Once()
			},
			wantErr: true,
		},
		{
			name:   "строгий режим использует транзакционное вытеснение",
			strict: true,
			setupMocks: func(r *MockRepository, p *MockProvider) {
				p.On("GetAccessToken", mock.Anything).Return("token", nil).Once()
				p.On("CreateOrder", mock.Anything, "token", 49.99).Return(order, nil).Once()
				r.On("GetUserByEmail", mock.Anything, "a@b.com").
					Return(&models.User{UID: "uid-1"}, nil).Once()
				r.On("CreatePaymentStrict", mock.Anything, mock.AnythingOfType("models.Payment")).
					Return(7, nil).Once()
			},
			wantURL: "https://paypal.example.com/approve",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			provider := new(MockProvider)
			tt.setupMocks(repo, provider)

			svc := New(repo, provider, nil, workerpool.New(2), newNoopLogger(),
				"https://site.example.com", tt.strict)

			url, err := svc.Create(context.Background(), testRequest())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantURL, url)
			}
			repo.AssertExpectations(t)
			provider.AssertExpectations(t)
		})
	}
}

func TestService_Finalize(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *MockRepository, p *MockProvider, n *MockNotifier)
		wantPage   string
		wantErr    bool
	}{
		{
			name: "успешное подтверждение",
			setupMocks: func(r *MockRepository, p *MockProvider, n *MockNotifier) {
				p.On("GetAccessToken", mock.Anything).Return("token", nil).Once()
				p.On("CaptureOrder", mock.Anything, "token", "ORDER-1").Return(true, nil).Once()
				r.On("UpdatePaymentStatus", mock.Anything, "ORDER-1", models.StatusPaid).Return(1, nil).Once()
				n.On("Publish", "payments.status", mock.MatchedBy(func(e Event) bool {
					return e.OrderID == "ORDER-1" && e.Status == models.StatusPaid
				})).Return(nil).Once()
			},
			wantPage: PageProfile,
		},
		{
			name: "провайдер отказал в подтверждении",
			setupMocks: func(r *MockRepository, p *MockProvider, n *MockNotifier) {
				p.On("GetAccessToken", mock.Anything).Return("token", nil).Once()
				p.On("CaptureOrder", mock.Anything, "token", "ORDER-1").Return(false, nil).Once()
				r.On("UpdatePaymentStatus", mock.Anything, "ORDER-1", models.StatusFailed).Return(1, nil).Once()
				n.On("Publish", "payments.status", mock.MatchedBy(func(e Event) bool {
					return e.Status == models.StatusFailed
				})).Return(nil).Once()
			},
			wantPage: PagePaymentError,
		},
		{
			name: "провайдер не выдал access token",
			setupMocks: func(_ *MockRepository, p *MockProvider, _ *MockNotifier) {
				p.On("GetAccessToken", mock.Anything).Return("", paypal.ErrUnavailable).Once()
			},
			wantErr: true,
		},
		{
			name: "ошибка обновления статуса после capture",
			setupMocks: func(r *MockRepository, p *MockProvider, _ *MockNotifier) {
				p.On("GetAccessToken", mock.Anything).Return("token", nil).Once()
				p.On("CaptureOrder", mock.Anything, "token", "ORDER-1").Return(true, nil).Once()
				r.On("UpdatePaymentStatus", mock.Anything, "ORDER-1", models.StatusPaid).
					Return(0, errors.New("db down")).Once()
			},
			wantErr: true,
		},
		{
			name: "сбой публикации события не ломает финализацию",
			setupMocks: func(r *MockRepository, p *MockProvider, n *MockNotifier) {
				p.On("GetAccessToken", mock.Anything).Return("token", nil).Once()
				p.On("CaptureOrder", mock.Anything, "token", "ORDER-1").Return(true, nil).Once()
				r.On("UpdatePaymentStatus", mock.Anything, "ORDER-1", models.StatusPaid).Return(1, nil).Once()
				n.On("Publish", "payments.status", mock.Anything).
					Return(errors.New("broker down")).Once()
			},
			wantPage: PageProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			provider := new(MockProvider)
			notifier := new(MockNotifier)
			tt.setupMocks(repo, provider, notifier)

			svc := New(repo, provider, notifier, workerpool.New(2), newNoopLogger(),
				"https://site.example.com", false)

			page, err := svc.Finalize(context.Background(), "ORDER-1")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantPage, page)
			}
			repo.AssertExpectations(t)
			provider.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}
