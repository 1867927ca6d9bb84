package add

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/billing-gateway/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Add(ctx context.Context, req models.AddSubscriptionRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func validBody() models.AddSubscriptionRequest {
	return models.AddSubscriptionRequest{
		UserEmail:             "a@b.com",
		SubscriptionName:      "Netflix",
		SubscriptionPeriod:    "3 month",
		SubscriptionStartDate: "2024-01-15",
	}
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(s *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное добавление",
			requestBody: validBody(),
			setupMocks: func(s *MockService) {
				s.On("Add", mock.Anything, validBody()).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":200,"message":"Data was successfully updated !"}`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "пропущено название подписки",
			requestBody: models.AddSubscriptionRequest{
				UserEmail:             "a@b.com",
				SubscriptionPeriod:    "3 month",
				SubscriptionStartDate: "2024-01-15",
			},
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field SubscriptionName is a required field"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: validBody(),
			setupMocks: func(s *MockService) {
				s.On("Add", mock.Anything, validBody()).
					Return(errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not add subscription"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMocks(service)
			handler := New(newNoopLogger(), service)

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/add-subscription", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			service.AssertExpectations(t)
		})
	}
}
