// Package payment содержит оркестрацию платёжного потока: создание заказа
// у провайдера с вытеснением прежнего незавершённого платежа и финализацию
// платежа по колбэку подтверждения.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/billing-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/billing-gateway/internal/lib/workerpool"
	"github.com/magabrotheeeer/billing-gateway/internal/models"
	"github.com/magabrotheeeer/billing-gateway/internal/paypal"
	"github.com/magabrotheeeer/billing-gateway/internal/storage/repository"
)

// Repository определяет методы хранилища, нужные платёжному потоку.
type Repository interface {
	// GetUserByEmail возвращает пользователя по email или repository.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindInProgressOrderID находит order id незавершённого платежа.
	FindInProgressOrderID(ctx context.Context, userEmail string) (string, bool, error)
	// UpdatePaymentStatus обновляет статус платежа по order id.
	UpdatePaymentStatus(ctx context.Context, orderID, status string) (int64, error)
	// CreatePayment вставляет новый платёж.
	CreatePayment(ctx context.Context, p models.Payment) (int64, error)
	// CreatePaymentStrict вставляет платёж с транзакционным вытеснением.
	CreatePaymentStrict(ctx context.Context, p models.Payment) (int64, error)
}

// Provider описывает операции платёжного провайдера.
type Provider interface {
	GetAccessToken(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, accessToken string, amountUSD float64) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, accessToken, orderID string) (bool, error)
}

// Notifier публикует события платежей для внешних потребителей.
type Notifier interface {
	Publish(routingKey string, message any) error
}

// Event — событие о смене статуса платежа, публикуемое в очередь.
type Event struct {
	OrderID string    `json:"order_id"`
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
}

// Страницы сайта, на которые перенаправляется покупатель после финализации.
const (
	PageProfile      = "user-profile"
	PagePaymentError = "payment-error"
)

// Service реализует платёжный поток.
type Service struct {
	repo       Repository
	provider   Provider
	notifier   Notifier
	pool       *workerpool.Pool
	log        *slog.Logger
	websiteURL string
	strict     bool
}

// New создаёт Service. notifier может быть nil, тогда события не публикуются.
// strict включает транзакционное вытеснение вместо неатомарного.
func New(repo Repository, provider Provider, notifier Notifier,
	pool *workerpool.Pool, log *slog.Logger, websiteURL string, strict bool) *Service {
	return &Service{
		repo:       repo,
		provider:   provider,
		notifier:   notifier,
		pool:       pool,
		log:        log,
		websiteURL: websiteURL,
		strict:     strict,
	}
}

// Create проводит создание платежа: вытесняет прежний незавершённый платёж
// пользователя, создаёт заказ у провайдера и сохраняет запись In Progress.
// Возвращает адрес, на который фронтенд отправит покупателя: ссылку
// подтверждения при успехе или страницу ошибки, если провайдер отказал
// в заказе. Отказ в выдаче access token — жёсткая ошибка.
func (s *Service) Create(ctx context.Context, req models.CreatePaymentRequest) (string, error) {
	const op = "services.payment.Create"

	if !s.strict {
		if err := s.pool.Do(ctx, func() error {
			return s.supersede(ctx, req.UserEmail)
		}); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	accessToken, err := s.provider.GetAccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.provider.CreateOrder(ctx, accessToken, req.Amount)
	if err != nil {
		// Отказ провайдера — мягкий сценарий: покупателя уводим на
		// страницу ошибки, платёж не сохраняется
		s.log.Warn("provider rejected order", sl.Err(err),
			slog.String("user_email", req.UserEmail))
		return s.websiteURL + "/error", nil
	}

	payment := models.Payment{
		UserEmail:           req.UserEmail,
		Amount:              req.Amount,
		TotalBalance:        req.TotalBalance,
		BalanceDurationDays: req.BalanceDurationDays,
		Plan:                req.Plan,
		Status:              models.StatusInProgress,
		OrderID:             order.ID,
	}

	if err := s.pool.Do(ctx, func() error {
		user, err := s.repo.GetUserByEmail(ctx, req.UserEmail)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if user != nil {
			payment.UserUID = user.UID
		}

		if s.strict {
			_, err = s.repo.CreatePaymentStrict(ctx, payment)
		} else {
			_, err = s.repo.CreatePayment(ctx, payment)
		}
		return err
	}); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment created",
		slog.String("order_id", order.ID),
		slog.String("user_email", req.UserEmail))
	return order.ApproveURL, nil
}

// supersede переводит прежний незавершённый платёж пользователя в Failed.
func (s *Service) supersede(ctx context.Context, userEmail string) error {
	orderID, found, err := s.repo.FindInProgressOrderID(ctx, userEmail)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if _, err := s.repo.UpdatePaymentStatus(ctx, orderID, models.StatusFailed); err != nil {
		return err
	}
	s.log.Info("superseded in-progress payment",
		slog.String("order_id", orderID),
		slog.String("user_email", userEmail))
	return nil
}

// Finalize подтверждает заказ у провайдера и независимо от исхода
// подтверждения фиксирует терминальный статус платежа. Возвращает страницу
// сайта для перенаправления покупателя. Подтверждение на стороне провайдера
// не компенсируется: если обновить статус не удалось, возвращается ошибка.
func (s *Service) Finalize(ctx context.Context, orderID string) (string, error) {
	const op = "services.payment.Finalize"

	accessToken, err := s.provider.GetAccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	captured, err := s.provider.CaptureOrder(ctx, accessToken, orderID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	status := models.StatusFailed
	page := PagePaymentError
	if captured {
		status = models.StatusPaid
		page = PageProfile
	}

	if err := s.pool.Do(ctx, func() error {
		_, err := s.repo.UpdatePaymentStatus(ctx, orderID, status)
		return err
	}); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.publishEvent(orderID, status)

	s.log.Info("payment finalized",
		slog.String("order_id", orderID),
		slog.String("status", status))
	return page, nil
}

// publishEvent публикует событие о смене статуса, сбой публикации не
// влияет на результат финализации.
func (s *Service) publishEvent(orderID, status string) {
	if s.notifier == nil {
		return
	}
	event := Event{OrderID: orderID, Status: status, At: time.Now().UTC()}
	if err := s.notifier.Publish("payments.status", event); err != nil {
		s.log.Warn("failed to publish payment event", sl.Err(err),
			slog.String("order_id", orderID))
	}
}
