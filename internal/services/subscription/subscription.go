// Package subscription содержит операции над подписками пользователя:
// добавление с расчетом даты окончания, выдача списка через кеш и
// мягкое удаление с инвалидацией кеша.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/billing-gateway/internal/lib/month"
	"github.com/magabrotheeeer/billing-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/billing-gateway/internal/lib/workerpool"
	"github.com/magabrotheeeer/billing-gateway/internal/models"
)

// Формат дат в запросах и ответах API подписок.
const (
	startDateLayout = "2006-01-02"
	listDateLayout  = "02 Jan 2006"
)

const cacheTTL = time.Hour

// Repository описывает методы хранилища подписок.
type Repository interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) (int64, error)
	ListSubscriptions(ctx context.Context, userEmail string) ([]*models.Subscription, error)
	SoftDeleteSubscription(ctx context.Context, userEmail, name string) (int64, error)
}

// Cache описывает кеш списков подписок.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует операции над подписками.
type Service struct {
	repo  Repository
	cache Cache
	pool  *workerpool.Pool
	log   *slog.Logger
}

// New создает Service. cache может быть nil, тогда списки читаются
// напрямую из хранилища.
func New(repo Repository, cache Cache, pool *workerpool.Pool, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, pool: pool, log: log}
}

func cacheKey(email string) string {
	return "subscriptions:" + email
}

// Add разбирает период и дату начала, вычисляет дату окончания прибавлением
// календарных месяцев и сохраняет подписку. Кеш списка инвалидируется.
func (s *Service) Add(ctx context.Context, req models.AddSubscriptionRequest) error {
	const op = "services.subscription.Add"

	months, err := month.ParsePeriod(req.SubscriptionPeriod)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	startDate, err := time.Parse(startDateLayout, req.SubscriptionStartDate)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sub := models.Subscription{
		UserEmail:    req.UserEmail,
		Username:     req.UserEmail,
		Name:         req.SubscriptionName,
		PeriodMonths: months,
		StartDate:    startDate,
		EndDate:      month.AddMonths(startDate, months),
	}

	if err := s.pool.Do(ctx, func() error {
		_, err := s.repo.CreateSubscription(ctx, sub)
		return err
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(req.UserEmail)

	s.log.Info("subscription added",
		slog.String("user_email", req.UserEmail),
		slog.String("subscription_name", req.SubscriptionName))
	return nil
}

// List возвращает список активных подписок пользователя. Сначала
// проверяется кеш, при промахе список читается из хранилища и кешируется.
// Отсутствие подписок — не ошибка, list_data будет пустым.
func (s *Service) List(ctx context.Context, email string) (*models.SubscriptionListData, error) {
	const op = "services.subscription.List"

	if s.cache != nil {
		var cached models.SubscriptionListData
		found, err := s.cache.Get(cacheKey(email), &cached)
		if err != nil {
			s.log.Warn("cache read failed", sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	var subs []*models.Subscription
	if err := s.pool.Do(ctx, func() error {
		var err error
		subs, err = s.repo.ListSubscriptions(ctx, email)
		return err
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data := &models.SubscriptionListData{
		UserEmail: email,
		ListData:  make([]models.SubscriptionItem, 0, len(subs)),
	}
	for _, sub := range subs {
		data.ListData = append(data.ListData, models.SubscriptionItem{
			Username:              sub.Username,
			SubscriptionName:      sub.Name,
			SubscriptionPeriod:    fmt.Sprintf("%d month", sub.PeriodMonths),
			SubscriptionStartDate: sub.StartDate.Format(listDateLayout),
			SubscriptionEndDate:   sub.EndDate.Format(listDateLayout),
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(cacheKey(email), data, cacheTTL); err != nil {
			s.log.Warn("cache write failed", sl.Err(err))
		}
	}
	return data, nil
}

// Delete мягко удаляет подписку по email и названию. Отсутствие подписки
// с таким названием — не ошибка. Кеш списка инвалидируется.
func (s *Service) Delete(ctx context.Context, req models.DeleteSubscriptionRequest) error {
	const op = "services.subscription.Delete"

	if err := s.pool.Do(ctx, func() error {
		_, err := s.repo.SoftDeleteSubscription(ctx, req.Email, req.DeletedSubsName)
		return err
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(req.Email)

	s.log.Info("subscription deleted",
		slog.String("user_email", req.Email),
		slog.String("subscription_name", req.DeletedSubsName))
	return nil
}

// invalidate удаляет кешированный список, сбой кеша не влияет на результат.
func (s *Service) invalidate(email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(cacheKey(email)); err != nil {
		s.log.Warn("cache invalidation failed", sl.Err(err))
	}
}
