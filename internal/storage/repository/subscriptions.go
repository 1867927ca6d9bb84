package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/billing-gateway/internal/models"
)

// CreateSubscription вставляет новую подписку и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int64, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_email, username, subscription_name,
				  subscription_period, subscription_start_date, subscription_end_date)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserEmail, sub.Username, sub.Name, sub.PeriodMonths,
		sub.StartDate, sub.EndDate).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListSubscriptions возвращает неудалённые подписки пользователя.
// Отсутствие подписок — не ошибка, возвращается пустой список.
func (s *Storage) ListSubscriptions(ctx context.Context, userEmail string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_email, username, subscription_name, subscription_period,
				  subscription_start_date, subscription_end_date
			  FROM subscriptions
			  WHERE user_email = $1 AND deleted_at IS NULL
			  ORDER BY subscription_start_date`
	rows, err := s.DB.QueryContext(ctx, query, userEmail)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Subscription, 0)
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(&sub.ID, &sub.UserEmail, &sub.Username, &sub.Name,
			&sub.PeriodMonths, &sub.StartDate, &sub.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SoftDeleteSubscription помечает подписку удалённой по email и названию,
// возвращает количество затронутых строк.
func (s *Storage) SoftDeleteSubscription(ctx context.Context, userEmail, name string) (int64, error) {
	const op = "storage.SoftDeleteSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions SET deleted_at = NOW()
			  WHERE user_email = $1 AND subscription_name = $2 AND deleted_at IS NULL`
	result, err := s.DB.ExecContext(ctx, query, userEmail, name)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
