package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/billing-gateway/internal/models"
)

// FindInProgressOrderID находит order id незавершённого платежа пользователя.
// Второе значение сообщает, есть ли такой платёж вообще.
func (s *Storage) FindInProgressOrderID(ctx context.Context, userEmail string) (string, bool, error) {
	const op = "storage.FindInProgressOrderID"
	select {
	case <-ctx.Done():
		return "", false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT order_id FROM payments
			  WHERE user_email = $1 AND status = $2
			  ORDER BY created_at DESC
			  LIMIT 1`
	var orderID string
	err := s.DB.QueryRowContext(ctx, query, userEmail, models.StatusInProgress).Scan(&orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return orderID, true, nil
}

// CreatePayment вставляет новый платёж и возвращает его ID.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) (int64, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, user_email, amount, total_balance,
				  balance_duration_days, plan, status, order_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		nullableUID(p.UserUID), p.UserEmail, p.Amount, p.TotalBalance,
		p.BalanceDurationDays, p.Plan, p.Status, p.OrderID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdatePaymentStatus обновляет статус платежа по order id и возвращает
// количество изменённых строк.
func (s *Storage) UpdatePaymentStatus(ctx context.Context, orderID, status string) (int64, error) {
	const op = "storage.UpdatePaymentStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments SET status = $2, updated_at = NOW()
			  WHERE order_id = $1`
	result, err := s.DB.ExecContext(ctx, query, orderID, status)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// CreatePaymentStrict создаёт платёж в одной транзакции с вытеснением
// прежнего незавершённого платежа. Строка пользователя блокируется через
// SELECT ... FOR UPDATE, поэтому два конкурентных создания для одного email
// сериализуются и инвариант "не больше одного In Progress" не нарушается.
func (s *Storage) CreatePaymentStrict(ctx context.Context, p models.Payment) (int64, error) {
	const op = "storage.CreatePaymentStrict"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Пользователь анкеты мог ещё не существовать, тогда блокировать нечего
	var lockedID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM users WHERE email = $1 FOR UPDATE`, p.UserEmail).Scan(&lockedID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE payments SET status = $2, updated_at = NOW()
		 WHERE user_email = $1 AND status = $3`,
		p.UserEmail, models.StatusFailed, models.StatusInProgress)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var newID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO payments (user_uid, user_email, amount, total_balance,
			 balance_duration_days, plan, status, order_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		 RETURNING id`,
		nullableUID(p.UserUID), p.UserEmail, p.Amount, p.TotalBalance,
		p.BalanceDurationDays, p.Plan, p.Status, p.OrderID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

func nullableUID(uid string) any {
	if uid == "" {
		return nil
	}
	return uid
}
