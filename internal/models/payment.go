package models

import "time"

// Статусы платежа. Платёж создаётся в StatusInProgress и ровно один раз
// переходит в StatusPaid или StatusFailed, обратных переходов нет.
const (
	StatusInProgress = "In Progress"
	StatusPaid       = "Paid"
	StatusFailed     = "Failed"
)

// Payment представляет платёж пользователя через платёжного провайдера.
// OrderID — идентификатор заказа, выданный провайдером; по нему платёж
// находится в колбэке подтверждения.
type Payment struct {
	ID                  int64      // Числовой идентификатор записи
	UserUID             string     // UID пользователя, может быть пустым
	UserEmail           string     // Email пользователя
	Amount              float64    // Сумма в USD
	TotalBalance        int        // Начисляемый баланс
	BalanceDurationDays int        // Срок действия баланса в днях
	Plan                string     // Идентификатор тарифа
	Status              string     // Текущий статус платежа
	OrderID             string     // Идентификатор заказа у провайдера
	CreatedAt           time.Time  // Время создания
	UpdatedAt           *time.Time // Время последнего изменения статуса
}

// CreatePaymentRequest используется для приёма запроса на создание платежа.
type CreatePaymentRequest struct {
	UserEmail           string  `json:"user_email" validate:"required,email"`
	Amount              float64 `json:"amount" validate:"required,gt=0"`
	TotalBalance        int     `json:"total_balance" validate:"required,gt=0"`
	BalanceDurationDays int     `json:"balance_duration_days" validate:"required,gt=0"`
	Plan                string  `json:"plan" validate:"required"`
}
