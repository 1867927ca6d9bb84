package models

import "time"

// Subscription представляет подписку пользователя на внешний сервис.
// EndDate — производная величина: StartDate плюс PeriodMonths календарных
// месяцев. Удаление мягкое, через DeletedAt.
type Subscription struct {
	ID           int64      // Числовой идентификатор записи
	UserEmail    string     // Email владельца
	Username     string     // Отображаемое имя владельца
	Name         string     // Название подписки
	PeriodMonths int        // Период подписки в месяцах
	StartDate    time.Time  // Дата начала
	EndDate      time.Time  // Дата окончания
	DeletedAt    *time.Time // Время мягкого удаления
}

// AddSubscriptionRequest используется для приёма новой подписки.
// Период приходит строкой вида "3 month", дата начала — "2006-01-02".
type AddSubscriptionRequest struct {
	UserEmail             string `json:"user_email" validate:"required,email"`
	SubscriptionName      string `json:"subscription_name" validate:"required"`
	SubscriptionPeriod    string `json:"subscription_period" validate:"required"`
	SubscriptionStartDate string `json:"subscription_start_date" validate:"required"`
}

// ListSubscriptionsRequest используется для запроса списка подписок.
type ListSubscriptionsRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// DeleteSubscriptionRequest используется для удаления подписки по имени.
type DeleteSubscriptionRequest struct {
	Email           string `json:"email" validate:"required,email"`
	DeletedSubsName string `json:"deleted_subs_name" validate:"required"`
}

// SubscriptionItem — элемент списка подписок в ответе API.
// Даты отдаются строками в формате "02 Jan 2006", как их ждёт фронтенд.
type SubscriptionItem struct {
	Username              string `json:"username"`
	SubscriptionName      string `json:"subscription_name"`
	SubscriptionPeriod    string `json:"subscription_period"`
	SubscriptionStartDate string `json:"subscription_start_date"`
	SubscriptionEndDate   string `json:"subscription_end_date"`
}

// SubscriptionListData — полезная нагрузка ответа со списком подписок.
type SubscriptionListData struct {
	UserEmail string             `json:"user_email"`
	ListData  []SubscriptionItem `json:"list_data"`
}
