// Package models содержит доменные структуры пользователя, платежа и
// подписки, а также типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет пользователя, вошедшего через Google и заполнившего
// анкету профиля. Email — уникальный ключ поиска, UID — суррогатный
// идентификатор для связей.
type User struct {
	ID          int64     // Числовой идентификатор записи
	UID         string    // Суррогатный UUID пользователя
	Name        string    // Имя пользователя
	Email       string    // Электронная почта (уникальная)
	Address     string    // Адрес
	PhoneNumber string    // Номер телефона
	CreatedAt   time.Time // Дата создания записи
}

// NewUserRequest используется для приёма анкеты нового пользователя.
// Email в теле запроса игнорируется: он всегда берётся из токена сессии.
type NewUserRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email"`
	Address     string `json:"address" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}
