// Package response содержит вспомогательные типы и функции для формирования
// JSON‑ответов HTTP‑обработчиков. Формы успешных ответов повторяют контракт,
// на который завязан фронтенд, поэтому меняются только вместе с ним.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает успешный JSON‑ответ с числовым статусом.
// Поле Message — текстовое сообщение об исходе операции (опционально).
// Поле RedirectURL — адрес, на который фронтенд уводит пользователя (опционально).
type Response struct {
	Status      int    `json:"status"`
	Message     string `json:"message,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// PaymentURL — ответ на создание платежа: адрес подтверждения оплаты.
type PaymentURL struct {
	PaymentURL string `json:"payment_url"`
}

// ErrorResponse — структура ошибки, также используется в Swagger-аннотациях
// @Failure как возвращаемый тип.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

// StatusError — значение статуса для ответа с ошибкой.
const StatusError = "Error"

// OKMessage возвращает успешный Response с сообщением.
func OKMessage(msg string) Response {
	return Response{
		Status:  200,
		Message: msg,
	}
}

// OKRedirect возвращает успешный Response с адресом перенаправления.
func OKRedirect(url string) Response {
	return Response{
		Status:      200,
		RedirectURL: url,
	}
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
