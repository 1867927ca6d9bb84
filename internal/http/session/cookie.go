// Package session работает с cookie сессии: установка подписанного токена
// после входа и очистка при выходе. Атрибуты cookie при установке и очистке
// совпадают, иначе браузер не удалит cookie.
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/billing-gateway/internal/config"
)

// CookieName — имя cookie с токеном сессии.
const CookieName = "cookie_session"

// Writer устанавливает и очищает cookie сессии с одинаковыми атрибутами.
type Writer struct {
	secure   bool
	sameSite http.SameSite
	maxAge   time.Duration
}

// NewWriter создает Writer по конфигурации cookie и времени жизни токена.
func NewWriter(cfg config.Cookie, tokenTTL time.Duration) *Writer {
	return &Writer{
		secure:   cfg.Secure,
		sameSite: parseSameSite(cfg.SameSite),
		maxAge:   tokenTTL,
	}
}

// Set устанавливает cookie сессии с токеном.
func (wr *Writer) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(wr.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   wr.secure,
		SameSite: wr.sameSite,
	})
}

// Clear удаляет cookie сессии. Атрибуты повторяют Set, кроме MaxAge.
func (wr *Writer) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   wr.secure,
		SameSite: wr.sameSite,
	})
}

// parseSameSite переводит строку конфигурации в http.SameSite,
// непонятные значения трактуются как lax.
func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
