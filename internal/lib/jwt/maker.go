// Package jwt реализует выпуск и проверку токенов сессии (cookie_session).
//
// Токен подписывается HS256 и несёт email и имя пользователя. Валидность
// чисто криптографическая: на сервере сессия нигде не хранится.
package jwt

import (
	"errors"
	"time"
)

// ErrTokenExpired возвращается, когда срок действия токена истёк.
var ErrTokenExpired = errors.New("token expired")

// ErrTokenInvalid возвращается при битом токене: неверная подпись или структура.
var ErrTokenInvalid = errors.New("token invalid")

// MakerImpl выпускает и разбирает токены сессии на основе секретного ключа
// и времени жизни токена. Потребители объявляют собственные узкие интерфейсы
// под нужные им методы.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создаёт новый MakerImpl с секретным ключом и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
