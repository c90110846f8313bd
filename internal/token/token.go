// token — чтение срока действия access-токена на стороне клиента.
//
// Клиент не владеет ключом подписи и ничего не проверяет криптографически:
// exp из клеймов — подсказка планирования («пора ли продлевать»), подлинность
// токена всё равно проверяет сервер на каждом вызове. Пакет чистый: без
// состояния, без сети, результат не кэшируется.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken — строка не является структурно корректным JWT
// (три части, валидный base64/JSON, есть exp). Шлюз обязан трактовать
// эту ошибку так же, как истёкший токен: продление или logout.
var ErrMalformedToken = errors.New("malformed token")

// Claims — производное read-only представление access-токена.
// Никогда не сохраняется; пересчитывается из сырой строки на каждую проверку.
type Claims struct {
	ExpiresAt time.Time
}

// Decode извлекает exp из сырого токена без проверки подписи.
func Decode(raw string) (Claims, error) {
	const op = "token.Decode"

	var rc jwt.RegisteredClaims

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(raw, &rc); err != nil {
		return Claims{}, fmt.Errorf("%s: %w", op, ErrMalformedToken)
	}

	// Токен без exp бесполезен для планирования продления —
	// считаем его некорректным, а не вечным.
	if rc.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("%s: %w", op, ErrMalformedToken)
	}

	return Claims{ExpiresAt: rc.ExpiresAt.Time}, nil
}

// IsExpired сообщает, истёк ли токен к моменту now.
// Для некорректного токена возвращает true: с точки зрения шлюза
// «нечитаемый» и «истёкший» неразличимы (оба ведут в продление).
func IsExpired(raw string, now time.Time) bool {
	claims, err := Decode(raw)
	if err != nil {
		return true
	}

	return claims.ExpiresAt.Before(now)
}
