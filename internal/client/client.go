package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/osokina-md/go-market-client/internal/pkg/log"
	"github.com/osokina-md/go-market-client/internal/session"
	"github.com/osokina-md/go-market-client/internal/token"
)

// Client — аутентифицированный шлюз: каждый исходящий вызов получает
// действующий bearer-токен, при необходимости — после ленивого продления.
// Сессию шлюз только читает; единственная мутация, которую он может
// запросить, — продление через session.Store.
type Client struct {
	tr   *Transport
	sess *session.Store
}

// New собирает шлюз поверх готового транспорта и сессии.
func New(tr *Transport, sess *session.Store) *Client {
	return &Client{tr: tr, sess: sess}
}

// publicEndpoint — эндпоинты, которые идут без авторизации:
// вход/регистрация (токена ещё нет) и продление (токен уже истёк).
func publicEndpoint(endpoint string) bool {
	switch {
	case strings.HasPrefix(endpoint, "/auth/signIn"),
		strings.HasPrefix(endpoint, "/auth/signUp"),
		strings.HasPrefix(endpoint, "/auth/refresh-token"):
		return true
	default:
		return false
	}
}

// Do выполняет вызов к API.
//
// Алгоритм: публичный эндпоинт уходит как есть; иначе читается текущий
// access-токен — его отсутствие даёт ErrAuthRequired, истёкший (или
// нечитаемый — для шлюза это одно и то же) токен сперва продлевается через
// сессию, провал продления тоже даёт ErrAuthRequired. Одно продление на
// запрос, других ретраев нет.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any) error {
	const op = "client.Do"

	if publicEndpoint(endpoint) {
		return c.tr.do(ctx, method, endpoint, "", body, out)
	}

	access := c.sess.CurrentAccessToken()
	if access == "" {
		return fmt.Errorf("%s: %w", op, ErrAuthRequired)
	}

	if token.IsExpired(access, time.Now().UTC()) {
		log.From(ctx).Debug("access_token_expired",
			slog.String("op", op),
			slog.String("endpoint", endpoint),
		)

		renewed, err := c.sess.RefreshAccessToken(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", op, ErrAuthRequired)
		}

		access = renewed
	}

	return c.tr.do(ctx, method, endpoint, access, body, out)
}
