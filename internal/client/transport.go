// client — исходящие вызовы к REST-бэкенду маркетплейса.
//
// Пакет разделён на два слоя:
//   - Transport — голый HTTP: сборка запроса, JSON-кодеки, маппинг сбоев
//     в единую таксономию (errors.go). Про сессию ничего не знает, поэтому
//     годится и для неаутентифицированных вызовов (sign-in, продление).
//   - Client — аутентифицированный шлюз поверх Transport: подкладывает
//     bearer-токен и лениво продлевает его через session.Store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osokina-md/go-market-client/internal/metrics"
	"github.com/osokina-md/go-market-client/internal/models"
	"github.com/osokina-md/go-market-client/internal/pkg/log"
)

// Config — параметры транспорта.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Transport — низкоуровневый HTTP-клиент без понятия о сессии.
type Transport struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewTransport создаёт транспорт. Таймаут — на весь запрос целиком.
func NewTransport(cfg Config) *Transport {
	ua := cfg.UserAgent
	if ua == "" {
		ua = "market-client"
	}

	return &Transport{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: ua,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// do выполняет один HTTP-вызов: body/out — JSON (nil допустим), access —
// bearer-токен ("" — неаутентифицированный вызов). Не-2xx превращается
// в *HTTPError, транспортный сбой — в ErrNetwork. Ретраев нет.
func (t *Transport) do(ctx context.Context, method, endpoint, access string, body, out any) error {
	const op = "client.transport.do"

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+endpoint, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "network").Inc()
		return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		he := &HTTPError{Status: resp.StatusCode}

		// Тело ошибки опционально: разобрали — хорошо, нет — остаётся статус.
		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if readErr == nil && len(raw) > 0 {
			var apiErr APIError
			if json.Unmarshal(raw, &apiErr) == nil && (apiErr.Code != "" || apiErr.Message != "") {
				he.API = &apiErr
			}
		}

		log.From(ctx).Debug("api_request_rejected",
			slog.String("op", op),
			slog.String("method", method),
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
		)

		return fmt.Errorf("%s: %w", op, he)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RefreshToken — сетевое продление access-токена (session.Refresher).
// Вызов неаутентифицированный: истёкший access-токен не прикладывается,
// refresh-токен едет в теле.
func (t *Transport) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	const op = "client.transport.RefreshToken"

	var resp models.RefreshResponse
	err := t.do(ctx, http.MethodPost, "/auth/refresh-token", "",
		models.RefreshRequest{RefreshToken: refreshToken}, &resp)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if resp.AccessToken == "" {
		return "", fmt.Errorf("%s: empty access token in response", op)
	}

	return resp.AccessToken, nil
}
