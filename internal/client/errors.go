// Единая таксономия ошибок шлюза. Вызывающий различает исходы через
// errors.Is/errors.As и не знает, какой слой (кодек, сессия, транспорт)
// на самом деле отказал.
package client

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired — валидного access-токена нет и добыть его не удалось
	// (токен отсутствует либо продление провалилось). Восстановимое,
	// пользовательское состояние: показать вход, не падать.
	ErrAuthRequired = errors.New("auth required")

	// ErrNetwork — транспортный сбой (DNS, соединение, таймаут).
	// Пользователю — общее «попробуйте ещё раз».
	ErrNetwork = errors.New("network error")
)

// APIError — тело ошибки бэкенда: короткий машинный код и безопасное
// человекочитаемое сообщение (например, «email уже занят» на sign-up).
type APIError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// HTTPError — сервер ответил не-2xx. Несёт статус и разобранное тело
// ошибки, если бэкенд его прислал.
type HTTPError struct {
	Status int
	API    *APIError
}

func (e *HTTPError) Error() string {
	if e.API != nil && e.API.Message != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.API.Message)
	}

	return fmt.Sprintf("http %d", e.Status)
}

// IsStatus сообщает, является ли err HTTPError с данным статусом.
func IsStatus(err error, status int) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == status
}
