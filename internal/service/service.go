// service — пользовательские операции клиента поверх шлюза:
// вход/регистрация, товары и лайки, комментарии. Мутации серверных
// счётчиков и списков идут через internal/optimistic.
//
// Экземпляр Service не хранит состояния запроса и безопасен для
// конкурентного использования; изменяемые значения представления
// (товар, список комментариев) принадлежат вызывающей горутине.
package service

import (
	"errors"

	"github.com/osokina-md/go-market-client/internal/client"
	"github.com/osokina-md/go-market-client/internal/session"
)

var (
	// ErrInvalidEmail — e-mail не проходит базовую валидацию формата.
	// Проверяется до сетевого вызова, чтобы не жечь запрос впустую.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyPassword — пароль пустой.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrPasswordMismatch — пароль и подтверждение не совпадают (sign-up).
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrEmptyContent — пустой текст комментария.
	ErrEmptyContent = errors.New("comment content is empty")
)

// Service — операции клиента.
type Service struct {
	api  *client.Client
	sess *session.Store
}

// New создаёт Service поверх шлюза и сессии.
func New(api *client.Client, sess *session.Store) *Service {
	return &Service{api: api, sess: sess}
}

// Session — доступ к сессии для вызывающего кода (чтение профиля и т.п.).
func (s *Service) Session() *session.Store {
	return s.sess
}
