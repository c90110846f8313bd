// storage — долговременное зеркало сессии (аналог localStorage браузера).
//
// Зеркало best-effort: источником истины всегда остаётся состояние в памяти
// (internal/session), хранилище читается один раз на старте процесса.
// Раскладка — три независимые строковые записи: access-токен, refresh-токен
// и сериализованный профиль; пишутся и очищаются как единое целое.
package storage

import (
	"context"
	"errors"

	"github.com/osokina-md/go-market-client/internal/models"
)

var (
	// ErrNotFound — сохранённой сессии нет (первый запуск или после logout).
	ErrNotFound = errors.New("not found")
)

// Ключи записей. Совпадают с раскладкой исходного клиента.
const (
	KeyAccessToken  = "authToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

//go:generate mockgen -source=storage.go -destination=../../mocks/mock_storage.go -package=mocks

// Storage задаёт контракт долговременного хранилища сессии.
type Storage interface {
	// Load читает сохранённую сессию целиком.
	Load(ctx context.Context) (*models.Session, error)
	// Save атомарно записывает все три поля сессии.
	Save(ctx context.Context, s models.Session) error
	// SetAccessToken заменяет только access-токен (после продления).
	SetAccessToken(ctx context.Context, token string) error
	// SetUser заменяет только профиль.
	SetUser(ctx context.Context, u models.User) error
	// Clear атомарно стирает все три записи.
	Clear(ctx context.Context) error
	// Close освобождает ресурсы хранилища.
	Close() error
}
