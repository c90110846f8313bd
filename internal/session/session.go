// session — владелец состояния авторизации процесса.
//
// Основные аспекты:
//   - Состояние в памяти авторитетно; долговременное хранилище — best-effort
//     зеркало, читается один раз на старте (Restore). Ошибка зеркала при
//     login/logout возвращается вызывающему, но изменение в памяти остаётся.
//   - Тройка (access, refresh, user) пишется и очищается атомарно; снаружи
//     полузаполненная сессия не наблюдается.
//   - Продление access-токена — single-flight: сколько бы запросов ни
//     обнаружило истёкший токен одновременно, исходящий вызов продления один,
//     результат общий. Провал продления переводит сессию в LOGGED_OUT.
//   - Store потокобезопасен: шлюз может дёргать его из разных горутин.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/osokina-md/go-market-client/internal/metrics"
	"github.com/osokina-md/go-market-client/internal/models"
	"github.com/osokina-md/go-market-client/internal/pkg/log"
	"github.com/osokina-md/go-market-client/internal/storage"
	"github.com/osokina-md/go-market-client/internal/token"
)

var (
	// ErrRenewalFailed — продление не удалось (нет refresh-токена, он
	// отвергнут сервером или сеть недоступна). Сессия уже очищена;
	// вызывающий показывает приглашение к повторному входу.
	ErrRenewalFailed = errors.New("token renewal failed")
)

// State — наблюдаемое состояние машины продления.
type State string

const (
	StateValid     State = "VALID"
	StateExpired   State = "EXPIRED"
	StateRenewing  State = "RENEWING"
	StateLoggedOut State = "LOGGED_OUT"
)

//go:generate mockgen -source=session.go -destination=../../mocks/mock_refresher.go -package=mocks

// Refresher выполняет сетевой вызов продления access-токена.
// Реализуется транспортом (internal/client), сам сессию не трогает.
type Refresher interface {
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
}

// Store — процессное состояние сессии.
type Store struct {
	mu   sync.RWMutex
	sess models.Session

	storage   storage.Storage
	refresher Refresher

	sf       singleflight.Group
	inFlight int32 // активные продления; только для State()
}

// New создаёт пустую сессию поверх хранилища st.
func New(st storage.Storage, r Refresher) *Store {
	return &Store{
		storage:   st,
		refresher: r,
	}
}

// Restore читает зеркало из долговременного хранилища.
// Отсутствие сохранённой сессии — не ошибка (первый запуск).
func (s *Store) Restore(ctx context.Context) error {
	const op = "session.Restore"

	saved, err := s.storage.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.sess = *saved
	s.mu.Unlock()

	return nil
}

// Login атомарно устанавливает тройку (access, refresh, user) и зеркалит её
// в хранилище. Ошибка зеркала возвращается, но состояние в памяти уже новое.
func (s *Store) Login(ctx context.Context, access, refresh string, user models.User) error {
	const op = "session.Login"

	u := user

	s.mu.Lock()
	s.sess = models.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         &u,
	}
	snapshot := s.sess
	s.mu.Unlock()

	if err := s.storage.Save(ctx, snapshot); err != nil {
		log.From(ctx).Warn("session_mirror_save_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Logout атомарно очищает тройку и стирает зеркало.
func (s *Store) Logout(ctx context.Context) error {
	const op = "session.Logout"

	s.mu.Lock()
	s.sess = models.Session{}
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		log.From(ctx).Warn("session_mirror_clear_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CurrentAccessToken — чистое чтение; пустая строка означает «отсутствует».
func (s *Store) CurrentAccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sess.AccessToken
}

// Current возвращает копию сессии для чтения.
func (s *Store) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.sess
	if s.sess.User != nil {
		u := *s.sess.User
		out.User = &u
	}

	return out
}

// SetUser обновляет только профиль (данные пришли отдельно, /users/me).
func (s *Store) SetUser(ctx context.Context, user models.User) error {
	const op = "session.SetUser"

	u := user

	s.mu.Lock()
	s.sess.User = &u
	s.mu.Unlock()

	if err := s.storage.SetUser(ctx, u); err != nil {
		log.From(ctx).Warn("session_mirror_user_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// State — состояние машины продления на момент now.
func (s *Store) State(now time.Time) State {
	s.mu.RLock()
	inFlight := s.inFlight
	access := s.sess.AccessToken
	s.mu.RUnlock()

	if inFlight > 0 {
		return StateRenewing
	}

	if access == "" {
		return StateLoggedOut
	}

	if token.IsExpired(access, now) {
		return StateExpired
	}

	return StateValid
}

// RefreshAccessToken продлевает access-токен по refresh-токену.
//
// Возвращает новый access-токен; при любом провале возвращает
// ErrRenewalFailed, предварительно выполнив Logout: остальная система
// никогда не видит полуживую сессию. Конкурентные вызовы схлопываются
// в один исходящий запрос (single-flight), все получают общий результат.
func (s *Store) RefreshAccessToken(ctx context.Context) (string, error) {
	const op = "session.RefreshAccessToken"

	v, err, _ := s.sf.Do("refresh", func() (any, error) {
		s.mu.Lock()
		s.inFlight++
		refresh := s.sess.RefreshToken
		s.mu.Unlock()

		defer func() {
			s.mu.Lock()
			s.inFlight--
			s.mu.Unlock()
		}()

		if refresh == "" {
			_ = s.Logout(ctx)
			metrics.RenewalsTotal.WithLabelValues("failed").Inc()
			return "", ErrRenewalFailed
		}

		access, err := s.refresher.RefreshToken(ctx, refresh)
		if err != nil {
			log.From(ctx).Warn("token_renewal_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)

			_ = s.Logout(ctx)
			metrics.RenewalsTotal.WithLabelValues("failed").Inc()
			return "", fmt.Errorf("%w: %w", ErrRenewalFailed, err)
		}

		s.mu.Lock()
		s.sess.AccessToken = access
		s.mu.Unlock()

		// Зеркало — best-effort: провал записи не отменяет продление.
		if err := s.storage.SetAccessToken(ctx, access); err != nil {
			log.From(ctx).Warn("session_mirror_token_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}

		metrics.RenewalsTotal.WithLabelValues("ok").Inc()
		return access, nil
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return v.(string), nil
}
