// redis — Redis-реализация долговременного хранилища сессии.
// Используется в киоск/демон-развёртываниях, где одну сессию делят
// несколько процессов клиента. Раскладка та же: три строковых ключа,
// атомарность записи тройки — через MULTI/EXEC (TxPipeline).
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/osokina-md/go-market-client/internal/models"
	"github.com/osokina-md/go-market-client/internal/storage"
)

// Store — Redis-реализация storage.Storage.
type Store struct {
	client *redis.Client
	prefix string
}

// Config — параметры подключения.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Prefix — префикс ключей; по умолчанию "market:session:".
	Prefix string
}

// New открывает соединение и проверяет его PING-ом.
func New(ctx context.Context, cfg Config) (*Store, error) {
	const op = "storage/redis.New"

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "market:session:"
	}

	return &Store{client: client, prefix: prefix}, nil
}

func (s *Store) key(name string) string { return s.prefix + name }

func (s *Store) Load(ctx context.Context) (*models.Session, error) {
	const op = "storage/redis.Load"

	vals, err := s.client.MGet(ctx,
		s.key(storage.KeyAccessToken),
		s.key(storage.KeyRefreshToken),
		s.key(storage.KeyUser),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	asString := func(v any) string {
		if sv, ok := v.(string); ok {
			return sv
		}
		return ""
	}

	sess := &models.Session{
		AccessToken:  asString(vals[0]),
		RefreshToken: asString(vals[1]),
	}

	if sess.AccessToken == "" && sess.RefreshToken == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if raw := asString(vals[2]); raw != "" {
		var u models.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sess.User = &u
	}

	return sess, nil
}

func (s *Store) Save(ctx context.Context, sess models.Session) error {
	const op = "storage/redis.Save"

	userRaw := ""
	if sess.User != nil {
		raw, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		userRaw = string(raw)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(storage.KeyAccessToken), sess.AccessToken, 0)
	pipe.Set(ctx, s.key(storage.KeyRefreshToken), sess.RefreshToken, 0)
	if userRaw != "" {
		pipe.Set(ctx, s.key(storage.KeyUser), userRaw, 0)
	} else {
		pipe.Del(ctx, s.key(storage.KeyUser))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	const op = "storage/redis.SetAccessToken"

	if err := s.client.Set(ctx, s.key(storage.KeyAccessToken), token, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) SetUser(ctx context.Context, u models.User) error {
	const op = "storage/redis.SetUser"

	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.client.Set(ctx, s.key(storage.KeyUser), raw, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	const op = "storage/redis.Clear"

	err := s.client.Del(ctx,
		s.key(storage.KeyAccessToken),
		s.key(storage.KeyRefreshToken),
		s.key(storage.KeyUser),
	).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) Close() error { return s.client.Close() }
