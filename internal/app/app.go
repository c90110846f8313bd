// app — явная сборка зависимостей клиента: конфиг -> хранилище ->
// сессия -> шлюз -> операции. Жизненный цикл сессии задаётся здесь же:
// Restore на старте, Close при завершении; порядок инициализации
// не зависит от порядка импортов.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osokina-md/go-market-client/internal/client"
	"github.com/osokina-md/go-market-client/internal/config"
	"github.com/osokina-md/go-market-client/internal/service"
	"github.com/osokina-md/go-market-client/internal/session"
	"github.com/osokina-md/go-market-client/internal/storage"
	filestore "github.com/osokina-md/go-market-client/internal/storage/file"
	redisstore "github.com/osokina-md/go-market-client/internal/storage/redis"
)

// App агрегирует собранные компоненты клиента.
type App struct {
	Cfg     *config.Config
	Log     *slog.Logger
	Storage storage.Storage
	Session *session.Store
	Client  *client.Client
	Service *service.Service
}

// New собирает приложение и восстанавливает сессию из зеркала.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	const op = "app.New"

	st, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tr := client.NewTransport(client.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
	})

	sess := session.New(st, tr)

	// Зеркало best-effort: не читается — начинаем с пустой сессии.
	if err := sess.Restore(ctx); err != nil {
		log.Warn("session_restore_failed", slog.String("err", err.Error()))
	}

	api := client.New(tr, sess)

	return &App{
		Cfg:     cfg,
		Log:     log,
		Storage: st,
		Session: sess,
		Client:  api,
		Service: service.New(api, sess),
	}, nil
}

// Close освобождает ресурсы.
func (a *App) Close() error {
	return a.Storage.Close()
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	const op = "app.newStorage"

	switch cfg.Storage.Backend {
	case "", "file":
		path := cfg.Storage.File.Path
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			path = filepath.Join(home, ".market-cli", "session.json")
		}

		return filestore.New(path)
	case "redis":
		return redisstore.New(ctx, redisstore.Config{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("%s: unknown storage backend %q", op, cfg.Storage.Backend)
	}
}
