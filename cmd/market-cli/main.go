// market-cli — консольный клиент маркетплейса: вход/выход, профиль,
// каталог товаров, избранное и комментарии поверх REST-бэкенда.
//
// Сессия переживает перезапуски через долговременное зеркало
// (файл либо Redis), протухший access-токен обновляется прозрачно.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/osokina-md/go-market-client/internal/app"
	"github.com/osokina-md/go-market-client/internal/config"
	"github.com/osokina-md/go-market-client/internal/pkg/log"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "market-cli",
	Short:         "Консольный клиент Panda Market",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
}

// runContext — общий контекст команд: SIGINT/SIGTERM отменяют операцию.
func runContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// buildApp собирает приложение для одной команды; Close — на вызывающем.
func buildApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := setupLogger(cfg.Env)
	slog.SetDefault(logger)

	a, err := app.New(log.Into(ctx, logger), cfg, logger)
	if err != nil {
		return nil, err
	}

	return a, nil
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
}
