package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile — утилита записи временного файла конфигурации.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

// Полный корректный YAML под текущую структуру config.go.
const sampleYAML = `
env: "prod"
api:
  base_url: "https://api.example.com"
  timeout: "3s"
  user_agent: "market-cli-test"
storage:
  backend: "redis"
  file:
    path: "/tmp/session.json"
  redis:
    addr: "10.0.0.1:6379"
    db: 2
metrics:
  enabled: true
  host: "127.0.0.1"
  port: "9090"
`

// Некорректный YAML для проверки сообщений об ошибке.
const brokenYAML = `
env: [unclosed
`

func TestMetricsConfig_Addr(t *testing.T) {
	t.Parallel()
	cfg := MetricsConfig{Host: "127.0.0.1", Port: "9090"}
	require.Equal(t, "127.0.0.1:9090", cfg.Addr())
}

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	require.Equal(t, 3*time.Second, cfg.API.Timeout)
	require.Equal(t, "market-cli-test", cfg.API.UserAgent)

	require.Equal(t, "redis", cfg.Storage.Backend)
	require.Equal(t, "/tmp/session.json", cfg.Storage.File.Path)
	require.Equal(t, "10.0.0.1:6379", cfg.Storage.Redis.Addr)
	require.Equal(t, 2, cfg.Storage.Redis.DB)

	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, "127.0.0.1:9090", cfg.Metrics.Addr())
}

func TestLoad_WithExplicitPath_BrokenYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// TestLoad_EnvOnly_Defaults — без файлов конфигурация собирается из
// дефолтов (и ENV, если он задан).
func TestLoad_EnvOnly_Defaults(t *testing.T) {
	// Меняет ENV процесса — без t.Parallel().
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("API_BASE_URL", "https://env.example.com")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	require.Equal(t, "file", cfg.Storage.Backend)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
	require.False(t, cfg.Metrics.Enabled)
}
