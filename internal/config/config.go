// config - источник загрузки конфигурации клиента.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// APIConfig — параметры REST-бэкенда маркетплейса.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"API_BASE_URL"   env-default:"https://panda-market-api.vercel.app"`
	Timeout   time.Duration `yaml:"timeout"    env:"API_TIMEOUT"    env-default:"15s"`
	UserAgent string        `yaml:"user_agent" env:"API_USER_AGENT" env-default:"market-cli"`
}

// StorageConfig — долговременное зеркало сессии.
// Backend: file (по умолчанию) или redis.
type StorageConfig struct {
	Backend string      `yaml:"backend" env:"STORAGE_BACKEND" env-default:"file"`
	File    FileConfig  `yaml:"file"`
	Redis   RedisConfig `yaml:"redis"`
}

// FileConfig — файловый бэкенд; пустой путь означает
// ~/.market-cli/session.json (разрешается при сборке приложения).
type FileConfig struct {
	Path string `yaml:"path" env:"STORAGE_FILE_PATH" env-default:""`
}

// RedisConfig — Redis-бэкенд для развёртываний с общей сессией.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"STORAGE_REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `yaml:"password" env:"STORAGE_REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db"       env:"STORAGE_REDIS_DB"       env-default:"0"`
}

// MetricsConfig — отдельный HTTP для Prometheus (режим watch).
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"false"`
	Host    string `yaml:"host"    env:"METRICS_HOST"    env-default:"0.0.0.0"`
	Port    string `yaml:"port"    env:"METRICS_PORT"    env-default:"9095"`
}

func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	return &cfg, nil
}
