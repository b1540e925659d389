package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config описывает настройки запуска приложения. Значения читаются из
// переменных окружения с префиксом STOREFRONT_.
type Config struct {
	// HTTPAddr — адрес JSON-фасада для UI.
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	// MetricsAddr — адрес сервиса метрик и health-проверок.
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
	// APIBaseURL — корень удалённого storefront API.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"https://api.redseam.redberryinternship.ge/api"`
	// ImageBaseURL — база для относительных ссылок на картинки.
	// Пустое значение выводится из APIBaseURL отбрасыванием суффикса /api.
	ImageBaseURL string `env:"IMAGE_BASE_URL"`
	// StatePath — путь к файлу локального хранилища (токен, профиль).
	StatePath string `env:"STATE_PATH" envDefault:".storefront/state.db"`
	// RequestTimeout — таймаут одного запроса к удалённому API.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
}

// LoadConfig читает конфигурацию из окружения.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "STOREFRONT_"}); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = strings.TrimSuffix(cfg.APIBaseURL, "/api")
	}
	return cfg, nil
}

// DefaultConfig возвращает конфигурацию со значениями по умолчанию.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:       ":8080",
		MetricsAddr:    ":9090",
		APIBaseURL:     "https://api.redseam.redberryinternship.ge/api",
		ImageBaseURL:   "https://api.redseam.redberryinternship.ge",
		StatePath:      ".storefront/state.db",
		RequestTimeout: 15 * time.Second,
	}
}
