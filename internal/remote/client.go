package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Config описывает настройки подключения к удалённому storefront API.
type Config struct {
	// BaseURL — корень API, например "https://api.example.com/api".
	BaseURL string
	// ImageBaseURL — база для относительных ссылок на картинки
	// (обычно хост API без суффикса /api).
	ImageBaseURL string
	// Timeout — таймаут одного запроса.
	Timeout time.Duration
}

// DefaultConfig возвращает конфигурацию с разумным таймаутом.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 15 * time.Second,
	}
}

// Client — HTTP-клиент удалённого storefront API. Все защищённые операции
// берут bearer-токен у инжектированного CredentialSource; отсутствие или
// истечение токена превращается в ошибку аутентификации до обращения к сети.
type Client struct {
	baseURL    string
	imageBase  string
	httpClient *http.Client
	creds      domain.CredentialSource
	logger     *log.Entry
	metrics    *metrics.APIMetrics
}

// NewClient создаёт рабочий экземпляр клиента.
func NewClient(cfg Config, creds domain.CredentialSource, logger *log.Entry) *Client {
	c := newClient(cfg, creds, logger)
	c.metrics = metrics.NewAPIMetrics()
	return c
}

// NewClientWithoutMetrics создаёт клиент без метрик (для тестов).
func NewClientWithoutMetrics(cfg Config, creds domain.CredentialSource, logger *log.Entry) *Client {
	return newClient(cfg, creds, logger)
}

func newClient(cfg Config, creds domain.CredentialSource, logger *log.Entry) *Client {
	if logger == nil {
		logger = log.New().WithField("component", "remote")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		imageBase: cfg.ImageBaseURL,
		creds:     creds,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ImageBase возвращает базу для относительных ссылок на картинки.
func (c *Client) ImageBase() string { return c.imageBase }

// do выполняет один JSON-запрос к API. Для authed-операций берёт токен
// у CredentialSource; транспортный сбой превращает в NetworkError,
// статус вне 2xx — в HTTPError с телом ответа.
func (c *Client) do(ctx context.Context, op, method, path string, authed bool, payload, out any) error {
	start := time.Now()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		token, err := c.creds.Token()
		if err != nil {
			c.metrics.RecordRequest(op, metrics.OutcomeAuth, time.Since(start))
			c.logger.WithField("operation", op).WithError(err).Debug("запрос не отправлен: нет валидного токена")
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(req, op, start, out)
}

// send отправляет подготовленный запрос и разбирает ответ.
func (c *Client) send(req *http.Request, op string, start time.Time, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordRequest(op, metrics.OutcomeNetwork, time.Since(start))
		c.logger.WithField("operation", op).WithError(err).Warn("транспортный сбой при обращении к API")
		return &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordRequest(op, metrics.OutcomeNetwork, time.Since(start))
		return &domain.NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &domain.HTTPError{Status: resp.StatusCode, Body: string(raw)}
		c.metrics.RecordRequest(op, metrics.OutcomeForStatus(resp.StatusCode), time.Since(start))
		c.logger.WithFields(log.Fields{
			"operation": op,
			"status":    resp.StatusCode,
		}).Warn("API вернуло ошибку")
		return httpErr
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			c.metrics.RecordRequest(op, metrics.OutcomeHTTP, time.Since(start))
			return fmt.Errorf("decode %s response: %w", op, err)
		}
	}

	c.metrics.RecordRequest(op, metrics.OutcomeOK, time.Since(start))
	c.logger.WithFields(log.Fields{
		"operation":   op,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("запрос к API выполнен")
	return nil
}
