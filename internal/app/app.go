// Package app собирает приложение: удалённый шлюз, состояние корзины,
// JSON-фасад для UI и сервис метрик.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/httpapi"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps := NewDependencies(cfg, logger)
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("не удалось закрыть локальное хранилище")
		}
	}()

	// Если сессия уже есть, корзина подтягивается сразу. Ошибка не
	// мешает запуску: состояние останется пустым с записанной ошибкой.
	if deps.Auth.IsLoggedIn() {
		if err := deps.Cart.Refresh(ctx); err != nil {
			logger.WithError(err).Warn("стартовый refresh корзины не прошёл")
		}
	} else {
		logger.Info("сессии нет, корзина будет загружена после входа")
	}

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("remote_api", healthcheck.NewRemoteAPIChecker(cfg.APIBaseURL, cfg.RequestTimeout))
	healthHandler.RegisterChecker("local_store", healthcheck.NewLocalStoreChecker(deps.Store))
	healthHandler.RegisterChecker("session", healthcheck.NewSessionChecker(deps.Creds))

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	facade := httpapi.NewServer(deps.Cart, deps.Catalog, deps.Auth, deps.Checkout, logger.WithField("component", "httpapi"))
	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: facade.Handler()}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("JSON-фасад слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем фасад")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
