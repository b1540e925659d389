package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/remote"
	"github.com/vladislavdragonenkov/storefront/internal/service/auth"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/sqlite"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Store    domain.LocalStore
	Creds    domain.CredentialSource
	Client   *remote.Client
	Cart     *cart.Store
	Catalog  *catalog.Service
	Auth     *auth.Service
	Checkout *checkout.Service
	Logger   *log.Entry

	closeStore func() error
}

// NewDependencies собирает все зависимости приложения. Локальное
// хранилище — sqlite-файл по пути из конфигурации; если его не удалось
// открыть, сессия живёт в памяти до перезапуска.
func NewDependencies(cfg Config, logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	var store domain.LocalStore
	var closeStore func() error
	if kv, err := sqlite.Open(cfg.StatePath); err != nil {
		logger.WithError(err).Warn("локальное хранилище недоступно, сессия не переживёт перезапуск")
		store = memory.NewKV()
	} else {
		store = kv
		closeStore = kv.Close
	}

	creds := auth.NewTokenSource(store)
	client := remote.NewClient(remote.Config{
		BaseURL:      cfg.APIBaseURL,
		ImageBaseURL: cfg.ImageBaseURL,
		Timeout:      cfg.RequestTimeout,
	}, creds, logger.WithField("component", "remote"))

	cartStore := cart.NewStore(client, memory.NewMetadataCache(), cfg.ImageBaseURL, logger.WithField("component", "cart"))

	return &Dependencies{
		Store:      store,
		Creds:      creds,
		Client:     client,
		Cart:       cartStore,
		Catalog:    catalog.NewService(client, logger.WithField("component", "catalog")),
		Auth:       auth.NewService(client, store, logger.WithField("component", "auth")),
		Checkout:   checkout.NewService(client, cartStore, logger.WithField("component", "checkout")),
		Logger:     logger,
		closeStore: closeStore,
	}
}

// Close освобождает ресурсы зависимостей.
func (d *Dependencies) Close() error {
	if d.closeStore != nil {
		return d.closeStore()
	}
	return nil
}
