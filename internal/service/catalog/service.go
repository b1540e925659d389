// Package catalog — тонкая прослойка над шлюзом каталога: значения
// по умолчанию для листинга и валидация входа.
package catalog

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Значения листинга по умолчанию.
const (
	DefaultPerPage = 10
	DefaultSort    = "-created_at"
)

// Service читает каталог товаров через удалённый шлюз.
type Service struct {
	gateway domain.ProductGateway
	logger  *log.Entry
}

// NewService создаёт сервис каталога.
func NewService(gateway domain.ProductGateway, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Service{gateway: gateway, logger: logger}
}

// List возвращает страницу листинга, подставляя значения по умолчанию:
// первая страница, десять карточек, свежие товары сверху.
func (s *Service) List(ctx context.Context, query domain.ProductQuery) (domain.ProductPage, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PerPage <= 0 {
		query.PerPage = DefaultPerPage
	}
	if query.Sort == "" {
		query.Sort = DefaultSort
	}
	return s.gateway.ListProducts(ctx, query)
}

// Get возвращает карточку товара.
func (s *Service) Get(ctx context.Context, id int) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, domain.ErrProductIDInvalid
	}
	return s.gateway.GetProduct(ctx, id)
}
