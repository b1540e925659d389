// Package cart реализует локальное состояние корзины поверх удалённого API.
// Сервер — единственный источник истины: каждая мутация после успеха
// перечитывает корзину целиком, локально количества никогда не вычисляются.
package cart

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// State — снимок состояния корзины для отображения.
type State struct {
	Items   []domain.CartLine
	Loading bool
	// Err — ошибка последней операции; позиции при этом сохраняют
	// последнее успешно полученное состояние.
	Err error
}

// Store хранит нормализованное состояние корзины и проводит мутации
// через удалённый шлюз. Мутации сериализуются: вторая ждёт завершения
// первой вместе с её refresh.
type Store struct {
	gateway   domain.CartGateway
	cache     domain.MetadataCache
	imageBase string
	logger    *log.Entry
	metrics   *metrics.CartMetrics

	// mu сериализует последовательности мутация→refresh.
	mu sync.Mutex
	// seq растёт на каждой успешной серверной мутации; refresh, начатый
	// до мутации, не имеет права перезаписать состояние после неё.
	seq    atomic.Uint64
	flight singleflight.Group

	stateMu sync.RWMutex
	state   State
	// inflight — число удалённых операций в полёте; Loading гаснет,
	// только когда счётчик обнуляется.
	inflight int
}

// NewStore создаёт хранилище корзины с метриками.
func NewStore(gateway domain.CartGateway, cache domain.MetadataCache, imageBase string, logger *log.Entry) *Store {
	s := newStore(gateway, cache, imageBase, logger)
	s.metrics = metrics.NewCartMetrics()
	return s
}

// NewStoreWithoutMetrics создаёт хранилище без метрик (для тестов).
func NewStoreWithoutMetrics(gateway domain.CartGateway, cache domain.MetadataCache, imageBase string, logger *log.Entry) *Store {
	return newStore(gateway, cache, imageBase, logger)
}

func newStore(gateway domain.CartGateway, cache domain.MetadataCache, imageBase string, logger *log.Entry) *Store {
	if logger == nil {
		logger = log.New().WithField("component", "cart")
	}
	return &Store{
		gateway:   gateway,
		cache:     cache,
		imageBase: imageBase,
		logger:    logger,
	}
}

// Snapshot возвращает копию текущего состояния корзины.
func (s *Store) Snapshot() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	items := make([]domain.CartLine, len(s.state.Items))
	copy(items, s.state.Items)
	return State{Items: items, Loading: s.state.Loading, Err: s.state.Err}
}

// Line возвращает позицию по ключу из текущего снимка.
func (s *Store) Line(key domain.LineKey) (domain.CartLine, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	for _, line := range s.state.Items {
		if line.Key == key {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

// TotalQuantity возвращает суммарное количество единиц в корзине.
func (s *Store) TotalQuantity() int {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	qty, _ := domain.Totals(s.state.Items)
	return qty
}

// TotalPrice возвращает суммарную стоимость корзины.
func (s *Store) TotalPrice() float64 {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	_, price := domain.Totals(s.state.Items)
	return price
}

// Add добавляет товар в корзину. Метаданные со страницы товара заранее
// сохраняются в кеш, чтобы refresh мог дополнить скупой ответ сервера.
// Ошибка и записывается в состояние, и возвращается вызывающему.
func (s *Store) Add(ctx context.Context, productID int, colorName, size string, quantity int, meta domain.Metadata) error {
	if productID <= 0 {
		return domain.ErrProductIDInvalid
	}
	if size == "" {
		return domain.ErrSizeRequired
	}
	if quantity <= 0 {
		return domain.ErrLineQtyInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.LineKey{ProductID: productID, ColorName: colorName, Size: size}
	if meta != (domain.Metadata{}) {
		s.cache.Put(key, meta)
	}

	s.begin()
	if err := s.gateway.AddItem(ctx, productID, colorName, size, quantity); err != nil {
		s.metrics.RecordOpFailure(metrics.CartOpAdd)
		s.finish(err)
		s.logger.WithField("product_id", productID).WithError(err).Warn("не удалось добавить товар в корзину")
		return err
	}
	s.metrics.RecordOp(metrics.CartOpAdd)
	s.seq.Add(1)
	err := s.Refresh(ctx)
	s.finish(nil)
	return err
}

// SetQuantity выставляет позиции абсолютное количество. Отрицательное
// количество приводится к нулю, ноль удаляет позицию. Отсутствующий
// ключ — no-op без обращения к серверу.
func (s *Store) SetQuantity(ctx context.Context, key domain.LineKey, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setQuantityLocked(ctx, key, quantity)
}

func (s *Store) setQuantityLocked(ctx context.Context, key domain.LineKey, quantity int) error {
	if _, ok := s.Line(key); !ok {
		return nil
	}
	if quantity < 0 {
		quantity = 0
	}

	s.begin()
	if quantity == 0 {
		found, err := s.gateway.RemoveItem(ctx, key.ProductID, key.ColorName, key.Size)
		if err != nil {
			s.metrics.RecordOpFailure(metrics.CartOpRemove)
			s.finish(err)
			return err
		}
		if !found {
			s.logger.WithField("key", key.String()).Debug("позиция уже отсутствовала на сервере")
		}
		s.metrics.RecordOp(metrics.CartOpRemove)
	} else {
		if err := s.gateway.UpdateItem(ctx, key.ProductID, key.ColorName, key.Size, quantity); err != nil {
			s.metrics.RecordOpFailure(metrics.CartOpSetQty)
			s.finish(err)
			return err
		}
		s.metrics.RecordOp(metrics.CartOpSetQty)
	}
	s.seq.Add(1)
	err := s.Refresh(ctx)
	s.finish(nil)
	return err
}

// Increment увеличивает количество позиции на единицу.
func (s *Store) Increment(ctx context.Context, key domain.LineKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.Line(key)
	if !ok {
		return nil
	}
	return s.setQuantityLocked(ctx, key, line.Quantity+1)
}

// Decrement уменьшает количество позиции на единицу; единица превращается
// в удаление.
func (s *Store) Decrement(ctx context.Context, key domain.LineKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.Line(key)
	if !ok {
		return nil
	}
	return s.setQuantityLocked(ctx, key, line.Quantity-1)
}

// Remove удаляет позицию целиком независимо от количества.
func (s *Store) Remove(ctx context.Context, key domain.LineKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setQuantityLocked(ctx, key, 0)
}

// Refresh перечитывает корзину с сервера и заменяет локальное состояние.
// Параллельные вызовы с одинаковым seq сливаются в один запрос.
func (s *Store) Refresh(ctx context.Context) error {
	seq := s.seq.Load()
	_, err, _ := s.flight.Do(strconv.FormatUint(seq, 10), func() (any, error) {
		return nil, s.refresh(ctx, seq)
	})
	return err
}

func (s *Store) refresh(ctx context.Context, seq uint64) error {
	start := time.Now()
	s.begin()

	dtos, err := s.gateway.FetchCart(ctx)
	if err != nil {
		s.metrics.RecordOpFailure(metrics.CartOpRefresh)
		s.finish(err)
		s.logger.WithError(err).Warn("не удалось перечитать корзину")
		return err
	}

	lines := domain.Lines(dtos, s.cache, s.imageBase)

	s.stateMu.Lock()
	s.inflight--
	s.state.Loading = s.inflight > 0
	if s.seq.Load() != seq {
		// Снимок устарел: после начала запроса прошла мутация,
		// её собственный refresh принесёт актуальное состояние.
		s.stateMu.Unlock()
		return nil
	}
	s.state.Items = lines
	s.state.Err = nil
	s.stateMu.Unlock()

	live := make(map[domain.LineKey]struct{}, len(lines))
	for _, line := range lines {
		live[line.Key] = struct{}{}
		s.cache.Put(line.Key, domain.Metadata{
			DisplayName: line.DisplayName,
			ImageURL:    line.ImageURL,
			UnitPrice:   line.UnitPrice,
			HasPrice:    true,
		})
	}
	evicted := s.cache.Sweep(live)

	s.metrics.RecordOp(metrics.CartOpRefresh)
	s.metrics.RecordRefreshDuration(time.Since(start))
	s.metrics.SetItemCount(len(lines))
	s.metrics.RecordCacheEvictions(evicted)

	s.logger.WithFields(log.Fields{
		"items":   len(lines),
		"evicted": evicted,
	}).Debug("корзина перечитана")
	return nil
}

// begin отмечает начало удалённой операции: loading поднимается,
// ошибка предыдущей операции сбрасывается.
func (s *Store) begin() {
	s.stateMu.Lock()
	s.inflight++
	s.state.Loading = true
	s.state.Err = nil
	s.stateMu.Unlock()
}

// finish завершает операцию. Loading остаётся поднятым, пока в полёте
// есть другие операции.
func (s *Store) finish(err error) {
	s.stateMu.Lock()
	s.inflight--
	s.state.Loading = s.inflight > 0
	if err != nil {
		s.state.Err = err
	}
	s.stateMu.Unlock()
}
