package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// metadataCacheInMemory — in-memory реализация MetadataCache.
// Живёт столько же, сколько экземпляр хранилища корзины; чтобы запись
// не копилась бесконечно, ключи, не встречавшиеся в двух последовательных
// успешных refresh, вытесняются в Sweep.
type metadataCacheInMemory struct {
	mu      sync.RWMutex
	entries map[domain.LineKey]domain.Metadata
	// misses считает подряд идущие Sweep, в которых ключ не был живым.
	misses map[domain.LineKey]int
}

// Порог вытеснения: запись уходит после двух промахов подряд.
const evictAfterMisses = 2

// NewMetadataCache возвращает пустой сессионный кеш метаданных.
func NewMetadataCache() domain.MetadataCache {
	return &metadataCacheInMemory{
		entries: make(map[domain.LineKey]domain.Metadata),
		misses:  make(map[domain.LineKey]int),
	}
}

// Get возвращает метаданные по ключу позиции.
func (c *metadataCacheInMemory) Get(key domain.LineKey) (domain.Metadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	meta, ok := c.entries[key]
	return meta, ok
}

// Put сохраняет метаданные, перезаписывая прежние, и сбрасывает счётчик промахов.
func (c *metadataCacheInMemory) Put(key domain.LineKey, meta domain.Metadata) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = meta
	delete(c.misses, key)
}

// Sweep отмечает живые ключи после успешного refresh. Записи, не попавшие
// в живой набор два Sweep подряд, удаляются. Возвращает число удалённых.
func (c *metadataCacheInMemory) Sweep(live map[domain.LineKey]struct{}) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key := range c.entries {
		if _, ok := live[key]; ok {
			delete(c.misses, key)
			continue
		}
		c.misses[key]++
		if c.misses[key] >= evictAfterMisses {
			delete(c.entries, key)
			delete(c.misses, key)
			evicted++
		}
	}
	return evicted
}
