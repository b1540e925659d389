package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// kvInMemory — простая in-memory реализация LocalStore для локальной
// разработки и тестов; перезапуск процесса не переживает.
type kvInMemory struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewKV возвращает пустое in-memory key-value хранилище.
func NewKV() domain.LocalStore {
	return &kvInMemory{items: make(map[string]string)}
}

// Get возвращает значение и признак его наличия.
func (s *kvInMemory) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	return value, ok, nil
}

// Set сохраняет значение, перезаписывая прежнее.
func (s *kvInMemory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

// Delete удаляет значение; отсутствие ключа ошибкой не считается.
func (s *kvInMemory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}
