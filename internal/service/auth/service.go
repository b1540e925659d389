// Package auth хранит сессию пользователя в локальном хранилище и
// проксирует логин и регистрацию к удалённому API.
package auth

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Service управляет локальной сессией: токен и профиль пользователя
// переживают перезапуск процесса.
type Service struct {
	gateway domain.AuthGateway
	store   domain.LocalStore
	logger  *log.Entry
}

// NewService создаёт сервис аутентификации.
func NewService(gateway domain.AuthGateway, store domain.LocalStore, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "auth")
	}
	return &Service{gateway: gateway, store: store, logger: logger}
}

// Login обменивает учётные данные на сессию и сохраняет её локально.
func (s *Service) Login(ctx context.Context, email, password string) (domain.Session, error) {
	session, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.store.Set(tokenKey, session.Token); err != nil {
		return domain.Session{}, fmt.Errorf("persist token: %w", err)
	}
	raw, err := json.Marshal(session.User)
	if err != nil {
		return domain.Session{}, fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Set(userKey, string(raw)); err != nil {
		return domain.Session{}, fmt.Errorf("persist user: %w", err)
	}
	s.logger.WithField("user_id", session.User.ID).Info("пользователь вошёл в систему")
	return session, nil
}

// Register создаёт аккаунт; сессию при этом не открывает.
func (s *Service) Register(ctx context.Context, payload domain.RegisterPayload) error {
	return s.gateway.Register(ctx, payload)
}

// Logout удаляет локальную сессию. Ошибок удаления несуществующих
// ключей не бывает.
func (s *Service) Logout() error {
	if err := s.store.Delete(tokenKey); err != nil {
		return fmt.Errorf("drop token: %w", err)
	}
	if err := s.store.Delete(userKey); err != nil {
		return fmt.Errorf("drop user: %w", err)
	}
	s.logger.Info("локальная сессия удалена")
	return nil
}

// IsLoggedIn сообщает, есть ли в хранилище валидный токен.
func (s *Service) IsLoggedIn() bool {
	source := NewTokenSource(s.store)
	_, err := source.Token()
	return err == nil
}

// CurrentUser возвращает сохранённый профиль пользователя.
func (s *Service) CurrentUser() (domain.AuthUser, bool) {
	raw, ok, err := s.store.Get(userKey)
	if err != nil || !ok {
		return domain.AuthUser{}, false
	}
	var user domain.AuthUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return domain.AuthUser{}, false
	}
	return user, true
}
