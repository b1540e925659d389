package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Ключи локального хранилища.
const (
	tokenKey = "auth_token"
	userKey  = "auth_user"
)

// TokenSource читает bearer-токен из локального хранилища. Если токен
// выглядит как JWT с полем exp, истечение проверяется ещё до запроса:
// просроченный токен превращается в ErrCredentialExpired без похода в сеть.
type TokenSource struct {
	store domain.LocalStore
	now   func() time.Time
}

// NewTokenSource создаёт источник токена поверх локального хранилища.
func NewTokenSource(store domain.LocalStore) *TokenSource {
	return &TokenSource{store: store, now: time.Now}
}

// Token возвращает сохранённый токен или ошибку аутентификации.
func (s *TokenSource) Token() (string, error) {
	token, ok, err := s.store.Get(tokenKey)
	if err != nil {
		return "", fmt.Errorf("read stored token: %w", err)
	}
	if !ok || token == "" {
		return "", domain.ErrNoCredential
	}
	if expired, known := s.tokenExpired(token); known && expired {
		return "", domain.ErrCredentialExpired
	}
	return token, nil
}

// tokenExpired разбирает токен без проверки подписи и смотрит только exp.
// Непрозрачные (не-JWT) токены пропускаются как есть.
func (s *TokenSource) tokenExpired(token string) (expired, known bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, false
	}
	return s.now().After(exp.Time), true
}

var _ domain.CredentialSource = (*TokenSource)(nil)
