package remote

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionDTO — ответ на логин: токен и профиль пользователя.
type sessionDTO struct {
	Token string `json:"token"`
	User  struct {
		ID       int    `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
	} `json:"user"`
}

// Login обменивает пару email/пароль на сессию. Не требует токена.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	var dto sessionDTO
	err := c.do(ctx, "login", http.MethodPost, "/login", false, loginBody{Email: email, Password: password}, &dto)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{
		Token: dto.Token,
		User: domain.AuthUser{
			ID:       dto.User.ID,
			Email:    dto.User.Email,
			Username: dto.User.Username,
			Avatar:   domain.AbsoluteURL(c.imageBase, dto.User.Avatar),
		},
	}, nil
}

// Register создаёт аккаунт. API принимает multipart-форму, потому что
// вместе с полями может прийти файл аватара.
func (c *Client) Register(ctx context.Context, payload domain.RegisterPayload) error {
	op := "register"
	start := time.Now()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	fields := map[string]string{
		"email":                 payload.Email,
		"username":              payload.Username,
		"password":              payload.Password,
		"password_confirmation": payload.PasswordConfirmation,
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return fmt.Errorf("build %s form: %w", op, err)
		}
	}
	if len(payload.Avatar) > 0 {
		name := payload.AvatarName
		if name == "" {
			name = "avatar"
		}
		part, err := form.CreateFormFile("avatar", name)
		if err != nil {
			return fmt.Errorf("build %s form: %w", op, err)
		}
		if _, err := part.Write(payload.Avatar); err != nil {
			return fmt.Errorf("build %s form: %w", op, err)
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("build %s form: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/register", &buf)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	req.Header.Set("Content-Type", form.FormDataContentType())

	return c.send(req, op, start, nil)
}

// Checkout оформляет заказ из текущей серверной корзины.
func (c *Client) Checkout(ctx context.Context) error {
	return c.do(ctx, "checkout", http.MethodPost, "/cart/checkout", true, nil, nil)
}

var _ domain.AuthGateway = (*Client)(nil)
var _ domain.CheckoutGateway = (*Client)(nil)
