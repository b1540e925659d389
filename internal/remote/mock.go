package remote

import (
	"context"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// MockGateway — конфигурируемая заглушка шлюза корзины и оформления
// для тестов. Снимок корзины задаётся полем Items; мутации только
// считают вызовы и возвращают заранее настроенные ошибки.
type MockGateway struct {
	Items []domain.CartItemDTO

	FetchErr    error
	AddErr      error
	UpdateErr   error
	RemoveErr   error
	RemoveFound bool
	CheckoutErr error

	FetchCalls    int
	AddCalls      int
	UpdateCalls   int
	RemoveCalls   int
	CheckoutCalls int

	LastAddQuantity    int
	LastUpdateQuantity int
}

// NewMockGateway возвращает mock с пустой корзиной и успешным сценарием.
func NewMockGateway() *MockGateway {
	return &MockGateway{RemoveFound: true}
}

// FetchCart возвращает настроенный снимок корзины.
func (m *MockGateway) FetchCart(ctx context.Context) ([]domain.CartItemDTO, error) {
	m.FetchCalls++
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	items := make([]domain.CartItemDTO, len(m.Items))
	copy(items, m.Items)
	return items, nil
}

// AddItem считает вызовы и возвращает заранее настроенную ошибку.
func (m *MockGateway) AddItem(ctx context.Context, productID int, color, size string, quantity int) error {
	m.AddCalls++
	m.LastAddQuantity = quantity
	return m.AddErr
}

// UpdateItem считает вызовы и возвращает заранее настроенную ошибку.
func (m *MockGateway) UpdateItem(ctx context.Context, productID int, colorName, size string, quantity int) error {
	m.UpdateCalls++
	m.LastUpdateQuantity = quantity
	return m.UpdateErr
}

// RemoveItem считает вызовы и возвращает заранее настроенный результат.
func (m *MockGateway) RemoveItem(ctx context.Context, productID int, colorName, size string) (bool, error) {
	m.RemoveCalls++
	if m.RemoveErr != nil {
		return false, m.RemoveErr
	}
	return m.RemoveFound, nil
}

// Checkout считает вызовы и возвращает заранее настроенную ошибку.
func (m *MockGateway) Checkout(ctx context.Context) error {
	m.CheckoutCalls++
	return m.CheckoutErr
}

var _ domain.CartGateway = (*MockGateway)(nil)
var _ domain.CheckoutGateway = (*MockGateway)(nil)
