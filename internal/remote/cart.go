package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// cartEnvelope — вариант ответа GET /cart с позициями внутри объекта.
type cartEnvelope struct {
	Items []domain.CartItemDTO `json:"items"`
}

// FetchCart возвращает сырые позиции корзины. API отдаёт либо голый массив,
// либо объект {items: [...]} — поддерживаются оба варианта.
func (c *Client) FetchCart(ctx context.Context) ([]domain.CartItemDTO, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "fetch_cart", http.MethodGet, "/cart", true, nil, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []domain.CartItemDTO{}, nil
	}

	var items []domain.CartItemDTO
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var envelope cartEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode cart response: %w", err)
	}
	if envelope.Items == nil {
		return []domain.CartItemDTO{}, nil
	}
	return envelope.Items, nil
}

// addItemBody — тело POST /cart/products/{id}; поле цвета здесь называется "color".
type addItemBody struct {
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// AddItem создаёт или инкрементирует позицию на сервере.
func (c *Client) AddItem(ctx context.Context, productID int, color, size string, quantity int) error {
	path := fmt.Sprintf("/cart/products/%d", productID)
	body := addItemBody{Color: color, Size: size, Quantity: quantity}
	return c.do(ctx, "add_item", http.MethodPost, path, true, body, nil)
}

// updateItemBody — тело PATCH /cart/products/{id}; здесь цвет называется "colorName".
type updateItemBody struct {
	ColorName string `json:"colorName"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// UpdateItem выставляет позиции абсолютное количество (не дельту).
func (c *Client) UpdateItem(ctx context.Context, productID int, colorName, size string, quantity int) error {
	path := fmt.Sprintf("/cart/products/%d", productID)
	body := updateItemBody{ColorName: colorName, Size: size, Quantity: quantity}
	return c.do(ctx, "update_item", http.MethodPatch, path, true, body, nil)
}

// removeItemBody — тело DELETE /cart/products/{id}.
type removeItemBody struct {
	ColorName string `json:"colorName"`
	Size      string `json:"size"`
}

// RemoveItem удаляет позицию целиком. Ответ API бывает голым булем,
// объектом {success: bool} или пустым телом; пустой 2xx считается успехом.
func (c *Client) RemoveItem(ctx context.Context, productID int, colorName, size string) (bool, error) {
	path := fmt.Sprintf("/cart/products/%d", productID)
	body := removeItemBody{ColorName: colorName, Size: size}

	var raw json.RawMessage
	if err := c.do(ctx, "remove_item", http.MethodDelete, path, true, body, &raw); err != nil {
		return false, err
	}
	if len(raw) == 0 {
		return true, nil
	}

	var flag bool
	if err := json.Unmarshal(raw, &flag); err == nil {
		return flag, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if field, ok := wrapped["success"]; ok {
			if err := json.Unmarshal(field, &flag); err == nil {
				return flag, nil
			}
		}
	}
	// Непустое, но нераспознанное тело при 2xx — считаем успехом.
	return true, nil
}

var _ domain.CartGateway = (*Client)(nil)
