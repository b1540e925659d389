package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Ошибка отсутствующего или некорректного идентификатора товара.
	ErrProductIDInvalid = errors.New("product id must be positive")
	// Ошибка отсутствующей метки размера.
	ErrSizeRequired = errors.New("size is required")
	// Ошибка некорректного количества в позиции (<= 0).
	ErrLineQtyInvalid = errors.New("line quantity must be greater than zero")
	// Ошибка отрицательной цены позиции.
	ErrLinePriceInvalid = errors.New("line unit price must be non-negative")
	// ErrLineKeyMalformed возвращается при разборе нечитаемого ключа позиции.
	ErrLineKeyMalformed = errors.New("malformed line key")
	// ErrLineNotFound возвращается, если позиции с таким ключом нет в корзине.
	ErrLineNotFound = errors.New("cart line not found")
	// ErrCartEmpty — попытка оформить заказ с пустой корзиной.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrNoCredential — нет сохранённого токена; запрос к API не выполняется.
	ErrNoCredential = errors.New("no auth credential available")
	// ErrCredentialExpired — сохранённый токен истёк; запрос к API не выполняется.
	ErrCredentialExpired = errors.New("auth credential expired")

	// Ошибки валидации контактных данных при оформлении заказа.
	ErrContactNameRequired    = errors.New("contact name is required")
	ErrContactSurnameRequired = errors.New("contact surname is required")
	ErrContactEmailRequired   = errors.New("contact email is required")
	ErrContactAddressRequired = errors.New("contact address is required")
	ErrContactZipRequired     = errors.New("contact zip code is required")
)

// HTTPError описывает ответ удалённого API со статусом вне 2xx.
// Тело сохраняется как текст: формат ошибок у API нестабилен, поэтому
// структура извлекается из него только в момент формирования сообщения.
type HTTPError struct {
	Status int
	Body   string
}

// Error формирует сообщение из статуса и нормализованного тела ответа.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message())
}

// apiErrorBody — известная часть тела ошибки: message и/или карта
// ошибок валидации. Остальные поля игнорируются.
type apiErrorBody struct {
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

// Message извлекает человекочитаемое сообщение из тела ответа.
// Карта ошибок валидации склеивается в одну строку; если тело не JSON,
// оно возвращается как есть.
func (e *HTTPError) Message() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return "request failed"
	}

	var parsed apiErrorBody
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return body
	}
	if joined := joinValidationErrors(parsed.Errors); joined != "" {
		return joined
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	return body
}

// Unauthorized сообщает, что сервер отверг предъявленный токен.
func (e *HTTPError) Unauthorized() bool {
	return e.Status == 401
}

// joinValidationErrors склеивает карту {field: ["msg", ...]} в одну строку.
// Значения бывают и строками, и массивами строк.
func joinValidationErrors(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}

	// Сортируем по имени поля, чтобы сообщение было детерминированным.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var msgs []string
	for _, name := range names {
		var list []string
		if err := json.Unmarshal(fields[name], &list); err == nil {
			msgs = append(msgs, list...)
			continue
		}
		var single string
		if err := json.Unmarshal(fields[name], &single); err == nil {
			msgs = append(msgs, single)
		}
	}
	return strings.Join(msgs, ", ")
}

// NetworkError оборачивает транспортный сбой (DNS, connection refused,
// таймаут). Магазин не различает его с прочими сбоями, но тип сохраняется
// для логов и health-проверок.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsAuthError проверяет, является ли ошибка проблемой аутентификации:
// отсутствующий/истёкший токен либо 401 от сервера.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrNoCredential) || errors.Is(err, ErrCredentialExpired) {
		return true
	}
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Unauthorized()
}
