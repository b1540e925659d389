package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// LineKey однозначно идентифицирует позицию корзины по тройке
// (товар, название цвета, размер). Используется как составной ключ
// напрямую (comparable-структура), а не как склеенная строка, чтобы
// значения полей с разделителем не давали коллизий.
type LineKey struct {
	// ProductID — внешний идентификатор товара.
	ProductID int
	// ColorName — отображаемое название выбранного цвета (не числовой id).
	ColorName string
	// Size — текстовая метка размера.
	Size string
}

// keySeparator разделяет части строкового представления ключа.
const keySeparator = "::"

// String отдаёт стабильное строковое представление ключа вида
// "productId::colorName::size". Символы разделителя внутри полей
// экранируются, поэтому представление остаётся инъективным. Строка нужна
// только для логов и ключей списков в UI; идентичность позиций всегда
// сравнивается по самой структуре.
func (k LineKey) String() string {
	return strings.Join([]string{
		strconv.Itoa(k.ProductID),
		escapeKeyPart(k.ColorName),
		escapeKeyPart(k.Size),
	}, keySeparator)
}

// ParseLineKey восстанавливает ключ из строкового представления String.
func ParseLineKey(s string) (LineKey, error) {
	parts := splitKey(s)
	if len(parts) != 3 {
		return LineKey{}, fmt.Errorf("%w: %q", ErrLineKeyMalformed, s)
	}
	productID, err := strconv.Atoi(parts[0])
	if err != nil {
		return LineKey{}, fmt.Errorf("%w: bad product id %q", ErrLineKeyMalformed, parts[0])
	}
	return LineKey{
		ProductID: productID,
		ColorName: unescapeKeyPart(parts[1]),
		Size:      unescapeKeyPart(parts[2]),
	}, nil
}

// escapeKeyPart экранирует обратный слэш и двоеточие внутри поля ключа.
func escapeKeyPart(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, ":", `\:`)
}

func unescapeKeyPart(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// splitKey делит строку по "::", не разрывая экранированные двоеточия.
func splitKey(s string) []string {
	var parts []string
	var b strings.Builder
	escaped := false
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
			i++
		case c == '\\':
			b.WriteByte(c)
			escaped = true
			i++
		case c == ':' && i+1 < len(s) && s[i+1] == ':':
			parts = append(parts, b.String())
			b.Reset()
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	parts = append(parts, b.String())
	return parts
}

// CartLine представляет одну позицию корзины: уникальную комбинацию
// товар+цвет+размер и её количество.
type CartLine struct {
	Key LineKey
	// Quantity — положительное количество; позиция с нулём не существует.
	Quantity int
	// UnitPrice — цена за единицу на момент добавления/обновления.
	UnitPrice float64
	// DisplayName и ImageURL — отображаемые метаданные, в идентичность не входят.
	DisplayName string
	ImageURL    string
}

// ValidateInvariants проверяет базовые инварианты позиции и возвращает список замечаний.
func (l CartLine) ValidateInvariants() []error {
	var errs []error

	if l.Key.ProductID <= 0 {
		errs = append(errs, ErrProductIDInvalid)
	}
	if l.Key.Size == "" {
		errs = append(errs, ErrSizeRequired)
	}
	if l.Quantity <= 0 {
		errs = append(errs, ErrLineQtyInvalid)
	}
	if l.UnitPrice < 0 {
		errs = append(errs, ErrLinePriceInvalid)
	}

	return errs
}

// Metadata хранит последние известные отображаемые метаданные позиции.
// Это подстраховка для UI: сервер может не вернуть имя/картинку/цену,
// тогда значения берутся отсюда. Авторитетным источником количества
// metadata никогда не является.
type Metadata struct {
	DisplayName string
	ImageURL    string
	UnitPrice   float64
	// HasPrice отличает известную нулевую цену от отсутствующей.
	HasPrice bool
}

// Totals считает суммарное количество и суммарную стоимость по списку позиций.
// Чистая функция; округление — забота презентационного слоя.
func Totals(items []CartLine) (totalQty int, totalPrice float64) {
	for _, it := range items {
		totalQty += it.Quantity
		totalPrice += float64(it.Quantity) * it.UnitPrice
	}
	return totalQty, totalPrice
}
