package domain

import (
	"net/url"
	"strings"
)

// CartItemDTO — сырая позиция корзины в том виде, как её отдаёт удалённое
// API. Контракт апстрима нестабилен, поэтому структура держит надмножество
// встречавшихся написаний полей; приоритет кандидатов для каждого логического
// атрибута зафиксирован в Lines.
type CartItemDTO struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Color     string `json:"color"`
	ColorName string `json:"color_name"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	// Price — указатель, чтобы отличать отсутствующее поле от нулевой цены.
	Price      *float64 `json:"price"`
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	CoverImage string   `json:"cover_image"`
	Image      string   `json:"image"`
	Thumbnail  string   `json:"thumbnail"`
	Brand      string   `json:"brand"`
}

// Key вычисляет ключ позиции из идентифицирующих полей DTO.
func (d CartItemDTO) Key() LineKey {
	return LineKey{
		ProductID: firstPositive(d.ProductID, d.ID),
		ColorName: firstNonEmpty(d.ColorName, d.Color),
		Size:      d.Size,
	}
}

// DefaultDisplayName подставляется, когда имя товара неизвестно ни серверу,
// ни локальному кешу метаданных.
const DefaultDisplayName = "Product"

// Lines приводит список серверных DTO к каноническим позициям корзины.
// Отображаемые метаданные разрешаются в порядке: значение сервера →
// кеш метаданных → заглушка; количество всегда берётся у сервера, это
// авторитетное живое состояние. Пустой или nil вход даёт пустой список —
// это не ошибка. Дубли по ключу схлопываются суммированием количества.
// Относительные URL картинок доводятся до абсолютных относительно imageBase.
func Lines(dtos []CartItemDTO, cache MetadataCache, imageBase string) []CartLine {
	if len(dtos) == 0 {
		return []CartLine{}
	}

	items := make([]CartLine, 0, len(dtos))
	index := make(map[LineKey]int, len(dtos))

	for _, d := range dtos {
		if d.Quantity <= 0 {
			// Позиция с нулевым количеством не существует.
			continue
		}
		key := d.Key()

		if at, ok := index[key]; ok {
			items[at].Quantity += d.Quantity
			continue
		}

		var meta Metadata
		var cached bool
		if cache != nil {
			meta, cached = cache.Get(key)
		}

		// Порядок кандидатов на имя: name, title; на картинку:
		// cover_image, image, thumbnail. Новое написание поля апстрима
		// добавляется сюда одной позицией в списке.
		name := firstNonEmpty(d.Name, d.Title)
		if name == "" && cached {
			name = meta.DisplayName
		}
		if name == "" {
			name = DefaultDisplayName
		}

		image := firstNonEmpty(d.CoverImage, d.Image, d.Thumbnail)
		if image == "" && cached {
			image = meta.ImageURL
		}

		var price float64
		switch {
		case d.Price != nil:
			price = *d.Price
		case cached && meta.HasPrice:
			price = meta.UnitPrice
		}

		index[key] = len(items)
		items = append(items, CartLine{
			Key:         key,
			Quantity:    d.Quantity,
			UnitPrice:   price,
			DisplayName: name,
			ImageURL:    AbsoluteURL(imageBase, image),
		})
	}

	return items
}

// AbsoluteURL доводит относительный путь картинки до абсолютного URL.
// Уже абсолютные ссылки возвращаются как есть, пустые остаются пустыми.
func AbsoluteURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return ref
	}
	if base == "" {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}

// firstNonEmpty возвращает первый непустой вариант из списка кандидатов.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// firstPositive возвращает первый положительный вариант из списка кандидатов.
func firstPositive(candidates ...int) int {
	for _, c := range candidates {
		if c > 0 {
			return c
		}
	}
	return 0
}
