package domain

// ProductQuery описывает параметры выборки списка товаров:
// пагинация, ценовой фильтр и порядок сортировки.
type ProductQuery struct {
	Page    int
	PerPage int
	// PriceFrom/PriceTo — границы фильтра по цене; nil означает "не задано".
	PriceFrom *float64
	PriceTo   *float64
	// Sort — поле сортировки в нотации API, например "price" или "-created_at".
	Sort string
}

// PageMeta — серверные метаданные пагинации, пробрасываются в UI как есть.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	From        int `json:"from"`
	To          int `json:"to"`
	Total       int `json:"total"`
}

// ProductSummary — карточка товара в листинге.
type ProductSummary struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}

// ProductPage — одна страница листинга с метаданными пагинации.
type ProductPage struct {
	Items []ProductSummary `json:"items"`
	Meta  PageMeta         `json:"meta"`
}

// ColorOption — вариант цвета товара с собственной картинкой.
type ColorOption struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// Product — карточка товара для страницы детали: варианты цвета, размеры
// и галерея изображений.
type Product struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Brand       string        `json:"brand"`
	Price       float64       `json:"price"`
	Colors      []ColorOption `json:"colors"`
	Sizes       []string      `json:"sizes"`
	Images      []string      `json:"images"`
	Thumbnail   string        `json:"thumbnail"`
}

// HeroImage выбирает главную картинку для выбранного цвета: картинка цвета,
// затем первая из галереи, затем thumbnail.
func (p Product) HeroImage(colorIdx int) string {
	if colorIdx >= 0 && colorIdx < len(p.Colors) && p.Colors[colorIdx].ImageURL != "" {
		return p.Colors[colorIdx].ImageURL
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return p.Thumbnail
}

// Gallery собирает все известные изображения товара без дублей:
// галерея, картинки цветов, thumbnail.
func (p Product) Gallery() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	for _, u := range p.Images {
		add(u)
	}
	for _, c := range p.Colors {
		add(c.ImageURL)
	}
	add(p.Thumbnail)
	return out
}
