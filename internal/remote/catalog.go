package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productDTO — карточка товара в листинге; имя приходит как title или name,
// картинка как image или thumbnail.
type productDTO struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Thumbnail string  `json:"thumbnail"`
}

// productPageDTO — страница листинга в Laravel-стиле: data + meta.
type productPageDTO struct {
	Data []productDTO    `json:"data"`
	Meta domain.PageMeta `json:"meta"`
}

// Заглушка имени товара, когда API не прислало ни title, ни name.
const untitledProduct = "Untitled"

// ListProducts возвращает страницу листинга с фильтром и сортировкой.
func (c *Client) ListProducts(ctx context.Context, query domain.ProductQuery) (domain.ProductPage, error) {
	params := url.Values{}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(query.PerPage))
	}
	if query.PriceFrom != nil {
		params.Set("filter[price_from]", strconv.FormatFloat(*query.PriceFrom, 'f', -1, 64))
	}
	if query.PriceTo != nil {
		params.Set("filter[price_to]", strconv.FormatFloat(*query.PriceTo, 'f', -1, 64))
	}
	if query.Sort != "" {
		params.Set("sort", query.Sort)
	}

	path := "/products"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page productPageDTO
	if err := c.do(ctx, "list_products", http.MethodGet, path, true, nil, &page); err != nil {
		return domain.ProductPage{}, err
	}

	items := make([]domain.ProductSummary, 0, len(page.Data))
	for _, p := range page.Data {
		items = append(items, domain.ProductSummary{
			ID:       p.ID,
			Name:     productName(p.Title, p.Name),
			Price:    p.Price,
			ImageURL: domain.AbsoluteURL(c.imageBase, firstOf(p.Image, p.Thumbnail)),
		})
	}
	return domain.ProductPage{Items: items, Meta: page.Meta}, nil
}

// productColorDTO — вариант цвета в карточке детали.
type productColorDTO struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// productDetailDTO — карточка детали товара. Галерея бывает массивом строк
// или объектов {url}, поэтому элементы разбираются индивидуально.
type productDetailDTO struct {
	ID          int               `json:"id"`
	Title       string            `json:"title"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Brand       json.RawMessage   `json:"brand"`
	Price       float64           `json:"price"`
	Colors      []productColorDTO `json:"colors"`
	Sizes       []string          `json:"sizes"`
	Images      []json.RawMessage `json:"images"`
	Image       string            `json:"image"`
	Thumbnail   string            `json:"thumbnail"`
}

// GetProduct возвращает карточку товара для страницы детали.
func (c *Client) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, domain.ErrProductIDInvalid
	}

	var raw json.RawMessage
	path := fmt.Sprintf("/products/%d", id)
	if err := c.do(ctx, "get_product", http.MethodGet, path, true, nil, &raw); err != nil {
		return domain.Product{}, err
	}

	// Деталь бывает завёрнута в {data: {...}}.
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		raw = envelope.Data
	}

	var dto productDetailDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.Product{}, fmt.Errorf("decode product response: %w", err)
	}

	product := domain.Product{
		ID:          dto.ID,
		Name:        productName(dto.Title, dto.Name),
		Description: dto.Description,
		Brand:       brandName(dto.Brand),
		Price:       dto.Price,
		Sizes:       dto.Sizes,
		Thumbnail:   domain.AbsoluteURL(c.imageBase, firstOf(dto.Thumbnail, dto.Image)),
	}
	for _, color := range dto.Colors {
		product.Colors = append(product.Colors, domain.ColorOption{
			Name:     color.Name,
			ImageURL: domain.AbsoluteURL(c.imageBase, color.Image),
		})
	}
	for _, img := range dto.Images {
		if u := imageURL(img); u != "" {
			product.Images = append(product.Images, domain.AbsoluteURL(c.imageBase, u))
		}
	}
	return product, nil
}

// productName выбирает имя товара: title, затем name, затем заглушка.
func productName(title, name string) string {
	if title != "" {
		return title
	}
	if name != "" {
		return name
	}
	return untitledProduct
}

// brandName достаёт имя бренда: поле бывает строкой или объектом {name}.
func brandName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Name
	}
	return ""
}

// imageURL достаёт ссылку из элемента галереи: строка или объект {url}.
func imageURL(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.URL
	}
	return ""
}

func firstOf(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

var _ domain.ProductGateway = (*Client)(nil)
