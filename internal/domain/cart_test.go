package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// helper для создания валидной позиции корзины.
func makeLine() domain.CartLine {
	return domain.CartLine{
		Key:         domain.LineKey{ProductID: 7, ColorName: "Red", Size: "M"},
		Quantity:    2,
		UnitPrice:   25,
		DisplayName: "Shirt",
		ImageURL:    "https://cdn.example.com/x.png",
	}
}

func TestLineKeyString_Stable(t *testing.T) {
	key := domain.LineKey{ProductID: 7, ColorName: "Red", Size: "M"}

	first := key.String()
	if first != "7::Red::M" {
		t.Fatalf("unexpected key string: %q", first)
	}
	// Повторные вызовы обязаны давать идентичную строку.
	for i := 0; i < 5; i++ {
		if got := key.String(); got != first {
			t.Fatalf("key string is not stable: %q vs %q", got, first)
		}
	}
}

func TestLineKeyString_EscapesSeparator(t *testing.T) {
	// Два разных ключа, которые при наивной склейке дали бы одну строку.
	a := domain.LineKey{ProductID: 1, ColorName: "Red::M", Size: "L"}
	b := domain.LineKey{ProductID: 1, ColorName: "Red", Size: "M::L"}

	if a.String() == b.String() {
		t.Fatalf("distinct keys collided: %q", a.String())
	}
}

func TestParseLineKey_Roundtrip(t *testing.T) {
	cases := []domain.LineKey{
		{ProductID: 7, ColorName: "Red", Size: "M"},
		{ProductID: 42, ColorName: "", Size: "XL"},
		{ProductID: 1, ColorName: "Navy: Blue", Size: "S"},
		{ProductID: 9, ColorName: `Back\Slash`, Size: "M::L"},
	}

	for _, key := range cases {
		parsed, err := domain.ParseLineKey(key.String())
		if err != nil {
			t.Fatalf("parse %q: %v", key.String(), err)
		}
		if parsed != key {
			t.Fatalf("roundtrip mismatch: got %+v want %+v", parsed, key)
		}
	}
}

func TestParseLineKey_Malformed(t *testing.T) {
	cases := []string{"", "7::Red", "abc::Red::M", "7::Red::M::extra"}

	for _, raw := range cases {
		if _, err := domain.ParseLineKey(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestCartLineValidateInvariants_Ok(t *testing.T) {
	line := makeLine()
	if errs := line.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestCartLineValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(l *domain.CartLine)
	}{
		{
			name: "no product id",
			mut: func(l *domain.CartLine) {
				l.Key.ProductID = 0
			},
		},
		{
			name: "no size",
			mut: func(l *domain.CartLine) {
				l.Key.Size = ""
			},
		},
		{
			name: "zero quantity",
			mut: func(l *domain.CartLine) {
				l.Quantity = 0
			},
		},
		{
			name: "negative price",
			mut: func(l *domain.CartLine) {
				l.UnitPrice = -1
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := makeLine()
			tc.mut(&line)
			if errs := line.ValidateInvariants(); len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
		})
	}
}

func TestTotals(t *testing.T) {
	cases := []struct {
		name      string
		items     []domain.CartLine
		wantQty   int
		wantPrice float64
	}{
		{
			name:      "empty",
			items:     nil,
			wantQty:   0,
			wantPrice: 0,
		},
		{
			name: "single line",
			items: []domain.CartLine{
				{Key: domain.LineKey{ProductID: 7, ColorName: "Red", Size: "M"}, Quantity: 2, UnitPrice: 25},
			},
			wantQty:   2,
			wantPrice: 50,
		},
		{
			name: "several lines",
			items: []domain.CartLine{
				{Key: domain.LineKey{ProductID: 7, ColorName: "Red", Size: "M"}, Quantity: 3, UnitPrice: 25},
				{Key: domain.LineKey{ProductID: 8, ColorName: "Blue", Size: "S"}, Quantity: 1, UnitPrice: 10.5},
			},
			wantQty:   4,
			wantPrice: 85.5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qty, price := domain.Totals(tc.items)
			if qty != tc.wantQty {
				t.Fatalf("total quantity: got %d want %d", qty, tc.wantQty)
			}
			if price != tc.wantPrice {
				t.Fatalf("total price: got %v want %v", price, tc.wantPrice)
			}
		})
	}
}

func TestProductHeroImage(t *testing.T) {
	p := domain.Product{
		Colors: []domain.ColorOption{
			{Name: "Red", ImageURL: "red.png"},
			{Name: "Blue", ImageURL: ""},
		},
		Images:    []string{"gallery-1.png", "gallery-2.png"},
		Thumbnail: "thumb.png",
	}

	if got := p.HeroImage(0); got != "red.png" {
		t.Fatalf("color image expected, got %q", got)
	}
	// У цвета нет картинки — берём галерею.
	if got := p.HeroImage(1); got != "gallery-1.png" {
		t.Fatalf("gallery fallback expected, got %q", got)
	}
	p.Images = nil
	if got := p.HeroImage(1); got != "thumb.png" {
		t.Fatalf("thumbnail fallback expected, got %q", got)
	}
}

func TestProductGallery_Dedupes(t *testing.T) {
	p := domain.Product{
		Colors:    []domain.ColorOption{{Name: "Red", ImageURL: "a.png"}},
		Images:    []string{"a.png", "b.png", ""},
		Thumbnail: "b.png",
	}

	gallery := p.Gallery()
	if len(gallery) != 2 {
		t.Fatalf("expected 2 unique images, got %v", gallery)
	}
	if gallery[0] != "a.png" || gallery[1] != "b.png" {
		t.Fatalf("unexpected gallery order: %v", gallery)
	}
}
