package checkout

import (
	"context"
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/remote"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func floatPtr(v float64) *float64 { return &v }

func validContact() domain.ContactDetails {
	return domain.ContactDetails{
		Name:    "Ivan",
		Surname: "Petrov",
		Email:   "ivan@example.com",
		Address: "Main st. 1",
		ZipCode: "10001",
	}
}

func newFixture(t *testing.T, items []domain.CartItemDTO) (*Service, *remote.MockGateway, *cart.Store) {
	t.Helper()
	gateway := remote.NewMockGateway()
	gateway.Items = items
	cartStore := cart.NewStoreWithoutMetrics(gateway, memory.NewMetadataCache(), "", log.New().WithField("test", "checkout"))
	if len(items) > 0 {
		if err := cartStore.Refresh(context.Background()); err != nil {
			t.Fatalf("refresh: %v", err)
		}
	}
	svc := NewService(gateway, cartStore, nil)
	return svc, gateway, cartStore
}

func TestService_Summary(t *testing.T) {
	svc, _, _ := newFixture(t, []domain.CartItemDTO{
		{ProductID: 1, ColorName: "Red", Size: "M", Quantity: 2, Name: "Jacket", Price: floatPtr(10)},
		{ProductID: 2, ColorName: "Blue", Size: "S", Quantity: 1, Name: "Cap", Price: floatPtr(4)},
	})

	summary := svc.Summary()
	if summary.Subtotal != 24 {
		t.Fatalf("expected subtotal 24, got %v", summary.Subtotal)
	}
	if summary.Delivery != DeliveryFee {
		t.Fatalf("expected delivery %v, got %v", DeliveryFee, summary.Delivery)
	}
	if summary.Total != 29 {
		t.Fatalf("expected total 29, got %v", summary.Total)
	}
	if len(summary.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(summary.Items))
	}
}

func TestService_SummaryEmptyCart(t *testing.T) {
	svc, _, _ := newFixture(t, nil)

	summary := svc.Summary()
	if summary.Subtotal != 0 || summary.Delivery != 0 || summary.Total != 0 {
		t.Fatalf("empty cart must have zero totals: %+v", summary)
	}
}

func TestService_PlaceOrderValidatesContact(t *testing.T) {
	svc, gateway, _ := newFixture(t, []domain.CartItemDTO{
		{ProductID: 1, ColorName: "Red", Size: "M", Quantity: 1, Price: floatPtr(10)},
	})

	contact := validContact()
	contact.Email = ""
	contact.ZipCode = ""
	err := svc.PlaceOrder(context.Background(), contact)
	if !errors.Is(err, domain.ErrContactEmailRequired) {
		t.Fatalf("expected email error, got %v", err)
	}
	if !errors.Is(err, domain.ErrContactZipRequired) {
		t.Fatalf("expected zip error, got %v", err)
	}
	if gateway.CheckoutCalls != 0 {
		t.Fatal("gateway must not be called for invalid contact")
	}
}

func TestService_PlaceOrderEmptyCart(t *testing.T) {
	svc, gateway, _ := newFixture(t, nil)

	err := svc.PlaceOrder(context.Background(), validContact())
	if !errors.Is(err, domain.ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
	if gateway.CheckoutCalls != 0 {
		t.Fatal("gateway must not be called for an empty cart")
	}
}

func TestService_PlaceOrderSuccessRefreshesCart(t *testing.T) {
	svc, gateway, cartStore := newFixture(t, []domain.CartItemDTO{
		{ProductID: 1, ColorName: "Red", Size: "M", Quantity: 1, Price: floatPtr(10)},
	})

	// После оформления сервер очищает корзину.
	fetchesBefore := gateway.FetchCalls
	gateway.Items = nil

	if err := svc.PlaceOrder(context.Background(), validContact()); err != nil {
		t.Fatalf("place order: %v", err)
	}
	if gateway.CheckoutCalls != 1 {
		t.Fatalf("expected one checkout call, got %d", gateway.CheckoutCalls)
	}
	if gateway.FetchCalls != fetchesBefore+1 {
		t.Fatal("cart must be refreshed after checkout")
	}
	if state := cartStore.Snapshot(); len(state.Items) != 0 {
		t.Fatalf("expected empty cart after checkout, got %d items", len(state.Items))
	}
}

func TestService_PlaceOrderGatewayFailure(t *testing.T) {
	svc, gateway, cartStore := newFixture(t, []domain.CartItemDTO{
		{ProductID: 1, ColorName: "Red", Size: "M", Quantity: 1, Price: floatPtr(10)},
	})
	gateway.CheckoutErr = &domain.HTTPError{Status: 500, Body: "oops"}

	err := svc.PlaceOrder(context.Background(), validContact())
	var httpErr *domain.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if state := cartStore.Snapshot(); len(state.Items) != 1 {
		t.Fatal("cart must keep its items after a failed checkout")
	}
}
