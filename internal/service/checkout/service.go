// Package checkout считает итоги заказа и оформляет серверную корзину.
package checkout

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
)

// DeliveryFee — фиксированная стоимость доставки.
const DeliveryFee = 5.0

// Service оформляет заказ из текущей корзины.
type Service struct {
	gateway domain.CheckoutGateway
	cart    *cart.Store
	logger  *log.Entry
}

// NewService создаёт сервис оформления заказа.
func NewService(gateway domain.CheckoutGateway, cartStore *cart.Store, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "checkout")
	}
	return &Service{gateway: gateway, cart: cartStore, logger: logger}
}

// Summary возвращает итоги заказа по текущему состоянию корзины.
// Доставка фиксированная; у пустой корзины все итоги нулевые.
func (s *Service) Summary() domain.OrderSummary {
	state := s.cart.Snapshot()
	if len(state.Items) == 0 {
		return domain.OrderSummary{Items: []domain.CartLine{}}
	}
	_, subtotal := domain.Totals(state.Items)
	return domain.OrderSummary{
		Items:    state.Items,
		Subtotal: subtotal,
		Delivery: DeliveryFee,
		Total:    subtotal + DeliveryFee,
	}
}

// PlaceOrder проверяет контактные данные и оформляет заказ. После успеха
// корзина перечитывается: сервер её очищает.
func (s *Service) PlaceOrder(ctx context.Context, contact domain.ContactDetails) error {
	if errs := contact.ValidateInvariants(); len(errs) > 0 {
		return errors.Join(errs...)
	}
	if state := s.cart.Snapshot(); len(state.Items) == 0 {
		return domain.ErrCartEmpty
	}

	if err := s.gateway.Checkout(ctx); err != nil {
		s.logger.WithError(err).Warn("не удалось оформить заказ")
		return err
	}
	s.logger.Info("заказ оформлен")
	return s.cart.Refresh(ctx)
}
