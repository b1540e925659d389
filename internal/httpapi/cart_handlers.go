package httpapi

import (
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
)

// lineView — позиция корзины в ответе фасада; ключ отдаётся строкой,
// пригодной для подстановки в путь.
type lineView struct {
	Key         string  `json:"key"`
	ProductID   int     `json:"product_id"`
	ColorName   string  `json:"color_name"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	DisplayName string  `json:"display_name"`
	ImageURL    string  `json:"image_url"`
}

type cartStateView struct {
	Items         []lineView `json:"items"`
	TotalQuantity int        `json:"total_quantity"`
	TotalPrice    float64    `json:"total_price"`
	Loading       bool       `json:"loading"`
	Error         string     `json:"error,omitempty"`
}

func lineViewOf(line domain.CartLine) lineView {
	return lineView{
		Key:         line.Key.String(),
		ProductID:   line.Key.ProductID,
		ColorName:   line.Key.ColorName,
		Size:        line.Key.Size,
		Quantity:    line.Quantity,
		UnitPrice:   line.UnitPrice,
		DisplayName: line.DisplayName,
		ImageURL:    line.ImageURL,
	}
}

func cartStateViewOf(state cart.State) cartStateView {
	items := make([]lineView, 0, len(state.Items))
	for _, line := range state.Items {
		items = append(items, lineViewOf(line))
	}
	qty, price := domain.Totals(state.Items)
	view := cartStateView{
		Items:         items,
		TotalQuantity: qty,
		TotalPrice:    price,
		Loading:       state.Loading,
	}
	if state.Err != nil {
		view.Error = state.Err.Error()
	}
	return view
}

func (s *Server) respondCartState(w http.ResponseWriter) {
	s.writeJSON(w, http.StatusOK, cartStateViewOf(s.cart.Snapshot()))
}

func (s *Server) handleCartState(w http.ResponseWriter, r *http.Request) {
	s.respondCartState(w)
}

type addItemRequest struct {
	ProductID int    `json:"product_id"`
	ColorName string `json:"color_name"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`

	DisplayName string   `json:"display_name"`
	ImageURL    string   `json:"image_url"`
	UnitPrice   *float64 `json:"unit_price"`
}

// handleCartAdd добавляет товар. Метаданные из запроса попадают в кеш
// и дополняют скупые ответы сервера при последующих refresh.
func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	meta := domain.Metadata{
		DisplayName: req.DisplayName,
		ImageURL:    req.ImageURL,
	}
	if req.UnitPrice != nil {
		meta.UnitPrice = *req.UnitPrice
		meta.HasPrice = true
	}

	if err := s.cart.Add(r.Context(), req.ProductID, req.ColorName, req.Size, req.Quantity, meta); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondCartState(w)
}

func (s *Server) lineKey(w http.ResponseWriter, r *http.Request) (domain.LineKey, bool) {
	key, err := domain.ParseLineKey(r.PathValue("key"))
	if err != nil {
		s.writeError(w, err)
		return domain.LineKey{}, false
	}
	return key, true
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Мутации количества отвечают текущим состоянием даже после сбоя:
// ошибка уже записана в состояние, позиции сохраняют последний
// успешный снимок.
func (s *Server) handleCartSetQuantity(w http.ResponseWriter, r *http.Request) {
	key, ok := s.lineKey(w, r)
	if !ok {
		return
	}
	var req setQuantityRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.cart.SetQuantity(r.Context(), key, req.Quantity); err != nil {
		s.logger.WithError(err).Debug("мутация количества не прошла")
	}
	s.respondCartState(w)
}

func (s *Server) handleCartIncrement(w http.ResponseWriter, r *http.Request) {
	key, ok := s.lineKey(w, r)
	if !ok {
		return
	}
	if err := s.cart.Increment(r.Context(), key); err != nil {
		s.logger.WithError(err).Debug("инкремент не прошёл")
	}
	s.respondCartState(w)
}

func (s *Server) handleCartDecrement(w http.ResponseWriter, r *http.Request) {
	key, ok := s.lineKey(w, r)
	if !ok {
		return
	}
	if err := s.cart.Decrement(r.Context(), key); err != nil {
		s.logger.WithError(err).Debug("декремент не прошёл")
	}
	s.respondCartState(w)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	key, ok := s.lineKey(w, r)
	if !ok {
		return
	}
	if err := s.cart.Remove(r.Context(), key); err != nil {
		s.logger.WithError(err).Debug("удаление не прошло")
	}
	s.respondCartState(w)
}

func (s *Server) handleCartRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.cart.Refresh(r.Context()); err != nil {
		s.logger.WithError(err).Debug("refresh не прошёл")
	}
	s.respondCartState(w)
}
