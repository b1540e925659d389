package httpapi

import (
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type checkoutRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Address string `json:"address"`
	ZipCode string `json:"zip_code"`
}

type summaryView struct {
	Items    []lineView `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Delivery float64    `json:"delivery"`
	Total    float64    `json:"total"`
}

func (s *Server) handleCheckoutSummary(w http.ResponseWriter, r *http.Request) {
	summary := s.checkout.Summary()
	view := summaryView{
		Items:    make([]lineView, 0, len(summary.Items)),
		Subtotal: summary.Subtotal,
		Delivery: summary.Delivery,
		Total:    summary.Total,
	}
	for _, line := range summary.Items {
		view.Items = append(view.Items, lineViewOf(line))
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	contact := domain.ContactDetails{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Address: req.Address,
		ZipCode: req.ZipCode,
	}
	if err := s.checkout.PlaceOrder(r.Context(), contact); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondCartState(w)
}
