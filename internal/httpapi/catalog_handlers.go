package httpapi

import (
	"net/http"
	"strconv"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func (s *Server) handleProductList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := domain.ProductQuery{Sort: q.Get("sort")}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		query.Page = page
	}
	if perPage, err := strconv.Atoi(q.Get("per_page")); err == nil {
		query.PerPage = perPage
	}
	if from, err := strconv.ParseFloat(q.Get("price_from"), 64); err == nil {
		query.PriceFrom = &from
	}
	if to, err := strconv.ParseFloat(q.Get("price_to"), 64); err == nil {
		query.PriceTo = &to
	}

	page, err := s.catalog.List(r.Context(), query)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleProductGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.writeError(w, domain.ErrProductIDInvalid)
		return
	}
	product, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, product)
}
