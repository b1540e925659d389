package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("не удалось записать ответ")
	}
}

// writeError переводит доменную ошибку в статус и тело {error: msg}.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	var httpErr *domain.HTTPError
	var netErr *domain.NetworkError
	switch {
	case domain.IsAuthError(err):
		status = http.StatusUnauthorized
		if errors.As(err, &httpErr) {
			message = httpErr.Message()
		}
	case errors.As(err, &httpErr):
		status = httpErr.Status
		message = httpErr.Message()
	case errors.As(err, &netErr):
		status = http.StatusBadGateway
		message = "remote API is unreachable"
	case isValidationError(err):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrCartEmpty):
		status = http.StatusConflict
	}

	s.writeJSON(w, status, errorResponse{Error: message})
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrProductIDInvalid,
		domain.ErrSizeRequired,
		domain.ErrLineQtyInvalid,
		domain.ErrLineKeyMalformed,
		domain.ErrContactNameRequired,
		domain.ErrContactSurnameRequired,
		domain.ErrContactEmailRequired,
		domain.ErrContactAddressRequired,
		domain.ErrContactZipRequired,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
