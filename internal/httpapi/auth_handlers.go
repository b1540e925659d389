package httpapi

import (
	"encoding/base64"
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionView struct {
	LoggedIn bool             `json:"logged_in"`
	User     *domain.AuthUser `json:"user,omitempty"`
}

// handleLogin открывает сессию: токен и профиль сохраняются локально,
// после входа корзина перечитывается в фоне.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	session, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.cart.Refresh(r.Context()); err != nil {
		s.logger.WithError(err).Debug("корзина после входа не перечитана")
	}
	s.writeJSON(w, http.StatusOK, sessionView{LoggedIn: true, User: &session.User})
}

type registerRequest struct {
	Email                string `json:"email"`
	Username             string `json:"username"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	// AvatarBase64 — необязательный файл аватара в base64.
	AvatarBase64 string `json:"avatar_base64"`
	AvatarName   string `json:"avatar_name"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	payload := domain.RegisterPayload{
		Email:                req.Email,
		Username:             req.Username,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		AvatarName:           req.AvatarName,
	}
	if req.AvatarBase64 != "" {
		avatar, err := base64.StdEncoding.DecodeString(req.AvatarBase64)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid avatar encoding"})
			return
		}
		payload.Avatar = avatar
	}

	if err := s.auth.Register(r.Context(), payload); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionView{LoggedIn: false})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	view := sessionView{LoggedIn: s.auth.IsLoggedIn()}
	if view.LoggedIn {
		if user, ok := s.auth.CurrentUser(); ok {
			view.User = &user
		}
	}
	s.writeJSON(w, http.StatusOK, view)
}
