// Package httpapi — локальный JSON-фасад для UI-слоя: корзина, каталог,
// сессия и оформление заказа.
package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/service/auth"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
)

// Server связывает HTTP-маршруты с сервисами приложения.
type Server struct {
	cart     *cart.Store
	catalog  *catalog.Service
	auth     *auth.Service
	checkout *checkout.Service
	logger   *log.Entry
}

// NewServer создаёт фасад поверх собранных сервисов.
func NewServer(cartStore *cart.Store, catalogSvc *catalog.Service, authSvc *auth.Service, checkoutSvc *checkout.Service, logger *log.Entry) *Server {
	if logger == nil {
		logger = log.New().WithField("component", "httpapi")
	}
	return &Server{
		cart:     cartStore,
		catalog:  catalogSvc,
		auth:     authSvc,
		checkout: checkoutSvc,
		logger:   logger,
	}
}

// Handler собирает маршрутизатор со всеми эндпоинтами фасада.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/cart", s.handleCartState)
	mux.HandleFunc("POST /api/cart/items", s.handleCartAdd)
	mux.HandleFunc("PATCH /api/cart/items/{key}", s.handleCartSetQuantity)
	mux.HandleFunc("POST /api/cart/items/{key}/increment", s.handleCartIncrement)
	mux.HandleFunc("POST /api/cart/items/{key}/decrement", s.handleCartDecrement)
	mux.HandleFunc("DELETE /api/cart/items/{key}", s.handleCartRemove)
	mux.HandleFunc("POST /api/cart/refresh", s.handleCartRefresh)

	mux.HandleFunc("GET /api/products", s.handleProductList)
	mux.HandleFunc("GET /api/products/{id}", s.handleProductGet)

	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("GET /api/session", s.handleSession)

	mux.HandleFunc("GET /api/checkout/summary", s.handleCheckoutSummary)
	mux.HandleFunc("POST /api/checkout", s.handleCheckout)

	return s.withRequestID(s.withAccessLog(mux))
}

// withRequestID присваивает каждому запросу идентификатор, если клиент
// не принёс свой.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r)
	})
}

// statusRecorder запоминает код ответа для access-лога.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.logger.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     recorder.status,
			"request_id": w.Header().Get("X-Request-Id"),
		}).Debug("запрос обработан")
	})
}
