package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"restaurant-storefront/internal/logging"
	"restaurant-storefront/internal/notify"
	"restaurant-storefront/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Menu      service.MenuServiceInterface
	Cart      service.CartServiceInterface
	POSCart   service.CartServiceInterface
	Customers service.CustomerServiceInterface
	Orders    service.OrderServiceInterface
	Checkout  service.CheckoutServiceInterface
	Settings  service.SettingsServiceInterface
	Auth      service.AuthServiceInterface
	Dashboard service.DashboardServiceInterface
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/settings", h.getSettings).Methods("GET")

	r.HandleFunc("/api/menu", h.listMenu).Methods("GET")
	r.HandleFunc("/api/menu/categories", h.menuCategories).Methods("GET")
	r.HandleFunc("/api/menu/{id}", h.getMenuItem).Methods("GET")

	r.HandleFunc("/api/cart", h.cartHandlers(h.Cart).get).Methods("GET")
	r.HandleFunc("/api/cart", h.cartHandlers(h.Cart).clear).Methods("DELETE")
	r.HandleFunc("/api/cart/quote", h.cartHandlers(h.Cart).quote).Methods("GET")
	r.HandleFunc("/api/cart/items", h.cartHandlers(h.Cart).add).Methods("POST")
	r.HandleFunc("/api/cart/items/{id}", h.cartHandlers(h.Cart).setQuantity).Methods("PUT")
	r.HandleFunc("/api/cart/items/{id}", h.cartHandlers(h.Cart).remove).Methods("DELETE")

	r.HandleFunc("/api/checkout", h.checkout).Methods("POST")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/logout", h.logout).Methods("POST")
	r.HandleFunc("/api/auth/status", h.authStatus).Methods("GET")

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(h.requireAdmin)
	h.registerAdminRoutes(admin)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeError maps service errors onto status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, notify.ErrNoContact):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("request_failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}
