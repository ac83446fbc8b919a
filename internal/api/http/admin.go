package httpapi

import (
	"net/http"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handler) registerAdminRoutes(r *mux.Router) {
	r.HandleFunc("/dashboard", h.dashboard).Methods("GET")

	r.HandleFunc("/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/orders/{id}/advance", h.advanceOrder).Methods("POST")
	r.HandleFunc("/orders/{id}/status", h.transitionOrder).Methods("PATCH")
	r.HandleFunc("/orders/{id}/notify", h.readyNotification).Methods("GET")

	r.HandleFunc("/menu", h.listMenu).Methods("GET")
	r.HandleFunc("/menu", h.createMenuItem).Methods("POST")
	r.HandleFunc("/menu/{id}", h.updateMenuItem).Methods("PUT")
	r.HandleFunc("/menu/{id}", h.deleteMenuItem).Methods("DELETE")

	r.HandleFunc("/customers", h.listCustomers).Methods("GET")
	r.HandleFunc("/customers", h.createCustomer).Methods("POST")
	r.HandleFunc("/customers/lookup", h.lookupCustomer).Methods("GET")

	r.HandleFunc("/settings", h.saveSettings).Methods("PUT")

	pos := h.cartHandlers(h.POSCart)
	r.HandleFunc("/pos/cart", pos.get).Methods("GET")
	r.HandleFunc("/pos/cart", pos.clear).Methods("DELETE")
	r.HandleFunc("/pos/cart/quote", pos.quote).Methods("GET")
	r.HandleFunc("/pos/cart/items", pos.add).Methods("POST")
	r.HandleFunc("/pos/cart/items/{id}", pos.setQuantity).Methods("PUT")
	r.HandleFunc("/pos/cart/items/{id}", pos.adjust).Methods("PATCH")
	r.HandleFunc("/pos/cart/items/{id}", pos.remove).Methods("DELETE")
	r.HandleFunc("/pos/checkout", h.confirmSale).Methods("POST")
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.Auth.Authenticated(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if !ok {
			writeError(w, r, service.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Dashboard.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context(), service.OrderFilter{
		Status: r.URL.Query().Get("status"),
		Query:  r.URL.Query().Get("q"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) advanceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Advance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type statusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *Handler) transitionOrder(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}
	order, err := h.Orders.Transition(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) readyNotification(w http.ResponseWriter, r *http.Request) {
	link, err := h.Orders.ReadyNotification(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"notificationUrl": link})
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if !decode(w, r, &item) {
		return
	}
	if err := h.Menu.Create(r.Context(), &item); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if !decode(w, r, &item) {
		return
	}
	item.ID = mux.Vars(r)["id"]
	if err := h.Menu.Update(r.Context(), &item); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Menu.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var ref domain.CustomerRef
	if !decode(w, r, &ref) {
		return
	}
	customer, err := h.Customers.Create(r.Context(), ref)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

type lookupResponse struct {
	Found    bool             `json:"found"`
	Customer *domain.Customer `json:"customer,omitempty"`
}

func (h *Handler) lookupCustomer(w http.ResponseWriter, r *http.Request) {
	customer, found, err := h.Customers.Lookup(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lookupResponse{Found: found, Customer: customer})
}

func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if !decode(w, r, &settings) {
		return
	}
	if err := h.Settings.Save(r.Context(), &settings); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) confirmSale(w http.ResponseWriter, r *http.Request) {
	var req service.SaleRequest
	if !decode(w, r, &req) {
		return
	}
	order, err := h.Checkout.ConfirmSale(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}
