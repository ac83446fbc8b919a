package httpapi

import (
	"net/http"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/pricing"
	"restaurant-storefront/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.List(r.Context(), service.MenuFilter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) menuCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Menu.Categories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type cartResponse struct {
	Items    domain.Cart `json:"items"`
	Count    int         `json:"count"`
	Subtotal float64     `json:"subtotal"`
}

func newCartResponse(cart domain.Cart) cartResponse {
	if cart == nil {
		cart = domain.Cart{}
	}
	return cartResponse{
		Items:    cart,
		Count:    cart.Count(),
		Subtotal: pricing.Subtotal(cart).InexactFloat64(),
	}
}

type addItemRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type deltaRequest struct {
	Delta int `json:"delta"`
}

// cartHandlers serves one cart collection; the storefront and the counter
// share the same handlers over different services.
type cartHandlers struct {
	svc service.CartServiceInterface
}

func (h *Handler) cartHandlers(svc service.CartServiceInterface) cartHandlers {
	return cartHandlers{svc: svc}
}

func (c cartHandlers) get(w http.ResponseWriter, r *http.Request) {
	cart, err := c.svc.Items(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

func (c cartHandlers) add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	cart, err := c.svc.Add(r.Context(), req.ItemID, req.Quantity, req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

func (c cartHandlers) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if !decode(w, r, &req) {
		return
	}
	cart, err := c.svc.SetQuantity(r.Context(), mux.Vars(r)["id"], req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

func (c cartHandlers) adjust(w http.ResponseWriter, r *http.Request) {
	var req deltaRequest
	if !decode(w, r, &req) {
		return
	}
	cart, err := c.svc.Adjust(r.Context(), mux.Vars(r)["id"], req.Delta)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

func (c cartHandlers) remove(w http.ResponseWriter, r *http.Request) {
	cart, err := c.svc.Remove(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

func (c cartHandlers) clear(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.Clear(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c cartHandlers) quote(w http.ResponseWriter, r *http.Request) {
	orderType := domain.OrderType(r.URL.Query().Get("type"))
	if orderType == "" {
		orderType = domain.OrderTakeaway
	}
	if !orderType.Valid() {
		http.Error(w, "Unknown order type", http.StatusBadRequest)
		return
	}
	quote, err := c.svc.Quote(r.Context(), orderType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := h.Checkout.Checkout(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qr, err := h.Orders.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Auth.Login(r.Context(), req.Username, req.Password); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
}

func (h *Handler) authStatus(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Auth.Authenticated(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": ok})
}
