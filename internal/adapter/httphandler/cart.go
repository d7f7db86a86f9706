package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/easyup/storeapi/internal/core/domain"
	"github.com/easyup/storeapi/internal/core/port"
)

type CartHandler struct {
	cart  port.CartProvider
	users port.UserDirectory
}

func RegisterCart(
	mux *http.ServeMux, cart port.CartProvider, users port.UserDirectory,
) {
	h := CartHandler{cart, users}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/products/{id}", h.AddProduct)
	mux.HandleFunc("PUT /v1/cart/products/{id}", h.SetQuantity)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"

	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	cart, err := h.cart.GetCart(r.Context(), user)
	if err != nil {
		slog.Error("failed to get cart", "op", op, "userID", user.ID, "err", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartView(cart))
}

func (h CartHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddProduct"

	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	productID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.cart.AddProduct(r.Context(), user, productID); err != nil {
		slog.Error("failed to add product to cart",
			"op", op, "userID", user.ID, "productID", productID, "err", err)
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.SetQuantity"
	log := slog.With("op", op)

	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	productID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	err = h.cart.SetQuantity(r.Context(), user, productID, body.Quantity)
	if err != nil {
		log.Error("failed to set quantity",
			"userID", user.ID, "productID", productID, "err", err)
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.ClearCart"

	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	if err := h.cart.ClearCart(r.Context(), user); err != nil {
		slog.Error("failed to clear cart", "op", op, "userID", user.ID, "err", err)
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// principal resolves the basic-auth username through the user directory.
// Missing credentials or an unknown username are both unauthorized.
func (h CartHandler) principal(
	w http.ResponseWriter, r *http.Request,
) (domain.User, bool) {
	const op = "CartHandler.principal"

	username, _, ok := r.BasicAuth()
	if !ok || username == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return domain.User{}, false
	}

	user, err := h.users.UserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return domain.User{}, false
		}
		slog.Error("failed to resolve principal", "op", op, "err", err)
		writeError(w, err)
		return domain.User{}, false
	}

	return user, true
}
