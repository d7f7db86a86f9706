package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/easyup/storeapi/internal/core/domain"
	"github.com/easyup/storeapi/internal/core/port"
)

type ProductsHandler struct {
	products port.ProductsProvider
}

func RegisterProducts(mux *http.ServeMux, products port.ProductsProvider) {
	h := ProductsHandler{products}
	mux.HandleFunc("GET /v1/products", h.GetAll)
	mux.HandleFunc("GET /v1/products/search", h.Search)
	mux.HandleFunc("GET /v1/products/{id}", h.GetByID)
	mux.HandleFunc("POST /v1/products", h.Create)
	mux.HandleFunc("PUT /v1/products/{id}", h.Update)
	mux.HandleFunc("DELETE /v1/products/{id}", h.Delete)
}

func (h ProductsHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetAll"

	ps, err := h.products.GetAll(r.Context())
	if err != nil {
		slog.Error("failed to get products", "op", op, "err", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toViews(ps))
}

func (h ProductsHandler) Search(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Search"
	log := slog.With("op", op)

	criteria, err := parseFilterCriteria(r.URL.Query())
	if err != nil {
		log.Warn("invalid search params", "err", err)
		writeError(w, err)
		return
	}

	ps, err := h.products.Search(r.Context(), criteria)
	if err != nil {
		log.Error("failed to search products", "err", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toViews(ps))
}

func (h ProductsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetByID"

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		slog.Warn("failed to get product", "op", op, "id", id, "err", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductView(p))
}

func (h ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Create"
	log := slog.With("op", op)

	var v Product
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	created, err := h.products.Create(r.Context(), toDomainProduct(v))
	if err != nil {
		log.Error("failed to create product", "err", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductView(created))
}

func (h ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Update"
	log := slog.With("op", op)

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var v Product
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	p := toDomainProduct(v)
	p.ProductID = id

	if err := h.products.Update(r.Context(), p); err != nil {
		log.Warn("failed to update product", "id", id, "err", err)
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Delete"

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		slog.Error("failed to delete product", "op", op, "id", id, "err", err)
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (ProductsHandler) toViews(ps []domain.Product) []Product {
	views := make([]Product, 0, len(ps))
	for _, p := range ps {
		views = append(views, toProductView(p))
	}
	return views
}

// parseFilterCriteria turns raw query parameters into normalized criteria.
// Absent parameters stay unset; non-numeric values are invalid input.
func parseFilterCriteria(q url.Values) (domain.FilterCriteria, error) {
	var categoryID int
	if s := q.Get("category_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			return domain.FilterCriteria{}, domain.ErrInvalidInput
		}
		categoryID = id
	}

	minPrice, err := parsePrice(q.Get("min_price"))
	if err != nil {
		return domain.FilterCriteria{}, err
	}

	maxPrice, err := parsePrice(q.Get("max_price"))
	if err != nil {
		return domain.FilterCriteria{}, err
	}

	return domain.NewFilterCriteria(
		categoryID,
		minPrice, maxPrice,
		q.Get("sub_category"),
		q.Get("name"),
	), nil
}

func parsePrice(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &d, nil
}
