package httphandler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyup/storeapi/internal/adapter/httphandler"
	"github.com/easyup/storeapi/internal/core/domain"
)

type stubProducts struct {
	products []domain.Product
	criteria domain.FilterCriteria
}

func (s *stubProducts) Search(
	_ context.Context, c domain.FilterCriteria,
) ([]domain.Product, error) {
	s.criteria = c
	return s.products, nil
}

func (s *stubProducts) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.Search(ctx, domain.FilterCriteria{})
}

func (s *stubProducts) GetByID(
	_ context.Context, productID int,
) (domain.Product, error) {
	for _, p := range s.products {
		if p.ProductID == productID {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("stub: %w", domain.ErrNotFound)
}

func (s *stubProducts) Create(
	_ context.Context, p domain.Product,
) (domain.Product, error) {
	p.ProductID = len(s.products) + 1
	s.products = append(s.products, p)
	return p, nil
}

func (s *stubProducts) Update(_ context.Context, p domain.Product) error {
	for i := range s.products {
		if s.products[i].ProductID == p.ProductID {
			s.products[i] = p
			return nil
		}
	}
	return fmt.Errorf("stub: %w", domain.ErrNotFound)
}

func (s *stubProducts) Delete(_ context.Context, productID int) error {
	return nil
}

type stubCart struct {
	added []int
}

func (s *stubCart) GetCart(
	_ context.Context, _ domain.User,
) (domain.ShoppingCart, error) {
	return domain.NewShoppingCart(), nil
}

func (s *stubCart) AddProduct(
	_ context.Context, _ domain.User, productID int,
) error {
	s.added = append(s.added, productID)
	return nil
}

func (s *stubCart) SetQuantity(
	_ context.Context, _ domain.User, _, _ int,
) error {
	return nil
}

func (s *stubCart) ClearCart(_ context.Context, _ domain.User) error {
	return nil
}

type stubUsers map[string]domain.User

func (s stubUsers) UserByUsername(
	_ context.Context, username string,
) (domain.User, error) {
	u, ok := s[username]
	if !ok {
		return domain.User{}, fmt.Errorf("stub: %w", domain.ErrNotFound)
	}
	return u, nil
}

func newTestServer(products *stubProducts, cart *stubCart) *httptest.Server {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, products)
	httphandler.RegisterCart(mux, cart, stubUsers{
		"alice": {ID: 10, Username: "alice"},
	})
	return httptest.NewServer(httphandler.AllowJSON(mux))
}

func testProducts() *stubProducts {
	price := decimal.NewFromInt(10)
	return &stubProducts{products: []domain.Product{
		{ProductID: 1, Name: "Dragon Quest", Price: price, CategoryID: 2, SubCategory: "RPG"},
	}}
}

func TestProductsEndpoints(t *testing.T) {
	t.Run("SearchParsesQueryParams", func(t *testing.T) {
		products := testProducts()
		srv := newTestServer(products, new(stubCart))
		defer srv.Close()

		res, err := http.Get(srv.URL +
			"/v1/products/search?category_id=2&max_price=15.00&sub_category=show+all&name=quest")
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, 2, products.criteria.CategoryID)
		require.NotNil(t, products.criteria.MaxPrice)
		assert.True(t, products.criteria.MaxPrice.Equal(decimal.NewFromInt(15)))
		assert.Nil(t, products.criteria.MinPrice)
		assert.Empty(t, products.criteria.SubCategory, "show all normalizes to unset")
		assert.Equal(t, "quest", products.criteria.Name)
	})

	t.Run("SearchRejectsMalformedPrice", func(t *testing.T) {
		srv := newTestServer(testProducts(), new(stubCart))
		defer srv.Close()

		res, err := http.Get(srv.URL + "/v1/products/search?min_price=cheap")
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("GetByIDNotFound", func(t *testing.T) {
		srv := newTestServer(testProducts(), new(stubCart))
		defer srv.Close()

		res, err := http.Get(srv.URL + "/v1/products/404")
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("GetByIDMalformedID", func(t *testing.T) {
		srv := newTestServer(testProducts(), new(stubCart))
		defer srv.Close()

		res, err := http.Get(srv.URL + "/v1/products/abc")
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("CreateReturnsCreated", func(t *testing.T) {
		srv := newTestServer(testProducts(), new(stubCart))
		defer srv.Close()

		body := strings.NewReader(
			`{"name":"Night Rally","price":"19.99","category_id":2}`)
		res, err := http.Post(srv.URL+"/v1/products", "application/json", body)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusCreated, res.StatusCode)
	})

	t.Run("NonJSONBodyRejected", func(t *testing.T) {
		srv := newTestServer(testProducts(), new(stubCart))
		defer srv.Close()

		body := strings.NewReader("name=NightRally")
		res, err := http.Post(srv.URL+"/v1/products", "text/plain", body)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
	})
}

func TestCartEndpoints(t *testing.T) {
	doCart := func(
		t *testing.T, srv *httptest.Server, method, path, username string,
	) *http.Response {
		t.Helper()
		req, err := http.NewRequest(method, srv.URL+path, nil)
		require.NoError(t, err)
		if username != "" {
			req.SetBasicAuth(username, "secret")
		}
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return res
	}

	t.Run("MissingCredentialsUnauthorized", func(t *testing.T) {
		srv := newTestServer(testProducts(), new(stubCart))
		defer srv.Close()

		res := doCart(t, srv, http.MethodGet, "/v1/cart", "")
		defer res.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("UnknownUserUnauthorized", func(t *testing.T) {
		srv := newTestServer(testProducts(), new(stubCart))
		defer srv.Close()

		res := doCart(t, srv, http.MethodGet, "/v1/cart", "mallory")
		defer res.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("AddProductNoContent", func(t *testing.T) {
		cart := new(stubCart)
		srv := newTestServer(testProducts(), cart)
		defer srv.Close()

		res := doCart(t, srv, http.MethodPost, "/v1/cart/products/1", "alice")
		defer res.Body.Close()

		assert.Equal(t, http.StatusNoContent, res.StatusCode)
		assert.Equal(t, []int{1}, cart.added)
	})

	t.Run("GetCartOK", func(t *testing.T) {
		srv := newTestServer(testProducts(), new(stubCart))
		defer srv.Close()

		res := doCart(t, srv, http.MethodGet, "/v1/cart", "alice")
		defer res.Body.Close()

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	})
}
