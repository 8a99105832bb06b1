package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatshop/shop-service-go/internal/cart"
	"github.com/flatshop/shop-service-go/internal/checkout"
	"github.com/flatshop/shop-service-go/internal/order"
	"github.com/flatshop/shop-service-go/internal/product"
	"github.com/flatshop/shop-service-go/internal/storage"
	"github.com/flatshop/shop-service-go/internal/user"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()

	products := product.NewRepository(storage.New[product.Product](filepath.Join(dir, "products.json")))
	carts := cart.NewRepository(storage.New[cart.Cart](filepath.Join(dir, "carts.json")))
	orders := order.NewRepository(storage.New[order.Order](filepath.Join(dir, "orders.json")))
	users := user.NewRepository(storage.New[user.User](filepath.Join(dir, "users.json")))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := checkout.NewService(carts, orders, users, nil, logger)

	return NewRouter(Deps{
		Logger:   logger,
		Products: products,
		Carts:    carts,
		Orders:   orders,
		Users:    users,
		Checkout: svc,
	})
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, buf)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[map[string]string](t, rr)
	assert.Equal(t, "ok", resp["status"])
}

func TestCheckoutFlow(t *testing.T) {
	router := newTestRouter(t)

	// Create a user.
	rr := doJSON(t, router, http.MethodPost, "/api/users/", map[string]string{"name": "alice"})
	require.Equal(t, http.StatusCreated, rr.Code)
	u := decode[user.User](t, rr)

	// Create two products.
	rr = doJSON(t, router, http.MethodPost, "/api/products/", map[string]any{"name": "keyboard", "price": "300"})
	require.Equal(t, http.StatusCreated, rr.Code)
	keyboard := decode[product.Product](t, rr)

	rr = doJSON(t, router, http.MethodPost, "/api/products/", map[string]any{"name": "mouse", "price": "150"})
	require.Equal(t, http.StatusCreated, rr.Code)
	mouse := decode[product.Product](t, rr)

	// Add both to the user's cart; the first call creates the cart.
	rr = doJSON(t, router, http.MethodPut, "/api/users/"+u.ID.String()+"/cart/products/"+keyboard.ID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doJSON(t, router, http.MethodPut, "/api/users/"+u.ID.String()+"/cart/products/"+mouse.ID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// Checkout.
	rr = doJSON(t, router, http.MethodPost, "/api/users/"+u.ID.String()+"/checkout", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	placed := decode[order.Order](t, rr)
	assert.True(t, decimal.NewFromInt(450).Equal(placed.TotalPrice), "total %s", placed.TotalPrice)
	assert.Len(t, placed.Products, 2)

	// The order shows up under the user.
	rr = doJSON(t, router, http.MethodGet, "/api/users/"+u.ID.String()+"/orders", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	userOrders := decode[[]order.Order](t, rr)
	require.Len(t, userOrders, 1)
	assert.Equal(t, placed.ID, userOrders[0].ID)

	// And in the order store.
	rr = doJSON(t, router, http.MethodGet, "/api/orders/"+placed.ID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// The cart is empty afterwards.
	rr = doJSON(t, router, http.MethodGet, "/api/carts/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	carts := decode[[]cart.Cart](t, rr)
	require.Len(t, carts, 1)
	assert.Empty(t, carts[0].Products)
}

func TestCheckout_NoCart(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/users/", map[string]string{"name": "bob"})
	require.Equal(t, http.StatusCreated, rr.Code)
	u := decode[user.User](t, rr)

	rr = doJSON(t, router, http.MethodPost, "/api/users/"+u.ID.String()+"/checkout", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	resp := decode[map[string]string](t, rr)
	assert.Equal(t, "cart not found", resp["error"])
}

func TestProductDiscountEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/products/", map[string]any{"name": "monitor", "price": "100"})
	require.Equal(t, http.StatusCreated, rr.Code)
	monitor := decode[product.Product](t, rr)

	rr = doJSON(t, router, http.MethodPut, "/api/products/discount?discount=20", []string{monitor.ID.String()})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/products/"+monitor.ID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decode[product.Product](t, rr)
	assert.True(t, decimal.NewFromInt(80).Equal(updated.Price), "price %s", updated.Price)
}

func TestProductDiscountEndpoint_EmptyIDList(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPut, "/api/products/discount?discount=20", []string{})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateCart_Conflict(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/users/", map[string]string{"name": "carol"})
	require.Equal(t, http.StatusCreated, rr.Code)
	u := decode[user.User](t, rr)

	rr = doJSON(t, router, http.MethodPost, "/api/carts/", map[string]any{"userId": u.ID})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/api/carts/", map[string]any{"userId": u.ID})
	require.Equal(t, http.StatusConflict, rr.Code)
}
