package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/flatshop/shop-service-go/internal/cart"
	"github.com/flatshop/shop-service-go/internal/checkout"
	"github.com/flatshop/shop-service-go/internal/order"
	"github.com/flatshop/shop-service-go/internal/product"
	"github.com/flatshop/shop-service-go/internal/user"
)

type Deps struct {
	Logger *slog.Logger

	Products product.Repository
	Carts    cart.Repository
	Orders   order.Repository
	Users    user.Repository
	Checkout *checkout.Service
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	p := NewProductHandler(d.Products)
	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", p.Create)
		r.Get("/", p.List)
		r.Put("/discount", p.ApplyDiscount)
		r.Get("/{productId}", p.Get)
		r.Put("/{productId}", p.Update)
		r.Delete("/{productId}", p.Delete)
	})

	c := NewCartHandler(d.Carts)
	r.Route("/api/carts", func(r chi.Router) {
		r.Post("/", c.Create)
		r.Get("/", c.List)
		r.Get("/{cartId}", c.Get)
		r.Delete("/{cartId}", c.Delete)
		r.Put("/{cartId}/products", c.AddProduct)
		r.Delete("/{cartId}/products/{productId}", c.RemoveProduct)
	})

	o := NewOrderHandler(d.Orders)
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", o.Create)
		r.Get("/", o.List)
		r.Get("/{orderId}", o.Get)
		r.Delete("/{orderId}", o.Delete)
	})

	u := NewUserHandler(d.Users, d.Carts, d.Products, d.Checkout)
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", u.Create)
		r.Get("/", u.List)
		r.Get("/{userId}", u.Get)
		r.Delete("/{userId}", u.Delete)
		r.Get("/{userId}/orders", u.ListOrders)
		r.Post("/{userId}/checkout", u.Checkout)
		r.Delete("/{userId}/orders/{orderId}", u.RemoveOrder)
		r.Delete("/{userId}/cart", u.EmptyCart)
		r.Put("/{userId}/cart/products/{productId}", u.AddProductToCart)
		r.Delete("/{userId}/cart/products/{productId}", u.RemoveProductFromCart)
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "shop-service",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// uuidParam parses a UUID path parameter, replying 400 on failure.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
