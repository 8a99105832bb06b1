package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flatshop/shop-service-go/internal/cart"
	"github.com/flatshop/shop-service-go/internal/checkout"
	"github.com/flatshop/shop-service-go/internal/order"
	"github.com/flatshop/shop-service-go/internal/product"
	"github.com/flatshop/shop-service-go/internal/user"
)

type UserHandler struct {
	users    user.Repository
	carts    cart.Repository
	products product.Repository
	checkout *checkout.Service
}

func NewUserHandler(users user.Repository, carts cart.Repository, products product.Repository, co *checkout.Service) *UserHandler {
	return &UserHandler{
		users:    users,
		carts:    carts,
		products: products,
		checkout: co,
	}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var u user.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid user payload")
		return
	}

	created, err := h.users.Add(r.Context(), u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store user")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load users")
		return
	}
	if users == nil {
		users = []user.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}

	orders, err := h.users.OrdersByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *UserHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}

	o, err := h.checkout.PlaceOrder(r.Context(), userID)
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			writeError(w, http.StatusNotFound, cart.ErrNotFound.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "checkout failed")
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *UserHandler) RemoveOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}
	orderID, ok := uuidParam(w, r, "orderId")
	if !ok {
		return
	}

	if err := h.users.RemoveOrder(r.Context(), userID, orderID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "order removed"})
}

func (h *UserHandler) EmptyCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}

	if err := h.checkout.EmptyCart(r.Context(), userID); err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			writeError(w, http.StatusNotFound, cart.ErrNotFound.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to empty cart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "cart emptied"})
}

// AddProductToCart resolves the user's cart (creating one if absent), looks
// the product up in the catalog and appends a copy of it to the cart.
func (h *UserHandler) AddProductToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}
	productID, ok := uuidParam(w, r, "productId")
	if !ok {
		return
	}

	c, err := h.carts.GetByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	if c == nil {
		created, err := h.carts.Add(r.Context(), cart.Cart{UserID: userID})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create cart")
			return
		}
		c = &created
	}

	p, err := h.products.GetByID(r.Context(), productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	if err := h.carts.AddProduct(r.Context(), c.ID, *p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add product to cart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product added to cart"})
}

func (h *UserHandler) RemoveProductFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}
	productID, ok := uuidParam(w, r, "productId")
	if !ok {
		return
	}

	c, err := h.carts.GetByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	if c == nil || len(c.Products) == 0 {
		writeError(w, http.StatusNotFound, "cart is empty")
		return
	}

	if err := h.carts.RemoveProduct(r.Context(), c.ID, productID); err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			writeError(w, http.StatusNotFound, cart.ErrNotFound.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to remove product from cart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product removed from cart"})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}

	if err := h.users.DeleteByID(r.Context(), userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			writeError(w, http.StatusNotFound, user.ErrNotFound.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
