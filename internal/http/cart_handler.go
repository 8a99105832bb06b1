package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flatshop/shop-service-go/internal/cart"
	"github.com/flatshop/shop-service-go/internal/product"
)

type CartHandler struct {
	repo cart.Repository
}

func NewCartHandler(repo cart.Repository) *CartHandler {
	return &CartHandler{repo: repo}
}

func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c cart.Cart
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart payload")
		return
	}

	created, err := h.repo.Add(r.Context(), c)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrMissingUser):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, cart.ErrAlreadyExists):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to store cart")
		}
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	carts, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load carts")
		return
	}
	if carts == nil {
		carts = []cart.Cart{}
	}
	writeJSON(w, http.StatusOK, carts)
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cartID, ok := uuidParam(w, r, "cartId")
	if !ok {
		return
	}

	c, err := h.repo.GetByID(r.Context(), cartID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "cart not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	cartID, ok := uuidParam(w, r, "cartId")
	if !ok {
		return
	}

	var p product.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid product payload")
		return
	}

	if err := h.repo.AddProduct(r.Context(), cartID, p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add product to cart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product added to cart"})
}

func (h *CartHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	cartID, ok := uuidParam(w, r, "cartId")
	if !ok {
		return
	}
	productID, ok := uuidParam(w, r, "productId")
	if !ok {
		return
	}

	if err := h.repo.RemoveProduct(r.Context(), cartID, productID); err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to remove product from cart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product removed from cart"})
}

func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cartID, ok := uuidParam(w, r, "cartId")
	if !ok {
		return
	}

	if err := h.repo.DeleteByID(r.Context(), cartID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete cart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "cart deleted"})
}
