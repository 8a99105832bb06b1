package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flatshop/shop-service-go/internal/product"
)

type ProductHandler struct {
	repo product.Repository
}

func NewProductHandler(repo product.Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid product payload")
		return
	}
	if p.Price.IsNegative() {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	created, err := h.repo.Add(r.Context(), p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store product")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	if products == nil {
		products = []product.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, ok := uuidParam(w, r, "productId")
	if !ok {
		return
	}

	p, err := h.repo.GetByID(r.Context(), productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type updateProductRequest struct {
	NewName  string          `json:"newName"`
	NewPrice decimal.Decimal `json:"newPrice"`
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, ok := uuidParam(w, r, "productId")
	if !ok {
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid update payload")
		return
	}
	if req.NewPrice.IsNegative() {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	p, err := h.repo.Update(r.Context(), productID, req.NewName, req.NewPrice)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	rawDiscount := r.URL.Query().Get("discount")
	discount, err := decimal.NewFromString(rawDiscount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid discount")
		return
	}

	var productIDs []uuid.UUID
	if err := json.NewDecoder(r.Body).Decode(&productIDs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id list")
		return
	}
	if len(productIDs) == 0 {
		writeError(w, http.StatusBadRequest, "product id list cannot be empty")
		return
	}

	if err := h.repo.ApplyDiscount(r.Context(), discount, productIDs); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to apply discount")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "discount applied"})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, ok := uuidParam(w, r, "productId")
	if !ok {
		return
	}

	if err := h.repo.DeleteByID(r.Context(), productID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
