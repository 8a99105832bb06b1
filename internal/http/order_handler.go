package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flatshop/shop-service-go/internal/order"
)

type OrderHandler struct {
	repo order.Repository
}

func NewOrderHandler(repo order.Repository) *OrderHandler {
	return &OrderHandler{repo: repo}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var o order.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeError(w, http.StatusBadRequest, "invalid order payload")
		return
	}

	created, err := h.repo.Add(r.Context(), o)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store order")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uuidParam(w, r, "orderId")
	if !ok {
		return
	}

	o, err := h.repo.GetByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, order.ErrNotFound.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uuidParam(w, r, "orderId")
	if !ok {
		return
	}

	if err := h.repo.DeleteByID(r.Context(), orderID); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, order.ErrNotFound.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}
