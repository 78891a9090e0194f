package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/storekit/internal/core/domain"
)

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.List(r.Context())
	if err != nil {
		slog.Error("list orders failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid order id")
		return
	}

	order, err := s.orders.GetByID(r.Context(), id)
	if err != nil {
		slog.Error("get order failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var input domain.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Quantity <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "quantity must be positive")
		return
	}

	product, err := s.products.GetByID(r.Context(), input.ProductID)
	if err != nil {
		slog.Error("check product failed", "id", input.ProductID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if product == nil {
		writeError(w, http.StatusUnprocessableEntity, "unknown product")
		return
	}

	order := &domain.Order{
		ID:        uuid.New(),
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.orders.Create(r.Context(), order); err != nil {
		slog.Error("create order failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, order)
}
