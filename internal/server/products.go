package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/storekit/internal/core/domain"
	"github.com/vietddude/storekit/internal/infra/storage"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	filter := storage.ProductFilter{Q: r.URL.Query().Get("q")}

	products, err := s.products.List(r.Context(), filter)
	if err != nil {
		slog.Error("list products failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid product id")
		return
	}

	product, err := s.products.GetByID(r.Context(), id)
	if err != nil {
		slog.Error("get product failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}
	if input.PriceCents < 0 {
		writeError(w, http.StatusUnprocessableEntity, "price_cents must not be negative")
		return
	}

	product := &domain.Product{
		ID:         uuid.New(),
		Name:       input.Name,
		SKU:        input.SKU,
		PriceCents: input.PriceCents,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.products.Create(r.Context(), product); err != nil {
		slog.Error("create product failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, product)
}
