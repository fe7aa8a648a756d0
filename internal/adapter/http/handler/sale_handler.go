package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/umair/tradeledger/internal/adapter/http/dto"
	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
)

// SaleService defines the behavior needed by SaleHandler.
type SaleService interface {
	CreateSale(ctx context.Context, input usecase.CreateSaleInput) (*domain.Sale, error)
	GetSale(ctx context.Context, companyID, id string) (*domain.Sale, error)
	ListSales(ctx context.Context, companyID string, limit, offset int) ([]*domain.Sale, error)
	UpdateSale(ctx context.Context, input usecase.UpdateSaleInput) (*domain.Sale, error)
	DeleteSale(ctx context.Context, companyID, id string) error
}

// SaleHandler handles sale HTTP requests.
type SaleHandler struct {
	saleUC SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleUC SaleService) *SaleHandler {
	return &SaleHandler{saleUC: saleUC}
}

// Create records a sale, allocates its serial number and derives its
// ledger entries.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sale, err := h.saleUC.CreateSale(r.Context(), req.ToUseCaseInput(identity.CompanyID))
	if err != nil {
		writeDomainError(w, err, "failed to create sale")
		return
	}

	writeJSON(w, http.StatusCreated, dto.SaleEnvelope{
		Message: "sale created successfully",
		Sale:    dto.SaleFromDomain(sale),
	})
}

// Get retrieves a sale by ID.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	sale, err := h.saleUC.GetSale(r.Context(), identity.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to get sale")
		return
	}

	writeJSON(w, http.StatusOK, dto.SaleEnvelope{
		Message: "sale retrieved successfully",
		Sale:    dto.SaleFromDomain(sale),
	})
}

// List lists the company's sales, newest first.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	sales, err := h.saleUC.ListSales(r.Context(), identity.CompanyID,
		parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, err, "failed to list sales")
		return
	}

	writeJSON(w, http.StatusOK, dto.SalesEnvelope{
		Message: "sales retrieved successfully",
		Sales:   dto.SalesFromDomain(sales),
	})
}

// Update modifies a sale and regenerates its derived entries. The
// serial number never changes on update.
func (h *SaleHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.UpdateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sale, err := h.saleUC.UpdateSale(r.Context(), req.ToUseCaseInput(identity.CompanyID, chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err, "failed to update sale")
		return
	}

	writeJSON(w, http.StatusOK, dto.SaleEnvelope{
		Message: "sale updated successfully",
		Sale:    dto.SaleFromDomain(sale),
	})
}

// Delete removes a sale and its derived ledger entries.
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.saleUC.DeleteSale(r.Context(), identity.CompanyID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to delete sale")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageEnvelope{Message: "sale deleted successfully"})
}
