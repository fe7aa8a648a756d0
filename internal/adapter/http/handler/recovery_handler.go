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

// RecoveryService defines the behavior needed by RecoveryHandler.
type RecoveryService interface {
	CreateRecovery(ctx context.Context, input usecase.CreateRecoveryInput) (*domain.Recovery, error)
	GetRecovery(ctx context.Context, companyID, id string) (*domain.Recovery, error)
	ListRecoveries(ctx context.Context, companyID string, limit, offset int) ([]*domain.Recovery, error)
	UpdateRecovery(ctx context.Context, input usecase.UpdateRecoveryInput) (*domain.Recovery, error)
	DeleteRecovery(ctx context.Context, companyID, id string) error
}

// RecoveryHandler handles payment recovery HTTP requests.
type RecoveryHandler struct {
	recoveryUC RecoveryService
}

// NewRecoveryHandler creates a new RecoveryHandler.
func NewRecoveryHandler(recoveryUC RecoveryService) *RecoveryHandler {
	return &RecoveryHandler{recoveryUC: recoveryUC}
}

// Create records a payment recovery, credits the party ledger and
// mirrors a deposit into the receiving account.
func (h *RecoveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateRecoveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	recovery, err := h.recoveryUC.CreateRecovery(r.Context(), req.ToUseCaseInput(identity.CompanyID))
	if err != nil {
		writeDomainError(w, err, "failed to create recovery")
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecoveryEnvelope{
		Message:  "recovery created successfully",
		Recovery: dto.RecoveryFromDomain(recovery),
	})
}

// Get retrieves a recovery by ID.
func (h *RecoveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	recovery, err := h.recoveryUC.GetRecovery(r.Context(), identity.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to get recovery")
		return
	}

	writeJSON(w, http.StatusOK, dto.RecoveryEnvelope{
		Message:  "recovery retrieved successfully",
		Recovery: dto.RecoveryFromDomain(recovery),
	})
}

// List lists the company's recoveries, newest first.
func (h *RecoveryHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	recoveries, err := h.recoveryUC.ListRecoveries(r.Context(), identity.CompanyID,
		parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, err, "failed to list recoveries")
		return
	}

	writeJSON(w, http.StatusOK, dto.RecoveriesEnvelope{
		Message:    "recoveries retrieved successfully",
		Recoveries: dto.RecoveriesFromDomain(recoveries),
	})
}

// Update modifies a recovery and regenerates its derived entries.
func (h *RecoveryHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRecoveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	recovery, err := h.recoveryUC.UpdateRecovery(r.Context(), req.ToUseCaseInput(identity.CompanyID, chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err, "failed to update recovery")
		return
	}

	writeJSON(w, http.StatusOK, dto.RecoveryEnvelope{
		Message:  "recovery updated successfully",
		Recovery: dto.RecoveryFromDomain(recovery),
	})
}

// Delete removes a recovery, its derived entries and its bank mirror.
func (h *RecoveryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.recoveryUC.DeleteRecovery(r.Context(), identity.CompanyID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to delete recovery")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageEnvelope{Message: "recovery deleted successfully"})
}
