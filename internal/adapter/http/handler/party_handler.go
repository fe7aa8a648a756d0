package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/umair/tradeledger/internal/adapter/http/dto"
	"github.com/umair/tradeledger/internal/adapter/http/middleware"
	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
)

// PartyService defines the behavior needed by PartyHandler.
type PartyService interface {
	CreateParty(ctx context.Context, input usecase.CreatePartyInput) (*domain.Party, error)
	GetParty(ctx context.Context, companyID, id string) (*domain.Party, error)
	ListParties(ctx context.Context, input usecase.ListPartiesInput) ([]*domain.Party, error)
	UpdateParty(ctx context.Context, input usecase.UpdatePartyInput) (*domain.Party, error)
	DeleteParty(ctx context.Context, companyID, id string) error
	GetStatement(ctx context.Context, companyID, partyID string) (*usecase.PartyStatement, error)
}

// PartyHandler handles party-related HTTP requests.
type PartyHandler struct {
	partyUC PartyService
}

// NewPartyHandler creates a new PartyHandler.
func NewPartyHandler(partyUC PartyService) *PartyHandler {
	return &PartyHandler{partyUC: partyUC}
}

// requireIdentity pulls the authenticated company from the request, or
// writes a 401.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*middleware.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return nil, false
	}
	return identity, true
}

// Create creates a new party.
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	party, err := h.partyUC.CreateParty(r.Context(), req.ToUseCaseInput(identity.CompanyID))
	if err != nil {
		writeDomainError(w, err, "failed to create party")
		return
	}

	writeJSON(w, http.StatusCreated, dto.PartyEnvelope{
		Message: "party created successfully",
		Party:   dto.PartyFromDomain(party),
	})
}

// Get retrieves a party by ID.
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	party, err := h.partyUC.GetParty(r.Context(), identity.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to get party")
		return
	}

	writeJSON(w, http.StatusOK, dto.PartyEnvelope{
		Message: "party retrieved successfully",
		Party:   dto.PartyFromDomain(party),
	})
}

// List lists the company's parties.
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	parties, err := h.partyUC.ListParties(r.Context(), usecase.ListPartiesInput{
		CompanyID: identity.CompanyID,
		Type:      domain.PartyType(r.URL.Query().Get("type")),
		Search:    r.URL.Query().Get("search"),
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err, "failed to list parties")
		return
	}

	writeJSON(w, http.StatusOK, dto.PartiesEnvelope{
		Message: "parties retrieved successfully",
		Parties: dto.PartiesFromDomain(parties),
	})
}

// Update updates a party.
func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	party, err := h.partyUC.UpdateParty(r.Context(), req.ToUseCaseInput(identity.CompanyID, chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err, "failed to update party")
		return
	}

	writeJSON(w, http.StatusOK, dto.PartyEnvelope{
		Message: "party updated successfully",
		Party:   dto.PartyFromDomain(party),
	})
}

// Delete removes a party and its ledger.
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.partyUC.DeleteParty(r.Context(), identity.CompanyID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to delete party")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageEnvelope{Message: "party deleted successfully"})
}

// Statement returns a party together with its replayed ledger.
func (h *PartyHandler) Statement(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	statement, err := h.partyUC.GetStatement(r.Context(), identity.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to get party statement")
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromUseCase("party statement retrieved successfully", statement))
}
