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

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.LedgerTransaction, error)
	GetTransaction(ctx context.Context, companyID, id string) (*domain.LedgerTransaction, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.LedgerTransaction, error)
	UpdateTransaction(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.LedgerTransaction, error)
	DeleteTransaction(ctx context.Context, companyID, id string) error
}

// TransactionHandler handles manual ledger entry HTTP requests.
type TransactionHandler struct {
	txUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txUC TransactionService) *TransactionHandler {
	return &TransactionHandler{txUC: txUC}
}

// Create records a manual ledger entry against a party.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.txUC.CreateTransaction(r.Context(), req.ToUseCaseInput(identity.CompanyID))
	if err != nil {
		writeDomainError(w, err, "failed to create transaction")
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionEnvelope{
		Message:     "transaction created successfully",
		Transaction: dto.TransactionFromDomain(txn),
	})
}

// Get retrieves a ledger entry by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	txn, err := h.txUC.GetTransaction(r.Context(), identity.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to get transaction")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionEnvelope{
		Message:     "transaction retrieved successfully",
		Transaction: dto.TransactionFromDomain(txn),
	})
}

// ListByParty lists a party's ledger entries in statement order.
func (h *TransactionHandler) ListByParty(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	txns, err := h.txUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		CompanyID: identity.CompanyID,
		PartyID:   chi.URLParam(r, "partyId"),
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsEnvelope{
		Message:      "transactions retrieved successfully",
		Transactions: dto.TransactionsFromDomain(txns),
	})
}

// Update modifies a manual ledger entry and replays the party balance.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.txUC.UpdateTransaction(r.Context(), req.ToUseCaseInput(identity.CompanyID, chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err, "failed to update transaction")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionEnvelope{
		Message:     "transaction updated successfully",
		Transaction: dto.TransactionFromDomain(txn),
	})
}

// Delete removes a ledger entry and replays the party balance.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.txUC.DeleteTransaction(r.Context(), identity.CompanyID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to delete transaction")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageEnvelope{Message: "transaction deleted successfully"})
}
