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

// BillService defines the behavior needed by BillHandler.
type BillService interface {
	CreateBill(ctx context.Context, input usecase.CreateBillInput) (*domain.Bill, error)
	GetBill(ctx context.Context, companyID, id string) (*domain.Bill, error)
	ListBills(ctx context.Context, companyID string, status domain.BillStatus, limit, offset int) ([]*domain.Bill, error)
	LatestTemplate(ctx context.Context, companyID string) (*domain.BillTemplateSettings, error)
	UpdateBill(ctx context.Context, input usecase.UpdateBillInput) (*domain.Bill, error)
	DeleteBill(ctx context.Context, companyID, id string) error
}

// BillHandler handles bill HTTP requests.
type BillHandler struct {
	billUC BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billUC BillService) *BillHandler {
	return &BillHandler{billUC: billUC}
}

// Create records a bill and derives its ledger entries.
func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bill, err := h.billUC.CreateBill(r.Context(), req.ToUseCaseInput(identity.CompanyID))
	if err != nil {
		writeDomainError(w, err, "failed to create bill")
		return
	}

	writeJSON(w, http.StatusCreated, dto.BillEnvelope{
		Message: "bill created successfully",
		Bill:    dto.BillFromDomain(bill),
	})
}

// Get retrieves a bill by ID.
func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	bill, err := h.billUC.GetBill(r.Context(), identity.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to get bill")
		return
	}

	writeJSON(w, http.StatusOK, dto.BillEnvelope{
		Message: "bill retrieved successfully",
		Bill:    dto.BillFromDomain(bill),
	})
}

// List lists the company's bills, optionally filtered by status.
func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	bills, err := h.billUC.ListBills(r.Context(), identity.CompanyID,
		domain.BillStatus(r.URL.Query().Get("status")),
		parseIntQuery(r, "limit", 50),
		parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, err, "failed to list bills")
		return
	}

	writeJSON(w, http.StatusOK, dto.BillsEnvelope{
		Message: "bills retrieved successfully",
		Bills:   dto.BillsFromDomain(bills),
	})
}

// LatestTemplate returns the template settings of the most recently
// saved bill, used to pre-fill the next one.
func (h *BillHandler) LatestTemplate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	template, err := h.billUC.LatestTemplate(r.Context(), identity.CompanyID)
	if err != nil {
		writeDomainError(w, err, "failed to get bill template")
		return
	}

	writeJSON(w, http.StatusOK, dto.TemplateEnvelope{
		Message:  "bill template retrieved successfully",
		Template: template,
	})
}

// Update modifies a bill and regenerates its derived entries.
func (h *BillHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bill, err := h.billUC.UpdateBill(r.Context(), req.ToUseCaseInput(identity.CompanyID, chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err, "failed to update bill")
		return
	}

	writeJSON(w, http.StatusOK, dto.BillEnvelope{
		Message: "bill updated successfully",
		Bill:    dto.BillFromDomain(bill),
	})
}

// Delete removes a bill and its derived ledger entries.
func (h *BillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.billUC.DeleteBill(r.Context(), identity.CompanyID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to delete bill")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageEnvelope{Message: "bill deleted successfully"})
}
