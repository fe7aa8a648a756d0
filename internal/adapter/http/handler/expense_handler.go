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

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*domain.Expense, error)
	GetExpense(ctx context.Context, companyID, id string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, companyID string, limit, offset int) ([]*domain.Expense, error)
	UpdateExpense(ctx context.Context, input usecase.UpdateExpenseInput) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, companyID, id string) error
}

// ExpenseHandler handles daily expense sheet HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Create records an expense sheet and mirrors a withdrawal into the
// paying account.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.CreateExpense(r.Context(), req.ToUseCaseInput(identity.CompanyID))
	if err != nil {
		writeDomainError(w, err, "failed to create expense")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseEnvelope{
		Message: "expense created successfully",
		Expense: dto.ExpenseFromDomain(expense),
	})
}

// Get retrieves an expense sheet by ID.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	expense, err := h.expenseUC.GetExpense(r.Context(), identity.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to get expense")
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseEnvelope{
		Message: "expense retrieved successfully",
		Expense: dto.ExpenseFromDomain(expense),
	})
}

// List lists the company's expense sheets, newest first.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	expenses, err := h.expenseUC.ListExpenses(r.Context(), identity.CompanyID,
		parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, err, "failed to list expenses")
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpensesEnvelope{
		Message:  "expenses retrieved successfully",
		Expenses: dto.ExpensesFromDomain(expenses),
	})
}

// Update modifies an expense sheet and refreshes its bank mirror.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.UpdateExpense(r.Context(), req.ToUseCaseInput(identity.CompanyID, chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err, "failed to update expense")
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseEnvelope{
		Message: "expense updated successfully",
		Expense: dto.ExpenseFromDomain(expense),
	})
}

// Delete removes an expense sheet and its bank mirror.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.expenseUC.DeleteExpense(r.Context(), identity.CompanyID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to delete expense")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageEnvelope{Message: "expense deleted successfully"})
}
