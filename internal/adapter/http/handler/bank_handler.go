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

// BankService defines the behavior needed by BankHandler.
type BankService interface {
	CreateBank(ctx context.Context, input usecase.CreateBankInput) (*domain.Bank, error)
	GetBank(ctx context.Context, companyID, id string) (*domain.Bank, error)
	ListBanks(ctx context.Context, companyID string, limit, offset int) ([]*domain.Bank, error)
	UpdateBank(ctx context.Context, input usecase.UpdateBankInput) (*domain.Bank, error)
	DeleteBank(ctx context.Context, companyID, id string) error
	CreatePaymentMethod(ctx context.Context, input usecase.CreatePaymentMethodInput) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, companyID string, limit, offset int) ([]*domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, companyID, id string) error
	CreateBankTransaction(ctx context.Context, input usecase.CreateBankTransactionInput) (*domain.BankTransaction, error)
	DeleteBankTransaction(ctx context.Context, companyID, id string) error
	GetStatement(ctx context.Context, companyID string, account domain.BankAccountRef, limit, offset int) (*usecase.BankStatement, error)
}

// BankHandler handles bank, payment method and mirror ledger HTTP
// requests.
type BankHandler struct {
	bankUC BankService
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankUC BankService) *BankHandler {
	return &BankHandler{bankUC: bankUC}
}

// CreateBank registers a bank account.
func (h *BankHandler) CreateBank(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bank, err := h.bankUC.CreateBank(r.Context(), req.ToUseCaseInput(identity.CompanyID))
	if err != nil {
		writeDomainError(w, err, "failed to create bank")
		return
	}

	writeJSON(w, http.StatusCreated, dto.BankEnvelope{
		Message: "bank created successfully",
		Bank:    dto.BankFromDomain(bank),
	})
}

// GetBank retrieves a bank by ID.
func (h *BankHandler) GetBank(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	bank, err := h.bankUC.GetBank(r.Context(), identity.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to get bank")
		return
	}

	writeJSON(w, http.StatusOK, dto.BankEnvelope{
		Message: "bank retrieved successfully",
		Bank:    dto.BankFromDomain(bank),
	})
}

// ListBanks lists the company's banks.
func (h *BankHandler) ListBanks(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	banks, err := h.bankUC.ListBanks(r.Context(), identity.CompanyID,
		parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, err, "failed to list banks")
		return
	}

	writeJSON(w, http.StatusOK, dto.BanksEnvelope{
		Message: "banks retrieved successfully",
		Banks:   dto.BanksFromDomain(banks),
	})
}

// UpdateBank modifies a bank. Changing the opening balance replays the
// mirror ledger.
func (h *BankHandler) UpdateBank(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bank, err := h.bankUC.UpdateBank(r.Context(), req.ToUseCaseInput(identity.CompanyID, chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err, "failed to update bank")
		return
	}

	writeJSON(w, http.StatusOK, dto.BankEnvelope{
		Message: "bank updated successfully",
		Bank:    dto.BankFromDomain(bank),
	})
}

// DeleteBank removes a bank and its mirror ledger.
func (h *BankHandler) DeleteBank(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.bankUC.DeleteBank(r.Context(), identity.CompanyID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to delete bank")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageEnvelope{Message: "bank deleted successfully"})
}

// CreatePaymentMethod registers a non-bank payment channel.
func (h *BankHandler) CreatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreatePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	method, err := h.bankUC.CreatePaymentMethod(r.Context(), req.ToUseCaseInput(identity.CompanyID))
	if err != nil {
		writeDomainError(w, err, "failed to create payment method")
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentMethodEnvelope{
		Message:       "payment method created successfully",
		PaymentMethod: dto.PaymentMethodFromDomain(method),
	})
}

// ListPaymentMethods lists the company's payment channels.
func (h *BankHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	methods, err := h.bankUC.ListPaymentMethods(r.Context(), identity.CompanyID,
		parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, err, "failed to list payment methods")
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentMethodsEnvelope{
		Message:        "payment methods retrieved successfully",
		PaymentMethods: dto.PaymentMethodsFromDomain(methods),
	})
}

// DeletePaymentMethod removes a payment channel and its mirror ledger.
func (h *BankHandler) DeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.bankUC.DeletePaymentMethod(r.Context(), identity.CompanyID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to delete payment method")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageEnvelope{Message: "payment method deleted successfully"})
}

// CreateTransaction records a manual deposit or withdrawal in the
// mirror ledger.
func (h *BankHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateBankTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.bankUC.CreateBankTransaction(r.Context(), req.ToUseCaseInput(identity.CompanyID))
	if err != nil {
		writeDomainError(w, err, "failed to create bank transaction")
		return
	}

	writeJSON(w, http.StatusCreated, dto.BankTransactionEnvelope{
		Message:     "bank transaction created successfully",
		Transaction: dto.BankTransactionFromDomain(txn),
	})
}

// DeleteTransaction removes a mirror entry and replays the account.
func (h *BankHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.bankUC.DeleteBankTransaction(r.Context(), identity.CompanyID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "failed to delete bank transaction")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageEnvelope{Message: "bank transaction deleted successfully"})
}

// Statement replays a mirror account and returns its entries. The
// account is addressed by bank_id or payment_method query parameter.
func (h *BankHandler) Statement(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	account := domain.BankAccountRef{
		BankID:        r.URL.Query().Get("bank_id"),
		PaymentMethod: r.URL.Query().Get("payment_method"),
	}

	statement, err := h.bankUC.GetStatement(r.Context(), identity.CompanyID, account,
		parseIntQuery(r, "limit", 0), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, err, "failed to get bank statement")
		return
	}

	writeJSON(w, http.StatusOK, dto.BankStatementEnvelope{
		Message:       "bank statement retrieved successfully",
		BankID:        statement.Account.BankID,
		PaymentMethod: statement.Account.PaymentMethod,
		Balance:       statement.Balance,
		Transactions:  dto.BankTransactionsFromDomain(statement.Entries),
	})
}
