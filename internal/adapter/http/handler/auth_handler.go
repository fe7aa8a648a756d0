package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/umair/tradeledger/internal/adapter/http/dto"
	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/infrastructure/metrics"
	"github.com/umair/tradeledger/internal/usecase"
)

// CompanyService defines the behavior needed by AuthHandler.
type CompanyService interface {
	CreateCompany(ctx context.Context, input usecase.CreateCompanyInput) (*domain.Company, error)
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.Company, error)
}

// TokenIssuer mints identity tokens for authenticated companies.
type TokenIssuer interface {
	Generate(company *domain.Company, role domain.Role) (string, error)
}

// AuthHandler handles company registration and login.
type AuthHandler struct {
	companyUC CompanyService
	tokens    TokenIssuer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(companyUC CompanyService, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{companyUC: companyUC, tokens: tokens}
}

// Register creates a company account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	company, err := h.companyUC.CreateCompany(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to register company")
		return
	}

	writeJSON(w, http.StatusCreated, dto.CompanyEnvelope{
		Message: "company registered successfully",
		Company: dto.CompanyFromDomain(company),
	})
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	company, err := h.companyUC.Authenticate(r.Context(), usecase.AuthenticateInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		writeDomainError(w, err, "login failed")
		return
	}
	metrics.AuthAttempts.WithLabelValues("success").Inc()

	token, err := h.tokens.Generate(company, domain.RoleCompany)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginEnvelope{
		Message: "login successful",
		Token:   token,
		Company: dto.CompanyFromDomain(company),
	})
}
