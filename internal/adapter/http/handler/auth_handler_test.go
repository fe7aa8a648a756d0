package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umair/tradeledger/internal/adapter/http/dto"
	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
)

type companyServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateCompanyInput) (*domain.Company, error)
	authFn   func(ctx context.Context, input usecase.AuthenticateInput) (*domain.Company, error)
}

func (s *companyServiceStub) CreateCompany(ctx context.Context, input usecase.CreateCompanyInput) (*domain.Company, error) {
	return s.createFn(ctx, input)
}

func (s *companyServiceStub) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.Company, error) {
	return s.authFn(ctx, input)
}

type tokenIssuerStub struct {
	generateFn func(company *domain.Company, role domain.Role) (string, error)
}

func (s *tokenIssuerStub) Generate(company *domain.Company, role domain.Role) (string, error) {
	return s.generateFn(company, role)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	company := &domain.Company{ID: "c1", Username: "shop", ShopName: "Khan Autos", Active: true}

	h := NewAuthHandler(
		&companyServiceStub{
			authFn: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.Company, error) {
				assert.Equal(t, "shop", input.Username)
				assert.Equal(t, "secret123", input.Password)
				return company, nil
			},
		},
		&tokenIssuerStub{
			generateFn: func(c *domain.Company, role domain.Role) (string, error) {
				assert.Equal(t, domain.RoleCompany, role)
				return "signed-token", nil
			},
		},
	)

	body, _ := json.Marshal(dto.LoginRequest{Username: "shop", Password: "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.LoginEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "login successful", resp.Message)
	assert.Equal(t, "signed-token", resp.Token)
	require.NotNil(t, resp.Company)
	assert.Equal(t, "c1", resp.Company.ID)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	h := NewAuthHandler(
		&companyServiceStub{
			authFn: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.Company, error) {
				return nil, domain.ErrInvalidCredentials
			},
		},
		&tokenIssuerStub{
			generateFn: func(c *domain.Company, role domain.Role) (string, error) {
				t.Fatal("token should not be issued for bad credentials")
				return "", nil
			},
		},
	)

	body, _ := json.Marshal(dto.LoginRequest{Username: "shop", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Register(t *testing.T) {
	h := NewAuthHandler(
		&companyServiceStub{
			createFn: func(ctx context.Context, input usecase.CreateCompanyInput) (*domain.Company, error) {
				assert.Equal(t, "shop", input.Username)
				return &domain.Company{ID: "c1", Username: input.Username, ShopName: input.ShopName, Active: true}, nil
			},
		},
		&tokenIssuerStub{},
	)

	body, _ := json.Marshal(dto.RegisterCompanyRequest{
		Username: "shop",
		Email:    "shop@example.com",
		ShopName: "Khan Autos",
		Password: "secret123",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp dto.CompanyEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Company)
	assert.Equal(t, "c1", resp.Company.ID)
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	h := NewAuthHandler(
		&companyServiceStub{
			createFn: func(ctx context.Context, input usecase.CreateCompanyInput) (*domain.Company, error) {
				return nil, domain.ErrPasswordTooWeak
			},
		},
		&tokenIssuerStub{},
	)

	body, _ := json.Marshal(dto.RegisterCompanyRequest{Username: "shop", Email: "a@b.c", ShopName: "X", Password: "123"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
