package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
	"github.com/umair/tradeledger/internal/usecase/mocks"
)

func newCompanyFixture() (*usecase.CompanyUseCase, *mocks.MockCompanyRepository) {
	repo := mocks.NewMockCompanyRepository()
	uc := usecase.NewCompanyUseCase(repo, mocks.NewMockIDGenerator())
	return uc, repo
}

func validCompanyInput() usecase.CreateCompanyInput {
	return usecase.CreateCompanyInput{
		Username: "khantraders",
		Email:    "owner@khantraders.pk",
		ShopName: "Khan Traders",
		Password: "s3curePass!",
	}
}

func TestCompanyUseCase_CreateCompany(t *testing.T) {
	uc, _ := newCompanyFixture()

	company, err := uc.CreateCompany(context.Background(), validCompanyInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if company.ID == "" {
		t.Error("expected generated ID")
	}
	if company.HashedPassword != "" {
		t.Error("hashed password leaked in response")
	}
	if !company.Active {
		t.Error("new company should be active")
	}
}

func TestCompanyUseCase_CreateCompany_Validation(t *testing.T) {
	uc, _ := newCompanyFixture()
	ctx := context.Background()

	input := validCompanyInput()
	input.Email = "not-an-email"
	if _, err := uc.CreateCompany(ctx, input); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Errorf("bad email: err = %v, want ErrInvalidEmail", err)
	}

	input = validCompanyInput()
	input.Password = "short"
	if _, err := uc.CreateCompany(ctx, input); !errors.Is(err, domain.ErrPasswordTooWeak) {
		t.Errorf("weak password: err = %v, want ErrPasswordTooWeak", err)
	}
}

func TestCompanyUseCase_CreateCompany_DuplicateUsername(t *testing.T) {
	uc, _ := newCompanyFixture()
	ctx := context.Background()

	if _, err := uc.CreateCompany(ctx, validCompanyInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := uc.CreateCompany(ctx, validCompanyInput()); err == nil {
		t.Error("expected duplicate username to be rejected")
	}
}

func TestCompanyUseCase_Authenticate(t *testing.T) {
	uc, _ := newCompanyFixture()
	ctx := context.Background()

	if _, err := uc.CreateCompany(ctx, validCompanyInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	company, err := uc.Authenticate(ctx, usecase.AuthenticateInput{
		Username: "khantraders",
		Password: "s3curePass!",
	})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if company.HashedPassword != "" {
		t.Error("hashed password leaked in response")
	}

	// Sanitizing the response must not strip the stored hash; a second
	// login against the same record has to keep working.
	if _, err := uc.Authenticate(ctx, usecase.AuthenticateInput{
		Username: "khantraders",
		Password: "s3curePass!",
	}); err != nil {
		t.Fatalf("second authenticate: %v", err)
	}

	_, err = uc.Authenticate(ctx, usecase.AuthenticateInput{
		Username: "khantraders",
		Password: "wrongPassword",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}

	_, err = uc.Authenticate(ctx, usecase.AuthenticateInput{
		Username: "nobody",
		Password: "s3curePass!",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown username: err = %v, want ErrInvalidCredentials", err)
	}
}
