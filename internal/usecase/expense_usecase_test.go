package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
	"github.com/umair/tradeledger/internal/usecase/mocks"
)

func newExpenseFixture() (*usecase.ExpenseUseCase, *mocks.MockBankTransactionRepository) {
	partyRepo := mocks.NewMockPartyRepository()
	txRepo := mocks.NewMockTransactionRepository()
	bankTxRepo := mocks.NewMockBankTransactionRepository()
	txManager := mocks.NewMockTransactionManager()
	retrier := mocks.NewMockRetrier()
	recalc := usecase.NewRecalcUseCase(txManager, partyRepo, txRepo, mocks.NewMockBankRepository(), bankTxRepo, retrier)
	uc := usecase.NewExpenseUseCase(
		txManager,
		mocks.NewMockExpenseRepository(),
		bankTxRepo,
		recalc,
		mocks.NewMockIDGenerator(),
		retrier,
		zerolog.Nop(),
	)
	return uc, bankTxRepo
}

func TestExpenseUseCase_PositiveTotalMirrorsWithdrawal(t *testing.T) {
	uc, bankTxRepo := newExpenseFixture()
	ctx := context.Background()

	expense, err := uc.CreateExpense(ctx, usecase.CreateExpenseInput{
		CompanyID:     testCompanyID,
		Date:          time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Travelling:    decimal.NewFromInt(30),
		Refreshment:   decimal.NewFromInt(20),
		PaymentMethod: "Cash",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	account := domain.BankAccountRef{PaymentMethod: "Cash"}
	entries, _ := bankTxRepo.ListByAccount(ctx, nil, testCompanyID, account)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Type != domain.BankTxWithdraw {
		t.Errorf("type = %s, want withdraw", entries[0].Type)
	}
	if !entries[0].Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("amount = %s, want 50", entries[0].Amount)
	}
	if entries[0].Source.ID != expense.ID {
		t.Errorf("source id = %s, want %s", entries[0].Source.ID, expense.ID)
	}
}

func TestExpenseUseCase_ZeroTotalMirrorsNothing(t *testing.T) {
	uc, bankTxRepo := newExpenseFixture()
	ctx := context.Background()

	if _, err := uc.CreateExpense(ctx, usecase.CreateExpenseInput{
		CompanyID:     testCompanyID,
		PaymentMethod: "Cash",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	account := domain.BankAccountRef{PaymentMethod: "Cash"}
	entries, _ := bankTxRepo.ListByAccount(ctx, nil, testCompanyID, account)
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

func TestExpenseUseCase_UpdateReplacesWithdrawal(t *testing.T) {
	uc, bankTxRepo := newExpenseFixture()
	ctx := context.Background()

	expense, err := uc.CreateExpense(ctx, usecase.CreateExpenseInput{
		CompanyID:     testCompanyID,
		Cargo:         decimal.NewFromInt(100),
		PaymentMethod: "Cash",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newCargo := decimal.NewFromInt(250)
	if _, err := uc.UpdateExpense(ctx, usecase.UpdateExpenseInput{
		CompanyID: testCompanyID,
		ID:        expense.ID,
		Cargo:     &newCargo,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	account := domain.BankAccountRef{PaymentMethod: "Cash"}
	entries, _ := bankTxRepo.ListByAccount(ctx, nil, testCompanyID, account)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if !entries[0].Amount.Equal(newCargo) {
		t.Errorf("amount = %s, want %s", entries[0].Amount, newCargo)
	}
}

func TestExpenseUseCase_DeleteRemovesWithdrawal(t *testing.T) {
	uc, bankTxRepo := newExpenseFixture()
	ctx := context.Background()

	expense, err := uc.CreateExpense(ctx, usecase.CreateExpenseInput{
		CompanyID:     testCompanyID,
		Salary:        decimal.NewFromInt(500),
		PaymentMethod: "Cash",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := uc.DeleteExpense(ctx, testCompanyID, expense.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	account := domain.BankAccountRef{PaymentMethod: "Cash"}
	entries, _ := bankTxRepo.ListByAccount(ctx, nil, testCompanyID, account)
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

func TestExpenseUseCase_NegativeCategoryRejected(t *testing.T) {
	uc, _ := newExpenseFixture()

	_, err := uc.CreateExpense(context.Background(), usecase.CreateExpenseInput{
		CompanyID: testCompanyID,
		Cargo:     decimal.NewFromInt(-10),
	})
	if err != domain.ErrNegativeAmount {
		t.Errorf("err = %v, want ErrNegativeAmount", err)
	}
}
