package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
	"github.com/umair/tradeledger/internal/usecase/mocks"
)

func newTransactionFixture() (*usecase.TransactionUseCase, *mocks.MockPartyRepository, *mocks.MockTransactionRepository) {
	partyRepo := mocks.NewMockPartyRepository()
	txRepo := mocks.NewMockTransactionRepository()
	txManager := mocks.NewMockTransactionManager()
	retrier := mocks.NewMockRetrier()
	recalc := usecase.NewRecalcUseCase(
		txManager,
		partyRepo,
		txRepo,
		mocks.NewMockBankRepository(),
		mocks.NewMockBankTransactionRepository(),
		retrier,
	)
	uc := usecase.NewTransactionUseCase(
		txManager,
		partyRepo,
		txRepo,
		mocks.NewMockAuditRepository(),
		recalc,
		mocks.NewMockIDGenerator(),
		retrier,
	)
	return uc, partyRepo, txRepo
}

func TestTransactionUseCase_CreateTransaction(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateTransactionInput
		wantBalance decimal.Decimal
		wantErr     error
	}{
		{
			name: "debit raises customer balance",
			input: usecase.CreateTransactionInput{
				CompanyID: testCompanyID,
				PartyID:   "p-1",
				Type:      domain.EntryTypeDebit,
				Amount:    decimal.NewFromInt(250),
			},
			wantBalance: decimal.NewFromInt(250),
		},
		{
			name: "credit lowers customer balance",
			input: usecase.CreateTransactionInput{
				CompanyID: testCompanyID,
				PartyID:   "p-1",
				Type:      domain.EntryTypeCredit,
				Amount:    decimal.NewFromInt(40),
			},
			wantBalance: decimal.NewFromInt(-40),
		},
		{
			name: "missing party",
			input: usecase.CreateTransactionInput{
				CompanyID: testCompanyID,
				Type:      domain.EntryTypeDebit,
				Amount:    decimal.NewFromInt(10),
			},
			wantErr: domain.ErrPartyRequired,
		},
		{
			name: "invalid entry type",
			input: usecase.CreateTransactionInput{
				CompanyID: testCompanyID,
				PartyID:   "p-1",
				Type:      "transfer",
				Amount:    decimal.NewFromInt(10),
			},
			wantErr: domain.ErrInvalidEntryType,
		},
		{
			name: "negative amount",
			input: usecase.CreateTransactionInput{
				CompanyID: testCompanyID,
				PartyID:   "p-1",
				Type:      domain.EntryTypeDebit,
				Amount:    decimal.NewFromInt(-5),
			},
			wantErr: domain.ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, partyRepo, _ := newTransactionFixture()
			seedParty(t, partyRepo, "p-1", domain.PartyTypeCustomer, decimal.Zero)

			txn, err := uc.CreateTransaction(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if txn.Source.Type != domain.SourceTypeManual {
				t.Errorf("source type = %s, want manual", txn.Source.Type)
			}

			party, _ := partyRepo.GetByID(context.Background(), testCompanyID, "p-1")
			if !party.CurrentBalance.Equal(tt.wantBalance) {
				t.Errorf("balance = %s, want %s", party.CurrentBalance, tt.wantBalance)
			}
		})
	}
}

func TestTransactionUseCase_DeleteAndRecreateRestoresBalance(t *testing.T) {
	uc, partyRepo, _ := newTransactionFixture()
	ctx := context.Background()

	seedParty(t, partyRepo, "p-1", domain.PartyTypeCustomer, decimal.NewFromInt(100))

	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	input := usecase.CreateTransactionInput{
		CompanyID: testCompanyID,
		PartyID:   "p-1",
		Date:      date,
		Type:      domain.EntryTypeDebit,
		Amount:    decimal.NewFromInt(60),
	}

	first, err := uc.CreateTransaction(ctx, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	party, _ := partyRepo.GetByID(ctx, testCompanyID, "p-1")
	original := party.CurrentBalance

	if err := uc.DeleteTransaction(ctx, testCompanyID, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	party, _ = partyRepo.GetByID(ctx, testCompanyID, "p-1")
	if !party.CurrentBalance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balance after delete = %s, want 100", party.CurrentBalance)
	}

	if _, err := uc.CreateTransaction(ctx, input); err != nil {
		t.Fatalf("recreate: %v", err)
	}

	party, _ = partyRepo.GetByID(ctx, testCompanyID, "p-1")
	if !party.CurrentBalance.Equal(original) {
		t.Errorf("balance after recreate = %s, want %s", party.CurrentBalance, original)
	}
}

func TestTransactionUseCase_UpdateTransaction_ReplaysBalance(t *testing.T) {
	uc, partyRepo, _ := newTransactionFixture()
	ctx := context.Background()

	seedParty(t, partyRepo, "p-1", domain.PartyTypeCustomer, decimal.Zero)

	txn, err := uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
		CompanyID: testCompanyID,
		PartyID:   "p-1",
		Type:      domain.EntryTypeDebit,
		Amount:    decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newAmount := decimal.NewFromInt(175)
	if _, err := uc.UpdateTransaction(ctx, usecase.UpdateTransactionInput{
		CompanyID: testCompanyID,
		ID:        txn.ID,
		Amount:    &newAmount,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	party, _ := partyRepo.GetByID(ctx, testCompanyID, "p-1")
	if !party.CurrentBalance.Equal(newAmount) {
		t.Errorf("balance = %s, want %s", party.CurrentBalance, newAmount)
	}
}

func TestTransactionUseCase_DeleteTransaction_NotFound(t *testing.T) {
	uc, _, _ := newTransactionFixture()

	err := uc.DeleteTransaction(context.Background(), testCompanyID, "missing")
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("err = %v, want ErrTransactionNotFound", err)
	}
}

func TestTransactionUseCase_WritesAuditTrail(t *testing.T) {
	partyRepo := mocks.NewMockPartyRepository()
	txRepo := mocks.NewMockTransactionRepository()
	txManager := mocks.NewMockTransactionManager()
	retrier := mocks.NewMockRetrier()
	auditRepo := mocks.NewMockAuditRepository()
	recalc := usecase.NewRecalcUseCase(
		txManager,
		partyRepo,
		txRepo,
		mocks.NewMockBankRepository(),
		mocks.NewMockBankTransactionRepository(),
		retrier,
	)
	uc := usecase.NewTransactionUseCase(txManager, partyRepo, txRepo, auditRepo, recalc, mocks.NewMockIDGenerator(), retrier)
	ctx := context.Background()

	seedParty(t, partyRepo, "p-1", domain.PartyTypeCustomer, decimal.Zero)

	txn, err := uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
		CompanyID: testCompanyID,
		PartyID:   "p-1",
		Type:      domain.EntryTypeDebit,
		Amount:    decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := uc.DeleteTransaction(ctx, testCompanyID, txn.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	logs, err := auditRepo.GetByResourceID(ctx, "transaction", txn.ID)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("audit logs = %d, want create and delete", len(logs))
	}
	if logs[0].Action != string(domain.AuditActionTransactionCreate) {
		t.Errorf("first action = %s", logs[0].Action)
	}
	if logs[1].Action != string(domain.AuditActionTransactionDelete) {
		t.Errorf("second action = %s", logs[1].Action)
	}
	if logs[1].BeforeState == nil {
		t.Error("delete audit should capture the removed entry")
	}
}
