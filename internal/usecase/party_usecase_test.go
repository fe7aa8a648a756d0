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

func newPartyFixture() (*usecase.PartyUseCase, *mocks.MockPartyRepository, *mocks.MockTransactionRepository) {
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
	uc := usecase.NewPartyUseCase(txManager, partyRepo, txRepo, recalc, mocks.NewMockIDGenerator())
	return uc, partyRepo, txRepo
}

func TestPartyUseCase_CreateParty(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreatePartyInput
		wantBalance decimal.Decimal
		wantErr     error
	}{
		{
			name: "receivable opening stays positive",
			input: usecase.CreatePartyInput{
				CompanyID:      testCompanyID,
				Name:           "Khan Traders",
				Type:           domain.PartyTypeCustomer,
				OpeningBalance: decimal.NewFromInt(1000),
				BalanceType:    domain.BalanceTypeReceivable,
			},
			wantBalance: decimal.NewFromInt(1000),
		},
		{
			name: "payable opening stored negative",
			input: usecase.CreatePartyInput{
				CompanyID:      testCompanyID,
				Name:           "Mango Suppliers",
				Type:           domain.PartyTypeSupplier,
				OpeningBalance: decimal.NewFromInt(800),
				BalanceType:    domain.BalanceTypePayable,
			},
			wantBalance: decimal.NewFromInt(-800),
		},
		{
			name: "balance type defaults to receivable",
			input: usecase.CreatePartyInput{
				CompanyID:      testCompanyID,
				Name:           "Default Balance",
				Type:           domain.PartyTypeCustomer,
				OpeningBalance: decimal.NewFromInt(5),
			},
			wantBalance: decimal.NewFromInt(5),
		},
		{
			name: "empty name rejected",
			input: usecase.CreatePartyInput{
				CompanyID: testCompanyID,
				Name:      "  ",
				Type:      domain.PartyTypeCustomer,
			},
			wantErr: domain.ErrInvalidPartyName,
		},
		{
			name: "unknown party type rejected",
			input: usecase.CreatePartyInput{
				CompanyID: testCompanyID,
				Name:      "Broker",
				Type:      "broker",
			},
			wantErr: domain.ErrInvalidPartyType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newPartyFixture()

			party, err := uc.CreateParty(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !party.CurrentBalance.Equal(tt.wantBalance) {
				t.Errorf("current balance = %s, want %s", party.CurrentBalance, tt.wantBalance)
			}
			if !party.OpeningBalance.Equal(tt.wantBalance) {
				t.Errorf("opening balance = %s, want %s", party.OpeningBalance, tt.wantBalance)
			}
		})
	}
}

func TestPartyUseCase_UpdateOpeningBalanceTriggersReplay(t *testing.T) {
	uc, partyRepo, txRepo := newPartyFixture()
	ctx := context.Background()

	party, err := uc.CreateParty(ctx, usecase.CreatePartyInput{
		CompanyID:      testCompanyID,
		Name:           "Khan Traders",
		Type:           domain.PartyTypeCustomer,
		OpeningBalance: decimal.NewFromInt(100),
		BalanceType:    domain.BalanceTypeReceivable,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	seedEntry(t, txRepo, "t-1", party.ID, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), domain.EntryTypeDebit, 50)

	newOpening := decimal.NewFromInt(300)
	updated, err := uc.UpdateParty(ctx, usecase.UpdatePartyInput{
		CompanyID:      testCompanyID,
		ID:             party.ID,
		OpeningBalance: &newOpening,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if !updated.CurrentBalance.Equal(decimal.NewFromInt(350)) {
		t.Errorf("balance = %s, want 350", updated.CurrentBalance)
	}

	entry, _ := txRepo.GetByID(ctx, testCompanyID, "t-1")
	if !entry.BalanceAfter.Equal(decimal.NewFromInt(350)) {
		t.Errorf("snapshot = %s, want 350", entry.BalanceAfter)
	}

	_ = partyRepo
}

func TestPartyUseCase_GetStatementReplaysBeforeRead(t *testing.T) {
	uc, _, txRepo := newPartyFixture()
	ctx := context.Background()

	party, err := uc.CreateParty(ctx, usecase.CreatePartyInput{
		CompanyID: testCompanyID,
		Name:      "Khan Traders",
		Type:      domain.PartyTypeCustomer,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Seed an entry directly, leaving the cached balance stale.
	seedEntry(t, txRepo, "t-1", party.ID, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), domain.EntryTypeDebit, 90)

	statement, err := uc.GetStatement(ctx, testCompanyID, party.ID)
	if err != nil {
		t.Fatalf("statement: %v", err)
	}

	if !statement.Party.CurrentBalance.Equal(decimal.NewFromInt(90)) {
		t.Errorf("balance = %s, want 90", statement.Party.CurrentBalance)
	}
	if len(statement.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(statement.Entries))
	}
	if !statement.Entries[0].BalanceAfter.Equal(decimal.NewFromInt(90)) {
		t.Errorf("snapshot = %s, want 90", statement.Entries[0].BalanceAfter)
	}
}

func TestPartyUseCase_DeleteParty_NotFound(t *testing.T) {
	uc, _, _ := newPartyFixture()

	err := uc.DeleteParty(context.Background(), testCompanyID, "missing")
	if !errors.Is(err, domain.ErrPartyNotFound) {
		t.Errorf("err = %v, want ErrPartyNotFound", err)
	}
}
