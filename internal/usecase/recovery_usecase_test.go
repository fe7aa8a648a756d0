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

type recoveryFixture struct {
	uc         *usecase.RecoveryUseCase
	partyRepo  *mocks.MockPartyRepository
	txRepo     *mocks.MockTransactionRepository
	bankRepo   *mocks.MockBankRepository
	bankTxRepo *mocks.MockBankTransactionRepository
}

func newRecoveryFixture() *recoveryFixture {
	partyRepo := mocks.NewMockPartyRepository()
	txRepo := mocks.NewMockTransactionRepository()
	bankRepo := mocks.NewMockBankRepository()
	bankTxRepo := mocks.NewMockBankTransactionRepository()
	txManager := mocks.NewMockTransactionManager()
	retrier := mocks.NewMockRetrier()
	recalc := usecase.NewRecalcUseCase(txManager, partyRepo, txRepo, bankRepo, bankTxRepo, retrier)
	uc := usecase.NewRecoveryUseCase(
		txManager,
		mocks.NewMockRecoveryRepository(),
		partyRepo,
		txRepo,
		bankRepo,
		bankTxRepo,
		recalc,
		mocks.NewMockIDGenerator(),
		retrier,
		zerolog.Nop(),
	)
	return &recoveryFixture{
		uc:         uc,
		partyRepo:  partyRepo,
		txRepo:     txRepo,
		bankRepo:   bankRepo,
		bankTxRepo: bankTxRepo,
	}
}

func TestRecoveryUseCase_LinkedPartyAlwaysGetsDebit(t *testing.T) {
	f := newRecoveryFixture()
	ctx := context.Background()

	seedParty(t, f.partyRepo, "s-1", domain.PartyTypeSupplier, decimal.NewFromInt(500))

	_, err := f.uc.CreateRecovery(ctx, usecase.CreateRecoveryInput{
		CompanyID:     testCompanyID,
		PartyID:       "s-1",
		Amount:        decimal.NewFromInt(200),
		PaymentMethod: "Cash",
		Date:          time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, _ := f.txRepo.ListByParty(ctx, nil, testCompanyID, "s-1")
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Type != domain.EntryTypeDebit {
		t.Errorf("entry type = %s, want debit", entries[0].Type)
	}

	// Supplier: a debit reduces what the business owes.
	party, _ := f.partyRepo.GetByID(ctx, testCompanyID, "s-1")
	if !party.CurrentBalance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("balance = %s, want 300", party.CurrentBalance)
	}
}

func TestRecoveryUseCase_NoPartyStillMirrorsDeposit(t *testing.T) {
	f := newRecoveryFixture()
	ctx := context.Background()

	_, err := f.uc.CreateRecovery(ctx, usecase.CreateRecoveryInput{
		CompanyID:     testCompanyID,
		CustomerName:  "Walk-in",
		Amount:        decimal.NewFromInt(150),
		PaymentMethod: "Cash",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	account := domain.BankAccountRef{PaymentMethod: "Cash"}
	deposits, _ := f.bankTxRepo.ListByAccount(ctx, nil, testCompanyID, account)
	if len(deposits) != 1 {
		t.Fatalf("deposits = %d, want 1", len(deposits))
	}
	if !deposits[0].Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("deposit amount = %s, want 150", deposits[0].Amount)
	}
}

func TestRecoveryUseCase_BankResolution(t *testing.T) {
	tests := []struct {
		name          string
		bankID        string
		paymentMethod string
		wantAccount   domain.BankAccountRef
	}{
		{
			name:        "explicit bank id wins",
			bankID:      "b-1",
			wantAccount: domain.BankAccountRef{BankID: "b-1"},
		},
		{
			name:          "payment method matching a bank name resolves to the bank",
			paymentMethod: "Habib Bank",
			wantAccount:   domain.BankAccountRef{BankID: "b-1"},
		},
		{
			name:          "unmatched payment method stays a cash account",
			paymentMethod: "JazzCash",
			wantAccount:   domain.BankAccountRef{PaymentMethod: "JazzCash"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRecoveryFixture()
			ctx := context.Background()

			if err := f.bankRepo.Create(ctx, &domain.Bank{
				ID:        "b-1",
				CompanyID: testCompanyID,
				Name:      "Habib Bank",
			}); err != nil {
				t.Fatalf("seed bank: %v", err)
			}

			_, err := f.uc.CreateRecovery(ctx, usecase.CreateRecoveryInput{
				CompanyID:     testCompanyID,
				Amount:        decimal.NewFromInt(100),
				BankID:        tt.bankID,
				PaymentMethod: tt.paymentMethod,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			deposits, _ := f.bankTxRepo.ListByAccount(ctx, nil, testCompanyID, tt.wantAccount)
			if len(deposits) != 1 {
				t.Fatalf("deposits on %+v = %d, want 1", tt.wantAccount, len(deposits))
			}
		})
	}
}

func TestRecoveryUseCase_ZeroAmountRejected(t *testing.T) {
	f := newRecoveryFixture()

	_, err := f.uc.CreateRecovery(context.Background(), usecase.CreateRecoveryInput{
		CompanyID: testCompanyID,
		Amount:    decimal.Zero,
	})
	if err != domain.ErrZeroAmount {
		t.Errorf("err = %v, want ErrZeroAmount", err)
	}
}

func TestRecoveryUseCase_DeleteRestoresPartyAndBank(t *testing.T) {
	f := newRecoveryFixture()
	ctx := context.Background()

	seedParty(t, f.partyRepo, "s-1", domain.PartyTypeSupplier, decimal.NewFromInt(500))

	recovery, err := f.uc.CreateRecovery(ctx, usecase.CreateRecoveryInput{
		CompanyID:     testCompanyID,
		PartyID:       "s-1",
		Amount:        decimal.NewFromInt(200),
		PaymentMethod: "Cash",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.uc.DeleteRecovery(ctx, testCompanyID, recovery.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	entries, _ := f.txRepo.ListByParty(ctx, nil, testCompanyID, "s-1")
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}

	party, _ := f.partyRepo.GetByID(ctx, testCompanyID, "s-1")
	if !party.CurrentBalance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("balance = %s, want 500", party.CurrentBalance)
	}

	account := domain.BankAccountRef{PaymentMethod: "Cash"}
	deposits, _ := f.bankTxRepo.ListByAccount(ctx, nil, testCompanyID, account)
	if len(deposits) != 0 {
		t.Errorf("deposits = %d, want 0", len(deposits))
	}
}
