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

func newBillFixture() (*usecase.BillUseCase, *mocks.MockPartyRepository, *mocks.MockTransactionRepository, *mocks.MockBillRepository) {
	partyRepo := mocks.NewMockPartyRepository()
	txRepo := mocks.NewMockTransactionRepository()
	billRepo := mocks.NewMockBillRepository()
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
	uc := usecase.NewBillUseCase(
		txManager,
		billRepo,
		partyRepo,
		txRepo,
		recalc,
		mocks.NewMockIDGenerator(),
		retrier,
		nil,
	)
	return uc, partyRepo, txRepo, billRepo
}

func billEntries(t *testing.T, txRepo *mocks.MockTransactionRepository, partyID string) []*domain.LedgerTransaction {
	t.Helper()
	entries, err := txRepo.ListByParty(context.Background(), nil, testCompanyID, partyID)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	return entries
}

func TestBillUseCase_CompletedSupplierBillDerivesOneCredit(t *testing.T) {
	uc, partyRepo, txRepo, _ := newBillFixture()
	ctx := context.Background()

	seedParty(t, partyRepo, "s-1", domain.PartyTypeSupplier, decimal.Zero)

	bill, err := uc.CreateBill(ctx, usecase.CreateBillInput{
		CompanyID: testCompanyID,
		PartyID:   "s-1",
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		RawSale:   decimal.NewFromInt(550),
		ExpenseLines: map[string]decimal.Decimal{
			"commission": decimal.NewFromInt(50),
		},
		Status: domain.BillStatusCompleted,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bill.NetSale.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("net sale = %s, want 500", bill.NetSale)
	}

	entries := billEntries(t, txRepo, "s-1")
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Type != domain.EntryTypeCredit {
		t.Errorf("entry type = %s, want credit", entries[0].Type)
	}
	if !entries[0].Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("entry amount = %s, want 500", entries[0].Amount)
	}

	party, _ := partyRepo.GetByID(ctx, testCompanyID, "s-1")
	if !party.CurrentBalance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("supplier balance = %s, want 500", party.CurrentBalance)
	}
}

func TestBillUseCase_DraftBillDerivesNothing(t *testing.T) {
	uc, partyRepo, txRepo, _ := newBillFixture()

	seedParty(t, partyRepo, "s-1", domain.PartyTypeSupplier, decimal.Zero)

	_, err := uc.CreateBill(context.Background(), usecase.CreateBillInput{
		CompanyID: testCompanyID,
		PartyID:   "s-1",
		RawSale:   decimal.NewFromInt(900),
		Status:    domain.BillStatusDraft,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entries := billEntries(t, txRepo, "s-1"); len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

func TestBillUseCase_CustomerPartyDerivesNothing(t *testing.T) {
	uc, partyRepo, txRepo, _ := newBillFixture()

	seedParty(t, partyRepo, "c-1", domain.PartyTypeCustomer, decimal.Zero)

	_, err := uc.CreateBill(context.Background(), usecase.CreateBillInput{
		CompanyID: testCompanyID,
		PartyID:   "c-1",
		RawSale:   decimal.NewFromInt(900),
		Status:    domain.BillStatusCompleted,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entries := billEntries(t, txRepo, "c-1"); len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

func TestBillUseCase_NonPositiveNetDerivesNothing(t *testing.T) {
	uc, partyRepo, txRepo, _ := newBillFixture()

	seedParty(t, partyRepo, "s-1", domain.PartyTypeSupplier, decimal.Zero)

	_, err := uc.CreateBill(context.Background(), usecase.CreateBillInput{
		CompanyID: testCompanyID,
		PartyID:   "s-1",
		RawSale:   decimal.NewFromInt(100),
		ExpenseLines: map[string]decimal.Decimal{
			"cargo": decimal.NewFromInt(150),
		},
		Status: domain.BillStatusCompleted,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entries := billEntries(t, txRepo, "s-1"); len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

func TestBillUseCase_UpdateReplacesEntryWithoutDuplicates(t *testing.T) {
	uc, partyRepo, txRepo, _ := newBillFixture()
	ctx := context.Background()

	seedParty(t, partyRepo, "s-1", domain.PartyTypeSupplier, decimal.Zero)

	bill, err := uc.CreateBill(ctx, usecase.CreateBillInput{
		CompanyID: testCompanyID,
		PartyID:   "s-1",
		RawSale:   decimal.NewFromInt(500),
		Status:    domain.BillStatusCompleted,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newRaw := decimal.NewFromInt(800)
	if _, err := uc.UpdateBill(ctx, usecase.UpdateBillInput{
		CompanyID: testCompanyID,
		ID:        bill.ID,
		RawSale:   &newRaw,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	entries := billEntries(t, txRepo, "s-1")
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if !entries[0].Amount.Equal(newRaw) {
		t.Errorf("entry amount = %s, want %s", entries[0].Amount, newRaw)
	}

	party, _ := partyRepo.GetByID(ctx, testCompanyID, "s-1")
	if !party.CurrentBalance.Equal(newRaw) {
		t.Errorf("supplier balance = %s, want %s", party.CurrentBalance, newRaw)
	}
}

func TestBillUseCase_DeleteBillRestoresBalance(t *testing.T) {
	uc, partyRepo, txRepo, _ := newBillFixture()
	ctx := context.Background()

	seedParty(t, partyRepo, "s-1", domain.PartyTypeSupplier, decimal.NewFromInt(100))

	bill, err := uc.CreateBill(ctx, usecase.CreateBillInput{
		CompanyID: testCompanyID,
		PartyID:   "s-1",
		RawSale:   decimal.NewFromInt(500),
		Status:    domain.BillStatusCompleted,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := uc.DeleteBill(ctx, testCompanyID, bill.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if entries := billEntries(t, txRepo, "s-1"); len(entries) != 0 {
		t.Errorf("entries after delete = %d, want 0", len(entries))
	}

	party, _ := partyRepo.GetByID(ctx, testCompanyID, "s-1")
	if !party.CurrentBalance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("balance after delete = %s, want 100", party.CurrentBalance)
	}
}

func TestBillUseCase_CompletedBillCannotReturnToDraft(t *testing.T) {
	uc, partyRepo, _, _ := newBillFixture()
	ctx := context.Background()

	seedParty(t, partyRepo, "s-1", domain.PartyTypeSupplier, decimal.Zero)

	bill, err := uc.CreateBill(ctx, usecase.CreateBillInput{
		CompanyID: testCompanyID,
		PartyID:   "s-1",
		RawSale:   decimal.NewFromInt(500),
		Status:    domain.BillStatusCompleted,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = uc.UpdateBill(ctx, usecase.UpdateBillInput{
		CompanyID: testCompanyID,
		ID:        bill.ID,
		Status:    domain.BillStatusDraft,
	})
	if !errors.Is(err, domain.ErrBillCompleted) {
		t.Errorf("err = %v, want ErrBillCompleted", err)
	}
}

func TestBillUseCase_LatestTemplateServedFromCache(t *testing.T) {
	billRepo := mocks.NewMockBillRepository()
	lookups := 0
	billRepo.GetLatestTemplateFunc = func(ctx context.Context, companyID string) (*domain.BillTemplateSettings, error) {
		lookups++
		return &domain.BillTemplateSettings{CompanyName: "Khan Autos", BusinessType: "vegetables"}, nil
	}

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
	cache := mocks.NewMockCache()
	uc := usecase.NewBillUseCase(txManager, billRepo, partyRepo, txRepo, recalc, mocks.NewMockIDGenerator(), retrier, cache)
	ctx := context.Background()

	first, err := uc.LatestTemplate(ctx, testCompanyID)
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	second, err := uc.LatestTemplate(ctx, testCompanyID)
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}

	if lookups != 1 {
		t.Errorf("repo lookups = %d, want 1", lookups)
	}
	if first.CompanyName != second.CompanyName || second.CompanyName != "Khan Autos" {
		t.Errorf("template = %+v, want cached copy of first", second)
	}
}

func TestBillUseCase_CreateInvalidatesTemplateCache(t *testing.T) {
	partyRepo := mocks.NewMockPartyRepository()
	txRepo := mocks.NewMockTransactionRepository()
	billRepo := mocks.NewMockBillRepository()
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
	cache := mocks.NewMockCache()
	uc := usecase.NewBillUseCase(txManager, billRepo, partyRepo, txRepo, recalc, mocks.NewMockIDGenerator(), retrier, cache)
	ctx := context.Background()

	seedParty(t, partyRepo, "s-1", domain.PartyTypeSupplier, decimal.Zero)

	if _, err := uc.CreateBill(ctx, usecase.CreateBillInput{
		CompanyID: testCompanyID,
		PartyID:   "s-1",
		RawSale:   decimal.NewFromInt(100),
		Status:    domain.BillStatusCompleted,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if cache.Deletes != 1 {
		t.Errorf("cache deletes = %d, want 1", cache.Deletes)
	}
}

func TestBillUseCase_AssignsSerialWhenBlank(t *testing.T) {
	uc, partyRepo, _, _ := newBillFixture()
	ctx := context.Background()

	seedParty(t, partyRepo, "s-1", domain.PartyTypeSupplier, decimal.Zero)

	first, err := uc.CreateBill(ctx, usecase.CreateBillInput{
		CompanyID: testCompanyID,
		PartyID:   "s-1",
		RawSale:   decimal.NewFromInt(100),
		Status:    domain.BillStatusCompleted,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.SerialNumber != "1" {
		t.Errorf("serial = %q, want auto-assigned 1", first.SerialNumber)
	}

	second, err := uc.CreateBill(ctx, usecase.CreateBillInput{
		CompanyID:    testCompanyID,
		PartyID:      "s-1",
		SerialNumber: "B-77",
		RawSale:      decimal.NewFromInt(50),
		Status:       domain.BillStatusCompleted,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if second.SerialNumber != "B-77" {
		t.Errorf("serial = %q, want the caller's value kept", second.SerialNumber)
	}
}

func TestBillUseCase_CreateInheritsLatestTemplate(t *testing.T) {
	uc, partyRepo, _, billRepo := newBillFixture()
	ctx := context.Background()

	seedParty(t, partyRepo, "s-1", domain.PartyTypeSupplier, decimal.Zero)

	billRepo.GetLatestTemplateFunc = func(ctx context.Context, companyID string) (*domain.BillTemplateSettings, error) {
		return &domain.BillTemplateSettings{CompanyName: "Khan Autos", Trademark: "KA"}, nil
	}

	bill, err := uc.CreateBill(ctx, usecase.CreateBillInput{
		CompanyID: testCompanyID,
		PartyID:   "s-1",
		RawSale:   decimal.NewFromInt(100),
		Status:    domain.BillStatusCompleted,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if bill.Template.CompanyName != "Khan Autos" || bill.Template.Trademark != "KA" {
		t.Errorf("template = %+v, want inherited header", bill.Template)
	}

	explicit, err := uc.CreateBill(ctx, usecase.CreateBillInput{
		CompanyID: testCompanyID,
		PartyID:   "s-1",
		RawSale:   decimal.NewFromInt(50),
		Status:    domain.BillStatusCompleted,
		Template:  domain.BillTemplateSettings{CompanyName: "Other Traders"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if explicit.Template.CompanyName != "Other Traders" {
		t.Errorf("template = %+v, want the caller's header kept", explicit.Template)
	}
}
