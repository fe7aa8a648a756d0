package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
	"github.com/umair/tradeledger/internal/usecase/mocks"
)

const testCompanyID = "co-1"

func newRecalcFixture() (*usecase.RecalcUseCase, *mocks.MockPartyRepository, *mocks.MockTransactionRepository, *mocks.MockBankRepository, *mocks.MockBankTransactionRepository) {
	partyRepo := mocks.NewMockPartyRepository()
	txRepo := mocks.NewMockTransactionRepository()
	bankRepo := mocks.NewMockBankRepository()
	bankTxRepo := mocks.NewMockBankTransactionRepository()
	recalc := usecase.NewRecalcUseCase(
		mocks.NewMockTransactionManager(),
		partyRepo,
		txRepo,
		bankRepo,
		bankTxRepo,
		mocks.NewMockRetrier(),
	)
	return recalc, partyRepo, txRepo, bankRepo, bankTxRepo
}

func seedParty(t *testing.T, repo *mocks.MockPartyRepository, id string, partyType domain.PartyType, opening decimal.Decimal) *domain.Party {
	t.Helper()
	party := &domain.Party{
		ID:             id,
		CompanyID:      testCompanyID,
		Name:           "Party " + id,
		Type:           partyType,
		OpeningBalance: opening,
		BalanceType:    domain.BalanceTypeReceivable,
		CurrentBalance: opening,
	}
	if opening.IsNegative() {
		party.BalanceType = domain.BalanceTypePayable
	}
	if err := repo.Create(context.Background(), party); err != nil {
		t.Fatalf("seed party: %v", err)
	}
	return party
}

func seedEntry(t *testing.T, repo *mocks.MockTransactionRepository, id, partyID string, date time.Time, entryType domain.EntryType, amount int64) {
	t.Helper()
	err := repo.Create(context.Background(), nil, &domain.LedgerTransaction{
		ID:        id,
		CompanyID: testCompanyID,
		PartyID:   partyID,
		Source:    domain.ManualSource(id),
		Date:      date,
		Type:      entryType,
		Amount:    decimal.NewFromInt(amount),
	})
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}
}

func TestRecalcUseCase_RecalcParty_CustomerReplay(t *testing.T) {
	recalc, partyRepo, txRepo, _, _ := newRecalcFixture()
	ctx := context.Background()

	seedParty(t, partyRepo, "p-1", domain.PartyTypeCustomer, decimal.NewFromInt(100))

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	seedEntry(t, txRepo, "t-1", "p-1", day, domain.EntryTypeDebit, 50)
	seedEntry(t, txRepo, "t-2", "p-1", day.AddDate(0, 0, 1), domain.EntryTypeCredit, 30)

	balance, err := recalc.RecalcParty(ctx, testCompanyID, "p-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.NewFromInt(120)) {
		t.Errorf("balance = %s, want 120", balance)
	}

	party, _ := partyRepo.GetByID(ctx, testCompanyID, "p-1")
	if !party.CurrentBalance.Equal(decimal.NewFromInt(120)) {
		t.Errorf("party balance = %s, want 120", party.CurrentBalance)
	}

	first, _ := txRepo.GetByID(ctx, testCompanyID, "t-1")
	if !first.BalanceAfter.Equal(decimal.NewFromInt(150)) {
		t.Errorf("first snapshot = %s, want 150", first.BalanceAfter)
	}
	second, _ := txRepo.GetByID(ctx, testCompanyID, "t-2")
	if !second.BalanceAfter.Equal(decimal.NewFromInt(120)) {
		t.Errorf("second snapshot = %s, want 120", second.BalanceAfter)
	}
}

func TestRecalcUseCase_RecalcParty_SupplierSigns(t *testing.T) {
	recalc, partyRepo, txRepo, _, _ := newRecalcFixture()
	ctx := context.Background()

	seedParty(t, partyRepo, "s-1", domain.PartyTypeSupplier, decimal.Zero)

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	seedEntry(t, txRepo, "t-1", "s-1", day, domain.EntryTypeCredit, 500)
	seedEntry(t, txRepo, "t-2", "s-1", day.AddDate(0, 0, 1), domain.EntryTypeDebit, 200)

	balance, err := recalc.RecalcParty(ctx, testCompanyID, "s-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("balance = %s, want 300", balance)
	}
}

func TestRecalcUseCase_RecalcParty_DateOrderBeatsInsertionOrder(t *testing.T) {
	recalc, partyRepo, txRepo, _, _ := newRecalcFixture()
	ctx := context.Background()

	seedParty(t, partyRepo, "p-1", domain.PartyTypeCustomer, decimal.Zero)

	// Inserted newest-date first; replay must still run in date order.
	later := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	seedEntry(t, txRepo, "t-late", "p-1", later, domain.EntryTypeCredit, 40)
	seedEntry(t, txRepo, "t-early", "p-1", earlier, domain.EntryTypeDebit, 100)

	if _, err := recalc.RecalcParty(ctx, testCompanyID, "p-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	early, _ := txRepo.GetByID(ctx, testCompanyID, "t-early")
	if !early.BalanceAfter.Equal(decimal.NewFromInt(100)) {
		t.Errorf("early snapshot = %s, want 100", early.BalanceAfter)
	}
	late, _ := txRepo.GetByID(ctx, testCompanyID, "t-late")
	if !late.BalanceAfter.Equal(decimal.NewFromInt(60)) {
		t.Errorf("late snapshot = %s, want 60", late.BalanceAfter)
	}
}

func TestRecalcUseCase_RecalcParty_Idempotent(t *testing.T) {
	recalc, partyRepo, txRepo, _, _ := newRecalcFixture()
	ctx := context.Background()

	seedParty(t, partyRepo, "p-1", domain.PartyTypeCustomer, decimal.NewFromInt(10))
	seedEntry(t, txRepo, "t-1", "p-1", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), domain.EntryTypeDebit, 25)

	first, err := recalc.RecalcParty(ctx, testCompanyID, "p-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := recalc.RecalcParty(ctx, testCompanyID, "p-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.Equal(second) {
		t.Errorf("recalc not idempotent: %s then %s", first, second)
	}
}

func TestRecalcUseCase_RecalcParty_NotFound(t *testing.T) {
	recalc, _, _, _, _ := newRecalcFixture()

	_, err := recalc.RecalcParty(context.Background(), testCompanyID, "missing")
	if err != domain.ErrPartyNotFound {
		t.Errorf("err = %v, want ErrPartyNotFound", err)
	}
}

func TestRecalcUseCase_RecalcBankAccount_FullReplay(t *testing.T) {
	recalc, _, _, bankRepo, bankTxRepo := newRecalcFixture()
	ctx := context.Background()

	bank := &domain.Bank{
		ID:             "b-1",
		CompanyID:      testCompanyID,
		Name:           "Habib Bank",
		OpeningBalance: decimal.NewFromInt(1000),
	}
	if err := bankRepo.Create(ctx, bank); err != nil {
		t.Fatalf("seed bank: %v", err)
	}

	account := domain.BankAccountRef{BankID: "b-1"}
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	deposits := []*domain.BankTransaction{
		{ID: "bt-1", CompanyID: testCompanyID, Account: account, Date: day, Type: domain.BankTxDeposit, Amount: decimal.NewFromInt(500)},
		{ID: "bt-2", CompanyID: testCompanyID, Account: account, Date: day.AddDate(0, 0, 1), Type: domain.BankTxWithdraw, Amount: decimal.NewFromInt(200)},
	}
	for _, d := range deposits {
		d.Source = domain.ManualSource(d.ID)
		if err := bankTxRepo.Create(ctx, nil, d); err != nil {
			t.Fatalf("seed bank tx: %v", err)
		}
	}

	balance, err := recalc.RecalcBankAccount(ctx, testCompanyID, account)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("balance = %s, want 1300", balance)
	}

	first, _ := bankTxRepo.GetByID(ctx, testCompanyID, "bt-1")
	if !first.BalanceAfter.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("first snapshot = %s, want 1500", first.BalanceAfter)
	}

	updated, _ := bankRepo.GetByID(ctx, testCompanyID, "b-1")
	if !updated.CurrentBalance.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("bank balance = %s, want 1300", updated.CurrentBalance)
	}
}

func TestRecalcUseCase_RecalcBankAccount_PaymentMethodStartsAtZero(t *testing.T) {
	recalc, _, _, _, bankTxRepo := newRecalcFixture()
	ctx := context.Background()

	account := domain.BankAccountRef{PaymentMethod: "Cash"}
	btx := &domain.BankTransaction{
		ID:        "bt-1",
		CompanyID: testCompanyID,
		Account:   account,
		Date:      time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Type:      domain.BankTxDeposit,
		Amount:    decimal.NewFromInt(75),
	}
	btx.Source = domain.ManualSource(btx.ID)
	if err := bankTxRepo.Create(ctx, nil, btx); err != nil {
		t.Fatalf("seed bank tx: %v", err)
	}

	balance, err := recalc.RecalcBankAccount(ctx, testCompanyID, account)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.NewFromInt(75)) {
		t.Errorf("balance = %s, want 75", balance)
	}
}
