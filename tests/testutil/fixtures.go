// Package testutil wires real repositories and use cases against a live
// database for the integration suite. Tests are skipped unless
// DATABASE_URL points at a disposable Postgres instance.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	postgresRepo "github.com/umair/tradeledger/internal/adapter/repository/postgres"
	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/infrastructure/postgres"
	"github.com/umair/tradeledger/internal/usecase"
)

var migrateOnce sync.Once

// Env bundles a live database pool with the full use case stack for one
// isolated test company.
type Env struct {
	Pool      *pgxpool.Pool
	CompanyID string

	Parties       *usecase.PartyUseCase
	Transactions  *usecase.TransactionUseCase
	Bills         *usecase.BillUseCase
	Sales         *usecase.SaleUseCase
	Recoveries    *usecase.RecoveryUseCase
	Expenses      *usecase.ExpenseUseCase
	Banks         *usecase.BankUseCase
	Consistency   *usecase.ConsistencyUseCase
	PaymentMethod *domain.PaymentMethod
}

// NewEnv connects to DATABASE_URL, migrates the schema once per process
// and registers a fresh company. Each Env works on its own company, so
// parallel tests never see each other's rows.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test, skipped in short mode")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()

	migrateOnce.Do(func() {
		if err := postgres.RunMigrations(zerolog.Nop(), dbURL, "../../migrations"); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	})

	pool, err := postgres.NewPool(ctx, dbURL, 4, 1)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	log := zerolog.Nop()
	txManager := postgresRepo.NewTxManager(pool)
	partyRepo := postgresRepo.NewPartyRepository(pool)
	txRepo := postgresRepo.NewTransactionRepository(pool)
	billRepo := postgresRepo.NewBillRepository(pool)
	saleRepo := postgresRepo.NewSaleRepository(pool)
	recoveryRepo := postgresRepo.NewRecoveryRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	bankRepo := postgresRepo.NewBankRepository(pool)
	methodRepo := postgresRepo.NewPaymentMethodRepository(pool)
	bankTxRepo := postgresRepo.NewBankTransactionRepository(pool)
	companyRepo := postgresRepo.NewCompanyRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	recalc := usecase.NewRecalcUseCase(txManager, partyRepo, txRepo, bankRepo, bankTxRepo, retrier)

	companyUC := usecase.NewCompanyUseCase(companyRepo, idGen)
	suffix := ulid.Make().String()
	company, err := companyUC.CreateCompany(ctx, usecase.CreateCompanyInput{
		Username: "shop-" + suffix,
		Email:    fmt.Sprintf("shop-%s@example.com", suffix),
		ShopName: "Integration Shop",
		Password: "Integration1",
	})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}

	env := &Env{
		Pool:         pool,
		CompanyID:    company.ID,
		Parties:      usecase.NewPartyUseCase(txManager, partyRepo, txRepo, recalc, idGen),
		Transactions: usecase.NewTransactionUseCase(txManager, partyRepo, txRepo, auditRepo, recalc, idGen, retrier),
		Bills:        usecase.NewBillUseCase(txManager, billRepo, partyRepo, txRepo, recalc, idGen, retrier, nil),
		Sales:        usecase.NewSaleUseCase(txManager, saleRepo, partyRepo, txRepo, bankTxRepo, methodRepo, recalc, idGen, retrier, log),
		Recoveries:   usecase.NewRecoveryUseCase(txManager, recoveryRepo, partyRepo, txRepo, bankRepo, bankTxRepo, recalc, idGen, retrier, log),
		Expenses:     usecase.NewExpenseUseCase(txManager, expenseRepo, bankTxRepo, recalc, idGen, retrier, log),
		Banks:        usecase.NewBankUseCase(txManager, bankRepo, methodRepo, bankTxRepo, recalc, idGen, retrier),
		Consistency:  usecase.NewConsistencyUseCase(txManager, partyRepo, txRepo, recalc),
	}

	method, err := env.Banks.CreatePaymentMethod(ctx, usecase.CreatePaymentMethodInput{
		CompanyID: company.ID,
		Name:      "Cash",
	})
	if err != nil {
		t.Fatalf("create payment method: %v", err)
	}
	env.PaymentMethod = method

	return env
}

// CreateCustomer registers a customer party with a zero opening balance.
func (e *Env) CreateCustomer(t *testing.T, name string) *domain.Party {
	t.Helper()
	return e.createParty(t, name, domain.PartyTypeCustomer, domain.BalanceTypeReceivable)
}

// CreateSupplier registers a supplier party with a zero opening balance.
func (e *Env) CreateSupplier(t *testing.T, name string) *domain.Party {
	t.Helper()
	return e.createParty(t, name, domain.PartyTypeSupplier, domain.BalanceTypePayable)
}

func (e *Env) createParty(t *testing.T, name string, partyType domain.PartyType, balanceType domain.BalanceType) *domain.Party {
	t.Helper()

	party, err := e.Parties.CreateParty(context.Background(), usecase.CreatePartyInput{
		CompanyID:   e.CompanyID,
		Name:        name,
		Type:        partyType,
		BalanceType: balanceType,
	})
	if err != nil {
		t.Fatalf("create party %s: %v", name, err)
	}
	return party
}

// Balance reloads a party and returns its current balance.
func (e *Env) Balance(t *testing.T, partyID string) string {
	t.Helper()

	party, err := e.Parties.GetParty(context.Background(), e.CompanyID, partyID)
	if err != nil {
		t.Fatalf("get party: %v", err)
	}
	return party.CurrentBalance.String()
}

// Date returns a fixed UTC date offset by the given number of days, so
// ordering assertions are deterministic.
func Date(dayOffset int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, dayOffset)
}
