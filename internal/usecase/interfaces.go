package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
)

// PartyRepository defines data access for parties.
type PartyRepository interface {
	Create(ctx context.Context, party *domain.Party) error
	GetByID(ctx context.Context, companyID, id string) (*domain.Party, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, companyID, id string) (*domain.Party, error)
	Update(ctx context.Context, party *domain.Party) error
	Delete(ctx context.Context, tx Transaction, companyID, id string) error
	List(ctx context.Context, filter domain.PartyFilter) ([]*domain.Party, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.LedgerTransaction) error
	GetByID(ctx context.Context, companyID, id string) (*domain.LedgerTransaction, error)
	Update(ctx context.Context, tx Transaction, txn *domain.LedgerTransaction) error
	Delete(ctx context.Context, tx Transaction, companyID, id string) error
	// ListByParty returns all entries for a party ordered by date, then
	// creation order. The recalculation engine depends on this ordering.
	ListByParty(ctx context.Context, tx Transaction, companyID, partyID string) ([]*domain.LedgerTransaction, error)
	ListByPartyPage(ctx context.Context, companyID, partyID string, limit, offset int) ([]*domain.LedgerTransaction, error)
	// UpsertBySourceKey inserts a derived entry or, when an entry with the
	// same source key already exists, updates it in place preserving its
	// original creation order.
	UpsertBySourceKey(ctx context.Context, tx Transaction, txn *domain.LedgerTransaction) error
	// DeleteBySourceExcept removes every derived entry of the given source
	// except those whose source key is listed in keep.
	DeleteBySourceExcept(ctx context.Context, tx Transaction, companyID string, sourceType domain.SourceType, sourceID string, keep []string) error
	DeleteBySource(ctx context.Context, tx Transaction, companyID string, sourceType domain.SourceType, sourceID string) error
	SetBalanceAfter(ctx context.Context, tx Transaction, id string, balanceAfter decimal.Decimal) error
}

// BankRepository defines data access for banks.
type BankRepository interface {
	Create(ctx context.Context, bank *domain.Bank) error
	GetByID(ctx context.Context, companyID, id string) (*domain.Bank, error)
	GetByName(ctx context.Context, companyID, name string) (*domain.Bank, error)
	Update(ctx context.Context, bank *domain.Bank) error
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	Delete(ctx context.Context, tx Transaction, companyID, id string) error
	List(ctx context.Context, companyID string, limit, offset int) ([]*domain.Bank, error)
}

// PaymentMethodRepository defines data access for payment methods.
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *domain.PaymentMethod) error
	GetByID(ctx context.Context, companyID, id string) (*domain.PaymentMethod, error)
	GetByName(ctx context.Context, companyID, name string) (*domain.PaymentMethod, error)
	Update(ctx context.Context, method *domain.PaymentMethod) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID string, limit, offset int) ([]*domain.PaymentMethod, error)
}

// BankTransactionRepository defines data access for bank ledger entries.
type BankTransactionRepository interface {
	Create(ctx context.Context, tx Transaction, btx *domain.BankTransaction) error
	GetByID(ctx context.Context, companyID, id string) (*domain.BankTransaction, error)
	Delete(ctx context.Context, tx Transaction, companyID, id string) error
	// ListByAccount returns all entries for a bank account ordered by date,
	// then creation order, mirroring the party ledger ordering contract.
	ListByAccount(ctx context.Context, tx Transaction, companyID string, account domain.BankAccountRef) ([]*domain.BankTransaction, error)
	ListByAccountPage(ctx context.Context, companyID string, account domain.BankAccountRef, limit, offset int) ([]*domain.BankTransaction, error)
	UpsertBySourceKey(ctx context.Context, tx Transaction, btx *domain.BankTransaction) error
	DeleteBySource(ctx context.Context, tx Transaction, companyID string, sourceType domain.SourceType, sourceID string) error
	// DeleteByBank removes every entry held against a bank; used when the
	// bank itself is deleted.
	DeleteByBank(ctx context.Context, tx Transaction, companyID, bankID string) error
	SetBalanceAfter(ctx context.Context, tx Transaction, id string, balanceAfter decimal.Decimal) error
}

// BillRepository defines data access for bills.
type BillRepository interface {
	Create(ctx context.Context, tx Transaction, bill *domain.Bill) error
	GetByID(ctx context.Context, companyID, id string) (*domain.Bill, error)
	Update(ctx context.Context, tx Transaction, bill *domain.Bill) error
	Delete(ctx context.Context, tx Transaction, companyID, id string) error
	List(ctx context.Context, companyID string, status domain.BillStatus, limit, offset int) ([]*domain.Bill, error)
	GetLatestTemplate(ctx context.Context, companyID string) (*domain.BillTemplateSettings, error)
	NextSerial(ctx context.Context, tx Transaction, companyID string) (int64, error)
}

// SaleRepository defines data access for sales.
type SaleRepository interface {
	Create(ctx context.Context, tx Transaction, sale *domain.Sale) error
	GetByID(ctx context.Context, companyID, id string) (*domain.Sale, error)
	Update(ctx context.Context, tx Transaction, sale *domain.Sale) error
	Delete(ctx context.Context, tx Transaction, companyID, id string) error
	List(ctx context.Context, companyID string, limit, offset int) ([]*domain.Sale, error)
	NextSerial(ctx context.Context, tx Transaction, companyID string) (int64, error)
}

// RecoveryRepository defines data access for recoveries.
type RecoveryRepository interface {
	Create(ctx context.Context, tx Transaction, recovery *domain.Recovery) error
	GetByID(ctx context.Context, companyID, id string) (*domain.Recovery, error)
	Update(ctx context.Context, tx Transaction, recovery *domain.Recovery) error
	Delete(ctx context.Context, tx Transaction, companyID, id string) error
	List(ctx context.Context, companyID string, limit, offset int) ([]*domain.Recovery, error)
	NextSerial(ctx context.Context, tx Transaction, companyID string) (int64, error)
}

// ExpenseRepository defines data access for expense sheets.
type ExpenseRepository interface {
	Create(ctx context.Context, tx Transaction, expense *domain.Expense) error
	GetByID(ctx context.Context, companyID, id string) (*domain.Expense, error)
	Update(ctx context.Context, tx Transaction, expense *domain.Expense) error
	Delete(ctx context.Context, tx Transaction, companyID, id string) error
	List(ctx context.Context, companyID string, limit, offset int) ([]*domain.Expense, error)
}

// CompanyRepository defines data access for companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	GetByUsername(ctx context.Context, username string) (*domain.Company, error)
	Update(ctx context.Context, company *domain.Company) error
	List(ctx context.Context, limit, offset int) ([]*domain.Company, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient database errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache is a small read-through cache for derived lookups.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
