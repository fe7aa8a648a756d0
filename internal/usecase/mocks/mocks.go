package mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
)

// MockPartyRepository is a mock implementation of PartyRepository.
type MockPartyRepository struct {
	mu      sync.RWMutex
	parties map[string]*domain.Party

	CreateFunc           func(ctx context.Context, party *domain.Party) error
	GetByIDFunc          func(ctx context.Context, companyID, id string) (*domain.Party, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, companyID, id string) (*domain.Party, error)
	UpdateFunc           func(ctx context.Context, party *domain.Party) error
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, companyID, id string) error
	ListFunc             func(ctx context.Context, filter domain.PartyFilter) ([]*domain.Party, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockPartyRepository() *MockPartyRepository {
	return &MockPartyRepository{
		parties: make(map[string]*domain.Party),
	}
}

func (m *MockPartyRepository) Create(ctx context.Context, party *domain.Party) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, party)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parties[party.ID] = party
	return nil
}

func (m *MockPartyRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Party, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.parties[id]; ok && p.CompanyID == companyID {
		return p, nil
	}
	return nil, domain.ErrPartyNotFound
}

func (m *MockPartyRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, companyID, id string) (*domain.Party, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, companyID, id)
	}
	return m.GetByID(ctx, companyID, id)
}

func (m *MockPartyRepository) Update(ctx context.Context, party *domain.Party) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, party)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.parties[party.ID]; !ok {
		return domain.ErrPartyNotFound
	}
	m.parties[party.ID] = party
	return nil
}

func (m *MockPartyRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, companyID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.parties[id]; !ok || p.CompanyID != companyID {
		return domain.ErrPartyNotFound
	}
	delete(m.parties, id)
	return nil
}

func (m *MockPartyRepository) List(ctx context.Context, filter domain.PartyFilter) ([]*domain.Party, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var parties []*domain.Party
	for _, p := range m.parties {
		if p.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		parties = append(parties, p)
	}
	sort.Slice(parties, func(i, j int) bool { return parties[i].Name < parties[j].Name })
	return parties, nil
}

func (m *MockPartyRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.parties[id]; ok {
		p.CurrentBalance = balance
		p.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrPartyNotFound
}

// MockTransactionRepository is a mock implementation of
// TransactionRepository. The stateful fallback preserves insertion order so
// replay ordering behaves like the real store.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns map[string]*domain.LedgerTransaction
	seq  map[string]int
	next int

	CreateFunc               func(ctx context.Context, tx usecase.Transaction, txn *domain.LedgerTransaction) error
	GetByIDFunc              func(ctx context.Context, companyID, id string) (*domain.LedgerTransaction, error)
	UpdateFunc               func(ctx context.Context, tx usecase.Transaction, txn *domain.LedgerTransaction) error
	DeleteFunc               func(ctx context.Context, tx usecase.Transaction, companyID, id string) error
	ListByPartyFunc          func(ctx context.Context, tx usecase.Transaction, companyID, partyID string) ([]*domain.LedgerTransaction, error)
	ListByPartyPageFunc      func(ctx context.Context, companyID, partyID string, limit, offset int) ([]*domain.LedgerTransaction, error)
	UpsertBySourceKeyFunc    func(ctx context.Context, tx usecase.Transaction, txn *domain.LedgerTransaction) error
	DeleteBySourceExceptFunc func(ctx context.Context, tx usecase.Transaction, companyID string, sourceType domain.SourceType, sourceID string, keep []string) error
	DeleteBySourceFunc       func(ctx context.Context, tx usecase.Transaction, companyID string, sourceType domain.SourceType, sourceID string) error
	SetBalanceAfterFunc      func(ctx context.Context, tx usecase.Transaction, id string, balanceAfter decimal.Decimal) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		txns: make(map[string]*domain.LedgerTransaction),
		seq:  make(map[string]int),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.LedgerTransaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.txns[txn.ID] = txn
	m.seq[txn.ID] = m.next
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, companyID, id string) (*domain.LedgerTransaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.txns[id]; ok && t.CompanyID == companyID {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.LedgerTransaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txns[txn.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	m.txns[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, companyID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.txns[id]; !ok || t.CompanyID != companyID {
		return domain.ErrTransactionNotFound
	}
	delete(m.txns, id)
	delete(m.seq, id)
	return nil
}

func (m *MockTransactionRepository) sortedByParty(companyID, partyID string) []*domain.LedgerTransaction {
	var entries []*domain.LedgerTransaction
	for _, t := range m.txns {
		if t.CompanyID == companyID && t.PartyID == partyID {
			entries = append(entries, t)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return m.seq[entries[i].ID] < m.seq[entries[j].ID]
	})
	return entries
}

func (m *MockTransactionRepository) ListByParty(ctx context.Context, tx usecase.Transaction, companyID, partyID string) ([]*domain.LedgerTransaction, error) {
	if m.ListByPartyFunc != nil {
		return m.ListByPartyFunc(ctx, tx, companyID, partyID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedByParty(companyID, partyID), nil
}

func (m *MockTransactionRepository) ListByPartyPage(ctx context.Context, companyID, partyID string, limit, offset int) ([]*domain.LedgerTransaction, error) {
	if m.ListByPartyPageFunc != nil {
		return m.ListByPartyPageFunc(ctx, companyID, partyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := m.sortedByParty(companyID, partyID)
	if offset > len(entries) {
		return nil, nil
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *MockTransactionRepository) UpsertBySourceKey(ctx context.Context, tx usecase.Transaction, txn *domain.LedgerTransaction) error {
	if m.UpsertBySourceKeyFunc != nil {
		return m.UpsertBySourceKeyFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.txns {
		if existing.Source.Key == txn.Source.Key {
			existing.PartyID = txn.PartyID
			existing.Date = txn.Date
			existing.Description = txn.Description
			existing.Type = txn.Type
			existing.Amount = txn.Amount
			existing.UpdatedAt = txn.UpdatedAt
			*txn = *existing
			return nil
		}
	}
	m.next++
	m.txns[txn.ID] = txn
	m.seq[txn.ID] = m.next
	return nil
}

func (m *MockTransactionRepository) DeleteBySourceExcept(ctx context.Context, tx usecase.Transaction, companyID string, sourceType domain.SourceType, sourceID string, keep []string) error {
	if m.DeleteBySourceExceptFunc != nil {
		return m.DeleteBySourceExceptFunc(ctx, tx, companyID, sourceType, sourceID, keep)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}
	for id, t := range m.txns {
		if t.CompanyID == companyID && t.Source.Type == sourceType && t.Source.ID == sourceID && !kept[t.Source.Key] {
			delete(m.txns, id)
			delete(m.seq, id)
		}
	}
	return nil
}

func (m *MockTransactionRepository) DeleteBySource(ctx context.Context, tx usecase.Transaction, companyID string, sourceType domain.SourceType, sourceID string) error {
	if m.DeleteBySourceFunc != nil {
		return m.DeleteBySourceFunc(ctx, tx, companyID, sourceType, sourceID)
	}
	return m.DeleteBySourceExcept(ctx, tx, companyID, sourceType, sourceID, nil)
}

func (m *MockTransactionRepository) SetBalanceAfter(ctx context.Context, tx usecase.Transaction, id string, balanceAfter decimal.Decimal) error {
	if m.SetBalanceAfterFunc != nil {
		return m.SetBalanceAfterFunc(ctx, tx, id, balanceAfter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.txns[id]; ok {
		t.BalanceAfter = balanceAfter
		return nil
	}
	return domain.ErrTransactionNotFound
}

// MockBankRepository is a mock implementation of BankRepository.
type MockBankRepository struct {
	mu    sync.RWMutex
	banks map[string]*domain.Bank

	CreateFunc        func(ctx context.Context, bank *domain.Bank) error
	GetByIDFunc       func(ctx context.Context, companyID, id string) (*domain.Bank, error)
	GetByNameFunc     func(ctx context.Context, companyID, name string) (*domain.Bank, error)
	UpdateFunc        func(ctx context.Context, bank *domain.Bank) error
	UpdateBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	DeleteFunc        func(ctx context.Context, tx usecase.Transaction, companyID, id string) error
	ListFunc          func(ctx context.Context, companyID string, limit, offset int) ([]*domain.Bank, error)
}

func NewMockBankRepository() *MockBankRepository {
	return &MockBankRepository{
		banks: make(map[string]*domain.Bank),
	}
}

func (m *MockBankRepository) Create(ctx context.Context, bank *domain.Bank) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, bank)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.banks[bank.ID] = bank
	return nil
}

func (m *MockBankRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Bank, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.banks[id]; ok && b.CompanyID == companyID {
		return b, nil
	}
	return nil, domain.ErrBankNotFound
}

func (m *MockBankRepository) GetByName(ctx context.Context, companyID, name string) (*domain.Bank, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, companyID, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.banks {
		if b.CompanyID == companyID && b.Name == name {
			return b, nil
		}
	}
	return nil, domain.ErrBankNotFound
}

func (m *MockBankRepository) Update(ctx context.Context, bank *domain.Bank) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, bank)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.banks[bank.ID]; !ok {
		return domain.ErrBankNotFound
	}
	m.banks[bank.ID] = bank
	return nil
}

func (m *MockBankRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.banks[id]; ok {
		b.CurrentBalance = balance
		b.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrBankNotFound
}

func (m *MockBankRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, companyID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.banks[id]; !ok || b.CompanyID != companyID {
		return domain.ErrBankNotFound
	}
	delete(m.banks, id)
	return nil
}

func (m *MockBankRepository) List(ctx context.Context, companyID string, limit, offset int) ([]*domain.Bank, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, companyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var banks []*domain.Bank
	for _, b := range m.banks {
		if b.CompanyID == companyID {
			banks = append(banks, b)
		}
	}
	sort.Slice(banks, func(i, j int) bool { return banks[i].Name < banks[j].Name })
	return banks, nil
}

// MockPaymentMethodRepository is a mock implementation of
// PaymentMethodRepository.
type MockPaymentMethodRepository struct {
	mu      sync.RWMutex
	methods map[string]*domain.PaymentMethod

	CreateFunc    func(ctx context.Context, method *domain.PaymentMethod) error
	GetByIDFunc   func(ctx context.Context, companyID, id string) (*domain.PaymentMethod, error)
	GetByNameFunc func(ctx context.Context, companyID, name string) (*domain.PaymentMethod, error)
	UpdateFunc    func(ctx context.Context, method *domain.PaymentMethod) error
	DeleteFunc    func(ctx context.Context, companyID, id string) error
	ListFunc      func(ctx context.Context, companyID string, limit, offset int) ([]*domain.PaymentMethod, error)
}

func NewMockPaymentMethodRepository() *MockPaymentMethodRepository {
	return &MockPaymentMethodRepository{
		methods: make(map[string]*domain.PaymentMethod),
	}
}

func (m *MockPaymentMethodRepository) Create(ctx context.Context, method *domain.PaymentMethod) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, method)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.methods[method.ID] = method
	return nil
}

func (m *MockPaymentMethodRepository) GetByID(ctx context.Context, companyID, id string) (*domain.PaymentMethod, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if pm, ok := m.methods[id]; ok && pm.CompanyID == companyID {
		return pm, nil
	}
	return nil, domain.ErrPaymentMethodNotFound
}

func (m *MockPaymentMethodRepository) GetByName(ctx context.Context, companyID, name string) (*domain.PaymentMethod, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, companyID, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, pm := range m.methods {
		if pm.CompanyID == companyID && pm.Name == name {
			return pm, nil
		}
	}
	return nil, domain.ErrPaymentMethodNotFound
}

func (m *MockPaymentMethodRepository) Update(ctx context.Context, method *domain.PaymentMethod) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, method)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.methods[method.ID]; !ok {
		return domain.ErrPaymentMethodNotFound
	}
	m.methods[method.ID] = method
	return nil
}

func (m *MockPaymentMethodRepository) Delete(ctx context.Context, companyID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, companyID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if pm, ok := m.methods[id]; !ok || pm.CompanyID != companyID {
		return domain.ErrPaymentMethodNotFound
	}
	delete(m.methods, id)
	return nil
}

func (m *MockPaymentMethodRepository) List(ctx context.Context, companyID string, limit, offset int) ([]*domain.PaymentMethod, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, companyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var methods []*domain.PaymentMethod
	for _, pm := range m.methods {
		if pm.CompanyID == companyID {
			methods = append(methods, pm)
		}
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].SortOrder < methods[j].SortOrder })
	return methods, nil
}

// MockBankTransactionRepository is a mock implementation of
// BankTransactionRepository with replay-ordered fallbacks.
type MockBankTransactionRepository struct {
	mu   sync.RWMutex
	txns map[string]*domain.BankTransaction
	seq  map[string]int
	next int

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, btx *domain.BankTransaction) error
	GetByIDFunc           func(ctx context.Context, companyID, id string) (*domain.BankTransaction, error)
	DeleteFunc            func(ctx context.Context, tx usecase.Transaction, companyID, id string) error
	ListByAccountFunc     func(ctx context.Context, tx usecase.Transaction, companyID string, account domain.BankAccountRef) ([]*domain.BankTransaction, error)
	ListByAccountPageFunc func(ctx context.Context, companyID string, account domain.BankAccountRef, limit, offset int) ([]*domain.BankTransaction, error)
	UpsertBySourceKeyFunc func(ctx context.Context, tx usecase.Transaction, btx *domain.BankTransaction) error
	DeleteBySourceFunc    func(ctx context.Context, tx usecase.Transaction, companyID string, sourceType domain.SourceType, sourceID string) error
	DeleteByBankFunc      func(ctx context.Context, tx usecase.Transaction, companyID, bankID string) error
	SetBalanceAfterFunc   func(ctx context.Context, tx usecase.Transaction, id string, balanceAfter decimal.Decimal) error
}

func NewMockBankTransactionRepository() *MockBankTransactionRepository {
	return &MockBankTransactionRepository{
		txns: make(map[string]*domain.BankTransaction),
		seq:  make(map[string]int),
	}
}

func (m *MockBankTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, btx *domain.BankTransaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, btx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.txns[btx.ID] = btx
	m.seq[btx.ID] = m.next
	return nil
}

func (m *MockBankTransactionRepository) GetByID(ctx context.Context, companyID, id string) (*domain.BankTransaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.txns[id]; ok && t.CompanyID == companyID {
		return t, nil
	}
	return nil, domain.ErrBankTxNotFound
}

func (m *MockBankTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, companyID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.txns[id]; !ok || t.CompanyID != companyID {
		return domain.ErrBankTxNotFound
	}
	delete(m.txns, id)
	delete(m.seq, id)
	return nil
}

func (m *MockBankTransactionRepository) sortedByAccount(companyID string, account domain.BankAccountRef) []*domain.BankTransaction {
	var entries []*domain.BankTransaction
	for _, t := range m.txns {
		if t.CompanyID == companyID && t.Account == account {
			entries = append(entries, t)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return m.seq[entries[i].ID] < m.seq[entries[j].ID]
	})
	return entries
}

func (m *MockBankTransactionRepository) ListByAccount(ctx context.Context, tx usecase.Transaction, companyID string, account domain.BankAccountRef) ([]*domain.BankTransaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, tx, companyID, account)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedByAccount(companyID, account), nil
}

func (m *MockBankTransactionRepository) ListByAccountPage(ctx context.Context, companyID string, account domain.BankAccountRef, limit, offset int) ([]*domain.BankTransaction, error) {
	if m.ListByAccountPageFunc != nil {
		return m.ListByAccountPageFunc(ctx, companyID, account, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := m.sortedByAccount(companyID, account)
	if offset > len(entries) {
		return nil, nil
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *MockBankTransactionRepository) UpsertBySourceKey(ctx context.Context, tx usecase.Transaction, btx *domain.BankTransaction) error {
	if m.UpsertBySourceKeyFunc != nil {
		return m.UpsertBySourceKeyFunc(ctx, tx, btx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.txns {
		if existing.Source.Key == btx.Source.Key {
			existing.Account = btx.Account
			existing.Date = btx.Date
			existing.Type = btx.Type
			existing.Amount = btx.Amount
			existing.Description = btx.Description
			existing.DescriptionUrdu = btx.DescriptionUrdu
			existing.UpdatedAt = btx.UpdatedAt
			*btx = *existing
			return nil
		}
	}
	m.next++
	m.txns[btx.ID] = btx
	m.seq[btx.ID] = m.next
	return nil
}

func (m *MockBankTransactionRepository) DeleteBySource(ctx context.Context, tx usecase.Transaction, companyID string, sourceType domain.SourceType, sourceID string) error {
	if m.DeleteBySourceFunc != nil {
		return m.DeleteBySourceFunc(ctx, tx, companyID, sourceType, sourceID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.txns {
		if t.CompanyID == companyID && t.Source.Type == sourceType && t.Source.ID == sourceID {
			delete(m.txns, id)
			delete(m.seq, id)
		}
	}
	return nil
}

func (m *MockBankTransactionRepository) DeleteByBank(ctx context.Context, tx usecase.Transaction, companyID, bankID string) error {
	if m.DeleteByBankFunc != nil {
		return m.DeleteByBankFunc(ctx, tx, companyID, bankID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.txns {
		if t.CompanyID == companyID && t.Account.BankID == bankID {
			delete(m.txns, id)
			delete(m.seq, id)
		}
	}
	return nil
}

func (m *MockBankTransactionRepository) SetBalanceAfter(ctx context.Context, tx usecase.Transaction, id string, balanceAfter decimal.Decimal) error {
	if m.SetBalanceAfterFunc != nil {
		return m.SetBalanceAfterFunc(ctx, tx, id, balanceAfter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.txns[id]; ok {
		t.BalanceAfter = balanceAfter
		return nil
	}
	return domain.ErrBankTxNotFound
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// once with no backoff.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

// MockCache is an in-memory usecase.Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string]string

	Gets    int
	Sets    int
	Deletes int
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string]string),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	value, ok := m.data[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return value, nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	delete(m.data, key)
	return nil
}

// MockAuditRepository is an in-memory AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc   func(ctx context.Context, log *domain.AuditLog) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.AuditLog
	for _, l := range m.logs {
		if filter.CompanyID != "" && l.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.AuditLog
	for _, l := range m.logs {
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			out = append(out, l)
		}
	}
	return out, nil
}
