package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
)

// MockBillRepository is a mock implementation of BillRepository.
type MockBillRepository struct {
	mu     sync.RWMutex
	bills  map[string]*domain.Bill
	serial int64

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, bill *domain.Bill) error
	GetByIDFunc           func(ctx context.Context, companyID, id string) (*domain.Bill, error)
	UpdateFunc            func(ctx context.Context, tx usecase.Transaction, bill *domain.Bill) error
	DeleteFunc            func(ctx context.Context, tx usecase.Transaction, companyID, id string) error
	ListFunc              func(ctx context.Context, companyID string, status domain.BillStatus, limit, offset int) ([]*domain.Bill, error)
	GetLatestTemplateFunc func(ctx context.Context, companyID string) (*domain.BillTemplateSettings, error)
	NextSerialFunc        func(ctx context.Context, tx usecase.Transaction, companyID string) (int64, error)
}

func NewMockBillRepository() *MockBillRepository {
	return &MockBillRepository{
		bills: make(map[string]*domain.Bill),
	}
}

func (m *MockBillRepository) Create(ctx context.Context, tx usecase.Transaction, bill *domain.Bill) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, bill)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bills[bill.ID] = bill
	return nil
}

func (m *MockBillRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Bill, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.bills[id]; ok && b.CompanyID == companyID {
		return b, nil
	}
	return nil, domain.ErrBillNotFound
}

func (m *MockBillRepository) Update(ctx context.Context, tx usecase.Transaction, bill *domain.Bill) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, bill)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bills[bill.ID]; !ok {
		return domain.ErrBillNotFound
	}
	m.bills[bill.ID] = bill
	return nil
}

func (m *MockBillRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, companyID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bills[id]; !ok || b.CompanyID != companyID {
		return domain.ErrBillNotFound
	}
	delete(m.bills, id)
	return nil
}

func (m *MockBillRepository) List(ctx context.Context, companyID string, status domain.BillStatus, limit, offset int) ([]*domain.Bill, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, companyID, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var bills []*domain.Bill
	for _, b := range m.bills {
		if b.CompanyID != companyID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		bills = append(bills, b)
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].Date.After(bills[j].Date) })
	return bills, nil
}

func (m *MockBillRepository) GetLatestTemplate(ctx context.Context, companyID string) (*domain.BillTemplateSettings, error) {
	if m.GetLatestTemplateFunc != nil {
		return m.GetLatestTemplateFunc(ctx, companyID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *domain.Bill
	for _, b := range m.bills {
		if b.CompanyID != companyID {
			continue
		}
		if latest == nil || b.UpdatedAt.After(latest.UpdatedAt) {
			latest = b
		}
	}
	if latest == nil {
		return nil, domain.ErrBillNotFound
	}
	tpl := latest.Template
	return &tpl, nil
}

func (m *MockBillRepository) NextSerial(ctx context.Context, tx usecase.Transaction, companyID string) (int64, error) {
	if m.NextSerialFunc != nil {
		return m.NextSerialFunc(ctx, tx, companyID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.serial++
	return m.serial, nil
}

// MockSaleRepository is a mock implementation of SaleRepository.
type MockSaleRepository struct {
	mu     sync.RWMutex
	sales  map[string]*domain.Sale
	serial int64

	CreateFunc     func(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error
	GetByIDFunc    func(ctx context.Context, companyID, id string) (*domain.Sale, error)
	UpdateFunc     func(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error
	DeleteFunc     func(ctx context.Context, tx usecase.Transaction, companyID, id string) error
	ListFunc       func(ctx context.Context, companyID string, limit, offset int) ([]*domain.Sale, error)
	NextSerialFunc func(ctx context.Context, tx usecase.Transaction, companyID string) (int64, error)
}

func NewMockSaleRepository() *MockSaleRepository {
	return &MockSaleRepository{
		sales: make(map[string]*domain.Sale),
	}
}

func (m *MockSaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, sale)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[sale.ID] = sale
	return nil
}

func (m *MockSaleRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Sale, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sales[id]; ok && s.CompanyID == companyID {
		return s, nil
	}
	return nil, domain.ErrSaleNotFound
}

func (m *MockSaleRepository) Update(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, sale)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sales[sale.ID]; !ok {
		return domain.ErrSaleNotFound
	}
	m.sales[sale.ID] = sale
	return nil
}

func (m *MockSaleRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, companyID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sales[id]; !ok || s.CompanyID != companyID {
		return domain.ErrSaleNotFound
	}
	delete(m.sales, id)
	return nil
}

func (m *MockSaleRepository) List(ctx context.Context, companyID string, limit, offset int) ([]*domain.Sale, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, companyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sales []*domain.Sale
	for _, s := range m.sales {
		if s.CompanyID == companyID {
			sales = append(sales, s)
		}
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].SerialNumber > sales[j].SerialNumber })
	return sales, nil
}

func (m *MockSaleRepository) NextSerial(ctx context.Context, tx usecase.Transaction, companyID string) (int64, error) {
	if m.NextSerialFunc != nil {
		return m.NextSerialFunc(ctx, tx, companyID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.serial++
	return m.serial, nil
}

// MockRecoveryRepository is a mock implementation of RecoveryRepository.
type MockRecoveryRepository struct {
	mu         sync.RWMutex
	recoveries map[string]*domain.Recovery
	serial     int64

	CreateFunc     func(ctx context.Context, tx usecase.Transaction, recovery *domain.Recovery) error
	GetByIDFunc    func(ctx context.Context, companyID, id string) (*domain.Recovery, error)
	UpdateFunc     func(ctx context.Context, tx usecase.Transaction, recovery *domain.Recovery) error
	DeleteFunc     func(ctx context.Context, tx usecase.Transaction, companyID, id string) error
	ListFunc       func(ctx context.Context, companyID string, limit, offset int) ([]*domain.Recovery, error)
	NextSerialFunc func(ctx context.Context, tx usecase.Transaction, companyID string) (int64, error)
}

func NewMockRecoveryRepository() *MockRecoveryRepository {
	return &MockRecoveryRepository{
		recoveries: make(map[string]*domain.Recovery),
	}
}

func (m *MockRecoveryRepository) Create(ctx context.Context, tx usecase.Transaction, recovery *domain.Recovery) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, recovery)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recoveries[recovery.ID] = recovery
	return nil
}

func (m *MockRecoveryRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Recovery, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.recoveries[id]; ok && r.CompanyID == companyID {
		return r, nil
	}
	return nil, domain.ErrRecoveryNotFound
}

func (m *MockRecoveryRepository) Update(ctx context.Context, tx usecase.Transaction, recovery *domain.Recovery) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, recovery)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recoveries[recovery.ID]; !ok {
		return domain.ErrRecoveryNotFound
	}
	m.recoveries[recovery.ID] = recovery
	return nil
}

func (m *MockRecoveryRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, companyID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.recoveries[id]; !ok || r.CompanyID != companyID {
		return domain.ErrRecoveryNotFound
	}
	delete(m.recoveries, id)
	return nil
}

func (m *MockRecoveryRepository) List(ctx context.Context, companyID string, limit, offset int) ([]*domain.Recovery, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, companyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var recoveries []*domain.Recovery
	for _, r := range m.recoveries {
		if r.CompanyID == companyID {
			recoveries = append(recoveries, r)
		}
	}
	sort.Slice(recoveries, func(i, j int) bool { return recoveries[i].SerialNumber > recoveries[j].SerialNumber })
	return recoveries, nil
}

func (m *MockRecoveryRepository) NextSerial(ctx context.Context, tx usecase.Transaction, companyID string) (int64, error) {
	if m.NextSerialFunc != nil {
		return m.NextSerialFunc(ctx, tx, companyID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.serial++
	return m.serial, nil
}

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense

	CreateFunc  func(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error
	GetByIDFunc func(ctx context.Context, companyID, id string) (*domain.Expense, error)
	UpdateFunc  func(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error
	DeleteFunc  func(ctx context.Context, tx usecase.Transaction, companyID, id string) error
	ListFunc    func(ctx context.Context, companyID string, limit, offset int) ([]*domain.Expense, error)
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		expenses: make(map[string]*domain.Expense),
	}
}

func (m *MockExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.expenses[id]; ok && e.CompanyID == companyID {
		return e, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) Update(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.expenses[expense.ID]; !ok {
		return domain.ErrExpenseNotFound
	}
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, companyID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.expenses[id]; !ok || e.CompanyID != companyID {
		return domain.ErrExpenseNotFound
	}
	delete(m.expenses, id)
	return nil
}

func (m *MockExpenseRepository) List(ctx context.Context, companyID string, limit, offset int) ([]*domain.Expense, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, companyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var expenses []*domain.Expense
	for _, e := range m.expenses {
		if e.CompanyID == companyID {
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].Date.After(expenses[j].Date) })
	return expenses, nil
}

// MockCompanyRepository is a mock implementation of CompanyRepository.
type MockCompanyRepository struct {
	mu        sync.RWMutex
	companies map[string]*domain.Company

	CreateFunc        func(ctx context.Context, company *domain.Company) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Company, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.Company, error)
	UpdateFunc        func(ctx context.Context, company *domain.Company) error
	ListFunc          func(ctx context.Context, limit, offset int) ([]*domain.Company, error)
}

func NewMockCompanyRepository() *MockCompanyRepository {
	return &MockCompanyRepository{
		companies: make(map[string]*domain.Company),
	}
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, company)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies[company.ID] = company
	return nil
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCompanyNotFound
}

func (m *MockCompanyRepository) GetByUsername(ctx context.Context, username string) (*domain.Company, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.companies {
		if c.Username == username {
			return c, nil
		}
	}
	return nil, domain.ErrCompanyNotFound
}

func (m *MockCompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, company)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[company.ID]; !ok {
		return domain.ErrCompanyNotFound
	}
	m.companies[company.ID] = company
	return nil
}

func (m *MockCompanyRepository) List(ctx context.Context, limit, offset int) ([]*domain.Company, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var companies []*domain.Company
	for _, c := range m.companies {
		companies = append(companies, c)
	}
	sort.Slice(companies, func(i, j int) bool { return companies[i].Username < companies[j].Username })
	return companies, nil
}
