package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
)

// Every successful response is an envelope: a human-readable message plus
// the entity or list under its own name.

// PartyResponse represents a party in API responses.
type PartyResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	NameUrdu       string          `json:"name_urdu,omitempty"`
	Type           string          `json:"type"`
	Phone          string          `json:"phone,omitempty"`
	Address        string          `json:"address,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	BalanceType    string          `json:"balance_type"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PartyFromDomain converts a domain party to a response.
func PartyFromDomain(p *domain.Party) *PartyResponse {
	return &PartyResponse{
		ID:             p.ID,
		Name:           p.Name,
		NameUrdu:       p.NameUrdu,
		Type:           string(p.Type),
		Phone:          p.Phone,
		Address:        p.Address,
		OpeningBalance: p.OpeningBalance,
		BalanceType:    string(p.BalanceType),
		CurrentBalance: p.CurrentBalance,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// PartiesFromDomain converts domain parties to responses.
func PartiesFromDomain(parties []*domain.Party) []*PartyResponse {
	result := make([]*PartyResponse, len(parties))
	for i, p := range parties {
		result[i] = PartyFromDomain(p)
	}
	return result
}

// PartyEnvelope wraps a single party.
type PartyEnvelope struct {
	Message string         `json:"message"`
	Party   *PartyResponse `json:"party"`
}

// PartiesEnvelope wraps a party list.
type PartiesEnvelope struct {
	Message string           `json:"message"`
	Parties []*PartyResponse `json:"parties"`
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	ID           string          `json:"id"`
	PartyID      string          `json:"party_id"`
	SourceType   string          `json:"source_type"`
	SourceID     string          `json:"source_id"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description,omitempty"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain ledger entry to a response.
func TransactionFromDomain(t *domain.LedgerTransaction) *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID,
		PartyID:      t.PartyID,
		SourceType:   string(t.Source.Type),
		SourceID:     t.Source.ID,
		Date:         t.Date,
		Description:  t.Description,
		Type:         string(t.Type),
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain ledger entries to responses.
func TransactionsFromDomain(txns []*domain.LedgerTransaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// TransactionEnvelope wraps a single ledger entry.
type TransactionEnvelope struct {
	Message     string               `json:"message"`
	Transaction *TransactionResponse `json:"transaction"`
}

// TransactionsEnvelope wraps a ledger entry list.
type TransactionsEnvelope struct {
	Message      string                 `json:"message"`
	Transactions []*TransactionResponse `json:"transactions"`
}

// StatementEnvelope wraps a party together with its replayed ledger.
type StatementEnvelope struct {
	Message      string                 `json:"message"`
	Party        *PartyResponse         `json:"party"`
	Transactions []*TransactionResponse `json:"transactions"`
}

// StatementFromUseCase converts a statement to its envelope.
func StatementFromUseCase(message string, s *usecase.PartyStatement) *StatementEnvelope {
	return &StatementEnvelope{
		Message:      message,
		Party:        PartyFromDomain(s.Party),
		Transactions: TransactionsFromDomain(s.Entries),
	}
}

// BillResponse represents a bill in API responses.
type BillResponse struct {
	ID            string                      `json:"id"`
	SerialNumber  string                      `json:"serial_number,omitempty"`
	VoucherNumber string                      `json:"voucher_number,omitempty"`
	SupplierName  string                      `json:"supplier_name,omitempty"`
	SupplierUrdu  string                      `json:"supplier_urdu,omitempty"`
	PartyID       string                      `json:"party_id,omitempty"`
	Date          time.Time                   `json:"date"`
	ExpenseLines  map[string]decimal.Decimal  `json:"expense_lines"`
	Attributes    map[string]string           `json:"attributes"`
	ExpenseFields []domain.BillField          `json:"expense_fields"`
	SalesFields   []domain.BillField          `json:"sales_fields"`
	Template      domain.BillTemplateSettings `json:"template"`
	RawSale       decimal.Decimal             `json:"raw_sale"`
	NetSale       decimal.Decimal             `json:"net_sale"`
	TotalAmount   decimal.Decimal             `json:"total_amount"`
	Status        string                      `json:"status"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// BillFromDomain converts a domain bill to a response.
func BillFromDomain(b *domain.Bill) *BillResponse {
	return &BillResponse{
		ID:            b.ID,
		SerialNumber:  b.SerialNumber,
		VoucherNumber: b.VoucherNumber,
		SupplierName:  b.SupplierName,
		SupplierUrdu:  b.SupplierUrdu,
		PartyID:       b.PartyID,
		Date:          b.Date,
		ExpenseLines:  b.ExpenseLines,
		Attributes:    b.Attributes,
		ExpenseFields: b.ExpenseFields,
		SalesFields:   b.SalesFields,
		Template:      b.Template,
		RawSale:       b.RawSale,
		NetSale:       b.NetSale,
		TotalAmount:   b.TotalAmount,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// BillsFromDomain converts domain bills to responses.
func BillsFromDomain(bills []*domain.Bill) []*BillResponse {
	result := make([]*BillResponse, len(bills))
	for i, b := range bills {
		result[i] = BillFromDomain(b)
	}
	return result
}

// BillEnvelope wraps a single bill.
type BillEnvelope struct {
	Message string        `json:"message"`
	Bill    *BillResponse `json:"bill"`
}

// BillsEnvelope wraps a bill list.
type BillsEnvelope struct {
	Message string          `json:"message"`
	Bills   []*BillResponse `json:"bills"`
}

// TemplateEnvelope wraps the latest bill template settings.
type TemplateEnvelope struct {
	Message  string                       `json:"message"`
	Template *domain.BillTemplateSettings `json:"template"`
}

// SaleResponse represents a sale in API responses.
type SaleResponse struct {
	ID              string            `json:"id"`
	SerialNumber    int64             `json:"serial_number"`
	SupplierName    string            `json:"supplier_name,omitempty"`
	SupplierUrdu    string            `json:"supplier_urdu,omitempty"`
	VehicleNumber   string            `json:"vehicle_number,omitempty"`
	SellerName      string            `json:"seller_name,omitempty"`
	SellerUrdu      string            `json:"seller_urdu,omitempty"`
	SellerNumber    string            `json:"seller_number,omitempty"`
	PartyID         string            `json:"party_id,omitempty"`
	Items           []domain.SaleItem `json:"items"`
	TotalItems      int               `json:"total_items"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	Discount        decimal.Decimal   `json:"discount"`
	SalesTax        decimal.Decimal   `json:"sales_tax"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	PaymentMethodID string            `json:"payment_method_id,omitempty"`
	PaymentMethod   string            `json:"payment_method,omitempty"`
	AmountPaid      decimal.Decimal   `json:"amount_paid"`
	Date            time.Time         `json:"date"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// SaleFromDomain converts a domain sale to a response.
func SaleFromDomain(s *domain.Sale) *SaleResponse {
	return &SaleResponse{
		ID:              s.ID,
		SerialNumber:    s.SerialNumber,
		SupplierName:    s.SupplierName,
		SupplierUrdu:    s.SupplierUrdu,
		VehicleNumber:   s.VehicleNumber,
		SellerName:      s.SellerName,
		SellerUrdu:      s.SellerUrdu,
		SellerNumber:    s.SellerNumber,
		PartyID:         s.PartyID,
		Items:           s.Items,
		TotalItems:      s.TotalItems,
		Subtotal:        s.Subtotal,
		Discount:        s.Discount,
		SalesTax:        s.SalesTax,
		TotalAmount:     s.TotalAmount,
		PaymentMethodID: s.PaymentMethodID,
		PaymentMethod:   s.PaymentMethod,
		AmountPaid:      s.AmountPaid,
		Date:            s.Date,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// SalesFromDomain converts domain sales to responses.
func SalesFromDomain(sales []*domain.Sale) []*SaleResponse {
	result := make([]*SaleResponse, len(sales))
	for i, s := range sales {
		result[i] = SaleFromDomain(s)
	}
	return result
}

// SaleEnvelope wraps a single sale.
type SaleEnvelope struct {
	Message string        `json:"message"`
	Sale    *SaleResponse `json:"sale"`
}

// SalesEnvelope wraps a sale list.
type SalesEnvelope struct {
	Message string          `json:"message"`
	Sales   []*SaleResponse `json:"sales"`
}

// RecoveryResponse represents a recovery in API responses.
type RecoveryResponse struct {
	ID              string          `json:"id"`
	SerialNumber    int64           `json:"serial_number"`
	PartyID         string          `json:"party_id,omitempty"`
	CustomerName    string          `json:"customer_name,omitempty"`
	CustomerUrdu    string          `json:"customer_urdu,omitempty"`
	VehicleNumber   string          `json:"vehicle_number,omitempty"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	BankID          string          `json:"bank_id,omitempty"`
	Description     string          `json:"description,omitempty"`
	DescriptionUrdu string          `json:"description_urdu,omitempty"`
	Date            time.Time       `json:"date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// RecoveryFromDomain converts a domain recovery to a response.
func RecoveryFromDomain(r *domain.Recovery) *RecoveryResponse {
	return &RecoveryResponse{
		ID:              r.ID,
		SerialNumber:    r.SerialNumber,
		PartyID:         r.PartyID,
		CustomerName:    r.CustomerName,
		CustomerUrdu:    r.CustomerUrdu,
		VehicleNumber:   r.VehicleNumber,
		CustomerPhone:   r.CustomerPhone,
		Amount:          r.Amount,
		PaymentMethod:   r.PaymentMethod,
		BankID:          r.BankID,
		Description:     r.Description,
		DescriptionUrdu: r.DescriptionUrdu,
		Date:            r.Date,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// RecoveriesFromDomain converts domain recoveries to responses.
func RecoveriesFromDomain(recoveries []*domain.Recovery) []*RecoveryResponse {
	result := make([]*RecoveryResponse, len(recoveries))
	for i, r := range recoveries {
		result[i] = RecoveryFromDomain(r)
	}
	return result
}

// RecoveryEnvelope wraps a single recovery.
type RecoveryEnvelope struct {
	Message  string            `json:"message"`
	Recovery *RecoveryResponse `json:"recovery"`
}

// RecoveriesEnvelope wraps a recovery list.
type RecoveriesEnvelope struct {
	Message    string              `json:"message"`
	Recoveries []*RecoveryResponse `json:"recoveries"`
}

// ExpenseResponse represents an expense sheet in API responses.
type ExpenseResponse struct {
	ID              string          `json:"id"`
	Date            time.Time       `json:"date"`
	Travelling      decimal.Decimal `json:"travelling"`
	Refreshment     decimal.Decimal `json:"refreshment"`
	Cargo           decimal.Decimal `json:"cargo"`
	Salary          decimal.Decimal `json:"salary"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	Description     string          `json:"description,omitempty"`
	DescriptionUrdu string          `json:"description_urdu,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ExpenseFromDomain converts a domain expense sheet to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:              e.ID,
		Date:            e.Date,
		Travelling:      e.Travelling,
		Refreshment:     e.Refreshment,
		Cargo:           e.Cargo,
		Salary:          e.Salary,
		Total:           e.Total(),
		PaymentMethod:   e.PaymentMethod,
		Description:     e.Description,
		DescriptionUrdu: e.DescriptionUrdu,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// ExpensesFromDomain converts domain expense sheets to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// ExpenseEnvelope wraps a single expense sheet.
type ExpenseEnvelope struct {
	Message string           `json:"message"`
	Expense *ExpenseResponse `json:"expense"`
}

// ExpensesEnvelope wraps an expense sheet list.
type ExpensesEnvelope struct {
	Message  string             `json:"message"`
	Expenses []*ExpenseResponse `json:"expenses"`
}

// BankResponse represents a bank in API responses.
type BankResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	NameUrdu       string          `json:"name_urdu,omitempty"`
	AccountNumber  string          `json:"account_number,omitempty"`
	AccountTitle   string          `json:"account_title,omitempty"`
	BranchName     string          `json:"branch_name,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BankFromDomain converts a domain bank to a response.
func BankFromDomain(b *domain.Bank) *BankResponse {
	return &BankResponse{
		ID:             b.ID,
		Name:           b.Name,
		NameUrdu:       b.NameUrdu,
		AccountNumber:  b.AccountNumber,
		AccountTitle:   b.AccountTitle,
		BranchName:     b.BranchName,
		OpeningBalance: b.OpeningBalance,
		CurrentBalance: b.CurrentBalance,
		IsActive:       b.IsActive,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// BanksFromDomain converts domain banks to responses.
func BanksFromDomain(banks []*domain.Bank) []*BankResponse {
	result := make([]*BankResponse, len(banks))
	for i, b := range banks {
		result[i] = BankFromDomain(b)
	}
	return result
}

// BankEnvelope wraps a single bank.
type BankEnvelope struct {
	Message string        `json:"message"`
	Bank    *BankResponse `json:"bank"`
}

// BanksEnvelope wraps a bank list.
type BanksEnvelope struct {
	Message string          `json:"message"`
	Banks   []*BankResponse `json:"banks"`
}

// PaymentMethodResponse represents a payment method in API responses.
type PaymentMethodResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NameUrdu  string    `json:"name_urdu,omitempty"`
	IsActive  bool      `json:"is_active"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentMethodFromDomain converts a domain payment method to a response.
func PaymentMethodFromDomain(m *domain.PaymentMethod) *PaymentMethodResponse {
	return &PaymentMethodResponse{
		ID:        m.ID,
		Name:      m.Name,
		NameUrdu:  m.NameUrdu,
		IsActive:  m.IsActive,
		SortOrder: m.SortOrder,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// PaymentMethodsFromDomain converts domain payment methods to responses.
func PaymentMethodsFromDomain(methods []*domain.PaymentMethod) []*PaymentMethodResponse {
	result := make([]*PaymentMethodResponse, len(methods))
	for i, m := range methods {
		result[i] = PaymentMethodFromDomain(m)
	}
	return result
}

// PaymentMethodEnvelope wraps a single payment method.
type PaymentMethodEnvelope struct {
	Message       string                 `json:"message"`
	PaymentMethod *PaymentMethodResponse `json:"payment_method"`
}

// PaymentMethodsEnvelope wraps a payment method list.
type PaymentMethodsEnvelope struct {
	Message        string                   `json:"message"`
	PaymentMethods []*PaymentMethodResponse `json:"payment_methods"`
}

// BankTransactionResponse represents a mirror-ledger entry in API
// responses.
type BankTransactionResponse struct {
	ID              string          `json:"id"`
	BankID          string          `json:"bank_id,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	SourceType      string          `json:"source_type"`
	SourceID        string          `json:"source_id"`
	Date            time.Time       `json:"date"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	DescriptionUrdu string          `json:"description_urdu,omitempty"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BankTransactionFromDomain converts a domain mirror entry to a response.
func BankTransactionFromDomain(t *domain.BankTransaction) *BankTransactionResponse {
	return &BankTransactionResponse{
		ID:              t.ID,
		BankID:          t.Account.BankID,
		PaymentMethod:   t.Account.PaymentMethod,
		SourceType:      string(t.Source.Type),
		SourceID:        t.Source.ID,
		Date:            t.Date,
		Type:            string(t.Type),
		Amount:          t.Amount,
		Description:     t.Description,
		DescriptionUrdu: t.DescriptionUrdu,
		BalanceAfter:    t.BalanceAfter,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// BankTransactionsFromDomain converts domain mirror entries to responses.
func BankTransactionsFromDomain(txns []*domain.BankTransaction) []*BankTransactionResponse {
	result := make([]*BankTransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = BankTransactionFromDomain(t)
	}
	return result
}

// BankTransactionEnvelope wraps a single mirror entry.
type BankTransactionEnvelope struct {
	Message     string                   `json:"message"`
	Transaction *BankTransactionResponse `json:"transaction"`
}

// BankStatementEnvelope wraps a mirror account's replayed ledger.
type BankStatementEnvelope struct {
	Message       string                     `json:"message"`
	BankID        string                     `json:"bank_id,omitempty"`
	PaymentMethod string                     `json:"payment_method,omitempty"`
	Balance       decimal.Decimal            `json:"balance"`
	Transactions  []*BankTransactionResponse `json:"transactions"`
}

// CompanyResponse represents a company in API responses.
type CompanyResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	ShopName     string    `json:"shop_name"`
	ShopNameUrdu string    `json:"shop_name_urdu,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CompanyFromDomain converts a domain company to a response.
func CompanyFromDomain(c *domain.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:           c.ID,
		Username:     c.Username,
		Email:        c.Email,
		ShopName:     c.ShopName,
		ShopNameUrdu: c.ShopNameUrdu,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// CompanyEnvelope wraps a single company.
type CompanyEnvelope struct {
	Message string           `json:"message"`
	Company *CompanyResponse `json:"company"`
}

// LoginEnvelope wraps a successful login.
type LoginEnvelope struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	Company *CompanyResponse `json:"company"`
}

// MessageEnvelope is the body for deletes and other entity-less responses.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
