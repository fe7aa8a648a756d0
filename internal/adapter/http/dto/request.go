package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
)

// CreatePartyRequest represents a request to create a party.
type CreatePartyRequest struct {
	Name           string          `json:"name"`
	NameUrdu       string          `json:"name_urdu,omitempty"`
	Type           string          `json:"type"`
	Phone          string          `json:"phone,omitempty"`
	Address        string          `json:"address,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	BalanceType    string          `json:"balance_type,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePartyRequest) ToUseCaseInput(companyID string) usecase.CreatePartyInput {
	return usecase.CreatePartyInput{
		CompanyID:      companyID,
		Name:           r.Name,
		NameUrdu:       r.NameUrdu,
		Type:           domain.PartyType(r.Type),
		Phone:          r.Phone,
		Address:        r.Address,
		OpeningBalance: r.OpeningBalance,
		BalanceType:    domain.BalanceType(r.BalanceType),
	}
}

// UpdatePartyRequest represents a request to update a party.
type UpdatePartyRequest struct {
	Name           string           `json:"name,omitempty"`
	NameUrdu       string           `json:"name_urdu,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Address        string           `json:"address,omitempty"`
	OpeningBalance *decimal.Decimal `json:"opening_balance,omitempty"`
	BalanceType    string           `json:"balance_type,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdatePartyRequest) ToUseCaseInput(companyID, id string) usecase.UpdatePartyInput {
	return usecase.UpdatePartyInput{
		CompanyID:      companyID,
		ID:             id,
		Name:           r.Name,
		NameUrdu:       r.NameUrdu,
		Phone:          r.Phone,
		Address:        r.Address,
		OpeningBalance: r.OpeningBalance,
		BalanceType:    domain.BalanceType(r.BalanceType),
		Notes:          r.Notes,
	}
}

// CreateTransactionRequest represents a request to create a manual ledger
// entry.
type CreateTransactionRequest struct {
	PartyID     string          `json:"party_id"`
	Date        *time.Time      `json:"date,omitempty"`
	Description string          `json:"description,omitempty"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput(companyID string) usecase.CreateTransactionInput {
	input := usecase.CreateTransactionInput{
		CompanyID:   companyID,
		PartyID:     r.PartyID,
		Description: r.Description,
		Type:        domain.EntryType(r.Type),
		Amount:      r.Amount,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// UpdateTransactionRequest represents a request to update a manual entry.
type UpdateTransactionRequest struct {
	Date        *time.Time       `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput(companyID, id string) usecase.UpdateTransactionInput {
	input := usecase.UpdateTransactionInput{
		CompanyID:   companyID,
		ID:          id,
		Date:        r.Date,
		Description: r.Description,
		Amount:      r.Amount,
	}
	if r.Type != nil {
		input.Type = domain.EntryType(*r.Type)
	}
	return input
}

// CreateBillRequest represents a request to create a bill.
type CreateBillRequest struct {
	SerialNumber  string                       `json:"serial_number,omitempty"`
	VoucherNumber string                       `json:"voucher_number,omitempty"`
	SupplierName  string                       `json:"supplier_name,omitempty"`
	SupplierUrdu  string                       `json:"supplier_urdu,omitempty"`
	PartyID       string                       `json:"party_id,omitempty"`
	Date          *time.Time                   `json:"date,omitempty"`
	ExpenseLines  map[string]decimal.Decimal   `json:"expense_lines,omitempty"`
	Attributes    map[string]string            `json:"attributes,omitempty"`
	ExpenseFields []domain.BillField           `json:"expense_fields,omitempty"`
	SalesFields   []domain.BillField           `json:"sales_fields,omitempty"`
	Template      *domain.BillTemplateSettings `json:"template,omitempty"`
	RawSale       decimal.Decimal              `json:"raw_sale"`
	Status        string                       `json:"status,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBillRequest) ToUseCaseInput(companyID string) usecase.CreateBillInput {
	input := usecase.CreateBillInput{
		CompanyID:     companyID,
		SerialNumber:  r.SerialNumber,
		VoucherNumber: r.VoucherNumber,
		SupplierName:  r.SupplierName,
		SupplierUrdu:  r.SupplierUrdu,
		PartyID:       r.PartyID,
		ExpenseLines:  r.ExpenseLines,
		Attributes:    r.Attributes,
		ExpenseFields: r.ExpenseFields,
		SalesFields:   r.SalesFields,
		RawSale:       r.RawSale,
		Status:        domain.BillStatus(r.Status),
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	if r.Template != nil {
		input.Template = *r.Template
	}
	return input
}

// CreateSaleRequest represents a request to create a sale receipt.
type CreateSaleRequest struct {
	SupplierName    string            `json:"supplier_name,omitempty"`
	SupplierUrdu    string            `json:"supplier_urdu,omitempty"`
	VehicleNumber   string            `json:"vehicle_number,omitempty"`
	SellerName      string            `json:"seller_name,omitempty"`
	SellerUrdu      string            `json:"seller_urdu,omitempty"`
	SellerNumber    string            `json:"seller_number,omitempty"`
	PartyID         string            `json:"party_id,omitempty"`
	Items           []domain.SaleItem `json:"items"`
	Discount        decimal.Decimal   `json:"discount"`
	SalesTax        decimal.Decimal   `json:"sales_tax"`
	PaymentMethodID string            `json:"payment_method_id,omitempty"`
	AmountPaid      decimal.Decimal   `json:"amount_paid"`
	Date            *time.Time        `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSaleRequest) ToUseCaseInput(companyID string) usecase.CreateSaleInput {
	input := usecase.CreateSaleInput{
		CompanyID:       companyID,
		SupplierName:    r.SupplierName,
		SupplierUrdu:    r.SupplierUrdu,
		VehicleNumber:   r.VehicleNumber,
		SellerName:      r.SellerName,
		SellerUrdu:      r.SellerUrdu,
		SellerNumber:    r.SellerNumber,
		PartyID:         r.PartyID,
		Items:           r.Items,
		Discount:        r.Discount,
		SalesTax:        r.SalesTax,
		PaymentMethodID: r.PaymentMethodID,
		AmountPaid:      r.AmountPaid,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// CreateRecoveryRequest represents a request to record a collection.
type CreateRecoveryRequest struct {
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
	Date            *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateRecoveryRequest) ToUseCaseInput(companyID string) usecase.CreateRecoveryInput {
	input := usecase.CreateRecoveryInput{
		CompanyID:       companyID,
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
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// CreateExpenseRequest represents a request to record a daily expense
// sheet.
type CreateExpenseRequest struct {
	Date            *time.Time      `json:"date,omitempty"`
	Travelling      decimal.Decimal `json:"travelling"`
	Refreshment     decimal.Decimal `json:"refreshment"`
	Cargo           decimal.Decimal `json:"cargo"`
	Salary          decimal.Decimal `json:"salary"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	Description     string          `json:"description,omitempty"`
	DescriptionUrdu string          `json:"description_urdu,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput(companyID string) usecase.CreateExpenseInput {
	input := usecase.CreateExpenseInput{
		CompanyID:       companyID,
		Travelling:      r.Travelling,
		Refreshment:     r.Refreshment,
		Cargo:           r.Cargo,
		Salary:          r.Salary,
		PaymentMethod:   r.PaymentMethod,
		Description:     r.Description,
		DescriptionUrdu: r.DescriptionUrdu,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// CreateBankRequest represents a request to register a bank.
type CreateBankRequest struct {
	Name           string          `json:"name"`
	NameUrdu       string          `json:"name_urdu,omitempty"`
	AccountNumber  string          `json:"account_number,omitempty"`
	AccountTitle   string          `json:"account_title,omitempty"`
	BranchName     string          `json:"branch_name,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBankRequest) ToUseCaseInput(companyID string) usecase.CreateBankInput {
	return usecase.CreateBankInput{
		CompanyID:      companyID,
		Name:           r.Name,
		NameUrdu:       r.NameUrdu,
		AccountNumber:  r.AccountNumber,
		AccountTitle:   r.AccountTitle,
		BranchName:     r.BranchName,
		OpeningBalance: r.OpeningBalance,
	}
}

// CreateBankTransactionRequest represents a manual mirror-ledger entry.
type CreateBankTransactionRequest struct {
	BankID          string          `json:"bank_id,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	DescriptionUrdu string          `json:"description_urdu,omitempty"`
	Date            *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBankTransactionRequest) ToUseCaseInput(companyID string) usecase.CreateBankTransactionInput {
	input := usecase.CreateBankTransactionInput{
		CompanyID:       companyID,
		BankID:          r.BankID,
		PaymentMethod:   r.PaymentMethod,
		Type:            domain.BankTxType(r.Type),
		Amount:          r.Amount,
		Description:     r.Description,
		DescriptionUrdu: r.DescriptionUrdu,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// CreatePaymentMethodRequest represents a request to register a payment
// method.
type CreatePaymentMethodRequest struct {
	Name      string `json:"name"`
	NameUrdu  string `json:"name_urdu,omitempty"`
	SortOrder int    `json:"sort_order,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePaymentMethodRequest) ToUseCaseInput(companyID string) usecase.CreatePaymentMethodInput {
	return usecase.CreatePaymentMethodInput{
		CompanyID: companyID,
		Name:      r.Name,
		NameUrdu:  r.NameUrdu,
		SortOrder: r.SortOrder,
	}
}

// LoginRequest represents a company login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterCompanyRequest represents a company registration request.
type RegisterCompanyRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	ShopName     string `json:"shop_name"`
	ShopNameUrdu string `json:"shop_name_urdu,omitempty"`
	Password     string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterCompanyRequest) ToUseCaseInput() usecase.CreateCompanyInput {
	return usecase.CreateCompanyInput{
		Username:     r.Username,
		Email:        r.Email,
		ShopName:     r.ShopName,
		ShopNameUrdu: r.ShopNameUrdu,
		Password:     r.Password,
	}
}

// UpdateBillRequest represents a request to update a bill.
type UpdateBillRequest struct {
	PartyID       *string                      `json:"party_id,omitempty"`
	SerialNumber  *string                      `json:"serial_number,omitempty"`
	VoucherNumber *string                      `json:"voucher_number,omitempty"`
	SupplierName  *string                      `json:"supplier_name,omitempty"`
	SupplierUrdu  *string                      `json:"supplier_urdu,omitempty"`
	Date          *time.Time                   `json:"date,omitempty"`
	RawSale       *decimal.Decimal             `json:"raw_sale,omitempty"`
	ExpenseLines  map[string]decimal.Decimal   `json:"expense_lines,omitempty"`
	Attributes    map[string]string            `json:"attributes,omitempty"`
	ExpenseFields []domain.BillField           `json:"expense_fields,omitempty"`
	SalesFields   []domain.BillField           `json:"sales_fields,omitempty"`
	Template      *domain.BillTemplateSettings `json:"template,omitempty"`
	Status        string                       `json:"status,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateBillRequest) ToUseCaseInput(companyID, id string) usecase.UpdateBillInput {
	return usecase.UpdateBillInput{
		CompanyID:     companyID,
		ID:            id,
		PartyID:       r.PartyID,
		SerialNumber:  r.SerialNumber,
		VoucherNumber: r.VoucherNumber,
		SupplierName:  r.SupplierName,
		SupplierUrdu:  r.SupplierUrdu,
		Date:          r.Date,
		RawSale:       r.RawSale,
		ExpenseLines:  r.ExpenseLines,
		Attributes:    r.Attributes,
		ExpenseFields: r.ExpenseFields,
		SalesFields:   r.SalesFields,
		Template:      r.Template,
		Status:        domain.BillStatus(r.Status),
	}
}

// UpdateSaleRequest represents a request to update a sale.
type UpdateSaleRequest struct {
	PartyID         *string           `json:"party_id,omitempty"`
	Date            *time.Time        `json:"date,omitempty"`
	Items           []domain.SaleItem `json:"items,omitempty"`
	Discount        *decimal.Decimal  `json:"discount,omitempty"`
	SalesTax        *decimal.Decimal  `json:"sales_tax,omitempty"`
	PaymentMethodID *string           `json:"payment_method_id,omitempty"`
	AmountPaid      *decimal.Decimal  `json:"amount_paid,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateSaleRequest) ToUseCaseInput(companyID, id string) usecase.UpdateSaleInput {
	return usecase.UpdateSaleInput{
		CompanyID:       companyID,
		ID:              id,
		PartyID:         r.PartyID,
		Date:            r.Date,
		Items:           r.Items,
		Discount:        r.Discount,
		SalesTax:        r.SalesTax,
		PaymentMethodID: r.PaymentMethodID,
		AmountPaid:      r.AmountPaid,
	}
}

// UpdateRecoveryRequest represents a request to update a recovery.
type UpdateRecoveryRequest struct {
	PartyID         *string          `json:"party_id,omitempty"`
	CustomerName    *string          `json:"customer_name,omitempty"`
	CustomerUrdu    *string          `json:"customer_urdu,omitempty"`
	VehicleNumber   *string          `json:"vehicle_number,omitempty"`
	CustomerPhone   *string          `json:"customer_phone,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	PaymentMethod   *string          `json:"payment_method,omitempty"`
	BankID          *string          `json:"bank_id,omitempty"`
	Description     *string          `json:"description,omitempty"`
	DescriptionUrdu *string          `json:"description_urdu,omitempty"`
	Date            *time.Time       `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateRecoveryRequest) ToUseCaseInput(companyID, id string) usecase.UpdateRecoveryInput {
	return usecase.UpdateRecoveryInput{
		CompanyID:       companyID,
		ID:              id,
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
	}
}

// UpdateExpenseRequest represents a request to update an expense sheet.
type UpdateExpenseRequest struct {
	Date            *time.Time       `json:"date,omitempty"`
	Travelling      *decimal.Decimal `json:"travelling,omitempty"`
	Refreshment     *decimal.Decimal `json:"refreshment,omitempty"`
	Cargo           *decimal.Decimal `json:"cargo,omitempty"`
	Salary          *decimal.Decimal `json:"salary,omitempty"`
	PaymentMethod   *string          `json:"payment_method,omitempty"`
	Description     *string          `json:"description,omitempty"`
	DescriptionUrdu *string          `json:"description_urdu,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateExpenseRequest) ToUseCaseInput(companyID, id string) usecase.UpdateExpenseInput {
	return usecase.UpdateExpenseInput{
		CompanyID:       companyID,
		ID:              id,
		Date:            r.Date,
		Travelling:      r.Travelling,
		Refreshment:     r.Refreshment,
		Cargo:           r.Cargo,
		Salary:          r.Salary,
		PaymentMethod:   r.PaymentMethod,
		Description:     r.Description,
		DescriptionUrdu: r.DescriptionUrdu,
	}
}

// UpdateBankRequest represents a request to update a bank.
type UpdateBankRequest struct {
	Name           string           `json:"name,omitempty"`
	NameUrdu       string           `json:"name_urdu,omitempty"`
	AccountNumber  string           `json:"account_number,omitempty"`
	AccountTitle   string           `json:"account_title,omitempty"`
	BranchName     string           `json:"branch_name,omitempty"`
	OpeningBalance *decimal.Decimal `json:"opening_balance,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateBankRequest) ToUseCaseInput(companyID, id string) usecase.UpdateBankInput {
	return usecase.UpdateBankInput{
		CompanyID:      companyID,
		ID:             id,
		Name:           r.Name,
		NameUrdu:       r.NameUrdu,
		AccountNumber:  r.AccountNumber,
		AccountTitle:   r.AccountTitle,
		BranchName:     r.BranchName,
		OpeningBalance: r.OpeningBalance,
		IsActive:       r.IsActive,
	}
}
