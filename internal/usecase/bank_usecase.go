package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
)

// BankUseCase handles banks, payment methods and manual entries in the
// cash mirror ledger. Mirror accounts follow the same full-replay
// discipline as the party ledger, so balances never go stale after a
// delete.
type BankUseCase struct {
	txManager  TransactionManager
	bankRepo   BankRepository
	methodRepo PaymentMethodRepository
	bankTxRepo BankTransactionRepository
	recalc     *RecalcUseCase
	idGen      IDGenerator
	retrier    Retrier
}

// NewBankUseCase creates a new BankUseCase.
func NewBankUseCase(
	txManager TransactionManager,
	bankRepo BankRepository,
	methodRepo PaymentMethodRepository,
	bankTxRepo BankTransactionRepository,
	recalc *RecalcUseCase,
	idGen IDGenerator,
	retrier Retrier,
) *BankUseCase {
	return &BankUseCase{
		txManager:  txManager,
		bankRepo:   bankRepo,
		methodRepo: methodRepo,
		bankTxRepo: bankTxRepo,
		recalc:     recalc,
		idGen:      idGen,
		retrier:    retrier,
	}
}

// CreateBankInput represents input for registering a bank.
type CreateBankInput struct {
	CompanyID      string
	Name           string
	NameUrdu       string
	AccountNumber  string
	AccountTitle   string
	BranchName     string
	OpeningBalance decimal.Decimal
	AdminManaged   bool
}

// CreateBank registers a bank account in the mirror ledger.
func (uc *BankUseCase) CreateBank(ctx context.Context, input CreateBankInput) (*domain.Bank, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidPartyName
	}

	now := time.Now().UTC()
	bank := &domain.Bank{
		ID:             uc.idGen.Generate(),
		CompanyID:      input.CompanyID,
		Name:           input.Name,
		NameUrdu:       input.NameUrdu,
		AccountNumber:  input.AccountNumber,
		AccountTitle:   input.AccountTitle,
		BranchName:     input.BranchName,
		OpeningBalance: input.OpeningBalance,
		CurrentBalance: input.OpeningBalance,
		IsActive:       true,
		AdminManaged:   input.AdminManaged,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.bankRepo.Create(ctx, bank); err != nil {
		return nil, err
	}

	return bank, nil
}

// GetBank retrieves a bank by ID.
func (uc *BankUseCase) GetBank(ctx context.Context, companyID, id string) (*domain.Bank, error) {
	return uc.bankRepo.GetByID(ctx, companyID, id)
}

// ListBanks lists a company's banks.
func (uc *BankUseCase) ListBanks(ctx context.Context, companyID string, limit, offset int) ([]*domain.Bank, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.bankRepo.List(ctx, companyID, limit, offset)
}

// UpdateBankInput represents input for updating a bank.
type UpdateBankInput struct {
	CompanyID      string
	ID             string
	Name           string
	NameUrdu       string
	AccountNumber  string
	AccountTitle   string
	BranchName     string
	OpeningBalance *decimal.Decimal
	IsActive       *bool
}

// UpdateBank updates bank details. A changed opening balance shifts every
// snapshot, so the account is replayed before returning.
func (uc *BankUseCase) UpdateBank(ctx context.Context, input UpdateBankInput) (*domain.Bank, error) {
	bank, err := uc.bankRepo.GetByID(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		bank.Name = input.Name
	}
	if input.NameUrdu != "" {
		bank.NameUrdu = input.NameUrdu
	}
	if input.AccountNumber != "" {
		bank.AccountNumber = input.AccountNumber
	}
	if input.AccountTitle != "" {
		bank.AccountTitle = input.AccountTitle
	}
	if input.BranchName != "" {
		bank.BranchName = input.BranchName
	}
	if input.IsActive != nil {
		bank.IsActive = *input.IsActive
	}

	openingChanged := false
	if input.OpeningBalance != nil && !bank.OpeningBalance.Equal(*input.OpeningBalance) {
		bank.OpeningBalance = *input.OpeningBalance
		openingChanged = true
	}
	bank.UpdatedAt = time.Now().UTC()

	if err := uc.bankRepo.Update(ctx, bank); err != nil {
		return nil, err
	}

	if openingChanged {
		if _, err := uc.recalc.RecalcBankAccount(ctx, input.CompanyID, domain.BankAccountRef{BankID: bank.ID}); err != nil {
			return nil, err
		}
		return uc.bankRepo.GetByID(ctx, input.CompanyID, input.ID)
	}

	return bank, nil
}

// DeleteBank removes a bank together with every transaction held
// against it, in one commit.
func (uc *BankUseCase) DeleteBank(ctx context.Context, companyID, id string) error {
	if _, err := uc.bankRepo.GetByID(ctx, companyID, id); err != nil {
		return err
	}

	return uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.bankTxRepo.DeleteByBank(ctx, tx, companyID, id); err != nil {
			return err
		}

		if err := uc.bankRepo.Delete(ctx, tx, companyID, id); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}

// CreatePaymentMethodInput represents input for creating a payment method.
type CreatePaymentMethodInput struct {
	CompanyID string
	Name      string
	NameUrdu  string
	SortOrder int
}

// CreatePaymentMethod registers a named cash channel.
func (uc *BankUseCase) CreatePaymentMethod(ctx context.Context, input CreatePaymentMethodInput) (*domain.PaymentMethod, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidPartyName
	}

	now := time.Now().UTC()
	method := &domain.PaymentMethod{
		ID:        uc.idGen.Generate(),
		CompanyID: input.CompanyID,
		Name:      input.Name,
		NameUrdu:  input.NameUrdu,
		IsActive:  true,
		SortOrder: input.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.methodRepo.Create(ctx, method); err != nil {
		return nil, err
	}

	return method, nil
}

// ListPaymentMethods lists a company's payment methods in sort order.
func (uc *BankUseCase) ListPaymentMethods(ctx context.Context, companyID string, limit, offset int) ([]*domain.PaymentMethod, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.methodRepo.List(ctx, companyID, limit, offset)
}

// DeletePaymentMethod removes a payment method.
func (uc *BankUseCase) DeletePaymentMethod(ctx context.Context, companyID, id string) error {
	if _, err := uc.methodRepo.GetByID(ctx, companyID, id); err != nil {
		return err
	}
	return uc.methodRepo.Delete(ctx, companyID, id)
}

// CreateBankTransactionInput represents input for a manual mirror entry.
type CreateBankTransactionInput struct {
	CompanyID       string
	BankID          string
	PaymentMethod   string
	Type            domain.BankTxType
	Amount          decimal.Decimal
	Description     string
	DescriptionUrdu string
	Date            time.Time
}

// CreateBankTransaction records a manual deposit or withdrawal and replays
// the account.
func (uc *BankUseCase) CreateBankTransaction(ctx context.Context, input CreateBankTransactionInput) (*domain.BankTransaction, error) {
	account := domain.BankAccountRef{BankID: input.BankID, PaymentMethod: input.PaymentMethod}
	if account.IsZero() {
		return nil, domain.ErrAccountRefRequired
	}
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidBankTxType
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}

	if input.BankID != "" {
		if _, err := uc.bankRepo.GetByID(ctx, input.CompanyID, input.BankID); err != nil {
			return nil, err
		}
		account.PaymentMethod = ""
	}

	now := time.Now().UTC()
	btx := &domain.BankTransaction{
		ID:              uc.idGen.Generate(),
		CompanyID:       input.CompanyID,
		Account:         account,
		Date:            input.Date,
		Type:            input.Type,
		Amount:          input.Amount,
		Description:     input.Description,
		DescriptionUrdu: input.DescriptionUrdu,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	btx.Source = domain.ManualSource(btx.ID)

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.bankTxRepo.Create(ctx, tx, btx); err != nil {
			return err
		}

		if _, err := uc.recalc.RecalcBankAccountTx(ctx, tx, input.CompanyID, account); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return uc.bankTxRepo.GetByID(ctx, input.CompanyID, btx.ID)
}

// DeleteBankTransaction removes a mirror entry and replays its account so
// downstream snapshots never go stale.
func (uc *BankUseCase) DeleteBankTransaction(ctx context.Context, companyID, id string) error {
	btx, err := uc.bankTxRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}

	return uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.bankTxRepo.Delete(ctx, tx, companyID, id); err != nil {
			return err
		}

		if _, err := uc.recalc.RecalcBankAccountTx(ctx, tx, companyID, btx.Account); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}

// BankStatement is an account together with its replayed mirror ledger.
type BankStatement struct {
	Account domain.BankAccountRef
	Balance decimal.Decimal
	Entries []*domain.BankTransaction
}

// GetStatement replays a mirror account and returns its entries with
// fresh running balances.
func (uc *BankUseCase) GetStatement(ctx context.Context, companyID string, account domain.BankAccountRef, limit, offset int) (*BankStatement, error) {
	if account.IsZero() {
		return nil, domain.ErrAccountRefRequired
	}

	balance, err := uc.recalc.RecalcBankAccount(ctx, companyID, account)
	if err != nil {
		return nil, err
	}

	limit, offset = domain.ValidatePagination(limit, offset)
	entries, err := uc.bankTxRepo.ListByAccountPage(ctx, companyID, account, limit, offset)
	if err != nil {
		return nil, err
	}

	return &BankStatement{Account: account, Balance: balance, Entries: entries}, nil
}
