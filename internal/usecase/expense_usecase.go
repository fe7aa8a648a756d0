package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/infrastructure/metrics"
)

// ExpenseUseCase handles daily expense sheets. An expense with a positive
// total mirrors a withdrawal against the selected payment method; it never
// derives a party ledger entry.
type ExpenseUseCase struct {
	txManager   TransactionManager
	expenseRepo ExpenseRepository
	bankTxRepo  BankTransactionRepository
	recalc      *RecalcUseCase
	idGen       IDGenerator
	retrier     Retrier
	logger      zerolog.Logger
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	txManager TransactionManager,
	expenseRepo ExpenseRepository,
	bankTxRepo BankTransactionRepository,
	recalc *RecalcUseCase,
	idGen IDGenerator,
	retrier Retrier,
	logger zerolog.Logger,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		txManager:   txManager,
		expenseRepo: expenseRepo,
		bankTxRepo:  bankTxRepo,
		recalc:      recalc,
		idGen:       idGen,
		retrier:     retrier,
		logger:      logger,
	}
}

// CreateExpenseInput represents input for recording an expense sheet.
type CreateExpenseInput struct {
	CompanyID       string
	Date            time.Time
	Travelling      decimal.Decimal
	Refreshment     decimal.Decimal
	Cargo           decimal.Decimal
	Salary          decimal.Decimal
	PaymentMethod   string
	Description     string
	DescriptionUrdu string
}

// CreateExpense persists an expense sheet and mirrors its withdrawal.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	for _, amount := range []decimal.Decimal{input.Travelling, input.Refreshment, input.Cargo, input.Salary} {
		if err := domain.ValidateAmount(amount); err != nil {
			return nil, err
		}
	}
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}

	now := time.Now().UTC()
	expense := &domain.Expense{
		ID:              uc.idGen.Generate(),
		CompanyID:       input.CompanyID,
		Date:            input.Date,
		Travelling:      input.Travelling,
		Refreshment:     input.Refreshment,
		Cargo:           input.Cargo,
		Salary:          input.Salary,
		PaymentMethod:   input.PaymentMethod,
		Description:     input.Description,
		DescriptionUrdu: input.DescriptionUrdu,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.expenseRepo.Create(ctx, tx, expense); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.mirrorWithdrawal(ctx, expense)

	metrics.SourceEventsProcessed.WithLabelValues("expense", "create").Inc()

	return expense, nil
}

// GetExpense retrieves an expense sheet by ID.
func (uc *ExpenseUseCase) GetExpense(ctx context.Context, companyID, id string) (*domain.Expense, error) {
	return uc.expenseRepo.GetByID(ctx, companyID, id)
}

// ListExpenses lists expense sheets newest first.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, companyID string, limit, offset int) ([]*domain.Expense, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.expenseRepo.List(ctx, companyID, limit, offset)
}

// UpdateExpenseInput represents input for editing an expense sheet.
type UpdateExpenseInput struct {
	CompanyID       string
	ID              string
	Date            *time.Time
	Travelling      *decimal.Decimal
	Refreshment     *decimal.Decimal
	Cargo           *decimal.Decimal
	Salary          *decimal.Decimal
	PaymentMethod   *string
	Description     *string
	DescriptionUrdu *string
}

// UpdateExpense mutates an expense sheet and rebuilds its withdrawal.
func (uc *ExpenseUseCase) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (*domain.Expense, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}

	previousMethod := expense.PaymentMethod

	if input.Date != nil {
		expense.Date = *input.Date
	}
	for _, f := range []struct {
		in  *decimal.Decimal
		out *decimal.Decimal
	}{
		{input.Travelling, &expense.Travelling},
		{input.Refreshment, &expense.Refreshment},
		{input.Cargo, &expense.Cargo},
		{input.Salary, &expense.Salary},
	} {
		if f.in == nil {
			continue
		}
		if err := domain.ValidateAmount(*f.in); err != nil {
			return nil, err
		}
		*f.out = *f.in
	}
	if input.PaymentMethod != nil {
		expense.PaymentMethod = *input.PaymentMethod
	}
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.DescriptionUrdu != nil {
		expense.DescriptionUrdu = *input.DescriptionUrdu
	}
	expense.UpdatedAt = time.Now().UTC()

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.expenseRepo.Update(ctx, tx, expense); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.mirrorWithdrawal(ctx, expense)

	if previousMethod != "" && previousMethod != expense.PaymentMethod {
		account := domain.BankAccountRef{PaymentMethod: previousMethod}
		if _, err := uc.recalc.RecalcBankAccount(ctx, expense.CompanyID, account); err != nil {
			uc.logger.Error().Err(err).
				Str("expense_id", expense.ID).
				Msg("bank replay failed for previous expense account")
		}
	}

	metrics.SourceEventsProcessed.WithLabelValues("expense", "update").Inc()

	return expense, nil
}

// DeleteExpense removes an expense sheet and its mirrored withdrawal.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, companyID, id string) error {
	expense, err := uc.expenseRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.bankTxRepo.DeleteBySource(ctx, tx, companyID, domain.SourceTypeExpense, id); err != nil {
			return err
		}

		if err := uc.expenseRepo.Delete(ctx, tx, companyID, id); err != nil {
			return err
		}

		if expense.PaymentMethod != "" {
			account := domain.BankAccountRef{PaymentMethod: expense.PaymentMethod}
			if _, err := uc.recalc.RecalcBankAccountTx(ctx, tx, companyID, account); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}
	metrics.SourceEventsProcessed.WithLabelValues("expense", "delete").Inc()

	return nil
}

// mirrorWithdrawal rebuilds the expense's bank withdrawal after the
// primary write committed. Mirror failures are logged, never propagated.
func (uc *ExpenseUseCase) mirrorWithdrawal(ctx context.Context, expense *domain.Expense) {
	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.bankTxRepo.DeleteBySource(ctx, tx, expense.CompanyID, domain.SourceTypeExpense, expense.ID); err != nil {
			return err
		}

		total := expense.Total()
		if expense.PaymentMethod != "" && total.IsPositive() {
			now := time.Now().UTC()
			key := domain.SourceKey(domain.SourceTypeExpense, expense.ID, "withdraw")
			withdrawal := &domain.BankTransaction{
				ID:              uc.idGen.Generate(),
				CompanyID:       expense.CompanyID,
				Account:         domain.BankAccountRef{PaymentMethod: expense.PaymentMethod},
				Source:          domain.SourceRef{Type: domain.SourceTypeExpense, ID: expense.ID, Key: key},
				Date:            expense.Date,
				Type:            domain.BankTxWithdraw,
				Amount:          total,
				Description:     expense.Description,
				DescriptionUrdu: expense.DescriptionUrdu,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := uc.bankTxRepo.UpsertBySourceKey(ctx, tx, withdrawal); err != nil {
				return err
			}
		}

		if expense.PaymentMethod != "" {
			account := domain.BankAccountRef{PaymentMethod: expense.PaymentMethod}
			if _, err := uc.recalc.RecalcBankAccountTx(ctx, tx, expense.CompanyID, account); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		uc.logger.Error().Err(err).
			Str("expense_id", expense.ID).
			Msg("bank mirror update failed for expense")
		metrics.MirrorFailures.Inc()
	}
}
