package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
)

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, company_id, date, travelling, refreshment, cargo, salary,
	payment_method, description, description_urdu, created_at, updated_at`

// Create inserts a new expense sheet.
func (r *ExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := pgxTx.Exec(ctx, query,
		expense.ID,
		expense.CompanyID,
		expense.Date,
		decimalToNumeric(expense.Travelling),
		decimalToNumeric(expense.Refreshment),
		decimalToNumeric(expense.Cargo),
		decimalToNumeric(expense.Salary),
		expense.PaymentMethod,
		expense.Description,
		expense.DescriptionUrdu,
		expense.CreatedAt,
		expense.UpdatedAt,
	)

	return err
}

// GetByID retrieves an expense sheet by ID within a company.
func (r *ExpenseRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE company_id = $1 AND id = $2
	`

	return scanExpense(r.pool.QueryRow(ctx, query, companyID, id))
}

// Update rewrites an expense sheet's mutable fields.
func (r *ExpenseRepository) Update(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE expenses
		SET date = $3, travelling = $4, refreshment = $5, cargo = $6, salary = $7,
			payment_method = $8, description = $9, description_urdu = $10, updated_at = $11
		WHERE company_id = $2 AND id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		expense.ID,
		expense.CompanyID,
		expense.Date,
		decimalToNumeric(expense.Travelling),
		decimalToNumeric(expense.Refreshment),
		decimalToNumeric(expense.Cargo),
		decimalToNumeric(expense.Salary),
		expense.PaymentMethod,
		expense.Description,
		expense.DescriptionUrdu,
		expense.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// Delete removes an expense sheet.
func (r *ExpenseRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM expenses WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// List lists a company's expense sheets, newest business date first.
func (r *ExpenseRepository) List(ctx context.Context, companyID string, limit, offset int) ([]*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE company_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	limit, offset = domain.ValidatePagination(limit, offset)

	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		expense     domain.Expense
		travelling  pgtype.Numeric
		refreshment pgtype.Numeric
		cargo       pgtype.Numeric
		salary      pgtype.Numeric
	)

	err := row.Scan(
		&expense.ID,
		&expense.CompanyID,
		&expense.Date,
		&travelling,
		&refreshment,
		&cargo,
		&salary,
		&expense.PaymentMethod,
		&expense.Description,
		&expense.DescriptionUrdu,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrExpenseNotFound
	}
	if err != nil {
		return nil, err
	}

	expense.Travelling = numericToDecimal(travelling)
	expense.Refreshment = numericToDecimal(refreshment)
	expense.Cargo = numericToDecimal(cargo)
	expense.Salary = numericToDecimal(salary)

	return &expense, nil
}
