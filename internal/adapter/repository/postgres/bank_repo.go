package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
)

// BankRepository implements usecase.BankRepository.
type BankRepository struct {
	pool *pgxpool.Pool
}

// NewBankRepository creates a new BankRepository.
func NewBankRepository(pool *pgxpool.Pool) *BankRepository {
	return &BankRepository{pool: pool}
}

const bankColumns = `id, company_id, name, name_urdu, account_number, account_title,
	branch_name, opening_balance, current_balance, is_active, admin_managed,
	created_at, updated_at`

// Create inserts a new bank.
func (r *BankRepository) Create(ctx context.Context, bank *domain.Bank) error {
	query := `
		INSERT INTO banks (` + bankColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		bank.ID,
		bank.CompanyID,
		bank.Name,
		bank.NameUrdu,
		bank.AccountNumber,
		bank.AccountTitle,
		bank.BranchName,
		decimalToNumeric(bank.OpeningBalance),
		decimalToNumeric(bank.CurrentBalance),
		bank.IsActive,
		bank.AdminManaged,
		bank.CreatedAt,
		bank.UpdatedAt,
	)

	return err
}

// GetByID retrieves a bank by ID within a company.
func (r *BankRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Bank, error) {
	query := `
		SELECT ` + bankColumns + `
		FROM banks
		WHERE company_id = $1 AND id = $2
	`

	return scanBank(r.pool.QueryRow(ctx, query, companyID, id))
}

// GetByName retrieves a bank by its display name. Payment channels on
// recoveries reference banks by name, not id.
func (r *BankRepository) GetByName(ctx context.Context, companyID, name string) (*domain.Bank, error) {
	query := `
		SELECT ` + bankColumns + `
		FROM banks
		WHERE company_id = $1 AND (name = $2 OR name_urdu = $2)
	`

	return scanBank(r.pool.QueryRow(ctx, query, companyID, name))
}

// Update updates bank details.
func (r *BankRepository) Update(ctx context.Context, bank *domain.Bank) error {
	query := `
		UPDATE banks
		SET name = $3, name_urdu = $4, account_number = $5, account_title = $6,
			branch_name = $7, opening_balance = $8, is_active = $9, updated_at = $10
		WHERE company_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		bank.CompanyID,
		bank.ID,
		bank.Name,
		bank.NameUrdu,
		bank.AccountNumber,
		bank.AccountTitle,
		bank.BranchName,
		decimalToNumeric(bank.OpeningBalance),
		bank.IsActive,
		bank.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBankNotFound
	}

	return nil
}

// UpdateBalance writes the replayed balance inside the replay transaction.
func (r *BankRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`UPDATE banks SET current_balance = $2, updated_at = $3 WHERE id = $1`,
		id,
		decimalToNumeric(balance),
		updatedAt,
	)

	return err
}

// Delete removes a bank. Runs inside tx so the caller can cascade the
// bank's transactions in the same commit.
func (r *BankRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM banks WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBankNotFound
	}

	return nil
}

// List lists a company's banks.
func (r *BankRepository) List(ctx context.Context, companyID string, limit, offset int) ([]*domain.Bank, error) {
	query := `
		SELECT ` + bankColumns + `
		FROM banks
		WHERE company_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`

	limit, offset = domain.ValidatePagination(limit, offset)

	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	banks := make([]*domain.Bank, 0)
	for rows.Next() {
		bank, err := scanBank(rows)
		if err != nil {
			return nil, err
		}
		banks = append(banks, bank)
	}

	return banks, rows.Err()
}

func scanBank(row pgx.Row) (*domain.Bank, error) {
	var (
		bank    domain.Bank
		opening pgtype.Numeric
		current pgtype.Numeric
	)

	err := row.Scan(
		&bank.ID,
		&bank.CompanyID,
		&bank.Name,
		&bank.NameUrdu,
		&bank.AccountNumber,
		&bank.AccountTitle,
		&bank.BranchName,
		&opening,
		&current,
		&bank.IsActive,
		&bank.AdminManaged,
		&bank.CreatedAt,
		&bank.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBankNotFound
	}
	if err != nil {
		return nil, err
	}

	bank.OpeningBalance = numericToDecimal(opening)
	bank.CurrentBalance = numericToDecimal(current)

	return &bank, nil
}
