package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
)

// BankTransactionRepository implements usecase.BankTransactionRepository.
type BankTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewBankTransactionRepository creates a new BankTransactionRepository.
func NewBankTransactionRepository(pool *pgxpool.Pool) *BankTransactionRepository {
	return &BankTransactionRepository{pool: pool}
}

const bankTxColumns = `id, company_id, bank_id, payment_method, source_type, source_id,
	source_key, date, type, amount, description, description_urdu, balance_after,
	created_at, updated_at`

// accountMatch addresses one mirror account: a bank by id or a payment
// method by name.
const accountMatch = `company_id = $1
	AND (($2 <> '' AND bank_id = $2) OR ($2 = '' AND bank_id = '' AND payment_method = $3))`

// Create inserts a new bank transaction.
func (r *BankTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, btx *domain.BankTransaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO bank_transactions (` + bankTxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := pgxTx.Exec(ctx, query,
		btx.ID,
		btx.CompanyID,
		btx.Account.BankID,
		btx.Account.PaymentMethod,
		btx.Source.Type,
		btx.Source.ID,
		btx.Source.Key,
		btx.Date,
		btx.Type,
		decimalToNumeric(btx.Amount),
		btx.Description,
		btx.DescriptionUrdu,
		decimalToNumeric(btx.BalanceAfter),
		btx.CreatedAt,
		btx.UpdatedAt,
	)

	return err
}

// GetByID retrieves a bank transaction by ID within a company.
func (r *BankTransactionRepository) GetByID(ctx context.Context, companyID, id string) (*domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTxColumns + `
		FROM bank_transactions
		WHERE company_id = $1 AND id = $2
	`

	return scanBankTx(r.pool.QueryRow(ctx, query, companyID, id))
}

// Delete removes a bank transaction.
func (r *BankTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`DELETE FROM bank_transactions WHERE company_id = $1 AND id = $2`,
		companyID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// ListByAccount returns every entry for a mirror account in replay order,
// reading through the supplied transaction.
func (r *BankTransactionRepository) ListByAccount(ctx context.Context, tx usecase.Transaction, companyID string, account domain.BankAccountRef) ([]*domain.BankTransaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + bankTxColumns + `
		FROM bank_transactions
		WHERE ` + accountMatch + `
		` + replayOrder

	rows, err := pgxTx.Query(ctx, query, companyID, account.BankID, account.PaymentMethod)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBankTxs(rows)
}

// ListByAccountPage returns a page of mirror entries in replay order. A
// non-positive limit returns everything.
func (r *BankTransactionRepository) ListByAccountPage(ctx context.Context, companyID string, account domain.BankAccountRef, limit, offset int) ([]*domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTxColumns + `
		FROM bank_transactions
		WHERE ` + accountMatch + `
		` + replayOrder + `
		LIMIT NULLIF($4, 0) OFFSET $5
	`

	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, query, companyID, account.BankID, account.PaymentMethod, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBankTxs(rows)
}

// UpsertBySourceKey inserts a mirror entry or refreshes the existing one
// carrying the same source key, preserving its id and creation order.
func (r *BankTransactionRepository) UpsertBySourceKey(ctx context.Context, tx usecase.Transaction, btx *domain.BankTransaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO bank_transactions (` + bankTxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (company_id, source_key) WHERE source_key <> '' DO UPDATE
		SET bank_id = EXCLUDED.bank_id,
			payment_method = EXCLUDED.payment_method,
			date = EXCLUDED.date,
			type = EXCLUDED.type,
			amount = EXCLUDED.amount,
			description = EXCLUDED.description,
			description_urdu = EXCLUDED.description_urdu,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	return pgxTx.QueryRow(ctx, query,
		btx.ID,
		btx.CompanyID,
		btx.Account.BankID,
		btx.Account.PaymentMethod,
		btx.Source.Type,
		btx.Source.ID,
		btx.Source.Key,
		btx.Date,
		btx.Type,
		decimalToNumeric(btx.Amount),
		btx.Description,
		btx.DescriptionUrdu,
		decimalToNumeric(btx.BalanceAfter),
		btx.CreatedAt,
		btx.UpdatedAt,
	).Scan(&btx.ID, &btx.CreatedAt)
}

// DeleteByBank removes every entry held against a bank.
func (r *BankTransactionRepository) DeleteByBank(ctx context.Context, tx usecase.Transaction, companyID, bankID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`DELETE FROM bank_transactions WHERE company_id = $1 AND bank_id = $2`,
		companyID, bankID,
	)

	return err
}

// DeleteBySource removes all mirror entries of a source event.
func (r *BankTransactionRepository) DeleteBySource(ctx context.Context, tx usecase.Transaction, companyID string, sourceType domain.SourceType, sourceID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`DELETE FROM bank_transactions WHERE company_id = $1 AND source_type = $2 AND source_id = $3`,
		companyID, sourceType, sourceID,
	)

	return err
}

// SetBalanceAfter writes the running balance snapshot for one entry.
func (r *BankTransactionRepository) SetBalanceAfter(ctx context.Context, tx usecase.Transaction, id string, balanceAfter decimal.Decimal) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`UPDATE bank_transactions SET balance_after = $2 WHERE id = $1`,
		id,
		decimalToNumeric(balanceAfter),
	)

	return err
}

func scanBankTx(row pgx.Row) (*domain.BankTransaction, error) {
	var (
		btx     domain.BankTransaction
		amount  pgtype.Numeric
		balance pgtype.Numeric
	)

	err := row.Scan(
		&btx.ID,
		&btx.CompanyID,
		&btx.Account.BankID,
		&btx.Account.PaymentMethod,
		&btx.Source.Type,
		&btx.Source.ID,
		&btx.Source.Key,
		&btx.Date,
		&btx.Type,
		&amount,
		&btx.Description,
		&btx.DescriptionUrdu,
		&balance,
		&btx.CreatedAt,
		&btx.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	btx.Amount = numericToDecimal(amount)
	btx.BalanceAfter = numericToDecimal(balance)

	return &btx, nil
}

func collectBankTxs(rows pgx.Rows) ([]*domain.BankTransaction, error) {
	txns := make([]*domain.BankTransaction, 0)
	for rows.Next() {
		btx, err := scanBankTx(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, btx)
	}

	return txns, rows.Err()
}
