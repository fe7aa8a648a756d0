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

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const ledgerTxColumns = `id, company_id, party_id, source_type, source_id, source_key,
	date, description, type, amount, balance_after, created_at, updated_at`

// replayOrder is the ordering contract the recalculation engine depends
// on: business date first, then creation order for same-day entries.
const replayOrder = `ORDER BY date ASC, created_at ASC, id ASC`

// Create inserts a new ledger transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.LedgerTransaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO ledger_transactions (` + ledgerTxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.CompanyID,
		txn.PartyID,
		txn.Source.Type,
		txn.Source.ID,
		txn.Source.Key,
		txn.Date,
		txn.Description,
		txn.Type,
		decimalToNumeric(txn.Amount),
		decimalToNumeric(txn.BalanceAfter),
		txn.CreatedAt,
		txn.UpdatedAt,
	)

	return err
}

// GetByID retrieves a ledger transaction by ID within a company.
func (r *TransactionRepository) GetByID(ctx context.Context, companyID, id string) (*domain.LedgerTransaction, error) {
	query := `
		SELECT ` + ledgerTxColumns + `
		FROM ledger_transactions
		WHERE company_id = $1 AND id = $2
	`

	return scanLedgerTx(r.pool.QueryRow(ctx, query, companyID, id))
}

// Update updates a ledger transaction's mutable fields.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.LedgerTransaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE ledger_transactions
		SET date = $3, description = $4, type = $5, amount = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2
	`

	tag, err := pgxTx.Exec(ctx, query,
		txn.CompanyID,
		txn.ID,
		txn.Date,
		txn.Description,
		txn.Type,
		decimalToNumeric(txn.Amount),
		txn.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a ledger transaction.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`DELETE FROM ledger_transactions WHERE company_id = $1 AND id = $2`,
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

// ListByParty returns every entry for a party in replay order, reading
// through the supplied transaction so the replay sees its own writes.
func (r *TransactionRepository) ListByParty(ctx context.Context, tx usecase.Transaction, companyID, partyID string) ([]*domain.LedgerTransaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + ledgerTxColumns + `
		FROM ledger_transactions
		WHERE company_id = $1 AND party_id = $2
		` + replayOrder

	rows, err := pgxTx.Query(ctx, query, companyID, partyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLedgerTxs(rows)
}

// ListByPartyPage returns a page of entries in replay order. A non-positive
// limit returns everything.
func (r *TransactionRepository) ListByPartyPage(ctx context.Context, companyID, partyID string, limit, offset int) ([]*domain.LedgerTransaction, error) {
	query := `
		SELECT ` + ledgerTxColumns + `
		FROM ledger_transactions
		WHERE company_id = $1 AND party_id = $2
		` + replayOrder + `
		LIMIT NULLIF($3, 0) OFFSET $4
	`

	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, query, companyID, partyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLedgerTxs(rows)
}

// UpsertBySourceKey inserts a derived entry or refreshes the existing one
// carrying the same source key. The existing row keeps its id and
// created_at, so replay order is stable across regenerations.
func (r *TransactionRepository) UpsertBySourceKey(ctx context.Context, tx usecase.Transaction, txn *domain.LedgerTransaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO ledger_transactions (` + ledgerTxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id, source_key) WHERE source_key <> '' DO UPDATE
		SET party_id = EXCLUDED.party_id,
			date = EXCLUDED.date,
			description = EXCLUDED.description,
			type = EXCLUDED.type,
			amount = EXCLUDED.amount,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	return pgxTx.QueryRow(ctx, query,
		txn.ID,
		txn.CompanyID,
		txn.PartyID,
		txn.Source.Type,
		txn.Source.ID,
		txn.Source.Key,
		txn.Date,
		txn.Description,
		txn.Type,
		decimalToNumeric(txn.Amount),
		decimalToNumeric(txn.BalanceAfter),
		txn.CreatedAt,
		txn.UpdatedAt,
	).Scan(&txn.ID, &txn.CreatedAt)
}

// DeleteBySourceExcept removes the source's derived entries whose keys are
// no longer produced by the event.
func (r *TransactionRepository) DeleteBySourceExcept(ctx context.Context, tx usecase.Transaction, companyID string, sourceType domain.SourceType, sourceID string, keep []string) error {
	pgxTx := tx.(*Tx).PgxTx()

	if keep == nil {
		keep = []string{}
	}

	query := `
		DELETE FROM ledger_transactions
		WHERE company_id = $1 AND source_type = $2 AND source_id = $3
			AND NOT (source_key = ANY($4))
	`

	_, err := pgxTx.Exec(ctx, query, companyID, sourceType, sourceID, keep)

	return err
}

// DeleteBySource removes all derived entries of a source event.
func (r *TransactionRepository) DeleteBySource(ctx context.Context, tx usecase.Transaction, companyID string, sourceType domain.SourceType, sourceID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`DELETE FROM ledger_transactions WHERE company_id = $1 AND source_type = $2 AND source_id = $3`,
		companyID, sourceType, sourceID,
	)

	return err
}

// SetBalanceAfter writes the running balance snapshot for one entry.
func (r *TransactionRepository) SetBalanceAfter(ctx context.Context, tx usecase.Transaction, id string, balanceAfter decimal.Decimal) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`UPDATE ledger_transactions SET balance_after = $2 WHERE id = $1`,
		id,
		decimalToNumeric(balanceAfter),
	)

	return err
}

func scanLedgerTx(row pgx.Row) (*domain.LedgerTransaction, error) {
	var (
		txn     domain.LedgerTransaction
		amount  pgtype.Numeric
		balance pgtype.Numeric
	)

	err := row.Scan(
		&txn.ID,
		&txn.CompanyID,
		&txn.PartyID,
		&txn.Source.Type,
		&txn.Source.ID,
		&txn.Source.Key,
		&txn.Date,
		&txn.Description,
		&txn.Type,
		&amount,
		&balance,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	txn.Amount = numericToDecimal(amount)
	txn.BalanceAfter = numericToDecimal(balance)

	return &txn, nil
}

func collectLedgerTxs(rows pgx.Rows) ([]*domain.LedgerTransaction, error) {
	txns := make([]*domain.LedgerTransaction, 0)
	for rows.Next() {
		txn, err := scanLedgerTx(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}
