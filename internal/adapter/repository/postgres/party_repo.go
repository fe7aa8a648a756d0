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

// PartyRepository implements usecase.PartyRepository.
type PartyRepository struct {
	pool *pgxpool.Pool
}

// NewPartyRepository creates a new PartyRepository.
func NewPartyRepository(pool *pgxpool.Pool) *PartyRepository {
	return &PartyRepository{pool: pool}
}

const partyColumns = `id, company_id, name, name_urdu, type, phone, address,
	opening_balance, balance_type, current_balance, notes, created_at, updated_at`

// Create inserts a new party.
func (r *PartyRepository) Create(ctx context.Context, party *domain.Party) error {
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		party.ID,
		party.CompanyID,
		party.Name,
		party.NameUrdu,
		party.Type,
		party.Phone,
		party.Address,
		decimalToNumeric(party.OpeningBalance),
		party.BalanceType,
		decimalToNumeric(party.CurrentBalance),
		party.Notes,
		party.CreatedAt,
		party.UpdatedAt,
	)

	return err
}

// GetByID retrieves a party by ID within a company.
func (r *PartyRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE company_id = $1 AND id = $2
	`

	return scanParty(r.pool.QueryRow(ctx, query, companyID, id))
}

// GetByIDForUpdate retrieves a party with a FOR UPDATE lock. The lock
// serializes concurrent replays of the same party.
func (r *PartyRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, companyID, id string) (*domain.Party, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE company_id = $1 AND id = $2
		FOR UPDATE
	`

	return scanParty(pgxTx.QueryRow(ctx, query, companyID, id))
}

// Update updates party details.
func (r *PartyRepository) Update(ctx context.Context, party *domain.Party) error {
	query := `
		UPDATE parties
		SET name = $3, name_urdu = $4, phone = $5, address = $6,
			opening_balance = $7, balance_type = $8, notes = $9, updated_at = $10
		WHERE company_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		party.CompanyID,
		party.ID,
		party.Name,
		party.NameUrdu,
		party.Phone,
		party.Address,
		decimalToNumeric(party.OpeningBalance),
		party.BalanceType,
		party.Notes,
		party.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPartyNotFound
	}

	return nil
}

// Delete removes a party. Ledger entries cascade through the schema's
// foreign key.
func (r *PartyRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM parties WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPartyNotFound
	}

	return nil
}

// List lists parties matching the filter, most recently updated first.
func (r *PartyRepository) List(ctx context.Context, filter domain.PartyFilter) ([]*domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE company_id = $1
			AND ($2 = '' OR type = $2)
			AND ($3 = '' OR name ILIKE '%' || $3 || '%' OR name_urdu ILIKE '%' || $3 || '%')
		ORDER BY updated_at DESC
		LIMIT $4 OFFSET $5
	`

	limit, offset := domain.ValidatePagination(filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query,
		filter.CompanyID,
		string(filter.Type),
		filter.Search,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parties := make([]*domain.Party, 0)
	for rows.Next() {
		party, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		parties = append(parties, party)
	}

	return parties, rows.Err()
}

// UpdateBalance writes the replayed balance inside the replay transaction.
func (r *PartyRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`UPDATE parties SET current_balance = $2, updated_at = $3 WHERE id = $1`,
		id,
		decimalToNumeric(balance),
		updatedAt,
	)

	return err
}

func scanParty(row pgx.Row) (*domain.Party, error) {
	var (
		party   domain.Party
		opening pgtype.Numeric
		current pgtype.Numeric
	)

	err := row.Scan(
		&party.ID,
		&party.CompanyID,
		&party.Name,
		&party.NameUrdu,
		&party.Type,
		&party.Phone,
		&party.Address,
		&opening,
		&party.BalanceType,
		&current,
		&party.Notes,
		&party.CreatedAt,
		&party.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPartyNotFound
	}
	if err != nil {
		return nil, err
	}

	party.OpeningBalance = numericToDecimal(opening)
	party.CurrentBalance = numericToDecimal(current)

	return &party, nil
}
