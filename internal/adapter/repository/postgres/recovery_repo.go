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

// RecoveryRepository implements usecase.RecoveryRepository.
type RecoveryRepository struct {
	pool *pgxpool.Pool
}

// NewRecoveryRepository creates a new RecoveryRepository.
func NewRecoveryRepository(pool *pgxpool.Pool) *RecoveryRepository {
	return &RecoveryRepository{pool: pool}
}

const recoveryColumns = `id, company_id, serial_number, party_id, customer_name,
	customer_urdu, vehicle_number, customer_phone, amount, payment_method,
	bank_id, description, description_urdu, date, created_at, updated_at`

// Create inserts a new recovery.
func (r *RecoveryRepository) Create(ctx context.Context, tx usecase.Transaction, recovery *domain.Recovery) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO recoveries (` + recoveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := pgxTx.Exec(ctx, query,
		recovery.ID,
		recovery.CompanyID,
		recovery.SerialNumber,
		recovery.PartyID,
		recovery.CustomerName,
		recovery.CustomerUrdu,
		recovery.VehicleNumber,
		recovery.CustomerPhone,
		decimalToNumeric(recovery.Amount),
		recovery.PaymentMethod,
		recovery.BankID,
		recovery.Description,
		recovery.DescriptionUrdu,
		recovery.Date,
		recovery.CreatedAt,
		recovery.UpdatedAt,
	)

	return err
}

// GetByID retrieves a recovery by ID within a company.
func (r *RecoveryRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Recovery, error) {
	query := `
		SELECT ` + recoveryColumns + `
		FROM recoveries
		WHERE company_id = $1 AND id = $2
	`

	return scanRecovery(r.pool.QueryRow(ctx, query, companyID, id))
}

// Update rewrites a recovery's mutable fields.
func (r *RecoveryRepository) Update(ctx context.Context, tx usecase.Transaction, recovery *domain.Recovery) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE recoveries
		SET party_id = $3, customer_name = $4, customer_urdu = $5,
			vehicle_number = $6, customer_phone = $7, amount = $8,
			payment_method = $9, bank_id = $10, description = $11,
			description_urdu = $12, date = $13, updated_at = $14
		WHERE company_id = $2 AND id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		recovery.ID,
		recovery.CompanyID,
		recovery.PartyID,
		recovery.CustomerName,
		recovery.CustomerUrdu,
		recovery.VehicleNumber,
		recovery.CustomerPhone,
		decimalToNumeric(recovery.Amount),
		recovery.PaymentMethod,
		recovery.BankID,
		recovery.Description,
		recovery.DescriptionUrdu,
		recovery.Date,
		recovery.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecoveryNotFound
	}

	return nil
}

// Delete removes a recovery.
func (r *RecoveryRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM recoveries WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecoveryNotFound
	}

	return nil
}

// List lists a company's recoveries, newest business date first.
func (r *RecoveryRepository) List(ctx context.Context, companyID string, limit, offset int) ([]*domain.Recovery, error) {
	query := `
		SELECT ` + recoveryColumns + `
		FROM recoveries
		WHERE company_id = $1
		ORDER BY date DESC, serial_number DESC
		LIMIT $2 OFFSET $3
	`

	limit, offset = domain.ValidatePagination(limit, offset)

	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recoveries := make([]*domain.Recovery, 0)
	for rows.Next() {
		recovery, err := scanRecovery(rows)
		if err != nil {
			return nil, err
		}
		recoveries = append(recoveries, recovery)
	}

	return recoveries, rows.Err()
}

// NextSerial allocates the next per-company recovery number.
func (r *RecoveryRepository) NextSerial(ctx context.Context, tx usecase.Transaction, companyID string) (int64, error) {
	return nextSerial(ctx, tx, companyID, "recovery")
}

func scanRecovery(row pgx.Row) (*domain.Recovery, error) {
	var (
		recovery domain.Recovery
		amount   pgtype.Numeric
	)

	err := row.Scan(
		&recovery.ID,
		&recovery.CompanyID,
		&recovery.SerialNumber,
		&recovery.PartyID,
		&recovery.CustomerName,
		&recovery.CustomerUrdu,
		&recovery.VehicleNumber,
		&recovery.CustomerPhone,
		&amount,
		&recovery.PaymentMethod,
		&recovery.BankID,
		&recovery.Description,
		&recovery.DescriptionUrdu,
		&recovery.Date,
		&recovery.CreatedAt,
		&recovery.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRecoveryNotFound
	}
	if err != nil {
		return nil, err
	}

	recovery.Amount = numericToDecimal(amount)

	return &recovery, nil
}
