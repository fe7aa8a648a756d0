package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/umair/tradeledger/internal/domain"
)

// PaymentMethodRepository implements usecase.PaymentMethodRepository.
type PaymentMethodRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentMethodRepository creates a new PaymentMethodRepository.
func NewPaymentMethodRepository(pool *pgxpool.Pool) *PaymentMethodRepository {
	return &PaymentMethodRepository{pool: pool}
}

const paymentMethodColumns = `id, company_id, name, name_urdu, is_active, sort_order, created_at, updated_at`

// Create inserts a new payment method.
func (r *PaymentMethodRepository) Create(ctx context.Context, method *domain.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (` + paymentMethodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		method.ID,
		method.CompanyID,
		method.Name,
		method.NameUrdu,
		method.IsActive,
		method.SortOrder,
		method.CreatedAt,
		method.UpdatedAt,
	)

	return err
}

// GetByID retrieves a payment method by ID within a company.
func (r *PaymentMethodRepository) GetByID(ctx context.Context, companyID, id string) (*domain.PaymentMethod, error) {
	query := `
		SELECT ` + paymentMethodColumns + `
		FROM payment_methods
		WHERE company_id = $1 AND id = $2
	`

	return scanPaymentMethod(r.pool.QueryRow(ctx, query, companyID, id))
}

// GetByName retrieves a payment method by name.
func (r *PaymentMethodRepository) GetByName(ctx context.Context, companyID, name string) (*domain.PaymentMethod, error) {
	query := `
		SELECT ` + paymentMethodColumns + `
		FROM payment_methods
		WHERE company_id = $1 AND (name = $2 OR name_urdu = $2)
	`

	return scanPaymentMethod(r.pool.QueryRow(ctx, query, companyID, name))
}

// Update updates a payment method.
func (r *PaymentMethodRepository) Update(ctx context.Context, method *domain.PaymentMethod) error {
	query := `
		UPDATE payment_methods
		SET name = $3, name_urdu = $4, is_active = $5, sort_order = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		method.CompanyID,
		method.ID,
		method.Name,
		method.NameUrdu,
		method.IsActive,
		method.SortOrder,
		method.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentMethodNotFound
	}

	return nil
}

// Delete removes a payment method.
func (r *PaymentMethodRepository) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM payment_methods WHERE company_id = $1 AND id = $2`,
		companyID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentMethodNotFound
	}

	return nil
}

// List lists a company's payment methods in display order.
func (r *PaymentMethodRepository) List(ctx context.Context, companyID string, limit, offset int) ([]*domain.PaymentMethod, error) {
	query := `
		SELECT ` + paymentMethodColumns + `
		FROM payment_methods
		WHERE company_id = $1
		ORDER BY sort_order ASC, name ASC
		LIMIT $2 OFFSET $3
	`

	limit, offset = domain.ValidatePagination(limit, offset)

	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	methods := make([]*domain.PaymentMethod, 0)
	for rows.Next() {
		method, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	return methods, rows.Err()
}

func scanPaymentMethod(row pgx.Row) (*domain.PaymentMethod, error) {
	var method domain.PaymentMethod

	err := row.Scan(
		&method.ID,
		&method.CompanyID,
		&method.Name,
		&method.NameUrdu,
		&method.IsActive,
		&method.SortOrder,
		&method.CreatedAt,
		&method.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPaymentMethodNotFound
	}
	if err != nil {
		return nil, err
	}

	return &method, nil
}
