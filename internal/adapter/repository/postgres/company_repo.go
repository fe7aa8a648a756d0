package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/umair/tradeledger/internal/domain"
)

// CompanyRepository implements company persistence.
type CompanyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository creates a new company repository.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

const companyColumns = `id, username, email, shop_name, shop_name_urdu,
	hashed_password, active, created_at, updated_at`

// Create inserts a new company.
func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		company.ID,
		company.Username,
		company.Email,
		company.ShopName,
		company.ShopNameUrdu,
		company.HashedPassword,
		company.Active,
		company.CreatedAt,
		company.UpdatedAt,
	)

	return err
}

// GetByID retrieves a company by ID.
func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE id = $1
	`

	return scanCompany(r.pool.QueryRow(ctx, query, id))
}

// GetByUsername retrieves a company by its login username.
func (r *CompanyRepository) GetByUsername(ctx context.Context, username string) (*domain.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE username = $1
	`

	return scanCompany(r.pool.QueryRow(ctx, query, username))
}

// Update updates a company.
func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	query := `
		UPDATE companies
		SET email = $2, shop_name = $3, shop_name_urdu = $4,
			hashed_password = $5, active = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		company.ID,
		company.Email,
		company.ShopName,
		company.ShopNameUrdu,
		company.HashedPassword,
		company.Active,
		company.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}

	return nil
}

// List lists companies with pagination.
func (r *CompanyRepository) List(ctx context.Context, limit, offset int) ([]*domain.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	limit, offset = domain.ValidatePagination(limit, offset)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]*domain.Company, 0)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}

	return companies, rows.Err()
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var company domain.Company

	err := row.Scan(
		&company.ID,
		&company.Username,
		&company.Email,
		&company.ShopName,
		&company.ShopNameUrdu,
		&company.HashedPassword,
		&company.Active,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}

	return &company, nil
}
