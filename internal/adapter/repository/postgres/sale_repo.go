package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/usecase"
)

// SaleRepository implements usecase.SaleRepository. Receipt items are
// stored as JSONB.
type SaleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

const saleColumns = `id, company_id, serial_number, supplier_name, supplier_urdu,
	vehicle_number, seller_name, seller_urdu, seller_number, party_id, items,
	total_items, subtotal, discount, sales_tax, total_amount, payment_method_id,
	payment_method, amount_paid, date, created_at, updated_at`

// Create inserts a new sale.
func (r *SaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error {
	pgxTx := tx.(*Tx).PgxTx()

	args, err := saleArgs(sale)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22)
	`

	_, err = pgxTx.Exec(ctx, query, args...)

	return err
}

// GetByID retrieves a sale by ID within a company.
func (r *SaleRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE company_id = $1 AND id = $2
	`

	return scanSale(r.pool.QueryRow(ctx, query, companyID, id))
}

// Update rewrites a sale's mutable fields. The serial number never
// changes after creation.
func (r *SaleRepository) Update(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error {
	pgxTx := tx.(*Tx).PgxTx()

	args, err := saleArgs(sale)
	if err != nil {
		return err
	}

	query := `
		UPDATE sales
		SET supplier_name = $4, supplier_urdu = $5, vehicle_number = $6,
			seller_name = $7, seller_urdu = $8, seller_number = $9, party_id = $10,
			items = $11, total_items = $12, subtotal = $13, discount = $14,
			sales_tax = $15, total_amount = $16, payment_method_id = $17,
			payment_method = $18, amount_paid = $19, date = $20, updated_at = $22
		WHERE company_id = $2 AND id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}

	return nil
}

// Delete removes a sale.
func (r *SaleRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM sales WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}

	return nil
}

// List lists a company's sales, newest business date first.
func (r *SaleRepository) List(ctx context.Context, companyID string, limit, offset int) ([]*domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
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

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}

	return sales, rows.Err()
}

// NextSerial allocates the next per-company receipt number inside the
// sale's transaction, so a rollback releases it together with the sale.
func (r *SaleRepository) NextSerial(ctx context.Context, tx usecase.Transaction, companyID string) (int64, error) {
	return nextSerial(ctx, tx, companyID, "sale")
}

func nextSerial(ctx context.Context, tx usecase.Transaction, companyID, kind string) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO serial_counters (company_id, kind, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, kind) DO UPDATE
		SET value = serial_counters.value + 1
		RETURNING value
	`

	var value int64
	err := pgxTx.QueryRow(ctx, query, companyID, kind).Scan(&value)

	return value, err
}

func saleArgs(sale *domain.Sale) ([]any, error) {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return nil, err
	}

	return []any{
		sale.ID,
		sale.CompanyID,
		sale.SerialNumber,
		sale.SupplierName,
		sale.SupplierUrdu,
		sale.VehicleNumber,
		sale.SellerName,
		sale.SellerUrdu,
		sale.SellerNumber,
		sale.PartyID,
		items,
		sale.TotalItems,
		decimalToNumeric(sale.Subtotal),
		decimalToNumeric(sale.Discount),
		decimalToNumeric(sale.SalesTax),
		decimalToNumeric(sale.TotalAmount),
		sale.PaymentMethodID,
		sale.PaymentMethod,
		decimalToNumeric(sale.AmountPaid),
		sale.Date,
		sale.CreatedAt,
		sale.UpdatedAt,
	}, nil
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var (
		sale        domain.Sale
		items       []byte
		subtotal    pgtype.Numeric
		discount    pgtype.Numeric
		salesTax    pgtype.Numeric
		totalAmount pgtype.Numeric
		amountPaid  pgtype.Numeric
	)

	err := row.Scan(
		&sale.ID,
		&sale.CompanyID,
		&sale.SerialNumber,
		&sale.SupplierName,
		&sale.SupplierUrdu,
		&sale.VehicleNumber,
		&sale.SellerName,
		&sale.SellerUrdu,
		&sale.SellerNumber,
		&sale.PartyID,
		&items,
		&sale.TotalItems,
		&subtotal,
		&discount,
		&salesTax,
		&totalAmount,
		&sale.PaymentMethodID,
		&sale.PaymentMethod,
		&amountPaid,
		&sale.Date,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &sale.Items); err != nil {
		return nil, err
	}

	sale.Subtotal = numericToDecimal(subtotal)
	sale.Discount = numericToDecimal(discount)
	sale.SalesTax = numericToDecimal(salesTax)
	sale.TotalAmount = numericToDecimal(totalAmount)
	sale.AmountPaid = numericToDecimal(amountPaid)

	return &sale, nil
}
