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

// BillRepository implements usecase.BillRepository. Dynamic expense lines,
// attributes, field layouts and template settings are stored as JSONB.
type BillRepository struct {
	pool *pgxpool.Pool
}

// NewBillRepository creates a new BillRepository.
func NewBillRepository(pool *pgxpool.Pool) *BillRepository {
	return &BillRepository{pool: pool}
}

const billColumns = `id, company_id, serial_number, voucher_number, supplier_name,
	supplier_urdu, party_id, date, expense_lines, attributes, expense_fields,
	sales_fields, template, raw_sale, net_sale, total_amount, status,
	created_at, updated_at`

// Create inserts a new bill.
func (r *BillRepository) Create(ctx context.Context, tx usecase.Transaction, bill *domain.Bill) error {
	pgxTx := tx.(*Tx).PgxTx()

	args, err := billArgs(bill)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err = pgxTx.Exec(ctx, query, args...)

	return err
}

// NextSerial reserves the next per-company bill serial.
func (r *BillRepository) NextSerial(ctx context.Context, tx usecase.Transaction, companyID string) (int64, error) {
	return nextSerial(ctx, tx, companyID, "bill")
}

// GetByID retrieves a bill by ID within a company.
func (r *BillRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE company_id = $1 AND id = $2
	`

	return scanBill(r.pool.QueryRow(ctx, query, companyID, id))
}

// Update rewrites a bill's mutable fields.
func (r *BillRepository) Update(ctx context.Context, tx usecase.Transaction, bill *domain.Bill) error {
	pgxTx := tx.(*Tx).PgxTx()

	args, err := billArgs(bill)
	if err != nil {
		return err
	}

	query := `
		UPDATE bills
		SET serial_number = $3, voucher_number = $4, supplier_name = $5,
			supplier_urdu = $6, party_id = $7, date = $8, expense_lines = $9,
			attributes = $10, expense_fields = $11, sales_fields = $12,
			template = $13, raw_sale = $14, net_sale = $15, total_amount = $16,
			status = $17, updated_at = $19
		WHERE company_id = $2 AND id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBillNotFound
	}

	return nil
}

// Delete removes a bill.
func (r *BillRepository) Delete(ctx context.Context, tx usecase.Transaction, companyID, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM bills WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBillNotFound
	}

	return nil
}

// List lists a company's bills, newest business date first. An empty
// status matches both drafts and completed bills.
func (r *BillRepository) List(ctx context.Context, companyID string, status domain.BillStatus, limit, offset int) ([]*domain.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY date DESC, created_at DESC
		LIMIT $3 OFFSET $4
	`

	limit, offset = domain.ValidatePagination(limit, offset)

	rows, err := r.pool.Query(ctx, query, companyID, string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]*domain.Bill, 0)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}

	return bills, rows.Err()
}

// GetLatestTemplate returns the template settings of the company's most
// recently updated bill, used to prefill the next one.
func (r *BillRepository) GetLatestTemplate(ctx context.Context, companyID string) (*domain.BillTemplateSettings, error) {
	query := `
		SELECT template
		FROM bills
		WHERE company_id = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var raw []byte
	err := r.pool.QueryRow(ctx, query, companyID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.BillTemplateSettings{}, nil
	}
	if err != nil {
		return nil, err
	}

	var template domain.BillTemplateSettings
	if err := json.Unmarshal(raw, &template); err != nil {
		return nil, err
	}

	return &template, nil
}

func billArgs(bill *domain.Bill) ([]any, error) {
	expenseLines, err := json.Marshal(bill.ExpenseLines)
	if err != nil {
		return nil, err
	}
	attributes, err := json.Marshal(bill.Attributes)
	if err != nil {
		return nil, err
	}
	expenseFields, err := json.Marshal(bill.ExpenseFields)
	if err != nil {
		return nil, err
	}
	salesFields, err := json.Marshal(bill.SalesFields)
	if err != nil {
		return nil, err
	}
	template, err := json.Marshal(bill.Template)
	if err != nil {
		return nil, err
	}

	return []any{
		bill.ID,
		bill.CompanyID,
		bill.SerialNumber,
		bill.VoucherNumber,
		bill.SupplierName,
		bill.SupplierUrdu,
		bill.PartyID,
		bill.Date,
		expenseLines,
		attributes,
		expenseFields,
		salesFields,
		template,
		decimalToNumeric(bill.RawSale),
		decimalToNumeric(bill.NetSale),
		decimalToNumeric(bill.TotalAmount),
		bill.Status,
		bill.CreatedAt,
		bill.UpdatedAt,
	}, nil
}

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var (
		bill          domain.Bill
		expenseLines  []byte
		attributes    []byte
		expenseFields []byte
		salesFields   []byte
		template      []byte
		rawSale       pgtype.Numeric
		netSale       pgtype.Numeric
		totalAmount   pgtype.Numeric
	)

	err := row.Scan(
		&bill.ID,
		&bill.CompanyID,
		&bill.SerialNumber,
		&bill.VoucherNumber,
		&bill.SupplierName,
		&bill.SupplierUrdu,
		&bill.PartyID,
		&bill.Date,
		&expenseLines,
		&attributes,
		&expenseFields,
		&salesFields,
		&template,
		&rawSale,
		&netSale,
		&totalAmount,
		&bill.Status,
		&bill.CreatedAt,
		&bill.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBillNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(expenseLines, &bill.ExpenseLines); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attributes, &bill.Attributes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(expenseFields, &bill.ExpenseFields); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(salesFields, &bill.SalesFields); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(template, &bill.Template); err != nil {
		return nil, err
	}

	bill.RawSale = numericToDecimal(rawSale)
	bill.NetSale = numericToDecimal(netSale)
	bill.TotalAmount = numericToDecimal(totalAmount)

	return &bill, nil
}
