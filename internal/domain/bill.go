package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the lifecycle state of a bill. A draft acts as the
// company's template; completed bills are final.
type BillStatus string

const (
	BillStatusDraft     BillStatus = "draft"
	BillStatusCompleted BillStatus = "completed"
)

// IsValid checks if the bill status is known.
func (s BillStatus) IsValid() bool {
	return s == BillStatusDraft || s == BillStatusCompleted
}

// BillField describes one dynamic field on a bill layout.
type BillField struct {
	Name      string `json:"name"`
	NameUrdu  string `json:"name_urdu"`
	FieldType string `json:"field_type"`
	Required  bool   `json:"required"`
	Order     int    `json:"order"`
}

// BillTemplateSettings carries the printable-header configuration a
// company attaches to its bills.
type BillTemplateSettings struct {
	CompanyName     string `json:"company_name"`
	CompanyNameUrdu string `json:"company_name_urdu"`
	BusinessType    string `json:"business_type"`
	Address         string `json:"address"`
	AddressUrdu     string `json:"address_urdu"`
	Trademark       string `json:"trademark"`
}

// Bill is a supplier consignment receipt. Monetary expense lines are kept
// by name; descriptive attributes (vehicle number, item name) live apart so
// totals never mix them in.
type Bill struct {
	ID            string
	CompanyID     string
	SerialNumber  string
	VoucherNumber string
	SupplierName  string
	SupplierUrdu  string
	PartyID       string
	Date          time.Time
	ExpenseLines  map[string]decimal.Decimal
	Attributes    map[string]string
	ExpenseFields []BillField
	SalesFields   []BillField
	Template      BillTemplateSettings
	RawSale       decimal.Decimal
	// NetSale and TotalAmount are recomputed from the expense lines on
	// every write.
	NetSale     decimal.Decimal
	TotalAmount decimal.Decimal
	Status      BillStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TotalExpenses sums every monetary expense line.
func (b *Bill) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b.ExpenseLines {
		total = total.Add(v)
	}
	return total
}

// RecomputeTotals refreshes TotalAmount and NetSale from the expense lines
// and the raw sale figure.
func (b *Bill) RecomputeTotals() {
	b.TotalAmount = b.TotalExpenses()
	b.NetSale = b.RawSale.Sub(b.TotalAmount)
}
