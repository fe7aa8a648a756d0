package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem is one line on a retail receipt.
type SaleItem struct {
	Description     string          `json:"description"`
	DescriptionUrdu string          `json:"description_urdu"`
	Unit            string          `json:"unit"`
	Quantity        decimal.Decimal `json:"quantity"`
	RatePerUnit     decimal.Decimal `json:"rate_per_unit"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// Sale is a retail receipt against a customer party. The total amount is
// what the customer owes; the amount paid is settled immediately through
// the selected payment method.
type Sale struct {
	ID              string
	CompanyID       string
	SerialNumber    int64
	SupplierName    string
	SupplierUrdu    string
	VehicleNumber   string
	SellerName      string
	SellerUrdu      string
	SellerNumber    string
	PartyID         string
	Items           []SaleItem
	TotalItems      int
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	SalesTax        decimal.Decimal
	TotalAmount     decimal.Decimal
	PaymentMethodID string
	PaymentMethod   string
	AmountPaid      decimal.Decimal
	Date            time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RecomputeTotals derives line totals, the subtotal and the grand total
// from the items, discount and sales tax.
func (s *Sale) RecomputeTotals() {
	subtotal := decimal.Zero
	for i := range s.Items {
		s.Items[i].LineTotal = s.Items[i].Quantity.Mul(s.Items[i].RatePerUnit)
		subtotal = subtotal.Add(s.Items[i].LineTotal)
	}
	s.TotalItems = len(s.Items)
	s.Subtotal = subtotal
	s.TotalAmount = subtotal.Sub(s.Discount).Add(s.SalesTax)
}

// BankAccount returns the mirror-ledger account the paid amount settles
// into, or a zero reference when no payment method was selected.
func (s *Sale) BankAccount() BankAccountRef {
	if s.PaymentMethod == "" {
		return BankAccountRef{}
	}
	return BankAccountRef{PaymentMethod: s.PaymentMethod}
}
