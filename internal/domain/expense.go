package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a daily expense record. It mirrors a withdrawal in the bank
// ledger when a payment method is selected; it never touches any party's
// ledger.
type Expense struct {
	ID              string
	CompanyID       string
	Date            time.Time
	Travelling      decimal.Decimal
	Refreshment     decimal.Decimal
	Cargo           decimal.Decimal
	Salary          decimal.Decimal
	PaymentMethod   string
	Description     string
	DescriptionUrdu string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Total sums every expense category.
func (e *Expense) Total() decimal.Decimal {
	return e.Travelling.Add(e.Refreshment).Add(e.Cargo).Add(e.Salary)
}
