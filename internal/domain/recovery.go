package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recovery is a cash collection against a party. When a party is linked it
// always produces a party debit entry alongside the bank deposit; the
// adapter enforces that pairing.
type Recovery struct {
	ID              string
	CompanyID       string
	SerialNumber    int64
	PartyID         string
	CustomerName    string
	CustomerUrdu    string
	VehicleNumber   string
	CustomerPhone   string
	Amount          decimal.Decimal
	PaymentMethod   string
	BankID          string
	Description     string
	DescriptionUrdu string
	Date            time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
