package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyType identifies which side of the trade a party sits on.
type PartyType string

const (
	PartyTypeCustomer PartyType = "customer"
	PartyTypeSupplier PartyType = "supplier"
)

// IsValid checks if the party type is known.
func (t PartyType) IsValid() bool {
	return t == PartyTypeCustomer || t == PartyTypeSupplier
}

// BalanceType describes how a party's opening balance is interpreted.
// Receivable balances are stored positive (the business is owed),
// payable balances negative (the business owes).
type BalanceType string

const (
	BalanceTypeReceivable BalanceType = "receivable"
	BalanceTypePayable    BalanceType = "payable"
)

// IsValid checks if the balance type is known.
func (t BalanceType) IsValid() bool {
	return t == BalanceTypeReceivable || t == BalanceTypePayable
}

// Party represents a customer or supplier with a running ledger balance.
type Party struct {
	ID             string
	CompanyID      string
	Name           string
	NameUrdu       string
	Type           PartyType
	Phone          string
	Address        string
	OpeningBalance decimal.Decimal
	BalanceType    BalanceType
	// CurrentBalance is derived; only the recalculation engine writes it.
	CurrentBalance decimal.Decimal
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizeOpeningBalance applies the balance-type sign convention:
// payable balances are stored negative, receivable positive.
func NormalizeOpeningBalance(balance decimal.Decimal, balanceType BalanceType) decimal.Decimal {
	if balanceType == BalanceTypePayable {
		return balance.Abs().Neg()
	}
	return balance.Abs()
}

// BalancePolicy decides how a ledger entry moves a party's balance.
// Exactly one policy applies to a party, selected by its type.
type BalancePolicy interface {
	Apply(balance decimal.Decimal, entryType EntryType, amount decimal.Decimal) decimal.Decimal
}

// PolicyFor selects the balance policy for a party type. Supplier parties
// invert the convention; every other type behaves like a customer.
func PolicyFor(t PartyType) BalancePolicy {
	if t == PartyTypeSupplier {
		return supplierPolicy{}
	}
	return customerPolicy{}
}

// customerPolicy: debit increases the balance (the customer owes more),
// credit decreases it (a payment was received).
type customerPolicy struct{}

func (customerPolicy) Apply(balance decimal.Decimal, entryType EntryType, amount decimal.Decimal) decimal.Decimal {
	if entryType == EntryTypeDebit {
		return balance.Add(amount)
	}
	return balance.Sub(amount)
}

// supplierPolicy: credit increases the balance (money collected on the
// supplier's behalf is owed to them), debit decreases it.
type supplierPolicy struct{}

func (supplierPolicy) Apply(balance decimal.Decimal, entryType EntryType, amount decimal.Decimal) decimal.Decimal {
	if entryType == EntryTypeCredit {
		return balance.Add(amount)
	}
	return balance.Sub(amount)
}

// Policy returns the balance policy for this party.
func (p *Party) Policy() BalancePolicy {
	return PolicyFor(p.Type)
}

// PartyFilter defines filters for listing parties.
type PartyFilter struct {
	CompanyID string
	Type      PartyType // empty matches both types
	Search    string    // matches name or urdu name
	Limit     int
	Offset    int
}
