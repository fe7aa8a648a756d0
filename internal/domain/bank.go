package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bank is a cash account in the mirror ledger.
type Bank struct {
	ID             string
	CompanyID      string
	Name           string
	NameUrdu       string
	AccountNumber  string
	AccountTitle   string
	BranchName     string
	OpeningBalance decimal.Decimal
	// CurrentBalance is derived; only the bank recalculation writes it.
	CurrentBalance decimal.Decimal
	IsActive       bool
	AdminManaged   bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PaymentMethod is a named cash channel (cash box, wallet, bank card).
// Payment-method accounts replay from a zero opening balance.
type PaymentMethod struct {
	ID        string
	CompanyID string
	Name      string
	NameUrdu  string
	IsActive  bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName prefers the Urdu name when present.
func (m *PaymentMethod) DisplayName() string {
	if m.NameUrdu != "" {
		return m.NameUrdu
	}
	return m.Name
}

// BankTxType is the direction of a bank mirror entry.
type BankTxType string

const (
	BankTxDeposit  BankTxType = "deposit"
	BankTxWithdraw BankTxType = "withdraw"
)

// IsValid checks if the bank transaction type is known.
func (t BankTxType) IsValid() bool {
	return t == BankTxDeposit || t == BankTxWithdraw
}

// BankAccountRef addresses a mirror-ledger account: either a bank by id or
// a payment method by name. Exactly one side is set.
type BankAccountRef struct {
	BankID        string
	PaymentMethod string
}

// IsZero reports whether the reference addresses nothing.
func (r BankAccountRef) IsZero() bool {
	return r.BankID == "" && r.PaymentMethod == ""
}

// BankTransaction is a deposit or withdrawal in the mirror ledger.
// It tracks cash position, an independent balance domain from the party
// ledger.
type BankTransaction struct {
	ID              string
	CompanyID       string
	Account         BankAccountRef
	Source          SourceRef
	Date            time.Time
	Type            BankTxType
	Amount          decimal.Decimal
	Description     string
	DescriptionUrdu string
	// BalanceAfter is rewritten by the bank recalculation on every write
	// or delete for the same account.
	BalanceAfter decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Signed returns the amount with the deposit/withdraw sign applied.
func (t *BankTransaction) Signed() decimal.Decimal {
	if t.Type == BankTxWithdraw {
		return t.Amount.Neg()
	}
	return t.Amount
}
