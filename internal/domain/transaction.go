package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the direction of a ledger entry.
type EntryType string

const (
	EntryTypeDebit  EntryType = "debit"
	EntryTypeCredit EntryType = "credit"
)

// IsValid checks if the entry type is known.
func (t EntryType) IsValid() bool {
	return t == EntryTypeDebit || t == EntryTypeCredit
}

// SourceType identifies the business event a derived entry came from.
type SourceType string

const (
	SourceTypeBill     SourceType = "bill"
	SourceTypeSale     SourceType = "sale"
	SourceTypeRecovery SourceType = "recovery"
	SourceTypeExpense  SourceType = "expense"
	SourceTypeManual   SourceType = "manual"
)

// SourceRef tags a derived entry back to its originating event.
// The Key is a stable synthetic identifier, so regenerating entries on an
// event update upserts rather than producing duplicates.
type SourceRef struct {
	Type SourceType
	ID   string
	Key  string
}

// SourceKey builds the stable synthetic key for a derived entry.
// role names the entry within its source, e.g. "net", "total", "paid".
func SourceKey(sourceType SourceType, sourceID, role string) string {
	return fmt.Sprintf("%s:%s:%s", sourceType, sourceID, role)
}

// ManualSource returns the source reference for an operator-entered
// transaction identified by its own id.
func ManualSource(txID string) SourceRef {
	return SourceRef{
		Type: SourceTypeManual,
		ID:   txID,
		Key:  SourceKey(SourceTypeManual, txID, "entry"),
	}
}

// LedgerTransaction is a single debit or credit entry against a party.
// A transaction belongs to exactly one party; the source reference is a
// weak link used only to regenerate entries when the event changes.
type LedgerTransaction struct {
	ID          string
	CompanyID   string
	PartyID     string
	Source      SourceRef
	Date        time.Time
	Description string
	Type        EntryType
	Amount      decimal.Decimal
	// BalanceAfter reflects replay order at the last recalculation; it is
	// not reliable between a write and the next recalc.
	BalanceAfter decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
