package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPolicyFor_Customer(t *testing.T) {
	policy := PolicyFor(PartyTypeCustomer)

	tests := []struct {
		name      string
		balance   decimal.Decimal
		entryType EntryType
		amount    decimal.Decimal
		want      decimal.Decimal
	}{
		{
			name:      "debit increases receivable",
			balance:   decimal.NewFromInt(100),
			entryType: EntryTypeDebit,
			amount:    decimal.NewFromInt(50),
			want:      decimal.NewFromInt(150),
		},
		{
			name:      "credit decreases receivable",
			balance:   decimal.NewFromInt(100),
			entryType: EntryTypeCredit,
			amount:    decimal.NewFromInt(30),
			want:      decimal.NewFromInt(70),
		},
		{
			name:      "credit past zero goes negative",
			balance:   decimal.NewFromInt(20),
			entryType: EntryTypeCredit,
			amount:    decimal.NewFromInt(50),
			want:      decimal.NewFromInt(-30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Apply(tt.balance, tt.entryType, tt.amount)
			if !got.Equal(tt.want) {
				t.Errorf("Apply() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPolicyFor_Supplier(t *testing.T) {
	policy := PolicyFor(PartyTypeSupplier)

	tests := []struct {
		name      string
		balance   decimal.Decimal
		entryType EntryType
		amount    decimal.Decimal
		want      decimal.Decimal
	}{
		{
			name:      "credit increases payable",
			balance:   decimal.NewFromInt(100),
			entryType: EntryTypeCredit,
			amount:    decimal.NewFromInt(50),
			want:      decimal.NewFromInt(150),
		},
		{
			name:      "debit decreases payable",
			balance:   decimal.NewFromInt(100),
			entryType: EntryTypeDebit,
			amount:    decimal.NewFromInt(40),
			want:      decimal.NewFromInt(60),
		},
		{
			name:      "debit past zero goes negative",
			balance:   decimal.NewFromInt(10),
			entryType: EntryTypeDebit,
			amount:    decimal.NewFromInt(25),
			want:      decimal.NewFromInt(-15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Apply(tt.balance, tt.entryType, tt.amount)
			if !got.Equal(tt.want) {
				t.Errorf("Apply() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPolicies_MirrorEachOther(t *testing.T) {
	customer := PolicyFor(PartyTypeCustomer)
	supplier := PolicyFor(PartyTypeSupplier)

	balance := decimal.NewFromInt(500)
	amount := decimal.NewFromInt(75)

	for _, et := range []EntryType{EntryTypeDebit, EntryTypeCredit} {
		c := customer.Apply(balance, et, amount)
		s := supplier.Apply(balance, et, amount)

		cDelta := c.Sub(balance)
		sDelta := s.Sub(balance)

		if !cDelta.Equal(sDelta.Neg()) {
			t.Errorf("%s: customer delta %s is not the negation of supplier delta %s", et, cDelta, sDelta)
		}
	}
}

func TestNormalizeOpeningBalance(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		balanceType BalanceType
		want        decimal.Decimal
	}{
		{
			name:        "receivable stays positive",
			balance:     decimal.NewFromInt(100),
			balanceType: BalanceTypeReceivable,
			want:        decimal.NewFromInt(100),
		},
		{
			name:        "receivable negative input becomes positive",
			balance:     decimal.NewFromInt(-100),
			balanceType: BalanceTypeReceivable,
			want:        decimal.NewFromInt(100),
		},
		{
			name:        "payable becomes negative",
			balance:     decimal.NewFromInt(100),
			balanceType: BalanceTypePayable,
			want:        decimal.NewFromInt(-100),
		},
		{
			name:        "payable negative input stays negative",
			balance:     decimal.NewFromInt(-100),
			balanceType: BalanceTypePayable,
			want:        decimal.NewFromInt(-100),
		},
		{
			name:        "zero is zero either way",
			balance:     decimal.Zero,
			balanceType: BalanceTypePayable,
			want:        decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeOpeningBalance(tt.balance, tt.balanceType)
			if !got.Equal(tt.want) {
				t.Errorf("NormalizeOpeningBalance() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParty_Policy(t *testing.T) {
	customer := &Party{Type: PartyTypeCustomer}
	supplier := &Party{Type: PartyTypeSupplier}

	balance := decimal.NewFromInt(100)
	amount := decimal.NewFromInt(10)

	if got := customer.Policy().Apply(balance, EntryTypeDebit, amount); !got.Equal(decimal.NewFromInt(110)) {
		t.Errorf("customer debit: got %s, want 110", got)
	}
	if got := supplier.Policy().Apply(balance, EntryTypeDebit, amount); !got.Equal(decimal.NewFromInt(90)) {
		t.Errorf("supplier debit: got %s, want 90", got)
	}
}
