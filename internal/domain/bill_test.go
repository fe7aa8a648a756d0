package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBill_RecomputeTotals(t *testing.T) {
	tests := []struct {
		name          string
		rawSale       decimal.Decimal
		expenseLines  map[string]decimal.Decimal
		wantTotal     decimal.Decimal
		wantNetSale   decimal.Decimal
	}{
		{
			name:    "expenses subtract from raw sale",
			rawSale: decimal.NewFromInt(1000),
			expenseLines: map[string]decimal.Decimal{
				"commission": decimal.NewFromInt(50),
				"mazdoori":   decimal.NewFromInt(30),
			},
			wantTotal:   decimal.NewFromInt(80),
			wantNetSale: decimal.NewFromInt(920),
		},
		{
			name:         "no expenses",
			rawSale:      decimal.NewFromInt(500),
			expenseLines: map[string]decimal.Decimal{},
			wantTotal:    decimal.Zero,
			wantNetSale:  decimal.NewFromInt(500),
		},
		{
			name:    "expenses exceed raw sale",
			rawSale: decimal.NewFromInt(100),
			expenseLines: map[string]decimal.Decimal{
				"cargo": decimal.NewFromInt(150),
			},
			wantTotal:   decimal.NewFromInt(150),
			wantNetSale: decimal.NewFromInt(-50),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Bill{
				RawSale:      tt.rawSale,
				ExpenseLines: tt.expenseLines,
			}
			b.RecomputeTotals()

			if !b.TotalAmount.Equal(tt.wantTotal) {
				t.Errorf("TotalAmount = %s, want %s", b.TotalAmount, tt.wantTotal)
			}
			if !b.NetSale.Equal(tt.wantNetSale) {
				t.Errorf("NetSale = %s, want %s", b.NetSale, tt.wantNetSale)
			}
		})
	}
}

func TestSourceKey(t *testing.T) {
	tests := []struct {
		name       string
		sourceType SourceType
		sourceID   string
		role       string
		want       string
	}{
		{"bill net", SourceTypeBill, "b1", "net", "bill:b1:net"},
		{"sale total", SourceTypeSale, "s9", "total", "sale:s9:total"},
		{"sale paid", SourceTypeSale, "s9", "paid", "sale:s9:paid"},
		{"recovery", SourceTypeRecovery, "r2", "recovery", "recovery:r2:recovery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SourceKey(tt.sourceType, tt.sourceID, tt.role); got != tt.want {
				t.Errorf("SourceKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpense_Total(t *testing.T) {
	e := &Expense{
		Travelling:  decimal.NewFromInt(10),
		Refreshment: decimal.NewFromInt(20),
		Cargo:       decimal.NewFromInt(30),
		Salary:      decimal.NewFromInt(40),
	}

	if got := e.Total(); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Total() = %s, want 100", got)
	}
}
