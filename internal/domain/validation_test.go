package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidatePartyName(t *testing.T) {
	t.Parallel()

	if err := ValidatePartyName("Karachi Wholesale Traders"); err != nil {
		t.Fatalf("expected valid name, got %v", err)
	}

	if err := ValidatePartyName("   "); !errors.Is(err, ErrInvalidPartyName) {
		t.Fatalf("blank name: err = %v, want ErrInvalidPartyName", err)
	}

	tooLong := strings.Repeat("x", MaxPartyNameLength+1)
	if err := ValidatePartyName(tooLong); !errors.Is(err, ErrInvalidPartyName) {
		t.Fatalf("overlong name: err = %v, want ErrInvalidPartyName", err)
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.NewFromFloat(1250.75)); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	// Zero is legal: a bill can net out to nothing.
	if err := ValidateAmount(decimal.Zero); err != nil {
		t.Fatalf("zero amount: %v", err)
	}

	if err := ValidateAmount(decimal.NewFromInt(-1)); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("negative amount: err = %v, want ErrNegativeAmount", err)
	}

	huge, _ := decimal.NewFromString(MaxEntryAmount)
	if err := ValidateAmount(huge.Add(decimal.NewFromInt(1))); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("oversized amount: err = %v, want ErrAmountTooLarge", err)
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"owner@shop.pk", "Accounts.Dept@example.co"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Fatalf("ValidateEmail(%q) = %v", email, err)
		}
	}

	invalid := []string{"", "no-at-sign", "a@b", "spaces in@addr.com"}
	for _, email := range invalid {
		if err := ValidateEmail(email); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("ValidateEmail(%q) = %v, want ErrInvalidEmail", email, err)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if err := ValidatePassword("Integration1"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}

	if err := ValidatePassword("short"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("short password: err = %v, want ErrPasswordTooWeak", err)
	}

	if err := ValidatePassword(strings.Repeat("p", MaxPasswordLength+1)); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("overlong password: err = %v, want ErrPasswordTooWeak", err)
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 50, 0},
		{-5, -10, 50, 0},
		{25, 100, 25, 100},
		{5000, 0, 1000, 0},
	}

	for _, tt := range tests {
		limit, offset := ValidatePagination(tt.limit, tt.offset)
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Fatalf("ValidatePagination(%d, %d) = (%d, %d), want (%d, %d)",
				tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.wantOffset)
		}
	}
}
