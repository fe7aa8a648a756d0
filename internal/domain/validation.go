package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidPartyName = errors.New("invalid party name")
	ErrAmountTooLarge   = errors.New("amount exceeds maximum allowed")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordTooWeak  = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MaxPartyNameLength = 255
	MinPartyNameLength = 1
	MaxEntryAmount     = "1000000000000" // 1 trillion
	MinPasswordLength  = 8
	MaxPasswordLength  = 128
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidatePartyName validates a party or bank display name.
func ValidatePartyName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinPartyNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidPartyName)
	}

	if len(name) > MaxPartyNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidPartyName, MaxPartyNameLength)
	}

	return nil
}

// ValidateAmount validates a ledger or bank amount. Amounts are always
// stored non-negative; direction comes from the entry type.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxEntryAmount)
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
