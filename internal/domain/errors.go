package domain

import "errors"

var (
	// Registry errors
	ErrPartyNotFound       = errors.New("ledger party not found")
	ErrTransactionNotFound = errors.New("ledger transaction not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrInvalidPartyType    = errors.New("party type must be customer or supplier")
	ErrInvalidBalanceType  = errors.New("balance type must be receivable or payable")

	// Ledger entry errors
	ErrInvalidEntryType = errors.New("entry type must be debit or credit")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrZeroAmount       = errors.New("amount must be positive")

	// Source event errors
	ErrBillNotFound      = errors.New("bill not found")
	ErrInvalidBillStatus = errors.New("bill status must be draft or completed")
	ErrBillCompleted     = errors.New("a completed bill cannot return to draft")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrRecoveryNotFound  = errors.New("recovery not found")
	ErrExpenseNotFound   = errors.New("expense entry not found")
	ErrPartyRequired     = errors.New("a linked party is required")

	// Bank mirror errors
	ErrBankNotFound          = errors.New("bank not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrInvalidBankTxType     = errors.New("bank transaction type must be deposit or withdraw")
	ErrBankTxNotFound        = errors.New("bank transaction not found")
	ErrAccountRefRequired    = errors.New("a bank or payment method reference is required")
)
