package domain

import (
	"encoding/json"
	"time"
)

// AuditLog represents an audit trail entry for compliance and debugging
type AuditLog struct {
	ID           string
	CompanyID    string // Which company performed the action
	Action       string // What action (party.create, sale.create, etc.)
	ResourceType string // Type of resource (party, transaction, bill, sale)
	ResourceID   string // ID of the resource
	IPAddress    string // Client IP address
	UserAgent    string // Client user agent
	RequestID    string // Request ID for tracing
	BeforeState  JSON   // State before the action
	AfterState   JSON   // State after the action
	Status       string // success, failure, error
	ErrorMessage string // If status=error, the error message
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	// Party actions
	AuditActionPartyCreate AuditAction = "party.create"
	AuditActionPartyUpdate AuditAction = "party.update"
	AuditActionPartyDelete AuditAction = "party.delete"

	// Ledger transaction actions
	AuditActionTransactionCreate AuditAction = "transaction.create"
	AuditActionTransactionUpdate AuditAction = "transaction.update"
	AuditActionTransactionDelete AuditAction = "transaction.delete"

	// Source document actions
	AuditActionBillCreate     AuditAction = "bill.create"
	AuditActionBillUpdate     AuditAction = "bill.update"
	AuditActionBillDelete     AuditAction = "bill.delete"
	AuditActionSaleCreate     AuditAction = "sale.create"
	AuditActionSaleUpdate     AuditAction = "sale.update"
	AuditActionSaleDelete     AuditAction = "sale.delete"
	AuditActionRecoveryCreate AuditAction = "recovery.create"
	AuditActionRecoveryUpdate AuditAction = "recovery.update"
	AuditActionRecoveryDelete AuditAction = "recovery.delete"
	AuditActionExpenseCreate  AuditAction = "expense.create"
	AuditActionExpenseUpdate  AuditAction = "expense.update"
	AuditActionExpenseDelete  AuditAction = "expense.delete"

	// Bank actions
	AuditActionBankTxCreate AuditAction = "banktx.create"
	AuditActionBankTxDelete AuditAction = "banktx.delete"

	// Auth actions
	AuditActionCompanyLogin AuditAction = "company.login"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
	AuditStatusError   AuditStatus = "error"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	CompanyID    string
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
