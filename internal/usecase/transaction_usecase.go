package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
)

// TransactionUseCase handles manual ledger entries. Derived entries are
// written by the source document use cases; manual entries are the only
// ones created and edited directly.
type TransactionUseCase struct {
	txManager TransactionManager
	partyRepo PartyRepository
	txRepo    TransactionRepository
	auditRepo AuditRepository
	recalc    *RecalcUseCase
	idGen     IDGenerator
	retrier   Retrier
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	partyRepo PartyRepository,
	txRepo TransactionRepository,
	auditRepo AuditRepository,
	recalc *RecalcUseCase,
	idGen IDGenerator,
	retrier Retrier,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager: txManager,
		partyRepo: partyRepo,
		txRepo:    txRepo,
		auditRepo: auditRepo,
		recalc:    recalc,
		idGen:     idGen,
		retrier:   retrier,
	}
}

// auditEntry records a manual-entry mutation in the same transaction as
// the write it describes.
func (uc *TransactionUseCase) auditEntry(ctx context.Context, tx Transaction, action domain.AuditAction, before, after *domain.LedgerTransaction) error {
	var companyID, resourceID string
	switch {
	case after != nil:
		companyID, resourceID = after.CompanyID, after.ID
	case before != nil:
		companyID, resourceID = before.CompanyID, before.ID
	}

	return uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		CompanyID:    companyID,
		Action:       string(action),
		ResourceType: "transaction",
		ResourceID:   resourceID,
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}

// CreateTransactionInput represents input for a manual ledger entry.
type CreateTransactionInput struct {
	CompanyID   string
	PartyID     string
	Date        time.Time
	Description string
	Type        domain.EntryType
	Amount      decimal.Decimal
}

// CreateTransaction records a manual entry and replays the party's ledger.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.LedgerTransaction, error) {
	if input.PartyID == "" {
		return nil, domain.ErrPartyRequired
	}
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidEntryType
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}

	now := time.Now().UTC()
	txn := &domain.LedgerTransaction{
		ID:          uc.idGen.Generate(),
		CompanyID:   input.CompanyID,
		PartyID:     input.PartyID,
		Date:        input.Date,
		Description: input.Description,
		Type:        input.Type,
		Amount:      input.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	txn.Source = domain.ManualSource(txn.ID)

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		party, err := uc.partyRepo.GetByIDForUpdate(ctx, tx, input.CompanyID, input.PartyID)
		if err != nil {
			return err
		}

		if err := uc.txRepo.Create(ctx, tx, txn); err != nil {
			return err
		}

		if err := uc.auditEntry(ctx, tx, domain.AuditActionTransactionCreate, nil, txn); err != nil {
			return err
		}

		if _, err := uc.recalc.RecalcPartyTx(ctx, tx, party); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return uc.txRepo.GetByID(ctx, input.CompanyID, txn.ID)
}

// GetTransaction retrieves a ledger entry by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, companyID, id string) (*domain.LedgerTransaction, error) {
	return uc.txRepo.GetByID(ctx, companyID, id)
}

// ListTransactionsInput represents input for listing a party's entries.
type ListTransactionsInput struct {
	CompanyID string
	PartyID   string
	Limit     int
	Offset    int
}

// ListTransactions lists a party's ledger entries in replay order.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.LedgerTransaction, error) {
	if input.PartyID == "" {
		return nil, domain.ErrPartyRequired
	}
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txRepo.ListByPartyPage(ctx, input.CompanyID, input.PartyID, limit, offset)
}

// UpdateTransactionInput represents input for editing a manual entry.
type UpdateTransactionInput struct {
	CompanyID   string
	ID          string
	Date        *time.Time
	Description *string
	Type        domain.EntryType
	Amount      *decimal.Decimal
}

// UpdateTransaction edits a manual entry and replays the party's ledger.
// A changed date can reorder the entry relative to its neighbours, so every
// running balance after the earliest affected position is rebuilt.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*domain.LedgerTransaction, error) {
	txn, err := uc.txRepo.GetByID(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}
	before := *txn

	if input.Date != nil {
		txn.Date = *input.Date
	}
	if input.Description != nil {
		txn.Description = *input.Description
	}
	if input.Type != "" {
		if !input.Type.IsValid() {
			return nil, domain.ErrInvalidEntryType
		}
		txn.Type = input.Type
	}
	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
		txn.Amount = *input.Amount
	}
	txn.UpdatedAt = time.Now().UTC()

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		party, err := uc.partyRepo.GetByIDForUpdate(ctx, tx, input.CompanyID, txn.PartyID)
		if err != nil {
			return err
		}

		if err := uc.txRepo.Update(ctx, tx, txn); err != nil {
			return err
		}

		if err := uc.auditEntry(ctx, tx, domain.AuditActionTransactionUpdate, &before, txn); err != nil {
			return err
		}

		if _, err := uc.recalc.RecalcPartyTx(ctx, tx, party); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return uc.txRepo.GetByID(ctx, input.CompanyID, input.ID)
}

// DeleteTransaction removes an entry and replays the party's ledger.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, companyID, id string) error {
	txn, err := uc.txRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}

	return uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		party, err := uc.partyRepo.GetByIDForUpdate(ctx, tx, companyID, txn.PartyID)
		if err != nil {
			return err
		}

		if err := uc.txRepo.Delete(ctx, tx, companyID, id); err != nil {
			return err
		}

		if err := uc.auditEntry(ctx, tx, domain.AuditActionTransactionDelete, txn, nil); err != nil {
			return err
		}

		if _, err := uc.recalc.RecalcPartyTx(ctx, tx, party); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}
