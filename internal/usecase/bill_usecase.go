package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/infrastructure/metrics"
)

// BillUseCase handles supplier consignment bills and the ledger entries
// they derive. A completed bill for a supplier party with a positive net
// amount derives exactly one credit entry; everything else derives none.
type BillUseCase struct {
	txManager TransactionManager
	billRepo  BillRepository
	partyRepo PartyRepository
	txRepo    TransactionRepository
	recalc    *RecalcUseCase
	idGen     IDGenerator
	retrier   Retrier
	// cache holds the latest template per company; nil disables caching.
	cache Cache
}

// NewBillUseCase creates a new BillUseCase.
func NewBillUseCase(
	txManager TransactionManager,
	billRepo BillRepository,
	partyRepo PartyRepository,
	txRepo TransactionRepository,
	recalc *RecalcUseCase,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
) *BillUseCase {
	return &BillUseCase{
		txManager: txManager,
		billRepo:  billRepo,
		partyRepo: partyRepo,
		txRepo:    txRepo,
		recalc:    recalc,
		idGen:     idGen,
		retrier:   retrier,
		cache:     cache,
	}
}

// CreateBillInput represents input for creating a bill.
type CreateBillInput struct {
	CompanyID     string
	PartyID       string
	SerialNumber  string
	VoucherNumber string
	SupplierName  string
	SupplierUrdu  string
	Date          time.Time
	RawSale       decimal.Decimal
	ExpenseLines  map[string]decimal.Decimal
	Attributes    map[string]string
	ExpenseFields []domain.BillField
	SalesFields   []domain.BillField
	Template      domain.BillTemplateSettings
	Status        domain.BillStatus
}

// CreateBill persists a bill and derives its ledger entry.
func (uc *BillUseCase) CreateBill(ctx context.Context, input CreateBillInput) (*domain.Bill, error) {
	if input.Status == "" {
		input.Status = domain.BillStatusDraft
	}
	if !input.Status.IsValid() {
		return nil, domain.ErrInvalidBillStatus
	}
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}

	// A bill sent without header settings inherits the company's latest
	// template. Best effort: a missing template just leaves it blank.
	if input.Template == (domain.BillTemplateSettings{}) {
		if tpl, err := uc.LatestTemplate(ctx, input.CompanyID); err == nil {
			input.Template = *tpl
		}
	}

	now := time.Now().UTC()
	bill := &domain.Bill{
		ID:            uc.idGen.Generate(),
		CompanyID:     input.CompanyID,
		PartyID:       input.PartyID,
		SerialNumber:  input.SerialNumber,
		VoucherNumber: input.VoucherNumber,
		SupplierName:  input.SupplierName,
		SupplierUrdu:  input.SupplierUrdu,
		Date:          input.Date,
		RawSale:       input.RawSale,
		ExpenseLines:  input.ExpenseLines,
		Attributes:    input.Attributes,
		ExpenseFields: input.ExpenseFields,
		SalesFields:   input.SalesFields,
		Template:      input.Template,
		Status:        input.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	bill.RecomputeTotals()

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if bill.SerialNumber == "" {
			serial, err := uc.billRepo.NextSerial(ctx, tx, bill.CompanyID)
			if err != nil {
				return err
			}
			bill.SerialNumber = strconv.FormatInt(serial, 10)
		}

		if err := uc.billRepo.Create(ctx, tx, bill); err != nil {
			return err
		}

		if err := uc.deriveEntries(ctx, tx, bill, ""); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	metrics.SourceEventsProcessed.WithLabelValues("bill", "create").Inc()
	uc.invalidateTemplate(ctx, bill.CompanyID)

	return bill, nil
}

// GetBill retrieves a bill by ID.
func (uc *BillUseCase) GetBill(ctx context.Context, companyID, id string) (*domain.Bill, error) {
	return uc.billRepo.GetByID(ctx, companyID, id)
}

// ListBills lists bills, optionally filtered by status.
func (uc *BillUseCase) ListBills(ctx context.Context, companyID string, status domain.BillStatus, limit, offset int) ([]*domain.Bill, error) {
	if status != "" && !status.IsValid() {
		return nil, domain.ErrInvalidBillStatus
	}
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.billRepo.List(ctx, companyID, status, limit, offset)
}

// templateCacheTTL bounds staleness of a cached bill template when the
// invalidation on write is missed.
const templateCacheTTL = 15 * time.Minute

// LatestTemplate returns the most recently used bill template so a new
// draft can start from the last layout. The lookup is served from cache
// when one is configured; bill writes invalidate it.
func (uc *BillUseCase) LatestTemplate(ctx context.Context, companyID string) (*domain.BillTemplateSettings, error) {
	key := templateCacheKey(companyID)
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, key); err == nil && cached != "" {
			var tpl domain.BillTemplateSettings
			if err := json.Unmarshal([]byte(cached), &tpl); err == nil {
				return &tpl, nil
			}
		}
	}

	tpl, err := uc.billRepo.GetLatestTemplate(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && tpl != nil {
		if raw, err := json.Marshal(tpl); err == nil {
			_ = uc.cache.Set(ctx, key, string(raw), templateCacheTTL)
		}
	}

	return tpl, nil
}

func templateCacheKey(companyID string) string {
	return "bill:template:" + companyID
}

// invalidateTemplate drops the cached template after a bill write. A
// failed delete only means a stale read until the TTL expires.
func (uc *BillUseCase) invalidateTemplate(ctx context.Context, companyID string) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, templateCacheKey(companyID))
}

// UpdateBillInput represents input for updating a bill.
type UpdateBillInput struct {
	CompanyID     string
	ID            string
	PartyID       *string
	SerialNumber  *string
	VoucherNumber *string
	SupplierName  *string
	SupplierUrdu  *string
	Date          *time.Time
	RawSale       *decimal.Decimal
	ExpenseLines  map[string]decimal.Decimal
	Attributes    map[string]string
	ExpenseFields []domain.BillField
	SalesFields   []domain.BillField
	Template      *domain.BillTemplateSettings
	Status        domain.BillStatus
}

// UpdateBill mutates a bill and rebuilds its derived entry. Drafts may
// mutate freely; a completed bill stays completed.
func (uc *BillUseCase) UpdateBill(ctx context.Context, input UpdateBillInput) (*domain.Bill, error) {
	bill, err := uc.billRepo.GetByID(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}

	previousPartyID := bill.PartyID

	if input.PartyID != nil {
		bill.PartyID = *input.PartyID
	}
	if input.SerialNumber != nil {
		bill.SerialNumber = *input.SerialNumber
	}
	if input.VoucherNumber != nil {
		bill.VoucherNumber = *input.VoucherNumber
	}
	if input.SupplierName != nil {
		bill.SupplierName = *input.SupplierName
	}
	if input.SupplierUrdu != nil {
		bill.SupplierUrdu = *input.SupplierUrdu
	}
	if input.Date != nil {
		bill.Date = *input.Date
	}
	if input.RawSale != nil {
		bill.RawSale = *input.RawSale
	}
	if input.ExpenseLines != nil {
		bill.ExpenseLines = input.ExpenseLines
	}
	if input.Attributes != nil {
		bill.Attributes = input.Attributes
	}
	if input.ExpenseFields != nil {
		bill.ExpenseFields = input.ExpenseFields
	}
	if input.SalesFields != nil {
		bill.SalesFields = input.SalesFields
	}
	if input.Template != nil {
		bill.Template = *input.Template
	}
	if input.Status != "" {
		if !input.Status.IsValid() {
			return nil, domain.ErrInvalidBillStatus
		}
		if bill.Status == domain.BillStatusCompleted && input.Status == domain.BillStatusDraft {
			return nil, domain.ErrBillCompleted
		}
		bill.Status = input.Status
	}
	bill.RecomputeTotals()
	bill.UpdatedAt = time.Now().UTC()

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.billRepo.Update(ctx, tx, bill); err != nil {
			return err
		}

		if err := uc.deriveEntries(ctx, tx, bill, previousPartyID); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	metrics.SourceEventsProcessed.WithLabelValues("bill", "update").Inc()
	uc.invalidateTemplate(ctx, bill.CompanyID)

	return bill, nil
}

// DeleteBill removes a bill and every entry derived from it.
func (uc *BillUseCase) DeleteBill(ctx context.Context, companyID, id string) error {
	bill, err := uc.billRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.txRepo.DeleteBySource(ctx, tx, companyID, domain.SourceTypeBill, id); err != nil {
			return err
		}

		if err := uc.billRepo.Delete(ctx, tx, companyID, id); err != nil {
			return err
		}

		if bill.PartyID != "" {
			party, err := uc.partyRepo.GetByIDForUpdate(ctx, tx, companyID, bill.PartyID)
			if err != nil {
				return err
			}
			if _, err := uc.recalc.RecalcPartyTx(ctx, tx, party); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}
	metrics.SourceEventsProcessed.WithLabelValues("bill", "delete").Inc()

	return nil
}

// deriveEntries rebuilds the bill's derived ledger entry inside tx and
// replays every affected party, including the previous party when the
// bill was reassigned.
func (uc *BillUseCase) deriveEntries(ctx context.Context, tx Transaction, bill *domain.Bill, previousPartyID string) error {
	var keep []string

	if bill.PartyID != "" && bill.Status == domain.BillStatusCompleted && bill.NetSale.IsPositive() {
		party, err := uc.partyRepo.GetByID(ctx, bill.CompanyID, bill.PartyID)
		if err != nil {
			return err
		}

		if party.Type == domain.PartyTypeSupplier {
			now := time.Now().UTC()
			key := domain.SourceKey(domain.SourceTypeBill, bill.ID, "net")
			entry := &domain.LedgerTransaction{
				ID:          uc.idGen.Generate(),
				CompanyID:   bill.CompanyID,
				PartyID:     bill.PartyID,
				Source:      domain.SourceRef{Type: domain.SourceTypeBill, ID: bill.ID, Key: key},
				Date:        bill.Date,
				Description: "Bill net sale",
				Type:        domain.EntryTypeCredit,
				Amount:      bill.NetSale,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := uc.txRepo.UpsertBySourceKey(ctx, tx, entry); err != nil {
				return err
			}
			metrics.DerivedEntriesWritten.Inc()
			keep = append(keep, key)
		}
	}

	if err := uc.txRepo.DeleteBySourceExcept(ctx, tx, bill.CompanyID, domain.SourceTypeBill, bill.ID, keep); err != nil {
		return err
	}

	for _, partyID := range affectedParties(bill.PartyID, previousPartyID) {
		party, err := uc.partyRepo.GetByIDForUpdate(ctx, tx, bill.CompanyID, partyID)
		if err != nil {
			return err
		}
		if _, err := uc.recalc.RecalcPartyTx(ctx, tx, party); err != nil {
			return err
		}
	}

	return nil
}

// affectedParties returns the distinct non-empty party IDs touched by a
// source event write, new party first.
func affectedParties(current, previous string) []string {
	var ids []string
	if current != "" {
		ids = append(ids, current)
	}
	if previous != "" && previous != current {
		ids = append(ids, previous)
	}
	return ids
}
