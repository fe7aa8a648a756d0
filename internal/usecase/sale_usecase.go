package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/infrastructure/metrics"
)

// SaleUseCase handles retail sale receipts. A sale with a linked party
// derives a debit entry for the total and, when part of it was paid, a
// credit entry for the paid amount. The paid amount is also mirrored as a
// bank deposit; the mirror is a secondary effect and its failure is logged
// rather than failing the sale.
type SaleUseCase struct {
	txManager  TransactionManager
	saleRepo   SaleRepository
	partyRepo  PartyRepository
	txRepo     TransactionRepository
	bankTxRepo BankTransactionRepository
	methodRepo PaymentMethodRepository
	recalc     *RecalcUseCase
	idGen      IDGenerator
	retrier    Retrier
	logger     zerolog.Logger
}

// NewSaleUseCase creates a new SaleUseCase.
func NewSaleUseCase(
	txManager TransactionManager,
	saleRepo SaleRepository,
	partyRepo PartyRepository,
	txRepo TransactionRepository,
	bankTxRepo BankTransactionRepository,
	methodRepo PaymentMethodRepository,
	recalc *RecalcUseCase,
	idGen IDGenerator,
	retrier Retrier,
	logger zerolog.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txManager:  txManager,
		saleRepo:   saleRepo,
		partyRepo:  partyRepo,
		txRepo:     txRepo,
		bankTxRepo: bankTxRepo,
		methodRepo: methodRepo,
		recalc:     recalc,
		idGen:      idGen,
		retrier:    retrier,
		logger:     logger,
	}
}

// CreateSaleInput represents input for recording a sale.
type CreateSaleInput struct {
	CompanyID       string
	PartyID         string
	SupplierName    string
	SupplierUrdu    string
	VehicleNumber   string
	SellerName      string
	SellerUrdu      string
	SellerNumber    string
	Date            time.Time
	Items           []domain.SaleItem
	Discount        decimal.Decimal
	SalesTax        decimal.Decimal
	PaymentMethodID string
	AmountPaid      decimal.Decimal
}

// CreateSale persists a sale and derives its ledger and bank entries.
func (uc *SaleUseCase) CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Sale, error) {
	if err := domain.ValidateAmount(input.AmountPaid); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}

	now := time.Now().UTC()
	sale := &domain.Sale{
		ID:              uc.idGen.Generate(),
		CompanyID:       input.CompanyID,
		PartyID:         input.PartyID,
		SupplierName:    input.SupplierName,
		SupplierUrdu:    input.SupplierUrdu,
		VehicleNumber:   input.VehicleNumber,
		SellerName:      input.SellerName,
		SellerUrdu:      input.SellerUrdu,
		SellerNumber:    input.SellerNumber,
		Date:            input.Date,
		Items:           input.Items,
		Discount:        input.Discount,
		SalesTax:        input.SalesTax,
		PaymentMethodID: input.PaymentMethodID,
		AmountPaid:      input.AmountPaid,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	sale.RecomputeTotals()

	if err := domain.ValidateAmount(sale.TotalAmount); err != nil {
		return nil, err
	}

	if input.PaymentMethodID != "" {
		method, err := uc.methodRepo.GetByID(ctx, input.CompanyID, input.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		sale.PaymentMethod = method.Name
	}

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		serial, err := uc.saleRepo.NextSerial(ctx, tx, input.CompanyID)
		if err != nil {
			return err
		}
		sale.SerialNumber = serial

		if err := uc.saleRepo.Create(ctx, tx, sale); err != nil {
			return err
		}

		if err := uc.deriveEntries(ctx, tx, sale, ""); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.mirrorDeposit(ctx, sale)

	metrics.SourceEventsProcessed.WithLabelValues("sale", "create").Inc()

	return sale, nil
}

// GetSale retrieves a sale by ID.
func (uc *SaleUseCase) GetSale(ctx context.Context, companyID, id string) (*domain.Sale, error) {
	return uc.saleRepo.GetByID(ctx, companyID, id)
}

// ListSales lists sales newest first.
func (uc *SaleUseCase) ListSales(ctx context.Context, companyID string, limit, offset int) ([]*domain.Sale, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.saleRepo.List(ctx, companyID, limit, offset)
}

// UpdateSaleInput represents input for editing a sale.
type UpdateSaleInput struct {
	CompanyID       string
	ID              string
	PartyID         *string
	Date            *time.Time
	Items           []domain.SaleItem
	Discount        *decimal.Decimal
	SalesTax        *decimal.Decimal
	PaymentMethodID *string
	AmountPaid      *decimal.Decimal
}

// UpdateSale mutates a sale and rebuilds every entry derived from it.
// After the update exactly one debit carries the new total; no stale
// amounts survive.
func (uc *SaleUseCase) UpdateSale(ctx context.Context, input UpdateSaleInput) (*domain.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}

	previousPartyID := sale.PartyID
	previousAccount := sale.BankAccount()

	if input.PartyID != nil {
		sale.PartyID = *input.PartyID
	}
	if input.Date != nil {
		sale.Date = *input.Date
	}
	if input.Items != nil {
		sale.Items = input.Items
	}
	if input.Discount != nil {
		sale.Discount = *input.Discount
	}
	if input.SalesTax != nil {
		sale.SalesTax = *input.SalesTax
	}
	if input.PaymentMethodID != nil {
		sale.PaymentMethodID = *input.PaymentMethodID
		sale.PaymentMethod = ""
		if *input.PaymentMethodID != "" {
			method, err := uc.methodRepo.GetByID(ctx, input.CompanyID, *input.PaymentMethodID)
			if err != nil {
				return nil, err
			}
			sale.PaymentMethod = method.Name
		}
	}
	if input.AmountPaid != nil {
		if err := domain.ValidateAmount(*input.AmountPaid); err != nil {
			return nil, err
		}
		sale.AmountPaid = *input.AmountPaid
	}
	sale.RecomputeTotals()
	sale.UpdatedAt = time.Now().UTC()

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.saleRepo.Update(ctx, tx, sale); err != nil {
			return err
		}

		if err := uc.deriveEntries(ctx, tx, sale, previousPartyID); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.mirrorDeposit(ctx, sale)

	// Replay the old account when the paid amount moved between methods,
	// so its remaining entries do not keep stale snapshots.
	if !previousAccount.IsZero() && previousAccount != sale.BankAccount() {
		if _, err := uc.recalc.RecalcBankAccount(ctx, sale.CompanyID, previousAccount); err != nil {
			uc.logger.Error().Err(err).
				Str("sale_id", sale.ID).
				Msg("bank replay failed for previous sale account")
		}
	}

	metrics.SourceEventsProcessed.WithLabelValues("sale", "update").Inc()

	return sale, nil
}

// DeleteSale removes a sale and every ledger and bank entry derived
// from it.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, companyID, id string) error {
	sale, err := uc.saleRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.txRepo.DeleteBySource(ctx, tx, companyID, domain.SourceTypeSale, id); err != nil {
			return err
		}

		if err := uc.bankTxRepo.DeleteBySource(ctx, tx, companyID, domain.SourceTypeSale, id); err != nil {
			return err
		}

		if err := uc.saleRepo.Delete(ctx, tx, companyID, id); err != nil {
			return err
		}

		if sale.PartyID != "" {
			party, err := uc.partyRepo.GetByIDForUpdate(ctx, tx, companyID, sale.PartyID)
			if err != nil {
				return err
			}
			if _, err := uc.recalc.RecalcPartyTx(ctx, tx, party); err != nil {
				return err
			}
		}

		if account := sale.BankAccount(); !account.IsZero() {
			if _, err := uc.recalc.RecalcBankAccountTx(ctx, tx, companyID, account); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})

	if err != nil {
		return err
	}
	metrics.SourceEventsProcessed.WithLabelValues("sale", "delete").Inc()

	return nil
}

// deriveEntries rebuilds the sale's party ledger entries inside tx and
// replays every affected party.
func (uc *SaleUseCase) deriveEntries(ctx context.Context, tx Transaction, sale *domain.Sale, previousPartyID string) error {
	var keep []string
	now := time.Now().UTC()

	if sale.PartyID != "" {
		if sale.TotalAmount.IsPositive() {
			totalKey := domain.SourceKey(domain.SourceTypeSale, sale.ID, "total")
			debit := &domain.LedgerTransaction{
				ID:          uc.idGen.Generate(),
				CompanyID:   sale.CompanyID,
				PartyID:     sale.PartyID,
				Source:      domain.SourceRef{Type: domain.SourceTypeSale, ID: sale.ID, Key: totalKey},
				Date:        sale.Date,
				Description: "Sale total",
				Type:        domain.EntryTypeDebit,
				Amount:      sale.TotalAmount,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := uc.txRepo.UpsertBySourceKey(ctx, tx, debit); err != nil {
				return err
			}
			metrics.DerivedEntriesWritten.Inc()
			keep = append(keep, totalKey)
		}

		if sale.AmountPaid.IsPositive() {
			paidKey := domain.SourceKey(domain.SourceTypeSale, sale.ID, "paid")
			credit := &domain.LedgerTransaction{
				ID:          uc.idGen.Generate(),
				CompanyID:   sale.CompanyID,
				PartyID:     sale.PartyID,
				Source:      domain.SourceRef{Type: domain.SourceTypeSale, ID: sale.ID, Key: paidKey},
				Date:        sale.Date,
				Description: "Sale payment received",
				Type:        domain.EntryTypeCredit,
				Amount:      sale.AmountPaid,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := uc.txRepo.UpsertBySourceKey(ctx, tx, credit); err != nil {
				return err
			}
			metrics.DerivedEntriesWritten.Inc()
			keep = append(keep, paidKey)
		}
	}

	if err := uc.txRepo.DeleteBySourceExcept(ctx, tx, sale.CompanyID, domain.SourceTypeSale, sale.ID, keep); err != nil {
		return err
	}

	for _, partyID := range affectedParties(sale.PartyID, previousPartyID) {
		party, err := uc.partyRepo.GetByIDForUpdate(ctx, tx, sale.CompanyID, partyID)
		if err != nil {
			return err
		}
		if _, err := uc.recalc.RecalcPartyTx(ctx, tx, party); err != nil {
			return err
		}
	}

	return nil
}

// mirrorDeposit rebuilds the sale's bank deposit after the primary write
// committed. Mirror failures are logged, never propagated.
func (uc *SaleUseCase) mirrorDeposit(ctx context.Context, sale *domain.Sale) {
	account := sale.BankAccount()

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.bankTxRepo.DeleteBySource(ctx, tx, sale.CompanyID, domain.SourceTypeSale, sale.ID); err != nil {
			return err
		}

		if !account.IsZero() && sale.AmountPaid.IsPositive() {
			now := time.Now().UTC()
			key := domain.SourceKey(domain.SourceTypeSale, sale.ID, "deposit")
			deposit := &domain.BankTransaction{
				ID:          uc.idGen.Generate(),
				CompanyID:   sale.CompanyID,
				Account:     account,
				Source:      domain.SourceRef{Type: domain.SourceTypeSale, ID: sale.ID, Key: key},
				Date:        sale.Date,
				Type:        domain.BankTxDeposit,
				Amount:      sale.AmountPaid,
				Description: "Sale payment",
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := uc.bankTxRepo.UpsertBySourceKey(ctx, tx, deposit); err != nil {
				return err
			}
		}

		if !account.IsZero() {
			if _, err := uc.recalc.RecalcBankAccountTx(ctx, tx, sale.CompanyID, account); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		uc.logger.Error().Err(err).
			Str("sale_id", sale.ID).
			Str("payment_method", sale.PaymentMethod).
			Msg("bank mirror update failed for sale")
		metrics.MirrorFailures.Inc()
	}
}
