package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/infrastructure/metrics"
)

// RecoveryUseCase handles cash collections. Every recovery with a linked
// party derives exactly one party debit entry; the pairing is structural,
// not left to individual handlers. The collection is also mirrored as a
// bank deposit against the resolved account.
type RecoveryUseCase struct {
	txManager    TransactionManager
	recoveryRepo RecoveryRepository
	partyRepo    PartyRepository
	txRepo       TransactionRepository
	bankRepo     BankRepository
	bankTxRepo   BankTransactionRepository
	recalc       *RecalcUseCase
	idGen        IDGenerator
	retrier      Retrier
	logger       zerolog.Logger
}

// NewRecoveryUseCase creates a new RecoveryUseCase.
func NewRecoveryUseCase(
	txManager TransactionManager,
	recoveryRepo RecoveryRepository,
	partyRepo PartyRepository,
	txRepo TransactionRepository,
	bankRepo BankRepository,
	bankTxRepo BankTransactionRepository,
	recalc *RecalcUseCase,
	idGen IDGenerator,
	retrier Retrier,
	logger zerolog.Logger,
) *RecoveryUseCase {
	return &RecoveryUseCase{
		txManager:    txManager,
		recoveryRepo: recoveryRepo,
		partyRepo:    partyRepo,
		txRepo:       txRepo,
		bankRepo:     bankRepo,
		bankTxRepo:   bankTxRepo,
		recalc:       recalc,
		idGen:        idGen,
		retrier:      retrier,
		logger:       logger,
	}
}

// CreateRecoveryInput represents input for recording a recovery.
type CreateRecoveryInput struct {
	CompanyID       string
	PartyID         string
	CustomerName    string
	CustomerUrdu    string
	VehicleNumber   string
	CustomerPhone   string
	Amount          decimal.Decimal
	PaymentMethod   string
	BankID          string
	Description     string
	DescriptionUrdu string
	Date            time.Time
}

// CreateRecovery persists a recovery and derives its ledger and bank
// entries.
func (uc *RecoveryUseCase) CreateRecovery(ctx context.Context, input CreateRecoveryInput) (*domain.Recovery, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if input.Amount.IsZero() {
		return nil, domain.ErrZeroAmount
	}
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}

	now := time.Now().UTC()
	recovery := &domain.Recovery{
		ID:              uc.idGen.Generate(),
		CompanyID:       input.CompanyID,
		PartyID:         input.PartyID,
		CustomerName:    input.CustomerName,
		CustomerUrdu:    input.CustomerUrdu,
		VehicleNumber:   input.VehicleNumber,
		CustomerPhone:   input.CustomerPhone,
		Amount:          input.Amount,
		PaymentMethod:   input.PaymentMethod,
		BankID:          input.BankID,
		Description:     input.Description,
		DescriptionUrdu: input.DescriptionUrdu,
		Date:            input.Date,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		serial, err := uc.recoveryRepo.NextSerial(ctx, tx, input.CompanyID)
		if err != nil {
			return err
		}
		recovery.SerialNumber = serial

		if err := uc.recoveryRepo.Create(ctx, tx, recovery); err != nil {
			return err
		}

		if err := uc.deriveEntries(ctx, tx, recovery, ""); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.mirrorDeposit(ctx, recovery)

	metrics.SourceEventsProcessed.WithLabelValues("recovery", "create").Inc()

	return recovery, nil
}

// GetRecovery retrieves a recovery by ID.
func (uc *RecoveryUseCase) GetRecovery(ctx context.Context, companyID, id string) (*domain.Recovery, error) {
	return uc.recoveryRepo.GetByID(ctx, companyID, id)
}

// ListRecoveries lists recoveries newest first.
func (uc *RecoveryUseCase) ListRecoveries(ctx context.Context, companyID string, limit, offset int) ([]*domain.Recovery, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.recoveryRepo.List(ctx, companyID, limit, offset)
}

// UpdateRecoveryInput represents input for editing a recovery.
type UpdateRecoveryInput struct {
	CompanyID       string
	ID              string
	PartyID         *string
	CustomerName    *string
	CustomerUrdu    *string
	VehicleNumber   *string
	CustomerPhone   *string
	Amount          *decimal.Decimal
	PaymentMethod   *string
	BankID          *string
	Description     *string
	DescriptionUrdu *string
	Date            *time.Time
}

// UpdateRecovery mutates a recovery and rebuilds its derived entries.
func (uc *RecoveryUseCase) UpdateRecovery(ctx context.Context, input UpdateRecoveryInput) (*domain.Recovery, error) {
	recovery, err := uc.recoveryRepo.GetByID(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}

	previousPartyID := recovery.PartyID
	previousAccount, accountErr := uc.resolveAccount(ctx, recovery)

	if input.PartyID != nil {
		recovery.PartyID = *input.PartyID
	}
	if input.CustomerName != nil {
		recovery.CustomerName = *input.CustomerName
	}
	if input.CustomerUrdu != nil {
		recovery.CustomerUrdu = *input.CustomerUrdu
	}
	if input.VehicleNumber != nil {
		recovery.VehicleNumber = *input.VehicleNumber
	}
	if input.CustomerPhone != nil {
		recovery.CustomerPhone = *input.CustomerPhone
	}
	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
		recovery.Amount = *input.Amount
	}
	if input.PaymentMethod != nil {
		recovery.PaymentMethod = *input.PaymentMethod
	}
	if input.BankID != nil {
		recovery.BankID = *input.BankID
	}
	if input.Description != nil {
		recovery.Description = *input.Description
	}
	if input.DescriptionUrdu != nil {
		recovery.DescriptionUrdu = *input.DescriptionUrdu
	}
	if input.Date != nil {
		recovery.Date = *input.Date
	}
	recovery.UpdatedAt = time.Now().UTC()

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.recoveryRepo.Update(ctx, tx, recovery); err != nil {
			return err
		}

		if err := uc.deriveEntries(ctx, tx, recovery, previousPartyID); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.mirrorDeposit(ctx, recovery)

	// Replay the old account when the recovery moved between accounts.
	if accountErr == nil && !previousAccount.IsZero() {
		if current, err := uc.resolveAccount(ctx, recovery); err != nil || current != previousAccount {
			if _, err := uc.recalc.RecalcBankAccount(ctx, recovery.CompanyID, previousAccount); err != nil {
				uc.logger.Error().Err(err).
					Str("recovery_id", recovery.ID).
					Msg("bank replay failed for previous recovery account")
			}
		}
	}

	metrics.SourceEventsProcessed.WithLabelValues("recovery", "update").Inc()

	return recovery, nil
}

// DeleteRecovery removes a recovery and every entry derived from it.
func (uc *RecoveryUseCase) DeleteRecovery(ctx context.Context, companyID, id string) error {
	recovery, err := uc.recoveryRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}

	account, accountErr := uc.resolveAccount(ctx, recovery)

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.txRepo.DeleteBySource(ctx, tx, companyID, domain.SourceTypeRecovery, id); err != nil {
			return err
		}

		if err := uc.bankTxRepo.DeleteBySource(ctx, tx, companyID, domain.SourceTypeRecovery, id); err != nil {
			return err
		}

		if err := uc.recoveryRepo.Delete(ctx, tx, companyID, id); err != nil {
			return err
		}

		if recovery.PartyID != "" {
			party, err := uc.partyRepo.GetByIDForUpdate(ctx, tx, companyID, recovery.PartyID)
			if err != nil {
				return err
			}
			if _, err := uc.recalc.RecalcPartyTx(ctx, tx, party); err != nil {
				return err
			}
		}

		if accountErr == nil && !account.IsZero() {
			if _, err := uc.recalc.RecalcBankAccountTx(ctx, tx, companyID, account); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}
	metrics.SourceEventsProcessed.WithLabelValues("recovery", "delete").Inc()

	return nil
}

// deriveEntries rebuilds the recovery's party debit inside tx and replays
// every affected party.
func (uc *RecoveryUseCase) deriveEntries(ctx context.Context, tx Transaction, recovery *domain.Recovery, previousPartyID string) error {
	var keep []string

	if recovery.PartyID != "" {
		now := time.Now().UTC()
		key := domain.SourceKey(domain.SourceTypeRecovery, recovery.ID, "collection")
		debit := &domain.LedgerTransaction{
			ID:          uc.idGen.Generate(),
			CompanyID:   recovery.CompanyID,
			PartyID:     recovery.PartyID,
			Source:      domain.SourceRef{Type: domain.SourceTypeRecovery, ID: recovery.ID, Key: key},
			Date:        recovery.Date,
			Description: "Recovery collection",
			Type:        domain.EntryTypeDebit,
			Amount:      recovery.Amount,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.txRepo.UpsertBySourceKey(ctx, tx, debit); err != nil {
			return err
		}
		metrics.DerivedEntriesWritten.Inc()
		keep = append(keep, key)
	}

	if err := uc.txRepo.DeleteBySourceExcept(ctx, tx, recovery.CompanyID, domain.SourceTypeRecovery, recovery.ID, keep); err != nil {
		return err
	}

	for _, partyID := range affectedParties(recovery.PartyID, previousPartyID) {
		party, err := uc.partyRepo.GetByIDForUpdate(ctx, tx, recovery.CompanyID, partyID)
		if err != nil {
			return err
		}
		if _, err := uc.recalc.RecalcPartyTx(ctx, tx, party); err != nil {
			return err
		}
	}

	return nil
}

// resolveAccount picks the mirror-ledger account for a recovery: the
// selected bank by id, else a bank matching the payment method by name,
// else the payment method itself as a cash-style account.
func (uc *RecoveryUseCase) resolveAccount(ctx context.Context, recovery *domain.Recovery) (domain.BankAccountRef, error) {
	if recovery.BankID != "" {
		bank, err := uc.bankRepo.GetByID(ctx, recovery.CompanyID, recovery.BankID)
		if err != nil {
			return domain.BankAccountRef{}, err
		}
		return domain.BankAccountRef{BankID: bank.ID}, nil
	}

	if recovery.PaymentMethod == "" {
		return domain.BankAccountRef{}, nil
	}

	bank, err := uc.bankRepo.GetByName(ctx, recovery.CompanyID, recovery.PaymentMethod)
	if err == nil {
		return domain.BankAccountRef{BankID: bank.ID}, nil
	}
	if !errors.Is(err, domain.ErrBankNotFound) {
		return domain.BankAccountRef{}, err
	}

	return domain.BankAccountRef{PaymentMethod: recovery.PaymentMethod}, nil
}

// mirrorDeposit rebuilds the recovery's bank deposit after the primary
// write committed. Mirror failures are logged, never propagated.
func (uc *RecoveryUseCase) mirrorDeposit(ctx context.Context, recovery *domain.Recovery) {
	account, err := uc.resolveAccount(ctx, recovery)
	if err != nil {
		uc.logger.Error().Err(err).
			Str("recovery_id", recovery.ID).
			Msg("bank account resolution failed for recovery")
		return
	}

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.bankTxRepo.DeleteBySource(ctx, tx, recovery.CompanyID, domain.SourceTypeRecovery, recovery.ID); err != nil {
			return err
		}

		if !account.IsZero() {
			now := time.Now().UTC()
			key := domain.SourceKey(domain.SourceTypeRecovery, recovery.ID, "deposit")
			deposit := &domain.BankTransaction{
				ID:              uc.idGen.Generate(),
				CompanyID:       recovery.CompanyID,
				Account:         account,
				Source:          domain.SourceRef{Type: domain.SourceTypeRecovery, ID: recovery.ID, Key: key},
				Date:            recovery.Date,
				Type:            domain.BankTxDeposit,
				Amount:          recovery.Amount,
				Description:     recovery.Description,
				DescriptionUrdu: recovery.DescriptionUrdu,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := uc.bankTxRepo.UpsertBySourceKey(ctx, tx, deposit); err != nil {
				return err
			}

			if _, err := uc.recalc.RecalcBankAccountTx(ctx, tx, recovery.CompanyID, account); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		uc.logger.Error().Err(err).
			Str("recovery_id", recovery.ID).
			Msg("bank mirror update failed for recovery")
		metrics.MirrorFailures.Inc()
	}
}
