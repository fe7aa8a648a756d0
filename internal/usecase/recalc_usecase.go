package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/infrastructure/metrics"
)

// RecalcUseCase replays ledgers to rebuild derived balances. Party and bank
// ledgers share the same contract: entries are applied in (date, creation
// order), each entry's running balance is stored back, and the owner's
// current balance becomes the final figure of the replay.
type RecalcUseCase struct {
	txManager  TransactionManager
	partyRepo  PartyRepository
	txRepo     TransactionRepository
	bankRepo   BankRepository
	bankTxRepo BankTransactionRepository
	retrier    Retrier
}

// NewRecalcUseCase creates a new RecalcUseCase.
func NewRecalcUseCase(
	txManager TransactionManager,
	partyRepo PartyRepository,
	txRepo TransactionRepository,
	bankRepo BankRepository,
	bankTxRepo BankTransactionRepository,
	retrier Retrier,
) *RecalcUseCase {
	return &RecalcUseCase{
		txManager:  txManager,
		partyRepo:  partyRepo,
		txRepo:     txRepo,
		bankRepo:   bankRepo,
		bankTxRepo: bankTxRepo,
		retrier:    retrier,
	}
}

// RecalcPartyTx replays a party's ledger inside an existing transaction.
// The party row must already be locked by the caller's transaction so
// concurrent replays serialize on it.
func (uc *RecalcUseCase) RecalcPartyTx(ctx context.Context, tx Transaction, party *domain.Party) (decimal.Decimal, error) {
	entries, err := uc.txRepo.ListByParty(ctx, tx, party.CompanyID, party.ID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := domain.NormalizeOpeningBalance(party.OpeningBalance, party.BalanceType)
	policy := party.Policy()

	for _, entry := range entries {
		balance = policy.Apply(balance, entry.Type, entry.Amount)
		if !entry.BalanceAfter.Equal(balance) {
			if err := uc.txRepo.SetBalanceAfter(ctx, tx, entry.ID, balance); err != nil {
				return decimal.Zero, err
			}
		}
		entry.BalanceAfter = balance
	}

	if err := uc.partyRepo.UpdateBalance(ctx, tx, party.ID, balance, time.Now().UTC()); err != nil {
		return decimal.Zero, err
	}
	party.CurrentBalance = balance
	metrics.RecalcsRun.WithLabelValues("party").Inc()

	return balance, nil
}

// RecalcParty replays a party's ledger in its own transaction, retrying on
// serialization failures and deadlocks.
func (uc *RecalcUseCase) RecalcParty(ctx context.Context, companyID, partyID string) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		party, err := uc.partyRepo.GetByIDForUpdate(ctx, tx, companyID, partyID)
		if err != nil {
			return err
		}

		balance, err = uc.RecalcPartyTx(ctx, tx, party)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return decimal.Zero, err
	}

	return balance, nil
}

// RecalcBankAccountTx replays a bank account's ledger inside an existing
// transaction. Accounts backed by a bank start from the bank's opening
// balance; cash-style payment method accounts start from zero.
func (uc *RecalcUseCase) RecalcBankAccountTx(ctx context.Context, tx Transaction, companyID string, account domain.BankAccountRef) (decimal.Decimal, error) {
	balance := decimal.Zero

	var bank *domain.Bank
	if account.BankID != "" {
		var err error
		bank, err = uc.bankRepo.GetByID(ctx, companyID, account.BankID)
		if err != nil {
			return decimal.Zero, err
		}
		balance = bank.OpeningBalance
	}

	entries, err := uc.bankTxRepo.ListByAccount(ctx, tx, companyID, account)
	if err != nil {
		return decimal.Zero, err
	}

	for _, entry := range entries {
		balance = balance.Add(entry.Signed())
		if !entry.BalanceAfter.Equal(balance) {
			if err := uc.bankTxRepo.SetBalanceAfter(ctx, tx, entry.ID, balance); err != nil {
				return decimal.Zero, err
			}
		}
		entry.BalanceAfter = balance
	}

	if bank != nil {
		if err := uc.bankRepo.UpdateBalance(ctx, tx, bank.ID, balance, time.Now().UTC()); err != nil {
			return decimal.Zero, err
		}
		bank.CurrentBalance = balance
	}
	metrics.RecalcsRun.WithLabelValues("bank").Inc()

	return balance, nil
}

// RecalcBankAccount replays a bank account's ledger in its own transaction.
func (uc *RecalcUseCase) RecalcBankAccount(ctx context.Context, companyID string, account domain.BankAccountRef) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		balance, err = uc.RecalcBankAccountTx(ctx, tx, companyID, account)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return decimal.Zero, err
	}

	return balance, nil
}

// RecalcAllParties replays every party ledger for a company. Used by the
// consistency CLI command after bulk imports or schema fixes.
func (uc *RecalcUseCase) RecalcAllParties(ctx context.Context, companyID string) (int, error) {
	parties, err := uc.partyRepo.List(ctx, domain.PartyFilter{CompanyID: companyID, Limit: 10000})
	if err != nil {
		return 0, err
	}

	for _, p := range parties {
		if _, err := uc.RecalcParty(ctx, companyID, p.ID); err != nil {
			return 0, err
		}
	}

	return len(parties), nil
}
