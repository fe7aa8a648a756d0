package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/infrastructure/metrics"
)

// ConsistencyUseCase verifies the ledger invariant: a party's cached
// current balance equals its opening balance plus the signed sum of its
// transactions in replay order.
type ConsistencyUseCase struct {
	txManager TransactionManager
	partyRepo PartyRepository
	txRepo    TransactionRepository
	recalc    *RecalcUseCase
}

// NewConsistencyUseCase creates a new ConsistencyUseCase.
func NewConsistencyUseCase(
	txManager TransactionManager,
	partyRepo PartyRepository,
	txRepo TransactionRepository,
	recalc *RecalcUseCase,
) *ConsistencyUseCase {
	return &ConsistencyUseCase{
		txManager: txManager,
		partyRepo: partyRepo,
		txRepo:    txRepo,
		recalc:    recalc,
	}
}

// ConsistencyResult reports one party's check outcome.
type ConsistencyResult struct {
	PartyID           string
	PartyName         string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsConsistent      bool
	CheckedAt         time.Time
}

// CheckParty recomputes a party's balance from its transactions without
// writing anything, and compares it with the cached figure.
func (uc *ConsistencyUseCase) CheckParty(ctx context.Context, companyID, partyID string) (*ConsistencyResult, error) {
	party, err := uc.partyRepo.GetByID(ctx, companyID, partyID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.txRepo.ListByPartyPage(ctx, companyID, partyID, 0, 0)
	if err != nil {
		return nil, err
	}

	balance := domain.NormalizeOpeningBalance(party.OpeningBalance, party.BalanceType)
	policy := party.Policy()
	for _, entry := range entries {
		balance = policy.Apply(balance, entry.Type, entry.Amount)
	}

	diff := party.CurrentBalance.Sub(balance)

	return &ConsistencyResult{
		PartyID:           party.ID,
		PartyName:         party.Name,
		RecordedBalance:   party.CurrentBalance,
		CalculatedBalance: balance,
		Difference:        diff,
		IsConsistent:      diff.IsZero(),
		CheckedAt:         time.Now().UTC(),
	}, nil
}

// ConsistencyReport summarizes a company-wide check.
type ConsistencyReport struct {
	TotalParties      int
	ConsistentParties int
	Discrepancies     []*ConsistencyResult
	CheckedAt         time.Time
}

// CheckCompany checks every party of a company and reports discrepancies.
// When repair is set, inconsistent parties are replayed to fix the cached
// balances.
func (uc *ConsistencyUseCase) CheckCompany(ctx context.Context, companyID string, repair bool) (*ConsistencyReport, error) {
	parties, err := uc.partyRepo.List(ctx, domain.PartyFilter{CompanyID: companyID, Limit: 10000})
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		TotalParties:  len(parties),
		Discrepancies: make([]*ConsistencyResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	for _, party := range parties {
		result, err := uc.CheckParty(ctx, companyID, party.ID)
		if err != nil {
			return nil, err
		}

		if result.IsConsistent {
			report.ConsistentParties++
			continue
		}
		metrics.ConsistencyDiscrepancies.Inc()

		if repair {
			if _, err := uc.recalc.RecalcParty(ctx, companyID, party.ID); err != nil {
				return nil, err
			}
		}
		report.Discrepancies = append(report.Discrepancies, result)
	}

	return report, nil
}
