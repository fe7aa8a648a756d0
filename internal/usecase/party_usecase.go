package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
)

// PartyUseCase handles party registry business logic.
type PartyUseCase struct {
	txManager TransactionManager
	partyRepo PartyRepository
	txRepo    TransactionRepository
	recalc    *RecalcUseCase
	idGen     IDGenerator
}

// NewPartyUseCase creates a new PartyUseCase.
func NewPartyUseCase(
	txManager TransactionManager,
	partyRepo PartyRepository,
	txRepo TransactionRepository,
	recalc *RecalcUseCase,
	idGen IDGenerator,
) *PartyUseCase {
	return &PartyUseCase{
		txManager: txManager,
		partyRepo: partyRepo,
		txRepo:    txRepo,
		recalc:    recalc,
		idGen:     idGen,
	}
}

// CreatePartyInput represents input for creating a party.
type CreatePartyInput struct {
	CompanyID      string
	Name           string
	NameUrdu       string
	Type           domain.PartyType
	Phone          string
	Address        string
	OpeningBalance decimal.Decimal
	BalanceType    domain.BalanceType
	Notes          string
}

// CreateParty registers a new party. The opening balance is normalized by
// balance type and becomes the initial current balance.
func (uc *PartyUseCase) CreateParty(ctx context.Context, input CreatePartyInput) (*domain.Party, error) {
	if err := domain.ValidatePartyName(input.Name); err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidPartyType
	}
	if input.BalanceType == "" {
		input.BalanceType = domain.BalanceTypeReceivable
	}
	if !input.BalanceType.IsValid() {
		return nil, domain.ErrInvalidBalanceType
	}

	opening := domain.NormalizeOpeningBalance(input.OpeningBalance, input.BalanceType)
	now := time.Now().UTC()

	party := &domain.Party{
		ID:             uc.idGen.Generate(),
		CompanyID:      input.CompanyID,
		Name:           input.Name,
		NameUrdu:       input.NameUrdu,
		Type:           input.Type,
		Phone:          input.Phone,
		Address:        input.Address,
		OpeningBalance: opening,
		BalanceType:    input.BalanceType,
		CurrentBalance: opening,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.partyRepo.Create(ctx, party); err != nil {
		return nil, err
	}

	return party, nil
}

// GetParty retrieves a party by ID within a company scope.
func (uc *PartyUseCase) GetParty(ctx context.Context, companyID, id string) (*domain.Party, error) {
	return uc.partyRepo.GetByID(ctx, companyID, id)
}

// ListPartiesInput represents input for listing parties.
type ListPartiesInput struct {
	CompanyID string
	Type      domain.PartyType
	Search    string
	Limit     int
	Offset    int
}

// ListParties lists parties with optional type filter and name search.
func (uc *PartyUseCase) ListParties(ctx context.Context, input ListPartiesInput) ([]*domain.Party, error) {
	if input.Type != "" && !input.Type.IsValid() {
		return nil, domain.ErrInvalidPartyType
	}
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.partyRepo.List(ctx, domain.PartyFilter{
		CompanyID: input.CompanyID,
		Type:      input.Type,
		Search:    input.Search,
		Limit:     limit,
		Offset:    offset,
	})
}

// UpdatePartyInput represents input for updating a party.
type UpdatePartyInput struct {
	CompanyID      string
	ID             string
	Name           string
	NameUrdu       string
	Phone          string
	Address        string
	OpeningBalance *decimal.Decimal
	BalanceType    domain.BalanceType
	Notes          string
}

// UpdateParty updates party details. A changed opening balance or balance
// type shifts the whole ledger, so the party is replayed before returning.
func (uc *PartyUseCase) UpdateParty(ctx context.Context, input UpdatePartyInput) (*domain.Party, error) {
	party, err := uc.partyRepo.GetByID(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		if err := domain.ValidatePartyName(input.Name); err != nil {
			return nil, err
		}
		party.Name = input.Name
	}
	if input.NameUrdu != "" {
		party.NameUrdu = input.NameUrdu
	}
	if input.Phone != "" {
		party.Phone = input.Phone
	}
	if input.Address != "" {
		party.Address = input.Address
	}
	if input.Notes != "" {
		party.Notes = input.Notes
	}

	openingChanged := false
	if input.BalanceType != "" {
		if !input.BalanceType.IsValid() {
			return nil, domain.ErrInvalidBalanceType
		}
		if party.BalanceType != input.BalanceType {
			party.BalanceType = input.BalanceType
			openingChanged = true
		}
	}
	if input.OpeningBalance != nil {
		party.OpeningBalance = *input.OpeningBalance
		openingChanged = true
	}
	if openingChanged {
		party.OpeningBalance = domain.NormalizeOpeningBalance(party.OpeningBalance, party.BalanceType)
	}

	party.UpdatedAt = time.Now().UTC()

	if err := uc.partyRepo.Update(ctx, party); err != nil {
		return nil, err
	}

	if openingChanged {
		if _, err := uc.recalc.RecalcParty(ctx, party.CompanyID, party.ID); err != nil {
			return nil, err
		}
		return uc.partyRepo.GetByID(ctx, input.CompanyID, input.ID)
	}

	return party, nil
}

// DeleteParty removes a party and all of its ledger entries.
func (uc *PartyUseCase) DeleteParty(ctx context.Context, companyID, id string) error {
	if _, err := uc.partyRepo.GetByID(ctx, companyID, id); err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.partyRepo.Delete(ctx, tx, companyID, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// PartyStatement is a party together with its replayed ledger.
type PartyStatement struct {
	Party   *domain.Party
	Entries []*domain.LedgerTransaction
}

// GetStatement replays the party's ledger and returns it with per-entry
// running balances. The replay runs before the read so the statement never
// shows stale figures.
func (uc *PartyUseCase) GetStatement(ctx context.Context, companyID, partyID string) (*PartyStatement, error) {
	if _, err := uc.recalc.RecalcParty(ctx, companyID, partyID); err != nil {
		return nil, err
	}

	party, err := uc.partyRepo.GetByID(ctx, companyID, partyID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.txRepo.ListByPartyPage(ctx, companyID, partyID, 0, 0)
	if err != nil {
		return nil, err
	}

	return &PartyStatement{Party: party, Entries: entries}, nil
}
