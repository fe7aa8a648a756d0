package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umair/tradeledger/internal/domain"
)

func TestCreatePartyRequest_ToUseCaseInput(t *testing.T) {
	req := &CreatePartyRequest{
		Name:           "Khan Traders",
		NameUrdu:       "خان ٹریڈرز",
		Type:           "supplier",
		Phone:          "0300-1234567",
		OpeningBalance: decimal.NewFromInt(500),
		BalanceType:    "payable",
	}

	got := req.ToUseCaseInput("c1")

	if got.CompanyID != "c1" {
		t.Errorf("CompanyID = %s", got.CompanyID)
	}
	if got.Type != domain.PartyTypeSupplier {
		t.Errorf("Type = %s", got.Type)
	}
	if got.BalanceType != domain.BalanceTypePayable {
		t.Errorf("BalanceType = %s", got.BalanceType)
	}
	if !got.OpeningBalance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("OpeningBalance = %s", got.OpeningBalance)
	}
}

func TestUpdateTransactionRequest_ToUseCaseInput(t *testing.T) {
	amount := decimal.NewFromInt(75)
	entryType := "credit"
	req := &UpdateTransactionRequest{
		Type:   &entryType,
		Amount: &amount,
	}

	got := req.ToUseCaseInput("c1", "tx-1")

	if got.CompanyID != "c1" || got.ID != "tx-1" {
		t.Errorf("identity = %s/%s", got.CompanyID, got.ID)
	}
	if got.Type != domain.EntryTypeCredit {
		t.Errorf("Type = %s", got.Type)
	}
	if got.Amount == nil || !got.Amount.Equal(amount) {
		t.Errorf("Amount = %v", got.Amount)
	}
	if got.Date != nil || got.Description != nil {
		t.Error("unset fields must stay nil")
	}
}

func TestUpdateTransactionRequest_EmptyPatchLeavesTypeUnset(t *testing.T) {
	got := (&UpdateTransactionRequest{}).ToUseCaseInput("c1", "tx-1")

	if got.Type != "" {
		t.Errorf("Type = %q, want empty", got.Type)
	}
}

func TestCreateSaleRequest_ToUseCaseInput(t *testing.T) {
	date := time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)
	req := &CreateSaleRequest{
		PartyID: "p-1",
		Items: []domain.SaleItem{
			{Description: "Tomatoes", Quantity: decimal.NewFromInt(10), RatePerUnit: decimal.NewFromInt(50)},
		},
		Discount:        decimal.NewFromInt(20),
		PaymentMethodID: "pm-1",
		AmountPaid:      decimal.NewFromInt(400),
		Date:            &date,
	}

	got := req.ToUseCaseInput("c1")

	if got.PartyID != "p-1" || got.PaymentMethodID != "pm-1" {
		t.Errorf("refs = %s/%s", got.PartyID, got.PaymentMethodID)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items = %d", len(got.Items))
	}
	if !got.Date.Equal(date) {
		t.Errorf("Date = %s", got.Date)
	}
}

func TestCreateBillRequest_DefaultsDateToZero(t *testing.T) {
	got := (&CreateBillRequest{RawSale: decimal.NewFromInt(100)}).ToUseCaseInput("c1")

	if !got.Date.IsZero() {
		t.Errorf("Date = %s, want zero for the use case to default", got.Date)
	}
	if !got.RawSale.Equal(decimal.NewFromInt(100)) {
		t.Errorf("RawSale = %s", got.RawSale)
	}
}
