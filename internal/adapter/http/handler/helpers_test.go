package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/umair/tradeledger/internal/adapter/http/dto"
	"github.com/umair/tradeledger/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrPartyNotFound, http.StatusNotFound},
		{domain.ErrBillNotFound, http.StatusNotFound},
		{domain.ErrBankTxNotFound, http.StatusNotFound},
		{domain.ErrInvalidPartyType, http.StatusBadRequest},
		{domain.ErrInvalidEntryType, http.StatusBadRequest},
		{domain.ErrNegativeAmount, http.StatusBadRequest},
		{domain.ErrAccountRefRequired, http.StatusBadRequest},
		{domain.ErrBillCompleted, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrExpiredToken, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", domain.ErrSaleNotFound), http.StatusNotFound},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteDomainError(t *testing.T) {
	rec := httptest.NewRecorder()

	writeDomainError(rec, domain.ErrPartyNotFound, "failed to get party")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "failed to get party" {
		t.Errorf("Message = %q", resp.Message)
	}
	if resp.Details == "" {
		t.Error("Details should carry the domain error")
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=abc", nil)

	if got := parseIntQuery(req, "limit", 50); got != 25 {
		t.Errorf("limit = %d, want 25", got)
	}
	if got := parseIntQuery(req, "bad", 50); got != 50 {
		t.Errorf("bad = %d, want default 50", got)
	}
	if got := parseIntQuery(req, "absent", 50); got != 50 {
		t.Errorf("absent = %d, want default 50", got)
	}
}
