package postgres

import (
	"context"
	"testing"
	"time"
)

func TestNewPoolRejectsMalformedURL(t *testing.T) {
	if _, err := NewPool(context.Background(), "not-a-url", 4, 1); err == nil {
		t.Fatal("expected a parse error for a malformed URL")
	}
}

func TestNewPoolFailsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := NewPool(ctx, "postgres://nobody@host.invalid:5432/ledger", 1, 0)
	if err == nil {
		t.Fatal("expected a connection error against an unreachable host")
	}
}
