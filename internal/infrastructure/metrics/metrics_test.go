package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(DerivedEntriesWritten)
	DerivedEntriesWritten.Inc()
	if got := testutil.ToFloat64(DerivedEntriesWritten); got != before+1 {
		t.Fatalf("expected counter to advance by 1, got %v -> %v", before, got)
	}

	RecalcsRun.WithLabelValues("party").Inc()
	if got := testutil.ToFloat64(RecalcsRun.WithLabelValues("party")); got < 1 {
		t.Fatalf("expected labeled counter to register, got %v", got)
	}
}
