package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubStore struct {
	checkFn  func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	updateFn func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func (s *stubStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if s.checkFn != nil {
		return s.checkFn(ctx, key, response, ttl)
	}
	return false, nil, nil
}

func (s *stubStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, key, response, ttl)
	}
	return nil
}

func postSale(key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/sale/", bytes.NewBufferString(`{"party_id":"p1","raw_sale":"100"}`))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	return req
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	stored := `{"message":"sale created successfully","sale":{"id":"s1"}}`
	store := &stubStore{
		checkFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return true, []byte(stored), nil
		},
	}
	mw := NewIdempotencyMiddleware(store)

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run on a replayed key")
	})).ServeHTTP(rr, postSale("sale-attempt-1"))

	if rr.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected the replay marker header")
	}
	if rr.Body.String() != stored {
		t.Fatalf("replayed body = %s", rr.Body.String())
	}
}

func TestIdempotencyMiddleware_StoresSuccessfulResponse(t *testing.T) {
	var saved []byte
	store := &stubStore{
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			saved = append([]byte(nil), response...)
			return nil
		},
	}
	mw := NewIdempotencyMiddleware(store)

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"sale created successfully"}`))
	})).ServeHTTP(rr, postSale("sale-attempt-2"))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d", rr.Code)
	}
	if string(saved) != `{"message":"sale created successfully"}` {
		t.Fatalf("stored body = %s", string(saved))
	}
}

func TestIdempotencyMiddleware_DoesNotCacheFailures(t *testing.T) {
	var updated bool
	store := &stubStore{
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			updated = true
			return nil
		},
	}
	mw := NewIdempotencyMiddleware(store)

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})).ServeHTTP(rr, postSale("sale-attempt-3"))

	if updated {
		t.Fatal("failed responses must not be stored for replay")
	}
}

func TestIdempotencyMiddleware_FailsClosedOnStoreError(t *testing.T) {
	store := &stubStore{
		checkFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, context.DeadlineExceeded
		},
	}
	mw := NewIdempotencyMiddleware(store)

	var called bool
	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, postSale("sale-attempt-4"))

	if called {
		t.Fatal("handler must not run when the claim cannot be recorded")
	}
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}

func TestIdempotencyMiddleware_PassesThroughWithoutKey(t *testing.T) {
	mw := NewIdempotencyMiddleware(&stubStore{
		checkFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			t.Fatal("store must not be consulted without a key")
			return false, nil, nil
		},
	})

	var called bool
	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, postSale(""))

	if !called {
		t.Fatal("expected the handler to run")
	}
}

func TestIdempotencyMiddleware_SkipsReads(t *testing.T) {
	mw := NewIdempotencyMiddleware(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/ledger/parties", nil)
	req.Header.Set(IdempotencyKeyHeader, "ignored-on-get")

	var called bool
	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if !called {
		t.Fatal("reads must bypass idempotency handling")
	}
}
