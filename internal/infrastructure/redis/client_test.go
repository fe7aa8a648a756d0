package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClient(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+srv.Addr())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	if err := client.Set(context.Background(), "probe", "1", 0).Err(); err != nil {
		t.Fatalf("set after connect: %v", err)
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	if _, err := NewClient(context.Background(), "://nope"); err == nil {
		t.Fatal("expected an error for a malformed URL")
	}
}

func TestNewClientFailsWhenServerDown(t *testing.T) {
	srv := miniredis.RunT(t)
	url := "redis://" + srv.Addr()
	srv.Close()

	if _, err := NewClient(context.Background(), url); err == nil {
		t.Fatal("expected the ping to fail against a closed server")
	}
}
