package store

import (
	"context"
	"os"
	"testing"

	"github.com/rushteam/shoprec/core"
)

// 需要本地 Redis：REDIS_ADDR=localhost:6379 go test ./store/
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	s, err := NewRedisStore(addr, 15)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	if err := s.Set(ctx, "shoprec:test:k1", []byte("v1"), 60); err != nil {
		t.Fatal(err)
	}
	defer s.Delete(ctx, "shoprec:test:k1")

	val, err := s.Get(ctx, "shoprec:test:k1")
	if err != nil || string(val) != "v1" {
		t.Fatalf("get = %q, %v", val, err)
	}
	if _, err := s.Get(ctx, "shoprec:test:missing"); !core.IsStoreNotFound(err) {
		t.Errorf("missing key err = %v, want NOT_FOUND", err)
	}
}
