package store

import (
	"context"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func TestMemoryStoreBasic(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	if err := s.Set(ctx, "k1", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	val, err := s.Get(ctx, "k1")
	if err != nil || string(val) != "v1" {
		t.Fatalf("get = %q, %v", val, err)
	}

	if _, err := s.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("missing key err = %v, want NOT_FOUND", err)
	}

	if err := s.Delete(ctx, "k1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "k1"); !core.IsStoreNotFound(err) {
		t.Error("deleted key should be NOT_FOUND")
	}
}

func TestMemoryStoreBatch(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	kvs := map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}
	if err := s.BatchSet(ctx, kvs); err != nil {
		t.Fatal(err)
	}

	got, err := s.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("batch get = %v", got)
	}
}

func TestMemoryStoreZSet(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	for member, score := range map[string]float64{"low": 1, "high": 3, "mid": 2} {
		if err := s.ZAdd(ctx, "events", score, member); err != nil {
			t.Fatal(err)
		}
	}

	members, err := s.ZRange(ctx, "events", 0, -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 3 || members[0] != "high" || members[1] != "mid" || members[2] != "low" {
		t.Errorf("zrange = %v, want score-descending order", members)
	}

	top, err := s.ZRange(ctx, "events", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0] != "high" {
		t.Errorf("zrange top = %v", top)
	}

	score, err := s.ZScore(ctx, "events", "mid")
	if err != nil || score != 2 {
		t.Errorf("zscore = %v, %v", score, err)
	}
	if _, err := s.ZScore(ctx, "events", "ghost"); !core.IsStoreNotFound(err) {
		t.Errorf("missing member err = %v", err)
	}
}

func TestMemoryStoreHash(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	if err := s.HSet(ctx, "product:p1", "brand", []byte("Zen")); err != nil {
		t.Fatal(err)
	}
	if err := s.HSet(ctx, "product:p1", "category", []byte("candles")); err != nil {
		t.Fatal(err)
	}

	val, err := s.HGet(ctx, "product:p1", "brand")
	if err != nil || string(val) != "Zen" {
		t.Fatalf("hget = %q, %v", val, err)
	}

	all, err := s.HGetAll(ctx, "product:p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || string(all["category"]) != "candles" {
		t.Errorf("hgetall = %v", all)
	}
}
