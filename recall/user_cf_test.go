package recall

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func TestUserCF(t *testing.T) {
	profiles := NewMemoryProfiles(
		&core.UserProfile{UserID: "u1", PurchasedProducts: []string{"p1", "p2"}},
		&core.UserProfile{UserID: "u2", PurchasedProducts: []string{"p1", "p2", "p3"}},
		&core.UserProfile{UserID: "u3", PurchasedProducts: []string{"p2", "p4"}},
		&core.UserProfile{UserID: "u4", PurchasedProducts: []string{"p9"}}, // 无交集
	)

	r := &UserCF{Profiles: profiles}
	items, err := r.Score(context.Background(), &core.RecommendContext{UserID: "u1"}, 10)
	if err != nil {
		t.Fatal(err)
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	// u2 相似度 2/3 贡献 p3；u3 相似度 1/3 贡献 p4；u4 相似度为 0 不是邻居
	if !reflect.DeepEqual(ids, []string{"p3", "p4"}) {
		t.Fatalf("ids = %v, want [p3 p4]", ids)
	}
	for _, it := range items {
		if it.Confidence != 0.75 {
			t.Errorf("confidence = %v, want 0.75", it.Confidence)
		}
		if it.Reason != ReasonSimilarCustomers {
			t.Errorf("reason = %q", it.Reason)
		}
		if it.Score <= 0 || it.Score > 1 {
			t.Errorf("score(%s) = %v out of (0,1]", it.ID, it.Score)
		}
	}
}

func TestUserCFExcludesPurchased(t *testing.T) {
	profiles := NewMemoryProfiles(
		&core.UserProfile{UserID: "u1", PurchasedProducts: []string{"p1"}},
		&core.UserProfile{UserID: "u2", PurchasedProducts: []string{"p1", "p2"}},
	)

	r := &UserCF{Profiles: profiles}
	items, err := r.Score(context.Background(), &core.RecommendContext{UserID: "u1"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range items {
		if it.ID == "p1" {
			t.Fatal("recommended an already purchased product")
		}
	}
}

func TestUserCFEmptyHistory(t *testing.T) {
	profiles := NewMemoryProfiles(
		&core.UserProfile{UserID: "u1"},
		&core.UserProfile{UserID: "u2", PurchasedProducts: []string{"p1"}},
	)

	r := &UserCF{Profiles: profiles}
	items, err := r.Score(context.Background(), &core.RecommendContext{UserID: "u1"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("got %d items, want empty result for empty history", len(items))
	}
}

func TestUserCFUnknownUser(t *testing.T) {
	profiles := NewMemoryProfiles(
		&core.UserProfile{UserID: "u2", PurchasedProducts: []string{"p1"}},
	)

	r := &UserCF{Profiles: profiles}
	items, err := r.Score(context.Background(), &core.RecommendContext{UserID: "ghost"}, 10)
	if err != nil {
		t.Fatalf("unknown user should degrade, got error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("got %d items, want empty result", len(items))
	}
}

func TestUserCFDeterminism(t *testing.T) {
	profiles := NewMemoryProfiles(
		&core.UserProfile{UserID: "u1", PurchasedProducts: []string{"p1", "p2"}},
		&core.UserProfile{UserID: "u2", PurchasedProducts: []string{"p1", "p3"}},
		&core.UserProfile{UserID: "u3", PurchasedProducts: []string{"p2", "p4"}},
	)
	rctx := &core.RecommendContext{UserID: "u1"}

	r := &UserCF{Profiles: profiles}
	first, err := r.Score(context.Background(), rctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := r.Score(context.Background(), rctx, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d != %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j].ID != first[j].ID || again[j].Score != first[j].Score {
				t.Fatalf("run %d: item %d = (%s, %v), want (%s, %v)",
					i, j, again[j].ID, again[j].Score, first[j].ID, first[j].Score)
			}
		}
	}
}

func TestUserCFCatalogFiltering(t *testing.T) {
	profiles := NewMemoryProfiles(
		&core.UserProfile{UserID: "u1", PurchasedProducts: []string{"p1"}},
		&core.UserProfile{UserID: "u2", PurchasedProducts: []string{"p1", "p2", "p_removed"}},
	)
	catalog := NewMemoryCatalog(
		&core.Product{ID: "p1", Price: 10},
		&core.Product{ID: "p2", Category: "c", Price: 20},
	)

	r := &UserCF{Profiles: profiles, Catalog: catalog}
	items, err := r.Score(context.Background(), &core.RecommendContext{UserID: "u1"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != "p2" {
		t.Fatalf("items = %v, want only p2 (p_removed is not in the catalog)", items)
	}
	if items[0].MetaString("category") != "c" {
		t.Errorf("catalog-backed item should carry product meta")
	}
}
