package recall

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/feature"
)

func TestDeepScorer(t *testing.T) {
	catalog := NewMemoryCatalog(
		&core.Product{ID: "p1", Price: 100, Popularity: 0.8, Rating: 4.0},
	)
	rctx := &core.RecommendContext{
		UserID: "u1",
		User: &core.UserProfile{
			UserID:            "u1",
			AvgOrderValue:     250,
			PurchaseFrequency: 4,
			EmailOpenRate:     0.6,
			ClickRate:         0.3,
		},
	}

	r := &DeepScorer{Catalog: catalog}
	items, err := r.Score(context.Background(), rctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	// 0.25*0.15 + 0.4*0.12 + 0.6*0.08 + 0.3*0.08 + 0.8*0.25 + 0.8*0.22 + 0.2*0.10
	want := 0.5535
	if math.Abs(items[0].Score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", items[0].Score, want)
	}
	if items[0].Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", items[0].Confidence)
	}
	if items[0].Reason != ReasonModelScored {
		t.Errorf("reason = %q", items[0].Reason)
	}
	if len(items[0].Features) == 0 {
		t.Error("scored item should carry its feature vector")
	}
}

func TestDeepScorerBounds(t *testing.T) {
	catalog := NewMemoryCatalog(
		&core.Product{ID: "cheap", Price: 1, Popularity: 0.1, Rating: 1.0},
		&core.Product{ID: "maxed", Price: 10000, Popularity: 5.0, Rating: 9.0},
	)
	rctx := &core.RecommendContext{
		UserID: "u1",
		User: &core.UserProfile{
			UserID:            "u1",
			AvgOrderValue:     99999,
			PurchaseFrequency: 500,
			EmailOpenRate:     3,
			ClickRate:         3,
		},
	}

	r := &DeepScorer{Catalog: catalog}
	items, err := r.Score(context.Background(), rctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range items {
		if it.Score < 0 || it.Score > 1 {
			t.Errorf("score(%s) = %v out of [0,1]", it.ID, it.Score)
		}
	}
}

func TestDeepScorerEmptyHistoryStillScores(t *testing.T) {
	catalog := NewMemoryCatalog(
		&core.Product{ID: "p1", Price: 100, Popularity: 0.5, Rating: 4.0},
	)
	rctx := &core.RecommendContext{
		UserID: "u1",
		User:   &core.UserProfile{UserID: "u1"},
	}

	r := &DeepScorer{Catalog: catalog}
	items, err := r.Score(context.Background(), rctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1 (learned scorer needs no history)", len(items))
	}
}

type stubProvider struct {
	features map[string]float64
	err      error
}

func (p *stubProvider) UserFeatures(context.Context, string) (map[string]float64, error) {
	return p.features, p.err
}

func TestDeepScorerOnlineFeatures(t *testing.T) {
	catalog := NewMemoryCatalog(
		&core.Product{ID: "p1", Price: 100, Popularity: 0.5, Rating: 4.0},
	)
	rctx := &core.RecommendContext{
		UserID: "u1",
		User:   &core.UserProfile{UserID: "u1", EmailOpenRate: 0.1},
	}

	base := &DeepScorer{Catalog: catalog}
	baseline, err := base.Score(context.Background(), rctx, 1)
	if err != nil {
		t.Fatal(err)
	}

	boosted := &DeepScorer{
		Catalog:  catalog,
		Provider: &stubProvider{features: map[string]float64{feature.FeatureEmailOpenRate: 0.9}},
	}
	withOnline, err := boosted.Score(context.Background(), rctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if withOnline[0].Score <= baseline[0].Score {
		t.Errorf("online feature should raise the score: %v vs %v",
			withOnline[0].Score, baseline[0].Score)
	}

	// 在线特征源失败时静默退回画像值
	failing := &DeepScorer{
		Catalog:  catalog,
		Provider: &stubProvider{err: errors.New("feast down")},
	}
	degraded, err := failing.Score(context.Background(), rctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if degraded[0].Score != baseline[0].Score {
		t.Errorf("provider failure should fall back to profile features: %v vs %v",
			degraded[0].Score, baseline[0].Score)
	}
}
