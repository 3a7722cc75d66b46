package feature

import (
	"math"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func TestExtractorPairFeatures(t *testing.T) {
	user := &core.UserProfile{
		UserID:            "u1",
		AvgOrderValue:     250,
		PurchaseFrequency: 4,
		EmailOpenRate:     0.6,
		ClickRate:         0.3,
	}
	product := &core.Product{
		ID:         "p1",
		Price:      100,
		Popularity: 0.8,
		Rating:     4.0,
	}

	e := &Extractor{}
	features := e.PairFeatures(user, product, nil)

	want := map[string]float64{
		FeatureAvgOrderValue:     0.25,
		FeaturePurchaseFrequency: 0.4,
		FeatureEmailOpenRate:     0.6,
		FeatureClickRate:         0.3,
		FeaturePopularity:        0.8,
		FeatureRating:            0.8,
		FeaturePrice:             0.2,
	}
	for k, v := range want {
		if got := features[k]; math.Abs(got-v) > 1e-9 {
			t.Errorf("feature %q = %v, want %v", k, got, v)
		}
	}
	if len(features) != len(want) {
		t.Errorf("got %d features, want %d", len(features), len(want))
	}
}

func TestExtractorClampsRates(t *testing.T) {
	user := &core.UserProfile{
		UserID:        "u1",
		EmailOpenRate: 1.8,  // 脏数据，读取时收敛
		ClickRate:     -0.5, // 同上
	}
	product := &core.Product{ID: "p1", Popularity: 2.0, Rating: 7.0}

	e := &Extractor{}
	features := e.PairFeatures(user, product, nil)

	if features[FeatureEmailOpenRate] != 1.0 {
		t.Errorf("email_open_rate = %v, want clamped 1.0", features[FeatureEmailOpenRate])
	}
	if features[FeatureClickRate] != 0.0 {
		t.Errorf("click_rate = %v, want clamped 0.0", features[FeatureClickRate])
	}
	if features[FeaturePopularity] != 1.0 {
		t.Errorf("popularity = %v, want clamped 1.0", features[FeaturePopularity])
	}
	if features[FeatureRating] != 1.0 {
		t.Errorf("rating = %v, want clamped 5/5", features[FeatureRating])
	}
}

func TestExtractorOverrides(t *testing.T) {
	user := &core.UserProfile{UserID: "u1"}
	product := &core.Product{ID: "p1"}

	e := &Extractor{}
	features := e.PairFeatures(user, product, map[string]float64{
		FeatureEmailOpenRate: 0.9,
		"unknown_feature":    1.0, // 契约之外的特征被忽略
	})

	if features[FeatureEmailOpenRate] != 0.9 {
		t.Errorf("override not applied: %v", features[FeatureEmailOpenRate])
	}
	if _, ok := features["unknown_feature"]; ok {
		t.Error("unexpected feature outside the contract")
	}
}

func TestExtractorNilInputs(t *testing.T) {
	e := &Extractor{}
	features := e.PairFeatures(nil, nil, nil)
	for k, v := range features {
		if v != 0 {
			t.Errorf("feature %q = %v, want 0 for nil inputs", k, v)
		}
	}
}
