package rerank

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/shoprec/core"
)

func productItem(p *core.Product, score float64) *core.Item {
	it := core.NewProductItem(p)
	it.Score = score
	return it
}

func TestContextBoostNight(t *testing.T) {
	items := []*core.Item{
		productItem(&core.Product{ID: "calm", Category: "aromatherapy", Price: 200}, 0.9),
		productItem(&core.Product{ID: "toy", Category: "toys", Price: 200}, 0.95),
	}
	rctx := &core.RecommendContext{
		UserID: "u1",
		Situation: &core.Situation{
			Timestamp: time.Date(2026, 8, 30, 22, 0, 0, 0, time.UTC),
			Device:    core.DeviceDesktop,
		},
	}

	n := &ContextBoost{}
	out, err := n.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatal(err)
	}
	if out[0].ID != "calm" {
		t.Fatalf("order = [%s %s], want the relaxation product first at night", out[0].ID, out[1].ID)
	}
	if out[0].Score != 0.7 {
		t.Errorf("score = %v, want 0.5 + 0.2", out[0].Score)
	}
	if out[0].Reason != ReasonNight {
		t.Errorf("reason = %q, want %q", out[0].Reason, ReasonNight)
	}
	if out[1].Score != 0.5 {
		t.Errorf("unmatched product score = %v, want base 0.5", out[1].Score)
	}
	if out[1].Reason != ReasonGeneric {
		t.Errorf("reason = %q, want %q", out[1].Reason, ReasonGeneric)
	}
}

func TestContextBoostCapAndPriority(t *testing.T) {
	gift := &core.Product{
		ID:       "gift",
		Category: "aromatherapy",
		Price:    50,
		Attrs:    map[string]any{"gift": true},
	}
	items := []*core.Item{productItem(gift, 0.1)}
	rctx := &core.RecommendContext{
		UserID: "u1",
		Situation: &core.Situation{
			Timestamp: time.Date(2026, 12, 24, 23, 0, 0, 0, time.UTC),
			Device:    core.DeviceMobile,
			Season:    core.SeasonWinter,
			Holiday:   true,
		},
	}

	n := &ContextBoost{WinterCategories: []string{"aromatherapy"}}
	out, err := n.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatal(err)
	}
	// 0.5 + 0.15 + 0.2 + 0.1 + 0.2 = 1.15，封顶 1.0
	if out[0].Score != 1.0 {
		t.Errorf("score = %v, want capped at 1.0", out[0].Score)
	}
	// 多个加成同时命中时只保留最高优先级的理由
	if out[0].Reason != ReasonHoliday {
		t.Errorf("reason = %q, want %q", out[0].Reason, ReasonHoliday)
	}
}

func TestContextBoostSeasonExclusive(t *testing.T) {
	items := []*core.Item{
		productItem(&core.Product{ID: "fan", Category: "refreshing", Price: 200}, 0.5),
		productItem(&core.Product{ID: "heater", Category: "warming", Price: 200}, 0.5),
	}
	rctx := &core.RecommendContext{
		UserID: "u1",
		Situation: &core.Situation{
			Timestamp: time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC),
			Season:    core.SeasonSummer,
		},
	}

	n := &ContextBoost{}
	out, err := n.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatal(err)
	}
	scoreOf := func(id string) float64 {
		for _, it := range out {
			if it.ID == id {
				return it.Score
			}
		}
		return -1
	}
	if scoreOf("fan") != 0.65 {
		t.Errorf("summer bonus missing: %v", scoreOf("fan"))
	}
	if scoreOf("heater") != 0.5 {
		t.Errorf("winter bonus applied in summer: %v", scoreOf("heater"))
	}
}

func TestContextBoostMobilePrice(t *testing.T) {
	items := []*core.Item{
		productItem(&core.Product{ID: "cheap", Category: "toys", Price: 40}, 0.5),
		productItem(&core.Product{ID: "pricey", Category: "toys", Price: 400}, 0.5),
	}
	rctx := &core.RecommendContext{
		UserID: "u1",
		Situation: &core.Situation{
			Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			Device:    core.DeviceMobile,
		},
	}

	n := &ContextBoost{}
	out, err := n.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatal(err)
	}
	if out[0].ID != "cheap" || out[0].Score != 0.6 {
		t.Errorf("mobile bonus: got (%s, %v), want (cheap, 0.6)", out[0].ID, out[0].Score)
	}
	// 加成只改分数，不碰理由优先级
	if out[0].Reason != ReasonGeneric {
		t.Errorf("reason = %q, want %q", out[0].Reason, ReasonGeneric)
	}
}

func TestContextBoostNoSituation(t *testing.T) {
	items := []*core.Item{
		productItem(&core.Product{ID: "p1", Category: "toys", Price: 10}, 0.9),
	}
	rctx := &core.RecommendContext{UserID: "u1"}

	n := &ContextBoost{}
	out, err := n.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatal(err)
	}
	if out[0].Score != 0.9 || out[0].Reason != "" {
		t.Error("nil situation should pass items through untouched")
	}
}

func TestContextBoostStableOrderOnTies(t *testing.T) {
	items := []*core.Item{
		productItem(&core.Product{ID: "first", Category: "toys", Price: 200}, 0.9),
		productItem(&core.Product{ID: "second", Category: "books", Price: 200}, 0.8),
	}
	rctx := &core.RecommendContext{
		UserID: "u1",
		Situation: &core.Situation{
			Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		},
	}

	n := &ContextBoost{}
	out, err := n.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatal(err)
	}
	// 两个商品情境分都是 0.5，保持上游（集成）给出的顺序
	if out[0].ID != "first" || out[1].ID != "second" {
		t.Fatalf("tie order = [%s %s], want upstream order preserved", out[0].ID, out[1].ID)
	}
}
