package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
)

// ContextBoost 是情境调权节点：用请求情境（时间/设备/季节/节日）
// 重算每个商品的分数。
//
// 分数是替换语义而非叠加：每个商品从基准分 0.5 起算，命中的情境
// 加成逐项累加，封顶 1.0。排序稳定，情境分相同的商品保持上游顺序。
//
//	夜间时段 × 放松类商品          +0.2
//	移动端 × 价格 < 100           +0.1
//	夏季 × 清凉类 / 冬季 × 保暖类  +0.15（按季节互斥）
//	节日 × 适合送礼               +0.2
//
// 理由按优先级只保留一条：节日 > 夜间 > 季节 > 通用。
// rctx.Situation 为空时整个节点直接透传。
type ContextBoost struct {
	// NightCategories 是夜间时段加成的商品类目，默认放松类。
	NightCategories []string

	// SummerCategories / WinterCategories 是季节加成类目。
	SummerCategories []string
	WinterCategories []string

	// MobilePriceLimit 是移动端加成的价格上限，默认 100。
	MobilePriceLimit float64
}

const (
	contextBase         = 0.5
	contextNightBonus   = 0.2
	contextMobileBonus  = 0.1
	contextSeasonBonus  = 0.15
	contextHolidayBonus = 0.2
	contextScoreCap     = 1.0
)

// 理由按优先级取一条
const (
	ReasonHoliday = "perfect as a holiday gift"
	ReasonNight   = "great for winding down tonight"
	ReasonSeason  = "in season right now"
	ReasonGeneric = "recommended for you now"
)

func defaultNightCategories() []string {
	return []string{"relaxation", "aromatherapy", "candles"}
}

func (n *ContextBoost) Name() string { return "rerank.context" }

func (n *ContextBoost) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *ContextBoost) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 || rctx == nil || rctx.Situation == nil {
		return items, nil
	}
	sit := rctx.Situation

	night := n.NightCategories
	if night == nil {
		night = defaultNightCategories()
	}
	summer := n.SummerCategories
	if summer == nil {
		summer = []string{"refreshing"}
	}
	winter := n.WinterCategories
	if winter == nil {
		winter = []string{"warming"}
	}
	priceLimit := n.MobilePriceLimit
	if priceLimit == 0 {
		priceLimit = 100
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		category := it.MetaString("category")
		price := it.MetaFloat("price")
		gift := it.Meta != nil && it.Meta["gift"] == true

		score := contextBase
		reason := ReasonGeneric

		if sit.Season == core.SeasonSummer && containsCategory(summer, category) {
			score += contextSeasonBonus
			reason = ReasonSeason
		} else if sit.Season == core.SeasonWinter && containsCategory(winter, category) {
			score += contextSeasonBonus
			reason = ReasonSeason
		}
		if sit.IsNight() && containsCategory(night, category) {
			score += contextNightBonus
			reason = ReasonNight
		}
		if sit.Device == core.DeviceMobile && price < priceLimit {
			score += contextMobileBonus
		}
		if sit.Holiday && gift {
			score += contextHolidayBonus
			reason = ReasonHoliday
		}
		if score > contextScoreCap {
			score = contextScoreCap
		}

		it.Score = score
		it.Reason = reason
		it.PutLabel("context", utils.Label{Value: reason, Source: "rerank"})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return items, nil
}

func containsCategory(set []string, category string) bool {
	if category == "" {
		return false
	}
	for _, c := range set {
		if c == category {
			return true
		}
	}
	return false
}
