package recall

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/utils"
)

// ContentScorer 是基于内容的打分器（Content-based）。
//
// 不依赖其他用户的行为，直接比对"商品属性 vs 用户画像偏好"：
//
//	类目匹配     +0.3
//	品牌偏好     +0.2
//	价格带内     +0.2
//	流行度       +popularity × 0.15
//	评分         +(rating/5) × 0.15
//
// 冷启动友好：新商品只要属性齐全就能被打分。
// 只保留正分商品，零分意味着与画像完全无关。
type ContentScorer struct {
	Catalog core.Catalog

	// Profiles 可选；rctx.User 缺失时从画像库读取目标画像。
	Profiles core.ProfileStore

	// TopK 是 Recall 形态下返回的结果数，默认 20。
	TopK int

	// Confidence 是该算法的固定置信度，默认 0.7。
	Confidence float64
}

// ReasonPreferences 是内容打分器的固定推荐理由。
const ReasonPreferences = "based on your preferences"

const (
	contentWeightCategory   = 0.3
	contentWeightBrand      = 0.2
	contentWeightPrice      = 0.2
	contentWeightPopularity = 0.15
	contentWeightRating     = 0.15
)

func (r *ContentScorer) Name() string { return "recall.content" }

// Recall 实现 Source 接口。
func (r *ContentScorer) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}
	return r.Score(ctx, rctx, topK)
}

// Score 实现 Scorer 接口。
func (r *ContentScorer) Score(ctx context.Context, rctx *core.RecommendContext, k int) ([]*core.Item, error) {
	if k <= 0 || r.Catalog == nil || rctx == nil {
		return nil, nil
	}

	user, err := targetProfile(ctx, rctx, r.Profiles)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	catalog, err := r.Catalog.AllProducts(ctx)
	if err != nil {
		return nil, err
	}

	confidence := r.Confidence
	if confidence == 0 {
		confidence = 0.7
	}

	out := make([]*core.Item, 0, len(catalog))
	for _, p := range catalog {
		if !p.Valid() {
			continue
		}
		score := r.score(user, p)
		if score <= 0 {
			continue
		}
		it := core.NewProductItem(p)
		it.Score = score
		it.Confidence = confidence
		it.Reason = ReasonPreferences
		it.PutLabel("algorithm", utils.Label{Value: "content", Source: "recall"})
		out = append(out, it)
	}

	return sortAndTrim(out, k), nil
}

func (r *ContentScorer) score(user *core.UserProfile, p *core.Product) float64 {
	score := 0.0
	if user.HasCategory(p.Category) {
		score += contentWeightCategory
	}
	if user.PrefersBrand(p.Brand) {
		score += contentWeightBrand
	}
	if user.PriceRange.Contains(p.Price) {
		score += contentWeightPrice
	}
	score += p.PopularityClamped() * contentWeightPopularity
	score += (p.RatingClamped() / 5.0) * contentWeightRating
	return score
}
