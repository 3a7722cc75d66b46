package recall

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/feature"
	"github.com/rushteam/shoprec/model"
	"github.com/rushteam/shoprec/pkg/utils"
)

// DeepScorer 是学习型打分器：对每个候选提取用户×商品交叉特征，
// 交给 RankModel 预测相关性分数。
//
// 默认模型是离线训练产出的线性模型（见 model.LinearModel），
// 换用 LR 或任何实现 RankModel 的模型不影响本打分器。
//
// Provider 可选：配置后每次调用先拉一次在线特征（如 Feast 的互动
// 统计），覆盖画像中的同名特征；拉取失败静默退回画像值，在线特征
// 永远是锦上添花而不是硬依赖。
type DeepScorer struct {
	Catalog core.Catalog

	// Profiles 可选；rctx.User 缺失时从画像库读取目标画像。
	Profiles core.ProfileStore

	// Model 为空时使用默认线性模型。
	Model model.RankModel

	// Extractor 为空时使用零值提取器（无状态，零值可用）。
	Extractor *feature.Extractor

	// Provider 是可选的在线特征源。
	Provider feature.Provider

	// TopK 是 Recall 形态下返回的结果数，默认 20。
	TopK int

	// Confidence 是该算法的固定置信度，默认 0.9。
	Confidence float64
}

// ReasonModelScored 是学习打分器的固定推荐理由。
const ReasonModelScored = "AI-recommended"

func (r *DeepScorer) Name() string { return "recall.deep" }

// Recall 实现 Source 接口。
func (r *DeepScorer) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}
	return r.Score(ctx, rctx, topK)
}

// Score 实现 Scorer 接口。
func (r *DeepScorer) Score(ctx context.Context, rctx *core.RecommendContext, k int) ([]*core.Item, error) {
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

	m := r.Model
	if m == nil {
		m = model.NewLinearModel()
	}
	extractor := r.Extractor
	if extractor == nil {
		extractor = &feature.Extractor{}
	}

	// 在线特征整次调用只拉一次；失败退回画像值
	var overrides map[string]float64
	online := "profile"
	if r.Provider != nil {
		if fetched, err := r.Provider.UserFeatures(ctx, user.UserID); err == nil {
			overrides = fetched
			online = "online"
		}
	}

	confidence := r.Confidence
	if confidence == 0 {
		confidence = 0.9
	}

	out := make([]*core.Item, 0, len(catalog))
	for _, p := range catalog {
		if !p.Valid() {
			continue
		}
		features := extractor.PairFeatures(user, p, overrides)
		score, err := m.Predict(features)
		if err != nil {
			// 单个候选预测失败只跳过该候选
			continue
		}
		it := core.NewProductItem(p)
		it.Score = score
		it.Confidence = confidence
		it.Reason = ReasonModelScored
		it.Features = features
		it.PutLabel("algorithm", utils.Label{Value: "deep", Source: "recall"})
		it.PutLabel("model", utils.Label{Value: m.Name(), Source: "recall"})
		it.PutLabel("feature_source", utils.Label{Value: online, Source: "recall"})
		out = append(out, it)
	}

	return sortAndTrim(out, k), nil
}
