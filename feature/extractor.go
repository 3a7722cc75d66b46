// Package feature 提供 (用户, 商品) 特征向量的抽取与外部特征源接入。
package feature

import "github.com/rushteam/shoprec/core"

// 学习打分器的特征名。顺序与归一化除数是模型契约的一部分，
// 与 model.LinearModel 的默认特征顺序保持一致。
const (
	FeatureAvgOrderValue     = "avg_order_value"    // 均单价 / 1000
	FeaturePurchaseFrequency = "purchase_frequency" // 购买频次 / 10
	FeatureEmailOpenRate     = "email_open_rate"    // [0,1]
	FeatureClickRate         = "click_rate"         // [0,1]
	FeaturePopularity        = "popularity"         // [0,1]
	FeatureRating            = "rating"             // 评分 / 5
	FeaturePrice             = "price"              // 价格 / 500
)

// 归一化除数。把原始信号压到约 [0,1]–[0,2] 的量级。
const (
	divisorOrderValue = 1000.0
	divisorFrequency  = 10.0
	divisorRating     = 5.0
	divisorPrice      = 500.0
)

// Extractor 构建 (用户, 商品) 对的归一化特征向量。无状态，可并发使用。
type Extractor struct{}

// PairFeatures 抽取一个 (用户, 商品) 对的特征。
// overrides 中的值优先于画像字段（用于从外部特征库补齐互动统计）；
// 比率字段在读取时收敛到 [0,1]。
func (e *Extractor) PairFeatures(user *core.UserProfile, p *core.Product, overrides map[string]float64) map[string]float64 {
	features := map[string]float64{
		FeatureAvgOrderValue:     0,
		FeaturePurchaseFrequency: 0,
		FeatureEmailOpenRate:     0,
		FeatureClickRate:         0,
		FeaturePopularity:        0,
		FeatureRating:            0,
		FeaturePrice:             0,
	}

	if user != nil {
		features[FeatureAvgOrderValue] = user.AvgOrderValue / divisorOrderValue
		features[FeaturePurchaseFrequency] = user.PurchaseFrequency / divisorFrequency
		features[FeatureEmailOpenRate] = user.EmailOpenRateClamped()
		features[FeatureClickRate] = user.ClickRateClamped()
	}

	if p != nil {
		features[FeaturePopularity] = p.PopularityClamped()
		features[FeatureRating] = p.RatingClamped() / divisorRating
		features[FeaturePrice] = p.Price / divisorPrice
	}

	for k, v := range overrides {
		if _, ok := features[k]; ok {
			features[k] = v
		}
	}
	return features
}
