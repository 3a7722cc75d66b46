package core

import "math"

// Product 是商品目录中的一个条目。
//
// 所有权在外部目录系统；引擎在一次推荐调用期间把它当作只读快照，
// 绝不修改目录状态。
type Product struct {
	ID          string
	Name        string
	Category    string
	Subcategory string
	Brand       string
	Price       float64 // >= 0

	// Attrs 是自由属性包（颜色、材质、是否适合送礼等）
	Attrs map[string]any

	Popularity  float64 // [0,1]
	Rating      float64 // [0,5]
	ReviewCount int     // >= 0
}

// Valid 是数据质量检查：字段残缺的商品会被各打分器跳过，
// 而不是让整次调用失败。
func (p *Product) Valid() bool {
	if p == nil || p.ID == "" {
		return false
	}
	if p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return false
	}
	if math.IsNaN(p.Popularity) || math.IsNaN(p.Rating) {
		return false
	}
	return true
}

// PopularityClamped 返回收敛到 [0,1] 的流行度（读取时收敛，不回写）。
func (p *Product) PopularityClamped() float64 {
	return clamp(p.Popularity, 0, 1)
}

// RatingClamped 返回收敛到 [0,5] 的评分。
func (p *Product) RatingClamped() float64 {
	return clamp(p.Rating, 0, 5)
}

// GiftSuitable 判断商品是否被标记为适合送礼（来自属性包）。
func (p *Product) GiftSuitable() bool {
	if p.Attrs == nil {
		return false
	}
	switch v := p.Attrs["gift"].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "yes" || v == "1"
	case float64:
		return v > 0
	case int:
		return v > 0
	}
	return false
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
