// Package similarity 提供推荐引擎使用的相似度度量：
// 行为集合的 Jaccard 相似度与商品属性相似度。全部为无状态纯函数。
package similarity

import (
	"math"

	"github.com/rushteam/shoprec/core"
)

// 商品属性相似度的信号权重。三路信号独立触发，
// 最终得分除以实际参与评估的权重之和，保证缺失品牌等数据时
// 仍能得到可比的 0-1 分数。
const (
	weightCategory    = 0.4
	weightSubcategory = 0.2
	weightBrand       = 0.2
	weightPrice       = 0.2

	// 价格相对差在 20% 以内视为"价位相近"
	priceTolerance = 0.2
)

// Jaccard 计算两个集合的 Jaccard 相似度：|交集| / |并集|。
// 两个集合均为空时定义为 0（避免除零）。入参允许含重复元素，按集合处理。
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, v := range a {
		setA[v] = struct{}{}
	}

	setB := make(map[string]struct{}, len(b))
	intersection := 0
	for _, v := range b {
		if _, dup := setB[v]; dup {
			continue
		}
		setB[v] = struct{}{}
		if _, ok := setA[v]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Products 计算两个商品的属性相似度，返回 [0,1]。
//
// 三路信号：
//   - 同类目 +0.4，且同子类目再 +0.2
//   - 同品牌 +0.2
//   - 价格相对差 20% 以内 +0.2
//
// 对称：Products(a,b) == Products(b,a)。
func Products(p1, p2 *core.Product) float64 {
	if p1 == nil || p2 == nil {
		return 0
	}

	var score, evaluated float64

	if p1.Category != "" && p2.Category != "" {
		evaluated += weightCategory
		if p1.Category == p2.Category {
			score += weightCategory
			// 子类目只有在类目一致时才有意义
			if p1.Subcategory != "" && p2.Subcategory != "" {
				evaluated += weightSubcategory
				if p1.Subcategory == p2.Subcategory {
					score += weightSubcategory
				}
			}
		}
	}

	if p1.Brand != "" && p2.Brand != "" {
		evaluated += weightBrand
		if p1.Brand == p2.Brand {
			score += weightBrand
		}
	}

	if p1.Price > 0 && p2.Price > 0 {
		evaluated += weightPrice
		if priceClose(p1.Price, p2.Price) {
			score += weightPrice
		}
	}

	if evaluated == 0 {
		return 0
	}
	return score / evaluated
}

// priceClose 判断两个价格的相对差是否在容忍范围内。
// 以较大值为基准，保证对称性。
func priceClose(a, b float64) bool {
	base := math.Max(a, b)
	if base == 0 {
		return true
	}
	return math.Abs(a-b)/base <= priceTolerance
}
