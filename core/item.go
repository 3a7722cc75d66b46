package core

import "github.com/rushteam/shoprec/pkg/utils"

// Item 是推荐链路中的统一承载结构：分数、置信度、推荐理由、特征与标签。
// Score 用于排序决策；Reason 面向用户展示；Labels 用于解释与策略驱动。
//
// Item 是每次调用新建的临时对象，引擎不持久化任何 Item。
type Item struct {
	ID         string
	Score      float64
	Confidence float64 // [0,1]，由产生该 Item 的算法给定
	Reason     string  // 人类可读的推荐理由
	Features   map[string]float64
	Meta       map[string]any
	Labels     map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:       id,
		Features: make(map[string]float64),
		Meta:     make(map[string]any),
		Labels:   make(map[string]utils.Label),
	}
}

// NewProductItem 基于商品构建 Item，并把下游节点（多样性重排、
// 情境调权）需要的商品属性写入 Meta。
func NewProductItem(p *Product) *Item {
	it := NewItem(p.ID)
	it.Meta["category"] = p.Category
	it.Meta["brand"] = p.Brand
	it.Meta["price"] = p.Price
	if p.GiftSuitable() {
		it.Meta["gift"] = true
	}
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// MetaString 读取 Meta 中的字符串值，不存在或类型不符时返回空串。
func (it *Item) MetaString(key string) string {
	if it.Meta == nil {
		return ""
	}
	if s, ok := it.Meta[key].(string); ok {
		return s
	}
	return ""
}

// MetaFloat 读取 Meta 中的数值，不存在或类型不符时返回 0。
func (it *Item) MetaFloat(key string) float64 {
	if it.Meta == nil {
		return 0
	}
	if f, ok := it.Meta[key].(float64); ok {
		return f
	}
	return 0
}
