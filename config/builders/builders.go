// Package builders 在 init 中注册所有可从配置构建的内置 Node。
// 使用方式：import _ "github.com/rushteam/shoprec/config/builders"
package builders

import (
	"fmt"

	"github.com/rushteam/shoprec/config"
	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/model"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/conv"
	"github.com/rushteam/shoprec/rank"
	"github.com/rushteam/shoprec/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("rank.model", BuildModelNode)
	config.Register("rerank.context", BuildContextBoostNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
}

// BuildFilterNode 从配置构建组合过滤节点。
//
//	type: filter
//	config:
//	  filters:
//	    - type: blacklist
//	      item_ids: ["p9"]
//	    - type: purchased
//	    - type: rule
//	      expr: 'item.meta.price > 500.0'
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "blacklist":
			ids := conv.SliceAnyToString(filterMap["item_ids"])
			if ids == nil {
				ids = []string{}
			}
			key := conv.ConfigGet(filterMap, "key", "")
			filters = append(filters, filter.NewBlacklistFilter(ids, nil, key))
		case "purchased":
			filters = append(filters, &filter.PurchasedFilter{})
		case "rule":
			expr := conv.ConfigGet(filterMap, "expr", "")
			rf, err := filter.NewRuleFilter(expr)
			if err != nil {
				return nil, fmt.Errorf("rule filter: %w", err)
			}
			filters = append(filters, rf)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

// BuildModelNode 从配置构建模型排序节点。
//
//	type: rank.model
//	config:
//	  model: linear | lr
//	  path: weights.yaml      # 可选，从文件加载
//	  weights: {...}          # lr 模型的权重
//	  bias: 0.0
func BuildModelNode(cfg map[string]interface{}) (pipeline.Node, error) {
	modelType := conv.ConfigGet(cfg, "model", "linear")
	switch modelType {
	case "linear":
		if path := conv.ConfigGet(cfg, "path", ""); path != "" {
			m, err := model.LoadLinearModel(path)
			if err != nil {
				return nil, fmt.Errorf("load linear model: %w", err)
			}
			return &rank.ModelNode{Model: m}, nil
		}
		return &rank.ModelNode{Model: model.NewLinearModel()}, nil
	case "lr":
		weightsMap, ok := cfg["weights"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("weights not found")
		}
		lr := &model.LRModel{
			Bias:    conv.ConfigGetFloat(cfg, "bias", 0.0),
			Weights: conv.MapToFloat64(weightsMap),
		}
		return &rank.ModelNode{Model: lr}, nil
	default:
		return nil, fmt.Errorf("unknown model type: %s", modelType)
	}
}

// BuildContextBoostNode 从配置构建情境调权节点。
//
//	type: rerank.context
//	config:
//	  night_categories: ["relaxation", "aromatherapy"]
//	  summer_categories: ["refreshing"]
//	  winter_categories: ["warming"]
//	  mobile_price_limit: 100
func BuildContextBoostNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.ContextBoost{
		NightCategories:  conv.SliceAnyToString(cfg["night_categories"]),
		SummerCategories: conv.SliceAnyToString(cfg["summer_categories"]),
		WinterCategories: conv.SliceAnyToString(cfg["winter_categories"]),
		MobilePriceLimit: conv.ConfigGetFloat(cfg, "mobile_price_limit", 0),
	}, nil
}

// BuildTopNNode 从配置构建 Top-N 截断节点。
func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopN{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}

// BuildDiversityNode 从配置构建多样性重排节点。
func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	labelKey := conv.ConfigGet(cfg, "label_key", "category")
	if labelKey == "" {
		labelKey = "category"
	}
	return &rerank.Diversity{LabelKey: labelKey}, nil
}
