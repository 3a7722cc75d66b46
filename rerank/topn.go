package rerank

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
)

// TopN 是截断节点，在排序/调权之后截取前 N 个商品。
//
// 使用场景：
//   - 情境调权后只返回 Top 10/20 个结果
//   - 控制推荐结果数量
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        hybrid,                    // 集成召回
//	        &rerank.ContextBoost{},    // 情境调权
//	        &rerank.TopN{N: 20},       // 截取 Top 20
//	    },
//	}
type TopN struct {
	// N 要保留的商品数量（Top N）
	// 如果 N <= 0，则返回所有商品（不截断）
	// 如果 N > len(items)，则返回所有商品
	N int
}

func (n *TopN) Name() string {
	return "rerank.topn"
}

func (n *TopN) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 {
		return items, nil
	}
	if len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
